/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package server

import (
	"io"

	libcsl "github.com/nabbar/golib/console"

	libcmd "github/sabouaram/ctrlhub/server/command"
	libreg "github/sabouaram/ctrlhub/registry"
)

// petition is the task argument of one operator initiated data exchange.
type petition struct {
	idx    int
	device string
	value  string
}

// console runs one operator input line and reports whether the operator
// asked for shutdown.
func (s *srv) console(line string, out io.Writer) bool {
	cmd, err := libcmd.Parse(line)
	if err != nil {
		if err.IsCode(libcmd.ErrorBadCommand) {
			_, _ = libcsl.ColorPrint.BuffPrintf(out, "%s\n", libcmd.Usage)
		} else {
			s.warning("%s", err.Error())
		}
		return false
	}

	switch cmd.Kind {
	case libcmd.KindList:
		libcmd.Print(out, s.reg.Snapshot())

	case libcmd.KindQuit:
		s.info("closing server")
		return true

	case libcmd.KindSet, libcmd.KindGet:
		s.petition(cmd)
	}

	return false
}

func (s *srv) petition(cmd libcmd.Command) {
	idx, ok := s.reg.FindByName(cmd.Controller)
	if !ok || s.reg.Status(idx) == libreg.StatusDisconnected {
		s.warning("controller not found or disconnected")
		return
	}

	if !s.reg.HasDevice(idx, cmd.Device) {
		s.warning("device %s in controller %s not found", cmd.Device, cmd.Controller)
		return
	}

	s.pol.Submit(func(a interface{}) {
		p := a.(*petition)
		s.dou.Request(p.idx, p.device, p.value)
	}, &petition{
		idx:    idx,
		device: cmd.Device,
		value:  cmd.Value,
	})
}
