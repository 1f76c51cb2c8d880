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

package registry

import (
	"bufio"
	"os"
	"strings"

	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"
)

func load(path string, log liblog.FuncLog) (Registry, liberr.Error) {
	if path == "" {
		return nil, ErrorParamEmpty.Error(nil)
	}

	h, err := os.Open(path) // #nosec
	if err != nil {
		return nil, ErrorFileOpen.Error(err)
	}

	defer func() {
		_ = h.Close()
	}()

	var (
		names []string
		macs  []string
		num   int
	)

	sc := bufio.NewScanner(h)
	for sc.Scan() {
		num++

		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		name, mac, ok := strings.Cut(line, ",")
		name = strings.TrimSpace(name)
		mac = strings.TrimSpace(mac)

		if !ok || name == "" || len(name) > MaxNameLen || len(mac) != MacLen {
			if log != nil && log() != nil {
				log().Warning("skipping malformed controller at line %d, expected format (CTRL-XXX,YYYYYYYYYYYY)", nil, num)
			}
			continue
		}

		names = append(names, name)
		macs = append(macs, mac)
	}

	if err = sc.Err(); err != nil {
		return nil, ErrorFileRead.Error(err)
	}

	if len(names) == 0 {
		return nil, ErrorNoController.Error(nil)
	}

	return New(names, macs), nil
}
