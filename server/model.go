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
	"context"
	"io"
	"net"
	"sync"
	"time"

	liblog "github.com/nabbar/golib/logger"

	libcfg "github/sabouaram/ctrlhub/config"
	libmet "github/sabouaram/ctrlhub/metrics"
	libpol "github/sabouaram/ctrlhub/pool"
	libreg "github/sabouaram/ctrlhub/registry"
	libdat "github/sabouaram/ctrlhub/server/data"
	libhel "github/sabouaram/ctrlhub/server/hello"
	libsub "github/sabouaram/ctrlhub/server/subs"
)

type srv struct {
	m sync.Mutex

	cfg *libcfg.Config
	reg libreg.Registry
	log liblog.FuncLog
	met libmet.Metrics
	pol libpol.Pool

	sub libsub.Handler
	hel libhel.Handler
	din libdat.Inbound
	dou libdat.Issuer

	cin io.Reader
	out io.Writer

	win time.Duration
	tck time.Duration

	udp *net.UDPConn
	tcp *net.TCPListener
	cnl context.CancelFunc
	run bool
}

func (s *srv) Shutdown() {
	s.m.Lock()
	defer s.m.Unlock()

	s.stopLocked()
}

func (s *srv) stopLocked() {
	if s.cnl != nil {
		s.cnl()
		s.cnl = nil
	}

	if s.udp != nil {
		_ = s.udp.Close()
	}

	if s.tcp != nil {
		_ = s.tcp.Close()
	}

	if s.met != nil {
		s.met.Close()
	}
}

func (s *srv) IsRunning() bool {
	s.m.Lock()
	defer s.m.Unlock()

	return s.run
}

func (s *srv) LocalUDP() net.Addr {
	s.m.Lock()
	defer s.m.Unlock()

	if s.udp == nil {
		return nil
	}

	return s.udp.LocalAddr()
}

func (s *srv) LocalTCP() net.Addr {
	s.m.Lock()
	defer s.m.Unlock()

	if s.tcp == nil {
		return nil
	}

	return s.tcp.Addr()
}

func (s *srv) SetConsole(in io.Reader, out io.Writer) {
	s.m.Lock()
	defer s.m.Unlock()

	s.cin = in
	s.out = out
}

func (s *srv) SetSweep(window, tick time.Duration) {
	s.m.Lock()
	defer s.m.Unlock()

	if window > 0 {
		s.win = window
	}

	if tick > 0 {
		s.tck = tick
	}
}

func (s *srv) Subs() libsub.Handler {
	return s.sub
}

func (s *srv) Inbound() libdat.Inbound {
	return s.din
}

func (s *srv) Issuer() libdat.Issuer {
	return s.dou
}

func (s *srv) info(msg string, args ...interface{}) {
	if s.log != nil && s.log() != nil {
		s.log().Info(msg, nil, args...)
	}
}

func (s *srv) warning(msg string, args ...interface{}) {
	if s.log != nil && s.log() != nil {
		s.log().Warning(msg, nil, args...)
	}
}

func (s *srv) error(msg string, args ...interface{}) {
	if s.log != nil && s.log() != nil {
		s.log().Error(msg, nil, args...)
	}
}
