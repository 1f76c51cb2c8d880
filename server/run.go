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
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"os"
	"time"

	liberr "github.com/nabbar/golib/errors"
	"golang.org/x/sync/errgroup"

	libreg "github/sabouaram/ctrlhub/registry"
	libsub "github/sabouaram/ctrlhub/server/subs"
	pduudp "github/sabouaram/ctrlhub/pdu/udp"
)

func (s *srv) Listen(ctx context.Context) liberr.Error {
	s.m.Lock()

	if s.run {
		s.m.Unlock()
		return ErrorAlreadyRunning.Error(nil)
	}

	udp, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: int(s.cfg.PortUDP)})
	if err != nil {
		s.m.Unlock()
		return ErrorBindUDP.Error(err)
	}

	tcp, err := net.ListenTCP("tcp4", &net.TCPAddr{IP: net.IPv4zero, Port: int(s.cfg.PortTCP)})
	if err != nil {
		_ = udp.Close()
		s.m.Unlock()
		return ErrorBindTCP.Error(err)
	}

	ctx, cnl := context.WithCancel(ctx)

	s.udp = udp
	s.tcp = tcp
	s.cnl = cnl
	s.run = true

	cin := s.cin
	out := s.out
	if cin == nil {
		cin = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	s.m.Unlock()

	defer func() {
		s.m.Lock()
		s.stopLocked()
		s.run = false
		s.udp = nil
		s.tcp = nil
		s.m.Unlock()
	}()

	if s.cfg.PortMetrics > 0 {
		go func() {
			if e := s.met.Serve(s.cfg.PortMetrics); e != nil {
				s.warning("metrics endpoint stopped: %v", e)
			}
		}()
	}

	// Closing the sockets is what unblocks the listener goroutines.
	go func() {
		<-ctx.Done()
		_ = udp.Close()
		_ = tcp.Close()
	}()

	s.info("waiting for incoming connections on udp %s / tcp %s", udp.LocalAddr().String(), tcp.Addr().String())

	grp, gtx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		return s.loopUDP(gtx, udp)
	})

	grp.Go(func() error {
		return s.loopTCP(gtx, tcp)
	})

	grp.Go(func() error {
		return s.loopConsole(gtx, cin, out)
	})

	grp.Go(func() error {
		return s.loopSweep(gtx)
	})

	_ = grp.Wait()

	s.pol.Shutdown()

	return nil
}

func (s *srv) loopUDP(ctx context.Context, udp *net.UDPConn) error {
	for {
		frm, src, err := pduudp.Recv(udp)

		if ctx.Err() != nil {
			return nil
		} else if err != nil {
			s.warning("cannot read datagram: %v", err)
			continue
		} else if frm.IsTimeout() {
			if src != nil {
				// A short datagram: nothing to dispatch.
				continue
			}
			// No deadline runs on the main socket: a sentinel without a
			// source address means it was closed underneath us.
			return nil
		}

		if s.met != nil {
			s.met.IncFrameUDP()
		}

		s.dispatchUDP(udp, frm, src)
	}
}

func (s *srv) dispatchUDP(udp *net.UDPConn, frm pduudp.Frame, src *net.UDPAddr) {
	idx, ok := s.reg.FindByUDP(frm)

	arg := &libsub.Transport{
		Main:  udp,
		Frame: frm,
		Src:   src,
		Idx:   idx,
	}

	if !ok {
		s.info("denied connection from %s: not listed in allowed Controllers file", frm.Mac)
		s.pol.Submit(func(a interface{}) {
			t := a.(*libsub.Transport)
			s.sub.Reject(*t, "You are not listed in allowed Controllers file.")
		}, arg)
		return
	}

	switch s.reg.Status(idx) {
	case libreg.StatusDisconnected:
		s.pol.Submit(func(a interface{}) {
			t := a.(*libsub.Transport)
			s.sub.Handle(*t)
		}, arg)

	case libreg.StatusSubscribed, libreg.StatusSendHello:
		s.pol.Submit(func(a interface{}) {
			t := a.(*libsub.Transport)
			s.hel.Handle(*t)
		}, arg)

	default:
		s.info("denied connection from %s: invalid status", frm.Mac)
		s.pol.Submit(func(a interface{}) {
			t := a.(*libsub.Transport)
			s.hel.RejectStatus(*t)
		}, arg)
	}
}

func (s *srv) loopTCP(ctx context.Context, tcp *net.TCPListener) error {
	for {
		con, err := tcp.Accept()

		if ctx.Err() != nil {
			if con != nil {
				_ = con.Close()
			}
			return nil
		} else if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.warning("cannot accept data connection: %v", err)
			continue
		}

		if s.met != nil {
			s.met.IncFrameTCP()
		}

		s.pol.Submit(func(a interface{}) {
			s.din.Handle(a.(net.Conn))
		}, con)
	}
}

func (s *srv) loopConsole(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan string)

	go func() {
		defer close(lines)

		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case l, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := s.console(l, out); quit {
				s.Shutdown()
				return nil
			}
		}
	}
}

func (s *srv) loopSweep(ctx context.Context) error {
	tck := time.NewTicker(s.tck)
	defer tck.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-tck.C:
			gone := s.reg.Sweep(time.Now(), s.win)

			for _, name := range gone {
				s.info("controller %s hasn't sent 3 consecutive packets, disconnecting", name)
			}

			if s.met != nil {
				s.met.IncDisconnect(len(gone))
				s.met.SetSessions(s.countLive())
			}
		}
	}
}

func (s *srv) countLive() int {
	var n int

	for _, c := range s.reg.Snapshot() {
		if c.Status == libreg.StatusSubscribed || c.Status == libreg.StatusSendHello {
			n++
		}
	}

	return n
}
