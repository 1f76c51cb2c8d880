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

// Package server is the session supervisor: it owns the bound UDP and TCP
// sockets plus the operator console, and multiplexes all three onto a
// bounded worker pool. Between multiplex iterations a sweeper disconnects
// controllers whose liveness clock has aged out.
//
// Apart from the sweeper's disconnections, the supervisor never mutates
// session state itself; every other state change goes through a handler
// task holding the registry.
package server

import (
	"context"
	"io"
	"net"
	"time"

	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"

	libcfg "github/sabouaram/ctrlhub/config"
	libmet "github/sabouaram/ctrlhub/metrics"
	libpol "github/sabouaram/ctrlhub/pool"
	libreg "github/sabouaram/ctrlhub/registry"
	libdat "github/sabouaram/ctrlhub/server/data"
	libhel "github/sabouaram/ctrlhub/server/hello"
	libsub "github/sabouaram/ctrlhub/server/subs"
)

const (
	// DefaultSweepWindow is the liveness deadline: three missed HELLO
	// intervals on the controller side.
	DefaultSweepWindow = 6 * time.Second

	// DefaultSweepTick is the pause between multiplex iterations of the
	// sweeper. Short enough not to distort the HELLO timers, long enough
	// to keep the idle CPU usage negligible.
	DefaultSweepTick = 50 * time.Millisecond
)

// Server is the top-level supervisor.
type Server interface {
	// Listen binds the sockets and blocks servicing the fleet until the
	// context is done or Shutdown is called.
	Listen(ctx context.Context) liberr.Error

	// Shutdown asks Listen to unwind: listeners close, the pool drains
	// and Listen returns.
	Shutdown()

	// IsRunning reports whether Listen is active.
	IsRunning() bool

	// LocalUDP returns the bound UDP address once Listen has started,
	// else nil.
	LocalUDP() net.Addr

	// LocalTCP returns the bound TCP address once Listen has started,
	// else nil.
	LocalTCP() net.Addr

	// SetConsole overrides the operator console input and output,
	// defaulting to stdin / stdout.
	SetConsole(in io.Reader, out io.Writer)

	// SetSweep overrides the liveness window and the sweeper cadence.
	SetSweep(window, tick time.Duration)

	// Subs exposes the subscription handler, for timeout tuning.
	Subs() libsub.Handler

	// Inbound exposes the report handler, for timeout tuning.
	Inbound() libdat.Inbound

	// Issuer exposes the petition issuer, for timeout tuning.
	Issuer() libdat.Issuer
}

// New wires the supervisor with its handlers, pool and instrumentation.
func New(cfg *libcfg.Config, reg libreg.Registry, log liblog.FuncLog) Server {
	met := libmet.New()
	sto := libdat.NewStore(cfg.DataDir)

	s := &srv{
		cfg: cfg,
		reg: reg,
		log: log,
		met: met,
		pol: libpol.New(libpol.DefaultWorkers, libpol.DefaultQueueSize, log),
		sub: libsub.New(cfg, reg, log, met),
		hel: libhel.New(cfg, reg, log, met),
		din: libdat.NewInbound(cfg, reg, sto, log, met),
		dou: libdat.NewIssuer(cfg, reg, sto, log, met),
		win: DefaultSweepWindow,
		tck: DefaultSweepTick,
	}

	return s
}
