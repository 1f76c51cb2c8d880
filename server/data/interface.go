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

// Package data carries the TCP data plane: unsolicited reports from
// controllers, operator initiated get/set petitions, and the per-controller
// data log both feed.
package data

import (
	"net"
	"time"

	liblog "github.com/nabbar/golib/logger"

	libcfg "github/sabouaram/ctrlhub/config"
	libmet "github/sabouaram/ctrlhub/metrics"
	libreg "github/sabouaram/ctrlhub/registry"
	pdutcp "github/sabouaram/ctrlhub/pdu/tcp"
)

const (
	// DefaultReadTimeout is the receive deadline on one data exchange.
	DefaultReadTimeout = 3 * time.Second

	// DefaultDialTimeout bounds an outbound connection attempt.
	DefaultDialTimeout = 3 * time.Second
)

// Store appends protocol records to the per-controller data log.
type Store interface {
	// Save appends one record to "<name>-<situation>.data". The returned
	// error message is suitable for a rejection payload.
	Save(name, situation string, typ pdutcp.Type, device, value string) error
}

// NewStore builds a store rooted at the given directory. Files are opened
// in append mode per write and created on demand.
func NewStore(dir string) Store {
	if dir == "" {
		dir = "."
	}

	return &sto{dir: dir}
}

// Inbound services one accepted data connection.
type Inbound interface {
	// Handle reads one report from the connection, validates it against
	// the registry, persists it and answers. The connection is closed on
	// every path.
	Handle(con net.Conn)

	// SetReadTimeout overrides the receive deadline.
	SetReadTimeout(d time.Duration)
}

// NewInbound builds the report handler.
func NewInbound(cfg *libcfg.Config, reg libreg.Registry, st Store, log liblog.FuncLog, met libmet.Metrics) Inbound {
	return &din{
		cfg: cfg,
		reg: reg,
		sto: st,
		log: log,
		met: met,
		tmo: DefaultReadTimeout,
	}
}

// Issuer opens outbound connections to subscribed controllers on operator
// command.
type Issuer interface {
	// Request sends one GET_DATA (empty value) or SET_DATA petition to
	// the controller at the given registry index and processes the reply.
	Request(idx int, device, value string)

	// SetTimeouts overrides the dial and receive deadlines.
	SetTimeouts(dial, read time.Duration)
}

// NewIssuer builds the petition issuer.
func NewIssuer(cfg *libcfg.Config, reg libreg.Registry, st Store, log liblog.FuncLog, met libmet.Metrics) Issuer {
	return &dou{
		cfg: cfg,
		reg: reg,
		sto: st,
		log: log,
		met: met,
		dia: DefaultDialTimeout,
		tmo: DefaultReadTimeout,
	}
}
