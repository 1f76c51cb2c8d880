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

// Package hello answers the periodic liveness exchange of subscribed
// controllers and refreshes their liveness clock.
package hello

import (
	liblog "github.com/nabbar/golib/logger"

	libcfg "github/sabouaram/ctrlhub/config"
	libmet "github/sabouaram/ctrlhub/metrics"
	libreg "github/sabouaram/ctrlhub/registry"
	libsub "github/sabouaram/ctrlhub/server/subs"
)

// Handler services datagrams from controllers holding a live session, plus
// the rejection paths shared with the dispatcher.
type Handler interface {
	// Handle answers one datagram from a SUBSCRIBED or SEND_HELLO
	// controller.
	Handle(t libsub.Transport)

	// RejectStatus answers a datagram racing a half-done handshake
	// (controller in a transient WAIT state): SUBS_REJ plus a stopped
	// liveness clock.
	RejectStatus(t libsub.Transport)
}

// New builds the liveness handler.
func New(cfg *libcfg.Config, reg libreg.Registry, log liblog.FuncLog, met libmet.Metrics) Handler {
	return &hdl{
		cfg: cfg,
		reg: reg,
		log: log,
		met: met,
	}
}
