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

// Package subs drives the four message subscription handshake that promotes
// a disconnected controller to a live session:
//
//	SUBS_REQ -> SUBS_ACK -> SUBS_INFO -> INFO_ACK
//
// The SUBS_ACK answer advertises a fresh ephemeral UDP port; the rest of
// the handshake happens on that socket, which the handler owns for the span
// of one call and closes on every path.
package subs

import (
	"net"
	"time"

	liblog "github.com/nabbar/golib/logger"

	libcfg "github/sabouaram/ctrlhub/config"
	libmet "github/sabouaram/ctrlhub/metrics"
	libreg "github/sabouaram/ctrlhub/registry"
	pduudp "github/sabouaram/ctrlhub/pdu/udp"
)

// Transport is the task argument handed to the handler for one datagram.
// It is allocated per submission and owned by the task.
type Transport struct {
	// Main is the server's bound UDP socket.
	Main *net.UDPConn

	// Frame is the decoded inbound datagram.
	Frame pduudp.Frame

	// Src is the datagram source address.
	Src *net.UDPAddr

	// Idx is the registry index of the matched controller, or -1 when
	// the sender is not allow-listed.
	Idx int
}

const (
	// DefaultInfoTimeout is how long the handler waits for SUBS_INFO on
	// the ephemeral socket.
	DefaultInfoTimeout = 2 * time.Second

	// ZeroToken is the rnd value a controller must present before the
	// server has issued a session token.
	ZeroToken = "00000000"

	// ZeroSituation is the all-zeros situation tag, refused at
	// subscription.
	ZeroSituation = "000000000000"
)

// Handler services SUBS_REQ datagrams from disconnected controllers.
type Handler interface {
	// Handle runs one complete handshake for the controller at the given
	// registry index. The frame source address is where SUBS_ACK is
	// sent, through the main socket.
	Handle(t Transport)

	// Reject answers a malformed or unauthorized subscription attempt on
	// the main socket without touching any session state.
	Reject(t Transport, reason string)

	// SetInfoTimeout overrides the SUBS_INFO wait deadline.
	SetInfoTimeout(d time.Duration)
}

// New builds the handshake handler.
func New(cfg *libcfg.Config, reg libreg.Registry, log liblog.FuncLog, met libmet.Metrics) Handler {
	return &sub{
		cfg: cfg,
		reg: reg,
		log: log,
		met: met,
		tmo: DefaultInfoTimeout,
	}
}
