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

// Package registry holds the allow-list of field controllers and their
// mutable session state.
//
// Identity fields (name, mac) are immutable once loaded and may be read
// without synchronization. Every mutable session field is protected by the
// registry's internal lock: all validate-then-write sequences used by the
// protocol handlers are exposed as single registry operations so the lock
// is never held across peer I/O and never leaks to callers.
package registry

import (
	"time"

	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"

	pdutcp "github/sabouaram/ctrlhub/pdu/tcp"
	pduudp "github/sabouaram/ctrlhub/pdu/udp"
)

const (
	// MaxNameLen bounds a controller name.
	MaxNameLen = 8
	// MacLen is the exact length of a controller identifier.
	MacLen = 12
	// MaxDevices bounds the device list advertised at subscription.
	MaxDevices = 10
	// MaxDeviceLen bounds one device name.
	MaxDeviceLen = 7
	// SituationLen is the exact length of a situation tag.
	SituationLen = 12
)

// Status is the lifecycle state of one controller session.
type Status uint8

const (
	StatusDisconnected  Status = 0xa0
	StatusNotSubscribed Status = 0xa1
	StatusWaitAckSubs   Status = 0xa2
	StatusWaitInfo      Status = 0xa3
	StatusWaitAckInfo   Status = 0xa4
	StatusSubscribed    Status = 0xa5
	StatusSendHello     Status = 0xa6
)

func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "DISCONNECTED"
	case StatusNotSubscribed:
		return "NOT_SUBSCRIBED"
	case StatusWaitAckSubs:
		return "WAIT_ACK_SUBS"
	case StatusWaitInfo:
		return "WAIT_INFO"
	case StatusWaitAckInfo:
		return "WAIT_ACK_INFO"
	case StatusSubscribed:
		return "SUBSCRIBED"
	case StatusSendHello:
		return "SEND_HELLO"
	}

	return "UNKNOWN"
}

// Session is the mutable per-controller state.
type Session struct {
	Status     Status
	Situation  string
	Rand       string
	Devices    []string
	TCPPort    uint16
	IP         string
	LastPacket time.Time
}

// Controller is a point-in-time copy of one registry row.
type Controller struct {
	Name string
	Mac  string
	Session
}

// ReportVerdict is the outcome of validating an inbound data report against
// the stored session, evaluated atomically under the registry lock.
type ReportVerdict uint8

const (
	ReportOK ReportVerdict = iota
	ReportWrongRand
	ReportWrongStatus
	ReportNoDevice
)

// Registry is the single owner of the session-state lock.
type Registry interface {
	// Count returns the number of allow-listed controllers.
	Count() int

	// Name returns the immutable controller name at the given index.
	Name(i int) string

	// Mac returns the immutable controller identifier at the given index.
	Mac(i int) string

	// FindByUDP matches a datagram against the allow-list: the frame mac
	// and the first comma separated token of the frame data (the claimed
	// name) must both match one row.
	FindByUDP(f pduudp.Frame) (int, bool)

	// FindByTCP matches a message against the allow-list on mac alone.
	FindByTCP(f pdutcp.Frame) (int, bool)

	// FindByName matches on the controller name, for operator commands.
	FindByName(name string) (int, bool)

	// Status returns the current session status.
	Status(i int) Status

	// Session returns a copy of the current session state.
	Session(i int) Session

	// Snapshot returns a copy of every row, for the list printout.
	Snapshot() []Controller

	// HasDevice reports whether the controller advertised the device.
	HasDevice(i int, device string) bool

	// BeginSubscription moves the controller to WAIT_INFO.
	BeginSubscription(i int)

	// CommitSubscription stores the handshake result and moves the
	// controller to SUBSCRIBED with a fresh liveness clock.
	CommitSubscription(i int, rand, situation, ip string, tcpPort uint16, devices []string, now time.Time)

	// AcceptHello validates a HELLO exchange against the stored session
	// and, on success, refreshes the liveness clock and promotes
	// SUBSCRIBED to SEND_HELLO. It returns the stored name and situation
	// for the reply payload, whether the promotion happened, and whether
	// the frame was valid.
	AcceptHello(i int, mac, rnd, situation string, now time.Time) (name string, sit string, promoted bool, ok bool)

	// AcceptReport validates an inbound SEND_DATA against the stored
	// session and returns the stored name and situation for persistence
	// when the verdict is ReportOK.
	AcceptReport(i int, rnd, device string) (name string, sit string, verdict ReportVerdict)

	// Touch refreshes the liveness clock.
	Touch(i int, now time.Time)

	// ZeroClock stops the liveness clock without resetting the session.
	ZeroClock(i int)

	// Disconnect resets the session to its zero value.
	Disconnect(i int)

	// Sweep disconnects every controller whose liveness clock is running
	// and older than the window, returning the names disconnected.
	Sweep(now time.Time, window time.Duration) []string
}

// New builds a registry from pre-validated rows. Rows are kept in the given
// order; sessions start disconnected.
func New(names, macs []string) Registry {
	r := &reg{
		row: make([]row, 0, len(names)),
	}

	for i := range names {
		r.row = append(r.row, row{
			name: names[i],
			mac:  macs[i],
			sess: Session{Status: StatusDisconnected},
		})
	}

	return r
}

// Load reads the allow-list file, one "name,mac" per line. Malformed lines
// are logged as warnings and skipped; an empty result is an error.
func Load(path string, log liblog.FuncLog) (Registry, liberr.Error) {
	return load(path, log)
}
