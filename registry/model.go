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
	"slices"
	"sync"
	"time"

	pdutcp "github/sabouaram/ctrlhub/pdu/tcp"
	pduudp "github/sabouaram/ctrlhub/pdu/udp"
)

type row struct {
	name string
	mac  string
	sess Session
}

type reg struct {
	m   sync.RWMutex
	row []row
}

func (r *reg) Count() int {
	return len(r.row)
}

func (r *reg) Name(i int) string {
	if i < 0 || i >= len(r.row) {
		return ""
	}
	return r.row[i].name
}

func (r *reg) Mac(i int) string {
	if i < 0 || i >= len(r.row) {
		return ""
	}
	return r.row[i].mac
}

// Identity matching only reads immutable fields, no lock needed.
func (r *reg) FindByUDP(f pduudp.Frame) (int, bool) {
	name := f.DataField(0)

	for i := range r.row {
		if r.row[i].mac == f.Mac && r.row[i].name == name {
			return i, true
		}
	}

	return -1, false
}

func (r *reg) FindByTCP(f pdutcp.Frame) (int, bool) {
	for i := range r.row {
		if r.row[i].mac == f.Mac {
			return i, true
		}
	}

	return -1, false
}

func (r *reg) FindByName(name string) (int, bool) {
	for i := range r.row {
		if r.row[i].name == name {
			return i, true
		}
	}

	return -1, false
}

func (r *reg) Status(i int) Status {
	if i < 0 || i >= len(r.row) {
		return StatusDisconnected
	}

	r.m.RLock()
	defer r.m.RUnlock()

	return r.row[i].sess.Status
}

func (r *reg) Session(i int) Session {
	if i < 0 || i >= len(r.row) {
		return Session{Status: StatusDisconnected}
	}

	r.m.RLock()
	defer r.m.RUnlock()

	return r.row[i].sess.clone()
}

func (r *reg) Snapshot() []Controller {
	r.m.RLock()
	defer r.m.RUnlock()

	res := make([]Controller, 0, len(r.row))
	for i := range r.row {
		res = append(res, Controller{
			Name:    r.row[i].name,
			Mac:     r.row[i].mac,
			Session: r.row[i].sess.clone(),
		})
	}

	return res
}

func (r *reg) HasDevice(i int, device string) bool {
	if i < 0 || i >= len(r.row) {
		return false
	}

	r.m.RLock()
	defer r.m.RUnlock()

	return slices.Contains(r.row[i].sess.Devices, device)
}

func (r *reg) BeginSubscription(i int) {
	if i < 0 || i >= len(r.row) {
		return
	}

	r.m.Lock()
	defer r.m.Unlock()

	r.row[i].sess.Status = StatusWaitInfo
}

func (r *reg) CommitSubscription(i int, rand, situation, ip string, tcpPort uint16, devices []string, now time.Time) {
	if i < 0 || i >= len(r.row) {
		return
	}

	r.m.Lock()
	defer r.m.Unlock()

	r.row[i].sess = Session{
		Status:     StatusSubscribed,
		Situation:  situation,
		Rand:       rand,
		Devices:    slices.Clone(devices),
		TCPPort:    tcpPort,
		IP:         ip,
		LastPacket: now,
	}
}

func (r *reg) AcceptHello(i int, mac, rnd, situation string, now time.Time) (string, string, bool, bool) {
	if i < 0 || i >= len(r.row) {
		return "", "", false, false
	}

	r.m.Lock()
	defer r.m.Unlock()

	s := &r.row[i].sess

	if mac != r.row[i].mac || rnd != s.Rand || situation != s.Situation {
		return r.row[i].name, s.Situation, false, false
	}

	s.LastPacket = now

	promoted := false
	if s.Status == StatusSubscribed {
		s.Status = StatusSendHello
		promoted = true
	}

	return r.row[i].name, s.Situation, promoted, true
}

func (r *reg) AcceptReport(i int, rnd, device string) (string, string, ReportVerdict) {
	if i < 0 || i >= len(r.row) {
		return "", "", ReportWrongRand
	}

	r.m.Lock()
	defer r.m.Unlock()

	s := &r.row[i].sess

	if rnd != s.Rand {
		return r.row[i].name, s.Situation, ReportWrongRand
	} else if s.Status != StatusSendHello {
		return r.row[i].name, s.Situation, ReportWrongStatus
	} else if !slices.Contains(s.Devices, device) {
		return r.row[i].name, s.Situation, ReportNoDevice
	}

	return r.row[i].name, s.Situation, ReportOK
}

func (r *reg) Touch(i int, now time.Time) {
	if i < 0 || i >= len(r.row) {
		return
	}

	r.m.Lock()
	defer r.m.Unlock()

	r.row[i].sess.LastPacket = now
}

func (r *reg) ZeroClock(i int) {
	if i < 0 || i >= len(r.row) {
		return
	}

	r.m.Lock()
	defer r.m.Unlock()

	r.row[i].sess.LastPacket = time.Time{}
}

func (r *reg) Disconnect(i int) {
	if i < 0 || i >= len(r.row) {
		return
	}

	r.m.Lock()
	defer r.m.Unlock()

	r.row[i].sess = Session{Status: StatusDisconnected}
}

func (r *reg) Sweep(now time.Time, window time.Duration) []string {
	r.m.Lock()
	defer r.m.Unlock()

	var out []string

	for i := range r.row {
		s := &r.row[i].sess
		if s.LastPacket.IsZero() {
			continue
		}
		if now.Sub(s.LastPacket) > window {
			*s = Session{Status: StatusDisconnected}
			out = append(out, r.row[i].name)
		}
	}

	return out
}

func (s Session) clone() Session {
	c := s
	c.Devices = slices.Clone(s.Devices)
	return c
}
