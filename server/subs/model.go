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

package subs

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net"
	"strconv"
	"strings"
	"time"

	liblog "github.com/nabbar/golib/logger"

	libcfg "github/sabouaram/ctrlhub/config"
	libmet "github/sabouaram/ctrlhub/metrics"
	libreg "github/sabouaram/ctrlhub/registry"
	pduudp "github/sabouaram/ctrlhub/pdu/udp"
)

type sub struct {
	cfg *libcfg.Config
	reg libreg.Registry
	log liblog.FuncLog
	met libmet.Metrics
	tmo time.Duration
}

func (s *sub) SetInfoTimeout(d time.Duration) {
	if d > 0 {
		s.tmo = d
	}
}

func (s *sub) Reject(t Transport, reason string) {
	if s.met != nil {
		s.met.IncReject()
	}

	rej := pduudp.New(pduudp.TypeSubsRej, s.cfg.Mac, ZeroToken, "Subscription Denied: "+reason)
	if err := pduudp.Send(t.Main, rej, t.Src); err != nil {
		s.warning("cannot send SUBS_REJ to %s: %v", t.Src.String(), err)
	}
}

func (s *sub) Handle(t Transport) {
	var name = s.reg.Name(t.Idx)

	situation := t.Frame.DataField(1)
	if t.Frame.Rnd != ZeroToken || len(situation) != libreg.SituationLen || situation == ZeroSituation {
		s.info("denied connection to %s: wrong situation or code format", t.Frame.Mac)
		s.Reject(t, "Wrong Situation or Code format.")
		return
	}

	s.info("starting new subscription process for %s", name)

	rnd, err := token()
	if err != nil {
		s.warning("cannot generate session token for %s: %v", name, err)
		return
	}

	eph, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		s.warning("cannot open ephemeral socket for %s: %v", name, err)
		return
	}

	defer func() {
		_ = eph.Close()
	}()

	port := eph.LocalAddr().(*net.UDPAddr).Port

	ack := pduudp.New(pduudp.TypeSubsAck, s.cfg.Mac, rnd, strconv.Itoa(port))
	if sErr := pduudp.Send(t.Main, ack, t.Src); sErr != nil {
		s.warning("cannot send SUBS_ACK to %s: %v", name, sErr)
		return
	}

	s.reg.BeginSubscription(t.Idx)
	s.info("controller %s [WAIT_INFO], sent SUBS_ACK", name)

	_ = eph.SetReadDeadline(time.Now().Add(s.tmo))

	inf, src, rErr := pduudp.Recv(eph)
	if rErr != nil {
		s.warning("cannot read SUBS_INFO for %s: %v", name, rErr)
		s.disconnect(t.Idx)
		return
	} else if inf.IsTimeout() {
		s.info("controller %s hasn't sent SUBS_INFO in the last %v, disconnecting", name, s.tmo)
		s.disconnect(t.Idx)
		return
	}

	tcpPort, devices, ok := s.checkInfo(inf, t.Idx, rnd)
	if !ok {
		s.info("controller %s [DISCONNECTED]: wrong info in SUBS_INFO packet", name)
		if s.met != nil {
			s.met.IncReject()
		}

		rej := pduudp.New(pduudp.TypeSubsRej, s.cfg.Mac, ZeroToken, "Subscription Denied: Wrong Info in SUBS_INFO packet.")
		if sErr := pduudp.Send(eph, rej, src); sErr != nil {
			s.warning("cannot send SUBS_REJ to %s: %v", name, sErr)
		}

		s.disconnect(t.Idx)
		return
	}

	s.reg.CommitSubscription(t.Idx, rnd, situation, src.IP.String(), tcpPort, devices, time.Now())
	s.info("controller %s [SUBSCRIBED]", name)

	fin := pduudp.New(pduudp.TypeInfoAck, s.cfg.Mac, rnd, strconv.Itoa(int(s.cfg.PortTCP)))
	if sErr := pduudp.Send(eph, fin, src); sErr != nil {
		s.warning("cannot send INFO_ACK to %s: %v", name, sErr)
		s.disconnect(t.Idx)
	}
}

// checkInfo validates the SUBS_INFO frame received on the ephemeral socket:
// the mac and token must match, the payload must carry a usable TCP port
// and a device list.
func (s *sub) checkInfo(inf pduudp.Frame, idx int, rnd string) (uint16, []string, bool) {
	if inf.Mac != s.reg.Mac(idx) || inf.Rnd != rnd {
		return 0, nil, false
	}

	tcp := inf.DataField(0)
	lst := inf.DataField(1)
	if tcp == "" || lst == "" {
		return 0, nil, false
	}

	prt, err := strconv.ParseUint(tcp, 10, 16)
	if err != nil || prt == 0 {
		return 0, nil, false
	}

	devices := strings.Split(lst, ";")
	if len(devices) > libreg.MaxDevices {
		return 0, nil, false
	}

	for _, d := range devices {
		if d == "" || len(d) > libreg.MaxDeviceLen {
			return 0, nil, false
		}
	}

	return uint16(prt), devices, true
}

func (s *sub) disconnect(idx int) {
	s.reg.Disconnect(idx)

	if s.met != nil {
		s.met.IncDisconnect(1)
	}
}

// token draws a uniform 8 digit decimal session identifier.
func token() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%08d", n.Int64()), nil
}

func (s *sub) info(msg string, args ...interface{}) {
	if s.log != nil && s.log() != nil {
		s.log().Info(msg, nil, args...)
	}
}

func (s *sub) warning(msg string, args ...interface{}) {
	if s.log != nil && s.log() != nil {
		s.log().Warning(msg, nil, args...)
	}
}
