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

package hello_test

import (
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libhel "github/sabouaram/ctrlhub/server/hello"
	libreg "github/sabouaram/ctrlhub/registry"
	libsub "github/sabouaram/ctrlhub/server/subs"
	pduudp "github/sabouaram/ctrlhub/pdu/udp"
)

var _ = Describe("Liveness exchange", func() {
	var (
		reg  libreg.Registry
		hdl  libhel.Handler
		main *net.UDPConn
		ctl  *net.UDPConn
	)

	BeforeEach(func() {
		reg = subscribedRegistry()
		hdl = libhel.New(testConfig(), reg, nil, nil)
		main = listenLoopback()
		ctl = listenLoopback()
	})

	AfterEach(func() {
		_ = main.Close()
		_ = ctl.Close()
	})

	transport := func(frm pduudp.Frame) libsub.Transport {
		return libsub.Transport{
			Main:  main,
			Frame: frm,
			Src:   ctl.LocalAddr().(*net.UDPAddr),
			Idx:   0,
		}
	}

	It("should answer a valid HELLO and promote the session", func() {
		before := reg.Session(0).LastPacket

		hdl.Handle(transport(pduudp.New(pduudp.TypeHello, testCtrlMac, testRand, "CTRL-A01,"+testSituation)))

		rep := recvOn(ctl)
		Expect(rep.Type).To(Equal(pduudp.TypeHello))
		Expect(rep.Mac).To(Equal(testServerMac))
		Expect(rep.Rnd).To(Equal(testRand))
		Expect(rep.Data).To(Equal("CTRL-A01," + testSituation))

		s := reg.Session(0)
		Expect(s.Status).To(Equal(libreg.StatusSendHello))
		Expect(s.LastPacket.After(before) || s.LastPacket.Equal(before)).To(BeTrue())
	})

	It("should keep SEND_HELLO on later exchanges", func() {
		hdl.Handle(transport(pduudp.New(pduudp.TypeHello, testCtrlMac, testRand, "CTRL-A01,"+testSituation)))
		_ = recvOn(ctl)

		hdl.Handle(transport(pduudp.New(pduudp.TypeHello, testCtrlMac, testRand, "CTRL-A01,"+testSituation)))
		rep := recvOn(ctl)
		Expect(rep.Type).To(Equal(pduudp.TypeHello))
		Expect(reg.Status(0)).To(Equal(libreg.StatusSendHello))
	})

	It("should disconnect silently on an inbound HELLO_REJ", func() {
		hdl.Handle(transport(pduudp.New(pduudp.TypeHelloRej, testCtrlMac, testRand, "")))

		Expect(reg.Status(0)).To(Equal(libreg.StatusDisconnected))

		Expect(ctl.SetReadDeadline(time.Now().Add(100 * time.Millisecond))).ToNot(HaveOccurred())
		f, _, err := pduudp.Recv(ctl)
		Expect(err).To(BeNil())
		Expect(f.IsTimeout()).To(BeTrue())
	})

	It("should answer HELLO_REJ to an unexpected frame type without disconnecting", func() {
		hdl.Handle(transport(pduudp.New(pduudp.TypeSubsInfo, testCtrlMac, testRand, "whatever")))

		rep := recvOn(ctl)
		Expect(rep.Type).To(Equal(pduudp.TypeHelloRej))
		Expect(reg.Status(0)).To(Equal(libreg.StatusSubscribed))
	})

	It("should answer HELLO_REJ and disconnect on wrong credentials", func() {
		hdl.Handle(transport(pduudp.New(pduudp.TypeHello, testCtrlMac, "99999999", "CTRL-A01,"+testSituation)))

		rep := recvOn(ctl)
		Expect(rep.Type).To(Equal(pduudp.TypeHelloRej))
		Expect(reg.Status(0)).To(Equal(libreg.StatusDisconnected))
	})

	It("should answer HELLO_REJ and disconnect on a foreign situation", func() {
		hdl.Handle(transport(pduudp.New(pduudp.TypeHello, testCtrlMac, testRand, "CTRL-A01,999999999999")))

		rep := recvOn(ctl)
		Expect(rep.Type).To(Equal(pduudp.TypeHelloRej))
		Expect(reg.Status(0)).To(Equal(libreg.StatusDisconnected))
	})

	Describe("RejectStatus", func() {
		It("should answer SUBS_REJ and stop the liveness clock only", func() {
			reg.BeginSubscription(0)
			reg.Touch(0, time.Now())

			hdl.RejectStatus(transport(pduudp.New(pduudp.TypeHello, testCtrlMac, testRand, "CTRL-A01,"+testSituation)))

			rep := recvOn(ctl)
			Expect(rep.Type).To(Equal(pduudp.TypeSubsRej))
			Expect(rep.Data).To(Equal("Subscription Denied: Invalid Status."))

			Expect(reg.Status(0)).To(Equal(libreg.StatusWaitInfo))
			Expect(reg.Session(0).LastPacket.IsZero()).To(BeTrue())
		})
	})
})
