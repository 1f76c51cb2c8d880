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

package udp_test

import (
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	pduudp "github/sabouaram/ctrlhub/pdu/udp"
)

func listenLoopback() *net.UDPConn {
	c, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	Expect(err).ToNot(HaveOccurred())
	return c
}

var _ = Describe("Socket helpers", func() {
	var (
		a *net.UDPConn
		b *net.UDPConn
	)

	BeforeEach(func() {
		a = listenLoopback()
		b = listenLoopback()
	})

	AfterEach(func() {
		_ = a.Close()
		_ = b.Close()
	})

	It("should carry one frame between two sockets", func() {
		f := pduudp.New(pduudp.TypeHello, "0123456789AB", "12345678", "CTRL-A01,123456789012")

		Expect(pduudp.Send(a, f, b.LocalAddr().(*net.UDPAddr))).To(BeNil())

		Expect(b.SetReadDeadline(time.Now().Add(time.Second))).ToNot(HaveOccurred())

		got, src, err := pduudp.Recv(b)
		Expect(err).To(BeNil())
		Expect(got).To(Equal(f))
		Expect(src.Port).To(Equal(a.LocalAddr().(*net.UDPAddr).Port))
	})

	It("should surface a deadline expiry as the timeout sentinel", func() {
		Expect(b.SetReadDeadline(time.Now().Add(50 * time.Millisecond))).ToNot(HaveOccurred())

		got, _, err := pduudp.Recv(b)
		Expect(err).To(BeNil())
		Expect(got.IsTimeout()).To(BeTrue())
	})

	It("should surface a closed socket as the timeout sentinel", func() {
		_ = b.Close()

		got, _, err := pduudp.Recv(b)
		Expect(err).To(BeNil())
		Expect(got.IsTimeout()).To(BeTrue())
	})

	It("should refuse nil parameters", func() {
		Expect(pduudp.Send(nil, pduudp.Frame{}, nil)).ToNot(BeNil())

		_, _, err := pduudp.Recv(nil)
		Expect(err).ToNot(BeNil())
	})
})
