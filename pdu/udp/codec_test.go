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
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	pduudp "github/sabouaram/ctrlhub/pdu/udp"
)

var _ = Describe("Codec", func() {
	Describe("Encode", func() {
		It("should produce a frame of the wire size", func() {
			f := pduudp.New(pduudp.TypeSubsReq, "0123456789AB", "00000000", "CTRL-A01,123456789012")
			Expect(f.Encode()).To(HaveLen(pduudp.SizeFrame))
		})

		It("should NUL pad every string field", func() {
			f := pduudp.New(pduudp.TypeHello, "0123456789AB", "12345678", "x")
			p := f.Encode()

			Expect(p[1+len("0123456789AB")]).To(BeEquivalentTo(0))
			Expect(p[14+len("12345678")]).To(BeEquivalentTo(0))
			Expect(p[23+len("x")]).To(BeEquivalentTo(0))
		})

		It("should truncate over-long fields instead of overflowing", func() {
			f := pduudp.New(pduudp.TypeHello, "0123456789ABCDEF", "123456789999", string(bytes.Repeat([]byte{'z'}, 200)))
			Expect(f.Encode()).To(HaveLen(pduudp.SizeFrame))
			Expect(len(f.Mac)).To(BeNumerically("<=", pduudp.SizeMac-1))
			Expect(len(f.Rnd)).To(BeNumerically("<=", pduudp.SizeRnd-1))
			Expect(len(f.Data)).To(BeNumerically("<=", pduudp.SizeData-1))
		})
	})

	Describe("Decode", func() {
		It("should be the inverse of Encode on valid frames", func() {
			f := pduudp.New(pduudp.TypeSubsInfo, "0123456789AB", "45671234", "50000,light1;temp1")
			Expect(pduudp.Decode(f.Encode())).To(Equal(f))
		})

		It("should round trip every frame type", func() {
			for _, t := range []pduudp.Type{
				pduudp.TypeSubsReq, pduudp.TypeSubsAck, pduudp.TypeSubsRej,
				pduudp.TypeSubsInfo, pduudp.TypeInfoAck, pduudp.TypeSubsNack,
				pduudp.TypeHello, pduudp.TypeHelloRej,
			} {
				f := pduudp.New(t, "0123456789AB", "00000001", "payload")
				Expect(pduudp.Decode(f.Encode()).Type).To(Equal(t))
			}
		})

		It("should never fail structurally on an arbitrary full buffer", func() {
			p := bytes.Repeat([]byte{0xFF}, pduudp.SizeFrame)
			f := pduudp.Decode(p)
			Expect(f.Type).To(BeEquivalentTo(0xFF))
			Expect(f.Mac).To(HaveLen(pduudp.SizeMac))
		})

		It("should map a short buffer to the timeout sentinel", func() {
			f := pduudp.Decode(make([]byte, pduudp.SizeFrame-1))
			Expect(f.IsTimeout()).To(BeTrue())
		})
	})

	Describe("DataField", func() {
		It("should split the payload without destroying it", func() {
			f := pduudp.New(pduudp.TypeSubsReq, "0123456789AB", "00000000", "CTRL-A01,123456789012")
			Expect(f.DataField(0)).To(Equal("CTRL-A01"))
			Expect(f.DataField(1)).To(Equal("123456789012"))
			Expect(f.DataField(2)).To(Equal(""))
			Expect(f.Data).To(Equal("CTRL-A01,123456789012"))
		})
	})

	Describe("Type", func() {
		It("should name the wire types", func() {
			Expect(pduudp.TypeSubsReq.String()).To(Equal("SUBS_REQ"))
			Expect(pduudp.TypeHelloRej.String()).To(Equal("HELLO_REJ"))
			Expect(pduudp.Type(0xEE).String()).To(Equal("UNKNOWN"))
		})
	})
})
