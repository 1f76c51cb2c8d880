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

package command_test

import (
	"bytes"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libcmd "github/sabouaram/ctrlhub/server/command"
	libreg "github/sabouaram/ctrlhub/registry"
)

var _ = Describe("Parse", func() {
	It("should recognize the bare commands", func() {
		cmd, err := libcmd.Parse("list")
		Expect(err).To(BeNil())
		Expect(cmd.Kind).To(Equal(libcmd.KindList))

		cmd, err = libcmd.Parse("quit")
		Expect(err).To(BeNil())
		Expect(cmd.Kind).To(Equal(libcmd.KindQuit))
	})

	It("should ignore a blank line", func() {
		cmd, err := libcmd.Parse("   \t ")
		Expect(err).To(BeNil())
		Expect(cmd.Kind).To(Equal(libcmd.KindNone))
	})

	It("should collapse whitespace on set", func() {
		cmd, err := libcmd.Parse("  set   CTRL-A01\ttemp1   21.3 ")
		Expect(err).To(BeNil())
		Expect(cmd.Kind).To(Equal(libcmd.KindSet))
		Expect(cmd.Controller).To(Equal("CTRL-A01"))
		Expect(cmd.Device).To(Equal("temp1"))
		Expect(cmd.Value).To(Equal("21.3"))
	})

	It("should parse get without a value", func() {
		cmd, err := libcmd.Parse("get CTRL-A01 temp1")
		Expect(err).To(BeNil())
		Expect(cmd.Kind).To(Equal(libcmd.KindGet))
		Expect(cmd.Value).To(BeEmpty())
	})

	It("should enforce the length limits before dispatch", func() {
		_, err := libcmd.Parse("set CTRL-A0123 temp1 21")
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(libcmd.ErrorControllerTooLong)).To(BeTrue())

		_, err = libcmd.Parse("set CTRL-A01 longdevice 21")
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(libcmd.ErrorDeviceTooLong)).To(BeTrue())

		_, err = libcmd.Parse("set CTRL-A01 temp1 1234567")
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(libcmd.ErrorValueTooLong)).To(BeTrue())
	})

	It("should accept a value of exactly six chars and refuse seven", func() {
		cmd, err := libcmd.Parse("set CTRL-A01 temp1 123456")
		Expect(err).To(BeNil())
		Expect(cmd.Value).To(Equal("123456"))

		_, err = libcmd.Parse("set CTRL-A01 temp1 1234567")
		Expect(err).ToNot(BeNil())
	})

	It("should refuse wrong arities and unknown verbs", func() {
		for _, l := range []string{"list extra", "set CTRL-A01 temp1", "get CTRL-A01", "reboot now", "quit now"} {
			_, err := libcmd.Parse(l)
			Expect(err).ToNot(BeNil())
			Expect(err.IsCode(libcmd.ErrorBadCommand)).To(BeTrue())
		}
	})
})

var _ = Describe("Print", func() {
	It("should render one row per controller and round trip every status name", func() {
		rows := []libreg.Controller{
			{Name: "CTRL-A01", Mac: "0123456789AB", Session: libreg.Session{
				Status: libreg.StatusSendHello, Situation: "123456789012", Rand: "45671234",
				Devices: []string{"light1", "temp1"}, IP: "127.0.0.1", TCPPort: 50000, LastPacket: time.Now(),
			}},
			{Name: "CTRL-B02", Mac: "BA9876543210", Session: libreg.Session{Status: libreg.StatusDisconnected}},
		}

		var buf bytes.Buffer
		libcmd.Print(&buf, rows)

		out := buf.String()
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		Expect(lines).To(HaveLen(3))

		Expect(lines[1]).To(ContainSubstring("CTRL-A01"))
		Expect(lines[1]).To(ContainSubstring("SEND_HELLO"))
		Expect(lines[1]).To(ContainSubstring("light1 temp1"))
		Expect(lines[2]).To(ContainSubstring("DISCONNECTED"))
	})

	It("should have a display name for every status value", func() {
		for _, st := range []libreg.Status{
			libreg.StatusDisconnected, libreg.StatusNotSubscribed,
			libreg.StatusWaitAckSubs, libreg.StatusWaitInfo,
			libreg.StatusWaitAckInfo, libreg.StatusSubscribed,
			libreg.StatusSendHello,
		} {
			var buf bytes.Buffer
			libcmd.Print(&buf, []libreg.Controller{{Name: "X", Session: libreg.Session{Status: st}}})
			Expect(buf.String()).To(ContainSubstring(st.String()))
			Expect(st.String()).ToNot(Equal("UNKNOWN"))
		}
	})
})
