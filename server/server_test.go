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

package server_test

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libreg "github/sabouaram/ctrlhub/registry"
	libsrv "github/sabouaram/ctrlhub/server"
	pdutcp "github/sabouaram/ctrlhub/pdu/tcp"
	pduudp "github/sabouaram/ctrlhub/pdu/udp"
)

var _ = Describe("Supervisor", func() {
	var (
		dir string
		reg libreg.Registry
		srv libsrv.Server
		ctl *net.UDPConn
		cnl context.CancelFunc
		out *syncBuf
		pw  *io.PipeWriter
		end chan struct{}
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		reg = libreg.New([]string{"CTRL-A01"}, []string{testCtrlMac})
		srv = libsrv.New(testConfig(dir), reg, nil)

		var pr *io.PipeReader
		pr, pw = io.Pipe()
		out = &syncBuf{}
		srv.SetConsole(pr, out)

		var ctx context.Context
		ctx, cnl = context.WithCancel(context.Background())

		end = make(chan struct{})
		go func() {
			defer GinkgoRecover()
			defer close(end)
			Expect(srv.Listen(ctx)).To(BeNil())
		}()

		Eventually(srv.LocalUDP, 2*time.Second).ShouldNot(BeNil())
		Eventually(srv.LocalTCP, 2*time.Second).ShouldNot(BeNil())

		ctl = listenLoopback()
	})

	AfterEach(func() {
		cnl()
		_ = pw.Close()
		_ = ctl.Close()
		Eventually(end, 5*time.Second).Should(BeClosed())
	})

	serverUDP := func() *net.UDPAddr {
		return &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: srv.LocalUDP().(*net.UDPAddr).Port}
	}

	serverTCP := func() string {
		return net.JoinHostPort("127.0.0.1", strconv.Itoa(srv.LocalTCP().(*net.TCPAddr).Port))
	}

	// subscribe drives the full handshake and returns the session token.
	subscribe := func() string {
		req := pduudp.New(pduudp.TypeSubsReq, testCtrlMac, "00000000", "CTRL-A01,"+testSituation)
		Expect(pduudp.Send(ctl, req, serverUDP())).To(BeNil())

		ack := recvOn(ctl)
		Expect(ack.Type).To(Equal(pduudp.TypeSubsAck))

		port, err := strconv.Atoi(ack.Data)
		Expect(err).ToNot(HaveOccurred())

		eph := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port}
		Expect(pduudp.Send(ctl, pduudp.New(pduudp.TypeSubsInfo, testCtrlMac, ack.Rnd, "50000,light1;temp1"), eph)).To(BeNil())

		fin := recvOn(ctl)
		Expect(fin.Type).To(Equal(pduudp.TypeInfoAck))

		Eventually(func() libreg.Status { return reg.Status(0) }, 2*time.Second).Should(Equal(libreg.StatusSubscribed))

		return ack.Rnd
	}

	hello := func(rnd string) {
		Expect(pduudp.Send(ctl, pduudp.New(pduudp.TypeHello, testCtrlMac, rnd, "CTRL-A01,"+testSituation), serverUDP())).To(BeNil())

		rep := recvOn(ctl)
		Expect(rep.Type).To(Equal(pduudp.TypeHello))
		Expect(rep.Data).To(Equal("CTRL-A01," + testSituation))
	}

	It("should take a controller from SUBS_REQ to a persisted report", func() {
		rnd := subscribe()

		hello(rnd)
		Eventually(func() libreg.Status { return reg.Status(0) }, 2*time.Second).Should(Equal(libreg.StatusSendHello))

		con, err := net.DialTimeout("tcp", serverTCP(), 2*time.Second)
		Expect(err).ToNot(HaveOccurred())

		defer func() {
			_ = con.Close()
		}()

		Expect(pdutcp.Send(con, pdutcp.New(pdutcp.TypeSendData, testCtrlMac, rnd, "temp1", "21.3", ""))).To(BeNil())

		Expect(con.SetReadDeadline(time.Now().Add(2 * time.Second))).ToNot(HaveOccurred())
		rep, rErr := pdutcp.Recv(con)
		Expect(rErr).To(BeNil())
		Expect(rep.Type).To(Equal(pdutcp.TypeDataAck))
		Expect(rep.Mac).To(Equal(testServerMac))
		Expect(rep.Rnd).To(Equal(rnd))
		Expect(rep.Device).To(Equal("temp1"))
		Expect(rep.Value).To(Equal("21.3"))

		raw, fErr := os.ReadFile(filepath.Join(dir, "CTRL-A01-123456789012.data"))
		Expect(fErr).ToNot(HaveOccurred())
		Expect(string(raw)).To(ContainSubstring("SEND_DATA,temp1,21.3"))
	})

	It("should reject an unlisted sender on the main socket", func() {
		req := pduudp.New(pduudp.TypeSubsReq, "FFFFFFFFFFFF", "00000000", "CTRL-X99,"+testSituation)
		Expect(pduudp.Send(ctl, req, serverUDP())).To(BeNil())

		rej := recvOn(ctl)
		Expect(rej.Type).To(Equal(pduudp.TypeSubsRej))
		Expect(rej.Data).To(ContainSubstring("not listed in allowed Controllers file"))

		Expect(reg.Status(0)).To(Equal(libreg.StatusDisconnected))
	})

	It("should render the list printout on the console", func() {
		rnd := subscribe()
		hello(rnd)

		_, err := pw.Write([]byte("list\n"))
		Expect(err).ToNot(HaveOccurred())

		Eventually(out.String, 2*time.Second).Should(ContainSubstring("CTRL-A01"))
		Eventually(out.String, 2*time.Second).Should(ContainSubstring("SEND_HELLO"))
		Eventually(out.String, 2*time.Second).Should(ContainSubstring("light1 temp1"))
	})

	It("should print the usage line on unknown input", func() {
		_, err := pw.Write([]byte("reboot now\n"))
		Expect(err).ToNot(HaveOccurred())

		Eventually(out.String, 2*time.Second).Should(ContainSubstring("Usage: list | set"))
	})

	It("should shut down on quit", func() {
		_, err := pw.Write([]byte("quit\n"))
		Expect(err).ToNot(HaveOccurred())

		Eventually(end, 5*time.Second).Should(BeClosed())
		Expect(srv.IsRunning()).To(BeFalse())
	})

	It("should refuse a second Listen while running", func() {
		err := srv.Listen(context.Background())
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(libsrv.ErrorAlreadyRunning)).To(BeTrue())
	})
})

var _ = Describe("Liveness sweeper", func() {
	It("should disconnect a silent controller after the window", func() {
		dir := GinkgoT().TempDir()
		reg := libreg.New([]string{"CTRL-A01"}, []string{testCtrlMac})

		srv := libsrv.New(testConfig(dir), reg, nil)
		srv.SetConsole(nopReader{}, &syncBuf{})
		srv.SetSweep(300*time.Millisecond, 20*time.Millisecond)

		ctx, cnl := context.WithCancel(context.Background())
		defer cnl()

		end := make(chan struct{})
		go func() {
			defer GinkgoRecover()
			defer close(end)
			Expect(srv.Listen(ctx)).To(BeNil())
		}()

		Eventually(srv.LocalUDP, 2*time.Second).ShouldNot(BeNil())

		reg.CommitSubscription(0, "45671234", testSituation, "127.0.0.1", 50000, []string{"temp1"}, time.Now())

		Eventually(func() libreg.Status { return reg.Status(0) }, 2*time.Second).Should(Equal(libreg.StatusDisconnected))
		Expect(reg.Session(0).LastPacket.IsZero()).To(BeTrue())

		cnl()
		Eventually(end, 5*time.Second).Should(BeClosed())
	})
})

// nopReader blocks console input forever without data.
type nopReader struct{}

func (nopReader) Read(p []byte) (int, error) {
	time.Sleep(10 * time.Millisecond)
	return 0, nil
}
