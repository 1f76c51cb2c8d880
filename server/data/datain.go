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

package data

import (
	"fmt"
	"net"
	"time"

	liblog "github.com/nabbar/golib/logger"

	libcfg "github/sabouaram/ctrlhub/config"
	libmet "github/sabouaram/ctrlhub/metrics"
	libreg "github/sabouaram/ctrlhub/registry"
	pdutcp "github/sabouaram/ctrlhub/pdu/tcp"
)

type din struct {
	cfg *libcfg.Config
	reg libreg.Registry
	sto Store
	log liblog.FuncLog
	met libmet.Metrics
	tmo time.Duration
}

func (d *din) SetReadTimeout(t time.Duration) {
	if t > 0 {
		d.tmo = t
	}
}

func (d *din) Handle(con net.Conn) {
	defer func() {
		_ = con.Close()
	}()

	_ = con.SetReadDeadline(time.Now().Add(d.tmo))

	frm, err := pdutcp.Recv(con)
	if err != nil {
		d.warning("cannot read data connection: %v", err)
		return
	} else if frm.IsTimeout() {
		d.warning("no data received on connection in %v, closing socket", d.tmo)
		return
	}

	if frm.Type != pdutcp.TypeSendData {
		d.warning("unexpected %s from controller %s, expected SEND_DATA", frm.Type.String(), frm.Mac)
		return
	}

	var (
		typ pdutcp.Type
		msg string
	)

	idx, ok := d.reg.FindByTCP(frm)
	if !ok {
		typ = pdutcp.TypeDataRej
		msg = "Not listed in allowed Controllers file."
		d.warning("denied data from controller %s: not listed in allowed Controllers file", frm.Mac)
	} else {
		name, sit, verdict := d.reg.AcceptReport(idx, frm.Rnd, frm.Device)

		switch verdict {
		case libreg.ReportWrongRand:
			typ = pdutcp.TypeDataRej
			msg = "Wrong Identification."
			d.warning("denied data from controller %s: wrong identification", frm.Mac)
			d.disconnect(idx)

		case libreg.ReportWrongStatus:
			typ = pdutcp.TypeDataRej
			msg = "Controller is not in SEND_HELLO status."
			d.warning("denied data from controller %s: not in SEND_HELLO status", frm.Mac)
			d.disconnect(idx)

		case libreg.ReportNoDevice:
			typ = pdutcp.TypeDataNack
			msg = fmt.Sprintf("Controller doesn't have %s device.", frm.Device)
			d.warning("denied data from controller %s: no %s device", frm.Mac, frm.Device)
			d.disconnect(idx)

		case libreg.ReportOK:
			if sErr := d.sto.Save(name, sit, frm.Type, frm.Device, frm.Value); sErr != nil {
				typ = pdutcp.TypeDataNack
				msg = fmt.Sprintf("Couldn't store %s data %s.", frm.Device, sErr.Error())
				d.warning("cannot store %s data from controller %s: %v", frm.Device, frm.Mac, sErr)
				d.disconnect(idx)
			} else {
				typ = pdutcp.TypeDataAck
				d.info("controller %s updated %s, value: %s", frm.Mac, frm.Device, frm.Value)
				if d.met != nil {
					d.met.IncRecord()
				}
			}
		}
	}

	if typ != pdutcp.TypeDataAck && d.met != nil {
		d.met.IncReject()
	}

	// The reply echoes the rnd exactly as received so the peer can
	// correlate even a rejected exchange.
	rep := pdutcp.New(typ, d.cfg.Mac, frm.Rnd, frm.Device, frm.Value, msg)
	if sErr := pdutcp.Send(con, rep); sErr != nil {
		d.warning("cannot answer data connection: %v", sErr)
	}
}

func (d *din) disconnect(idx int) {
	d.reg.Disconnect(idx)

	if d.met != nil {
		d.met.IncDisconnect(1)
	}
}

func (d *din) info(msg string, args ...interface{}) {
	if d.log != nil && d.log() != nil {
		d.log().Info(msg, nil, args...)
	}
}

func (d *din) warning(msg string, args ...interface{}) {
	if d.log != nil && d.log() != nil {
		d.log().Warning(msg, nil, args...)
	}
}
