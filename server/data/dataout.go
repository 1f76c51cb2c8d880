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

type dou struct {
	cfg *libcfg.Config
	reg libreg.Registry
	sto Store
	log liblog.FuncLog
	met libmet.Metrics
	dia time.Duration
	tmo time.Duration
}

func (d *dou) SetTimeouts(dial, read time.Duration) {
	if dial > 0 {
		d.dia = dial
	}
	if read > 0 {
		d.tmo = read
	}
}

func (d *dou) Request(idx int, device, value string) {
	var (
		name = d.reg.Name(idx)
		mac  = d.reg.Mac(idx)
		sess = d.reg.Session(idx)
	)

	con, err := net.DialTimeout("tcp", net.JoinHostPort(sess.IP, fmt.Sprintf("%d", sess.TCPPort)), d.dia)
	if err != nil {
		d.warning("connection to controller %s failed: %v", name, err)
		d.disconnect(idx)
		return
	}

	defer func() {
		_ = con.Close()
	}()

	_ = con.SetReadDeadline(time.Now().Add(d.tmo))

	typ := pdutcp.TypeGetData
	if value != "" {
		typ = pdutcp.TypeSetData
	}

	if sErr := pdutcp.Send(con, pdutcp.New(typ, d.cfg.Mac, sess.Rand, device, value, "")); sErr != nil {
		d.warning("cannot send %s to controller %s: %v", typ.String(), name, sErr)
		d.disconnect(idx)
		return
	}

	rep, rErr := pdutcp.Recv(con)
	if rErr != nil {
		d.warning("cannot read %s answer from controller %s: %v", typ.String(), name, rErr)
		d.disconnect(idx)
		return
	} else if rep.IsTimeout() {
		d.warning("no DATA_ACK from controller %s in %v, disconnecting", name, d.tmo)
		d.disconnect(idx)
		return
	}

	if rep.Mac != mac || rep.Rnd != sess.Rand {
		d.warning("wrong DATA_ACK credentials from controller %s, disconnecting", name)
		d.disconnect(idx)
		return
	} else if rep.Device != device {
		d.warning("wrong answered device from controller %s, disconnecting", name)
		d.disconnect(idx)
		return
	} else if typ == pdutcp.TypeSetData && rep.Value != value {
		d.warning("wrong answered value for device %s from controller %s, disconnecting", device, name)
		d.disconnect(idx)
		return
	}

	switch rep.Type {
	case pdutcp.TypeDataAck:
		d.info("received confirmation for device %s, storing data", device)
		if sErr := d.sto.Save(name, sess.Situation, rep.Type, rep.Device, rep.Value); sErr != nil {
			msg := fmt.Sprintf("Couldn't store %s data %s.", rep.Device, sErr.Error())
			d.warning("cannot store %s data from controller %s: %v", rep.Device, name, sErr)
			_ = pdutcp.Send(con, pdutcp.New(pdutcp.TypeDataNack, d.cfg.Mac, sess.Rand, rep.Device, rep.Value, msg))
			d.disconnect(idx)
		} else {
			d.info("controller %s updated %s, value: %s", name, rep.Device, rep.Value)
			if d.met != nil {
				d.met.IncRecord()
			}
		}

	case pdutcp.TypeDataNack:
		d.warning("controller %s cannot serve device %s: %s", name, device, rep.Data)

	case pdutcp.TypeDataRej:
		d.warning("controller %s rejected the petition, disconnecting", name)
		d.disconnect(idx)

	default:
		d.warning("unknown %s answer from controller %s", rep.Type.String(), name)
	}
}

func (d *dou) disconnect(idx int) {
	d.reg.Disconnect(idx)

	if d.met != nil {
		d.met.IncDisconnect(1)
	}
}

func (d *dou) info(msg string, args ...interface{}) {
	if d.log != nil && d.log() != nil {
		d.log().Info(msg, nil, args...)
	}
}

func (d *dou) warning(msg string, args ...interface{}) {
	if d.log != nil && d.log() != nil {
		d.log().Warning(msg, nil, args...)
	}
}
