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

package hello

import (
	"time"

	liblog "github.com/nabbar/golib/logger"

	libcfg "github/sabouaram/ctrlhub/config"
	libmet "github/sabouaram/ctrlhub/metrics"
	libreg "github/sabouaram/ctrlhub/registry"
	libsub "github/sabouaram/ctrlhub/server/subs"
	pduudp "github/sabouaram/ctrlhub/pdu/udp"
)

type hdl struct {
	cfg *libcfg.Config
	reg libreg.Registry
	log liblog.FuncLog
	met libmet.Metrics
}

func (h *hdl) Handle(t libsub.Transport) {
	var name = h.reg.Name(t.Idx)

	if t.Frame.Type == pduudp.TypeHelloRej {
		h.info("received HELLO_REJ from %s, disconnecting", name)
		h.disconnect(t.Idx)
		return
	} else if t.Frame.Type != pduudp.TypeHello {
		h.reject(t)
		return
	}

	_, sit, promoted, ok := h.reg.AcceptHello(t.Idx, t.Frame.Mac, t.Frame.Rnd, t.Frame.DataField(1), time.Now())
	if !ok {
		h.reject(t)
		h.info("controller %s has sent incorrect HELLO packets, disconnecting", name)
		h.disconnect(t.Idx)
		return
	}

	rep := pduudp.New(pduudp.TypeHello, h.cfg.Mac, h.reg.Session(t.Idx).Rand, name+","+sit)
	if err := pduudp.Send(t.Main, rep, t.Src); err != nil {
		h.warning("cannot answer HELLO to %s: %v", name, err)
	}

	if promoted {
		h.info("controller %s set to [SEND_HELLO] status", name)
	}
}

func (h *hdl) RejectStatus(t libsub.Transport) {
	if h.met != nil {
		h.met.IncReject()
	}

	rej := pduudp.New(pduudp.TypeSubsRej, h.cfg.Mac, libsub.ZeroToken, "Subscription Denied: Invalid Status.")
	if err := pduudp.Send(t.Main, rej, t.Src); err != nil {
		h.warning("cannot send SUBS_REJ to %s: %v", t.Src.String(), err)
	}

	h.reg.ZeroClock(t.Idx)
}

// reject answers HELLO_REJ with the stored session token, without tearing
// the session down; callers decide on the disconnect.
func (h *hdl) reject(t libsub.Transport) {
	if h.met != nil {
		h.met.IncReject()
	}

	rej := pduudp.New(pduudp.TypeHelloRej, h.cfg.Mac, h.reg.Session(t.Idx).Rand, "")
	if err := pduudp.Send(t.Main, rej, t.Src); err != nil {
		h.warning("cannot send HELLO_REJ to %s: %v", t.Src.String(), err)
	}
}

func (h *hdl) disconnect(idx int) {
	h.reg.Disconnect(idx)

	if h.met != nil {
		h.met.IncDisconnect(1)
	}
}

func (h *hdl) info(msg string, args ...interface{}) {
	if h.log != nil && h.log() != nil {
		h.log().Info(msg, nil, args...)
	}
}

func (h *hdl) warning(msg string, args ...interface{}) {
	if h.log != nil && h.log() != nil {
		h.log().Warning(msg, nil, args...)
	}
}
