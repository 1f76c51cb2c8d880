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

package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type mtr struct {
	m   sync.Mutex
	reg *prometheus.Registry
	srv *http.Server

	framesUDP   prometheus.Counter
	framesTCP   prometheus.Counter
	rejects     prometheus.Counter
	disconnects prometheus.Counter
	sessions    prometheus.Gauge
	records     prometheus.Counter
}

func (m *mtr) IncFrameUDP() {
	m.framesUDP.Inc()
}

func (m *mtr) IncFrameTCP() {
	m.framesTCP.Inc()
}

func (m *mtr) IncReject() {
	m.rejects.Inc()
}

func (m *mtr) IncDisconnect(n int) {
	if n > 0 {
		m.disconnects.Add(float64(n))
	}
}

func (m *mtr) SetSessions(n int) {
	m.sessions.Set(float64(n))
}

func (m *mtr) IncRecord() {
	m.records.Inc()
}

func (m *mtr) Serve(port uint16) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	m.m.Lock()
	m.srv = srv
	m.m.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (m *mtr) Close() {
	m.m.Lock()
	defer m.m.Unlock()

	if m.srv != nil {
		_ = m.srv.Close()
		m.srv = nil
	}
}
