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

// Package metrics exposes prometheus counters for the supervisory server.
// Instrumentation is always collected; the HTTP endpoint only runs when a
// metrics port is configured.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the instrumentation handle shared by the protocol handlers.
type Metrics interface {
	// IncFrameUDP counts one inbound datagram.
	IncFrameUDP()

	// IncFrameTCP counts one inbound data connection.
	IncFrameTCP()

	// IncReject counts one rejection reply, any transport.
	IncReject()

	// IncDisconnect counts controller disconnections.
	IncDisconnect(n int)

	// SetSessions tracks the number of live sessions.
	SetSessions(n int)

	// IncRecord counts one persisted data-log record.
	IncRecord()

	// Serve blocks exposing /metrics on the given port until Close.
	Serve(port uint16) error

	// Close stops the HTTP endpoint if one is running.
	Close()
}

// New builds a metrics handle backed by its own prometheus registry.
func New() Metrics {
	m := &mtr{
		reg: prometheus.NewRegistry(),
		framesUDP: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctrlhub_udp_frames_total",
			Help: "Datagrams received on the main UDP socket.",
		}),
		framesTCP: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctrlhub_tcp_connections_total",
			Help: "Inbound data connections accepted.",
		}),
		rejects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctrlhub_rejects_total",
			Help: "Rejection replies sent, all transports.",
		}),
		disconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctrlhub_disconnects_total",
			Help: "Controller sessions torn down.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ctrlhub_sessions",
			Help: "Controllers currently subscribed or heart-beating.",
		}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctrlhub_data_records_total",
			Help: "Records appended to the data logs.",
		}),
	}

	m.reg.MustRegister(m.framesUDP, m.framesTCP, m.rejects, m.disconnects, m.sessions, m.records)

	return m
}
