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

// Package pool provides a bounded task queue drained by a fixed set of
// workers. Submit blocks the caller while the queue is full, which is the
// back-pressure contract the session supervisor relies on. A task owns its
// argument; nothing is shared with the submitter once handed off.
package pool

import (
	libatm "github.com/nabbar/golib/atomic"
	liblog "github.com/nabbar/golib/logger"
)

const (
	// DefaultWorkers is the worker count used when New receives zero.
	DefaultWorkers = 5

	// DefaultQueueSize is the queue capacity used when New receives zero.
	DefaultQueueSize = 20
)

// TaskFunc is one unit of work. The argument is owned by the task.
type TaskFunc func(arg interface{})

// Pool is a bounded worker pool.
type Pool interface {
	// Submit enqueues a task, blocking while the queue is full. Tasks
	// submitted after Shutdown are dropped.
	Submit(fn TaskFunc, arg interface{})

	// Shutdown stops accepting tasks, hands one poison task to each
	// worker and waits for all workers to exit. Queued tasks submitted
	// before Shutdown are still drained.
	Shutdown()

	// IsShutdown reports whether Shutdown has been called.
	IsShutdown() bool
}

// New builds a pool with the given worker count and queue capacity and
// starts the workers.
func New(workers, queue int, log liblog.FuncLog) Pool {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if queue < 1 {
		queue = DefaultQueueSize
	}

	p := &pol{
		q:    make(chan task, queue),
		nbr:  workers,
		log:  log,
		down: libatm.NewValue[bool](),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}
