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

package pool

import (
	"fmt"
	"sync"

	libatm "github.com/nabbar/golib/atomic"
	liblog "github.com/nabbar/golib/logger"
)

// a nil fn is the poison task telling one worker to exit.
type task struct {
	fn  TaskFunc
	arg interface{}
}

type pol struct {
	q    chan task
	nbr  int
	wg   sync.WaitGroup
	log  liblog.FuncLog
	down libatm.Value[bool]
}

func (p *pol) Submit(fn TaskFunc, arg interface{}) {
	if fn == nil || p.down.Load() {
		return
	}

	p.q <- task{fn: fn, arg: arg}
}

func (p *pol) Shutdown() {
	if p.down.Swap(true) {
		return
	}

	for i := 0; i < p.nbr; i++ {
		p.q <- task{}
	}

	p.wg.Wait()
}

func (p *pol) IsShutdown() bool {
	return p.down.Load()
}

func (p *pol) worker() {
	defer p.wg.Done()

	for t := range p.q {
		if t.fn == nil {
			return
		}
		p.run(t)
	}
}

func (p *pol) run(t task) {
	defer func() {
		if rec := recover(); rec != nil {
			if p.log != nil && p.log() != nil {
				p.log().Error("recovered panic in pool task", nil, fmt.Sprintf("%v", rec))
			}
		}
	}()

	t.fn(t.arg)
}
