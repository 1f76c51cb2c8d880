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
	"os"
	"path/filepath"
	"time"

	pdutcp "github/sabouaram/ctrlhub/pdu/tcp"
)

type sto struct {
	dir string
}

// Record layout: DD-MM-YY,HH:MM:SS,<type>,<device>,<value>
func (s *sto) Save(name, situation string, typ pdutcp.Type, device, value string) error {
	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s.data", name, situation))

	h, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) // #nosec
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = fmt.Fprintf(h, "%s,%s,%s,%s,%s\n",
		now.Format("02-01-06"),
		now.Format("15:04:05"),
		typ.String(),
		device,
		value,
	)

	if cErr := h.Close(); err == nil {
		err = cErr
	}

	return err
}
