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

package command

import (
	"strings"

	liberr "github.com/nabbar/golib/errors"
)

func parse(line string) (Command, liberr.Error) {
	f := strings.Fields(line)

	if len(f) == 0 {
		return Command{Kind: KindNone}, nil
	}

	switch f[0] {
	case "list":
		if len(f) == 1 {
			return Command{Kind: KindList}, nil
		}

	case "quit":
		if len(f) == 1 {
			return Command{Kind: KindQuit}, nil
		}

	case "set":
		if len(f) == 4 {
			if len(f[1]) > MaxControllerLen {
				return Command{}, ErrorControllerTooLong.Error(nil)
			} else if len(f[2]) > MaxDeviceLen {
				return Command{}, ErrorDeviceTooLong.Error(nil)
			} else if len(f[3]) > MaxValueLen {
				return Command{}, ErrorValueTooLong.Error(nil)
			}

			return Command{
				Kind:       KindSet,
				Controller: f[1],
				Device:     f[2],
				Value:      f[3],
			}, nil
		}

	case "get":
		if len(f) == 3 {
			if len(f[1]) > MaxControllerLen {
				return Command{}, ErrorControllerTooLong.Error(nil)
			} else if len(f[2]) > MaxDeviceLen {
				return Command{}, ErrorDeviceTooLong.Error(nil)
			}

			return Command{
				Kind:       KindGet,
				Controller: f[1],
				Device:     f[2],
			}, nil
		}
	}

	return Command{}, ErrorBadCommand.Error(nil)
}
