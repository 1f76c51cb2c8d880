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

package udp

import (
	"strings"
)

// Encode serializes the frame to its 103-byte wire form.
func (f Frame) Encode() []byte {
	p := make([]byte, SizeFrame)

	var o = SizeType
	p[0] = byte(f.Type)
	copy(p[o:o+SizeMac], f.Mac)
	o += SizeMac
	copy(p[o:o+SizeRnd], f.Rnd)
	o += SizeRnd
	copy(p[o:o+SizeData], f.Data)

	return p
}

// IsTimeout reports whether the frame is the local timed out / closed
// sentinel.
func (f Frame) IsTimeout() bool {
	return f.Type == TypeTimeout
}

// DataField returns the i-th comma separated token of the data payload, or
// an empty string when absent. Tokenization is non destructive.
func (f Frame) DataField(i int) string {
	t := strings.Split(f.Data, ",")
	if i < 0 || i >= len(t) {
		return ""
	}
	return t[i]
}

func (t Type) String() string {
	switch t {
	case TypeSubsReq:
		return "SUBS_REQ"
	case TypeSubsAck:
		return "SUBS_ACK"
	case TypeSubsRej:
		return "SUBS_REJ"
	case TypeSubsInfo:
		return "SUBS_INFO"
	case TypeInfoAck:
		return "INFO_ACK"
	case TypeSubsNack:
		return "SUBS_NACK"
	case TypeHello:
		return "HELLO"
	case TypeHelloRej:
		return "HELLO_REJ"
	case TypeTimeout:
		return "TIMEOUT"
	}

	return "UNKNOWN"
}
