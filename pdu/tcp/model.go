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

package tcp

// Encode serializes the frame to its 118-byte wire form.
func (f Frame) Encode() []byte {
	p := make([]byte, SizeFrame)

	var o = SizeType
	p[0] = byte(f.Type)
	copy(p[o:o+SizeMac], f.Mac)
	o += SizeMac
	copy(p[o:o+SizeRnd], f.Rnd)
	o += SizeRnd
	copy(p[o:o+SizeDevice], f.Device)
	o += SizeDevice
	copy(p[o:o+SizeValue], f.Value)
	o += SizeValue
	copy(p[o:o+SizeData], f.Data)

	return p
}

// IsTimeout reports whether the frame is the local timed out / closed
// sentinel.
func (f Frame) IsTimeout() bool {
	return f.Type == TypeTimeout
}

func (t Type) String() string {
	switch t {
	case TypeSendData:
		return "SEND_DATA"
	case TypeSetData:
		return "SET_DATA"
	case TypeGetData:
		return "GET_DATA"
	case TypeDataAck:
		return "DATA_ACK"
	case TypeDataNack:
		return "DATA_NACK"
	case TypeDataRej:
		return "DATA_REJ"
	case TypeTimeout:
		return "TIMEOUT"
	}

	return "UNKNOWN"
}
