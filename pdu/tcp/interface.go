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

// Package tcp implements the fixed-layout 118-byte message exchanged with
// field controllers over TCP.
//
// Layout (all strings ASCII, NUL padded):
//
//	offset 0  size 1   type
//	offset 1  size 13  mac
//	offset 14 size 9   rnd (8 decimal digits)
//	offset 23 size 8   device
//	offset 31 size 7   value
//	offset 38 size 80  data
//
// As with the datagram codec, decoding is total and a timed out or closed
// read is surfaced as a TypeTimeout frame.
package tcp

import (
	"bytes"
)

const (
	SizeType   = 1
	SizeMac    = 13
	SizeRnd    = 9
	SizeDevice = 8
	SizeValue  = 7
	SizeData   = 80

	// SizeFrame is the wire size of one message.
	SizeFrame = SizeType + SizeMac + SizeRnd + SizeDevice + SizeValue + SizeData
)

// Type is the single-byte frame discriminator.
type Type uint8

const (
	TypeSendData Type = 0x20
	TypeSetData  Type = 0x21
	TypeGetData  Type = 0x22
	TypeDataAck  Type = 0x23
	TypeDataNack Type = 0x24
	TypeDataRej  Type = 0x25

	// TypeTimeout is the local sentinel for a timed out or closed read.
	// It is never emitted on the wire.
	TypeTimeout Type = 0x0F
)

// Frame is one decoded message.
type Frame struct {
	Type   Type
	Mac    string
	Rnd    string
	Device string
	Value  string
	Data   string
}

// New builds a frame from its fields, truncating over-long fields to their
// wire size.
func New(t Type, mac, rnd, device, value, data string) Frame {
	return Frame{
		Type:   t,
		Mac:    clip(mac, SizeMac-1),
		Rnd:    clip(rnd, SizeRnd-1),
		Device: clip(device, SizeDevice-1),
		Value:  clip(value, SizeValue-1),
		Data:   clip(data, SizeData-1),
	}
}

// Decode parses a wire buffer into a frame. A buffer shorter than SizeFrame
// yields the TypeTimeout sentinel.
func Decode(p []byte) Frame {
	if len(p) < SizeFrame {
		return Frame{Type: TypeTimeout}
	}

	var o = SizeType
	f := Frame{Type: Type(p[0])}
	f.Mac = cstr(p[o : o+SizeMac])
	o += SizeMac
	f.Rnd = cstr(p[o : o+SizeRnd])
	o += SizeRnd
	f.Device = cstr(p[o : o+SizeDevice])
	o += SizeDevice
	f.Value = cstr(p[o : o+SizeValue])
	o += SizeValue
	f.Data = cstr(p[o : o+SizeData])

	return f
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

func cstr(p []byte) string {
	if i := bytes.IndexByte(p, 0x00); i >= 0 {
		return string(p[:i])
	}
	return string(p)
}
