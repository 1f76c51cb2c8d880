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

// Package udp implements the fixed-layout 103-byte datagram exchanged with
// field controllers over UDP.
//
// Layout (all strings ASCII, NUL padded):
//
//	offset 0  size 1   type
//	offset 1  size 13  mac
//	offset 14 size 9   rnd (8 decimal digits)
//	offset 23 size 80  data
//
// Encode and Decode are pure and total: any 103-byte buffer decodes to a
// frame, semantic validation belongs to the callers. A read that times out,
// hits a closed socket or yields a short datagram is surfaced as a frame of
// type TypeTimeout, which never appears on the wire.
package udp

import (
	"bytes"
)

const (
	SizeType = 1
	SizeMac  = 13
	SizeRnd  = 9
	SizeData = 80

	// SizeFrame is the wire size of one datagram.
	SizeFrame = SizeType + SizeMac + SizeRnd + SizeData
)

// Type is the single-byte frame discriminator.
type Type uint8

const (
	TypeSubsReq  Type = 0x00
	TypeSubsAck  Type = 0x01
	TypeSubsRej  Type = 0x02
	TypeSubsInfo Type = 0x03
	TypeInfoAck  Type = 0x04
	TypeSubsNack Type = 0x05
	TypeHello    Type = 0x10
	TypeHelloRej Type = 0x11

	// TypeTimeout is the local sentinel for a timed out, closed or short
	// read. It is never emitted on the wire.
	TypeTimeout Type = 0x0F
)

// Frame is one decoded datagram.
type Frame struct {
	Type Type
	Mac  string
	Rnd  string
	Data string
}

// New builds a frame from its fields. Over-long fields are truncated to
// their wire size so Encode stays total.
func New(t Type, mac, rnd, data string) Frame {
	return Frame{
		Type: t,
		Mac:  clip(mac, SizeMac-1),
		Rnd:  clip(rnd, SizeRnd-1),
		Data: clip(data, SizeData-1),
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
