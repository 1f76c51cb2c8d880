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

import (
	"errors"
	"io"
	"net"

	liberr "github.com/nabbar/golib/errors"
)

// Send encodes the frame and writes it fully to the connection.
func Send(con net.Conn, f Frame) liberr.Error {
	if con == nil {
		return ErrorParamEmpty.Error(nil)
	}

	if _, err := con.Write(f.Encode()); err != nil {
		return ErrorSocketSend.Error(err)
	}

	return nil
}

// Recv reads exactly one frame from the connection. A deadline expiry, a
// peer close or a closed socket is reported as a TypeTimeout frame with a
// nil error; any other failure is returned as an error.
func Recv(con net.Conn) (Frame, liberr.Error) {
	if con == nil {
		return Frame{Type: TypeTimeout}, ErrorParamEmpty.Error(nil)
	}

	var buf [SizeFrame]byte

	if _, err := io.ReadFull(con, buf[:]); err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			return Frame{Type: TypeTimeout}, nil
		} else if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
			return Frame{Type: TypeTimeout}, nil
		}
		return Frame{Type: TypeTimeout}, ErrorSocketRecv.Error(err)
	}

	return Decode(buf[:]), nil
}
