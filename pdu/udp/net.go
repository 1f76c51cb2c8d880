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
	"errors"
	"net"

	liberr "github.com/nabbar/golib/errors"
)

// Send encodes the frame and writes it to the given address. The datagram is
// small enough that the write is treated as non blocking.
func Send(con *net.UDPConn, f Frame, adr *net.UDPAddr) liberr.Error {
	if con == nil || adr == nil {
		return ErrorParamEmpty.Error(nil)
	}

	if _, err := con.WriteToUDP(f.Encode(), adr); err != nil {
		return ErrorSocketSend.Error(err)
	}

	return nil
}

// Recv reads one datagram from the socket. A read deadline expiry, a closed
// socket or a short datagram is reported as a TypeTimeout frame with a nil
// error; any other failure is returned as an error.
func Recv(con *net.UDPConn) (Frame, *net.UDPAddr, liberr.Error) {
	if con == nil {
		return Frame{Type: TypeTimeout}, nil, ErrorParamEmpty.Error(nil)
	}

	var buf [SizeFrame]byte

	n, adr, err := con.ReadFromUDP(buf[:])
	if err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			return Frame{Type: TypeTimeout}, nil, nil
		} else if errors.Is(err, net.ErrClosed) {
			return Frame{Type: TypeTimeout}, nil, nil
		}
		return Frame{Type: TypeTimeout}, nil, ErrorSocketRecv.Error(err)
	} else if n < SizeFrame {
		return Frame{Type: TypeTimeout}, adr, nil
	}

	return Decode(buf[:n]), adr, nil
}
