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

// Package command parses the operator console input and renders the
// controller list printout.
package command

import (
	liberr "github.com/nabbar/golib/errors"
)

// Usage is the console help line printed on unrecognized input.
const Usage = "Usage: list | set <controller-name> <device-name> <value> | get <controller-name> <device-name> | quit"

const (
	// MaxControllerLen bounds the controller argument of set / get.
	MaxControllerLen = 8

	// MaxDeviceLen bounds the device argument of set / get.
	MaxDeviceLen = 7

	// MaxValueLen bounds the value argument of set.
	MaxValueLen = 6
)

// Kind discriminates the console commands.
type Kind uint8

const (
	// KindNone is a blank input line, silently ignored.
	KindNone Kind = iota

	// KindList prints the controller table.
	KindList

	// KindSet issues a SET_DATA petition.
	KindSet

	// KindGet issues a GET_DATA petition.
	KindGet

	// KindQuit asks for an orderly shutdown.
	KindQuit
)

// Command is one parsed console line.
type Command struct {
	Kind       Kind
	Controller string
	Device     string
	Value      string
}

// Parse tokenizes one console line, whitespace collapsed, and enforces the
// per-argument length limits before any dispatch happens.
func Parse(line string) (Command, liberr.Error) {
	return parse(line)
}
