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
	"fmt"
	"io"
	"strings"

	libreg "github/sabouaram/ctrlhub/registry"
)

const listHeader = "--NAME-- -------IP------ -----MAC---- --RNDM-- ---STATUS---- -SITUATION-- --DEVICES--"

// Print renders one line per controller: name, IP (or blanks), MAC, session
// token (or blanks), status name, situation and the device list.
func Print(out io.Writer, rows []libreg.Controller) {
	_, _ = fmt.Fprintln(out, listHeader)

	for i := range rows {
		_, _ = fmt.Fprintf(out, "%-8s %-15s %-12s %-8s %-13s %-12s %s\n",
			rows[i].Name,
			rows[i].IP,
			rows[i].Mac,
			rows[i].Rand,
			rows[i].Status.String(),
			rows[i].Situation,
			strings.Join(rows[i].Devices, " "),
		)
	}
}
