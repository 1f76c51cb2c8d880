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

package registry_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libreg "github/sabouaram/ctrlhub/registry"
)

func writeAllowList(content string) string {
	path := filepath.Join(GinkgoT().TempDir(), "controllers.dat")
	Expect(os.WriteFile(path, []byte(content), 0644)).ToNot(HaveOccurred())
	return path
}

var _ = Describe("Load", func() {
	It("should load one row per valid line", func() {
		reg, err := libreg.Load(writeAllowList("CTRL-A01,0123456789AB\nCTRL-B02,BA9876543210\n"), nil)
		Expect(err).To(BeNil())
		Expect(reg.Count()).To(Equal(2))
		Expect(reg.Name(0)).To(Equal("CTRL-A01"))
		Expect(reg.Mac(1)).To(Equal("BA9876543210"))
	})

	It("should skip blank and malformed lines", func() {
		reg, err := libreg.Load(writeAllowList("\nCTRL-A01,0123456789AB\nno-comma-line\nWAYTOOLONGNAME,0123456789AB\nCTRL-C03,SHORT\n"), nil)
		Expect(err).To(BeNil())
		Expect(reg.Count()).To(Equal(1))
	})

	It("should trim whitespace around the fields", func() {
		reg, err := libreg.Load(writeAllowList(" CTRL-A01 , 0123456789AB \n"), nil)
		Expect(err).To(BeNil())
		Expect(reg.Name(0)).To(Equal("CTRL-A01"))
		Expect(reg.Mac(0)).To(Equal("0123456789AB"))
	})

	It("should fail when no line is usable", func() {
		_, err := libreg.Load(writeAllowList("garbage\n"), nil)
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(libreg.ErrorNoController)).To(BeTrue())
	})

	It("should fail on a missing file", func() {
		_, err := libreg.Load(filepath.Join(GinkgoT().TempDir(), "nope.dat"), nil)
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(libreg.ErrorFileOpen)).To(BeTrue())
	})

	It("should fail on an empty path", func() {
		_, err := libreg.Load("", nil)
		Expect(err).ToNot(BeNil())
	})
})
