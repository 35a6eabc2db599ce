// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ascii provides utility functions for Intcode programs that talk
// ASCII: they read text one character per input value, and write text one
// character per output value, usually followed by a single numeric result
// outside of the ASCII range.
package ascii

import (
	"io"
	"strings"

	"github.com/db47h/intcode/vm"
)

// MaxChar is the largest value treated as a character.
const MaxChar = 127

// IsChar returns true if v is in the ASCII range.
func IsChar(v vm.Cell) bool {
	return v >= 0 && v <= MaxChar
}

// Encode returns one cell per byte of s.
func Encode(s string) []vm.Cell {
	c := make([]vm.Cell, len(s))
	for k := 0; k < len(s); k++ {
		c[k] = vm.Cell(s[k])
	}
	return c
}

// Input returns an InputFunc that feeds the given lines, each terminated with
// a newline.
func Input(lines ...string) vm.InputFunc {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return vm.Values(Encode(b.String())...)
}

// Decode splits output values into text and the values that are not ASCII
// characters. Both keep their relative order.
func Decode(out []vm.Cell) (text string, rest []vm.Cell) {
	var b strings.Builder
	for _, v := range out {
		if IsChar(v) {
			b.WriteByte(byte(v))
		} else {
			rest = append(rest, v)
		}
	}
	return b.String(), rest
}

// DrainText drains the output queue of i and decodes it.
func DrainText(i *vm.Instance) (text string, rest []vm.Cell) {
	return Decode(i.TakeOutput())
}

// Copy drains the output queue of i, writes its text to w and returns the
// values that are not characters.
func Copy(w io.Writer, i *vm.Instance) (rest []vm.Cell, err error) {
	text, rest := DrainText(i)
	if text != "" {
		_, err = io.WriteString(w, text)
	}
	return rest, err
}
