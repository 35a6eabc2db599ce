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

package asm

import (
	"fmt"
	"io"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

var opcodes = map[vm.Cell][]string{
	vm.OpAdd:  {"add"},
	vm.OpMul:  {"mul"},
	vm.OpIn:   {"in"},
	vm.OpOut:  {"out"},
	vm.OpJnz:  {"jnz", "jt"},
	vm.OpJz:   {"jz", "jf"},
	vm.OpLt:   {"lt"},
	vm.OpEq:   {"eq"},
	vm.OpArb:  {"arb"},
	vm.OpHalt: {"hlt", "halt"},
}

var opcodeIndex = make(map[string]vm.Cell)

func init() {
	for op, names := range opcodes {
		for _, n := range names {
			opcodeIndex[n] = op
		}
	}
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (prog []vm.Cell, err error) {
	p := newParser()
	if err = p.Parse(name, r); err != nil {
		return nil, err
	}
	return p.i[:p.size], nil
}

// limit[n] is the smallest instruction value with a mode digit beyond the
// n-th parameter.
var limit = [vm.MaxParams + 1]vm.Cell{100, 1000, 10000, 100000}

// decode returns the opcode and parameter count of v, or -1 if v is not an
// instruction that the assembler would produce.
func decode(v vm.Cell) (op vm.Cell, modes [vm.MaxParams]vm.Mode, n int) {
	if v <= 0 {
		return 0, modes, -1
	}
	op, modes = vm.Decode(v)
	n = vm.Arity(op)
	if n < 0 || v >= limit[n] {
		return 0, modes, -1
	}
	for k := 0; k < n; k++ {
		if modes[k] > vm.ModeRelative {
			return 0, modes, -1
		}
	}
	return op, modes, n
}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Cells that do not decode to a valid instruction, or instructions truncated
// by the end of the slice, are written as a .dat directive.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := ici.NewErrWriter(w)
	v := mem[pc]
	op, modes, n := decode(v)
	if n < 0 || pc+n >= len(mem) {
		io.WriteString(ew, ".dat ")
		ew.WriteInt(int64(v))
		return pc + 1, ew.Err
	}
	io.WriteString(ew, opcodes[op][0])
	for k := 0; k < n; k++ {
		x := int64(mem[pc+1+k])
		ew.Write([]byte{' '})
		switch modes[k] {
		case vm.ModePosition:
			ew.Write([]byte{'['})
			ew.WriteInt(x)
			ew.Write([]byte{']'})
		case vm.ModeImmediate:
			ew.WriteInt(x)
		case vm.ModeRelative:
			io.WriteString(ew, "[rb")
			if x > 0 {
				ew.Write([]byte{'+'})
			}
			if x != 0 {
				ew.WriteInt(x)
			}
			ew.Write([]byte{']'})
		}
	}
	return pc + 1 + n, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (i[0]). It will return any write error.
func DisassembleAll(mem []vm.Cell, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(mem); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(mem, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}

// ErrEntry is a single assembly error.
type ErrEntry struct {
	Pos scanner.Position
	Msg string
}

func (e *ErrEntry) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm is the error type returned by Assemble. It lists errors in source
// order, with label resolution errors last.
type ErrAsm []ErrEntry

func (e ErrAsm) Error() string {
	var b strings.Builder
	for k := range e {
		if k > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e[k].Error())
	}
	return b.String()
}
