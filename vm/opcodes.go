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

package vm

import "strconv"

// Opcodes.
const (
	OpAdd  Cell = 1
	OpMul  Cell = 2
	OpIn   Cell = 3
	OpOut  Cell = 4
	OpJnz  Cell = 5
	OpJz   Cell = 6
	OpLt   Cell = 7
	OpEq   Cell = 8
	OpArb  Cell = 9
	OpHalt Cell = 99
)

// Mode is a parameter addressing mode.
type Mode uint8

// Parameter modes.
const (
	ModePosition Mode = iota
	ModeImmediate
	ModeRelative
)

func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	case ModeRelative:
		return "relative"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// MaxParams is the maximum number of parameters of an instruction.
const MaxParams = 3

// divisors to extract the mode digit of parameter n (1 based).
var modeDiv = [MaxParams + 1]Cell{0, 100, 1000, 10000}

// mode returns the addressing mode of parameter n of instruction op.
func mode(op Cell, n int) Mode {
	return Mode(op / modeDiv[n] % 10)
}

// Decode splits an instruction into its opcode and parameter modes. Decode
// does not check the validity of the opcode or modes.
func Decode(v Cell) (op Cell, modes [MaxParams]Mode) {
	op = v % 100
	for n := 1; n <= MaxParams; n++ {
		modes[n-1] = mode(v, n)
	}
	return op, modes
}

// Arity returns the number of parameters of opcode op, or -1 if op is not a
// valid opcode.
func Arity(op Cell) int {
	switch op {
	case OpAdd, OpMul, OpLt, OpEq:
		return 3
	case OpJnz, OpJz:
		return 2
	case OpIn, OpOut, OpArb:
		return 1
	case OpHalt:
		return 0
	}
	return -1
}
