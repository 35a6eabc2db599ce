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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm	operands	description
//	------	---	--------	---------------------------------------------
//	1	add	a b d		d = a + b
//	2	mul	a b d		d = a * b
//	3	in	d		d = next input value
//	4	out	a		output a
//	5	jnz	c t		jump to t if c != 0 (alias: jt)
//	6	jz	c t		jump to t if c == 0 (alias: jf)
//	7	lt	a b d		d = 1 if a < b, else 0
//	8	eq	a b d		d = 1 if a == b, else 0
//	9	arb	a		adjust relative base: RB += a
//	99	hlt			halt (alias: halt)
//
// Operands:
//
// The addressing mode of an operand is given by its syntax:
//
//	42		immediate mode: the value 42
//	[42]		position mode: the value at address 42
//	[rb+3]		relative mode: the value at address RB+3
//	[rb-3]		relative mode: the value at address RB-3
//	[rb]		relative mode: the value at address RB
//
// Operands in immediate or position mode may be integer literals, character
// literals, constants or labels. Relative offsets may not be labels. The
// assembler does not prevent writing through an immediate mode operand: such
// code assembles fine and fails at run time.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	(this is not )
//
// Literals and identifiers:
//
// Input is split at white space (space, tab or new line) into tokens, Forth
// style. A token that can be converted to a Go integer (see strconv.ParseInt
// with base 0) is an integer literal. A Go character literal between single
// quotes is converted to the corresponding integer. A token that is the name
// of a constant is replaced by the constant's value.
//
// Where an instruction is expected, the token is looked up in the mnemonics.
// If it is not a mnemonic, directive or label definition, it is compiled as
// a data cell: integer literals and constants as is, other tokens as the
// address of the label by that name.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:). A label name must
// start with a letter or an underscore. Forward references are fine:
//
//	:loop	add [count] -1 [count]
//		jnz [count] loop
//		hlt
//	:count	10
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant. The value must be an integer, character literal or
// constant.
//
//	.org <value>
//
// places the next instruction or data at the given address. Gaps are filled
// with zeros.
//
//	.dat <value>
//
// compiles the given value, constant or label address as a data cell. This
// is the form used by the disassembler for cells that do not decode to a
// valid instruction.
package asm
