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

// Package vm implements the Intcode virtual machine.
//
// An Intcode program is a sequence of signed integers that serves as the
// initial contents of the machine's memory. The machine executes one
// instruction at a time from the cell at PC. The low two decimal digits of an
// instruction select the opcode, the following digits select the addressing
// mode of each parameter: 0 for position mode (the parameter is an address),
// 1 for immediate mode (the parameter is the value) and 2 for relative mode
// (the parameter is an offset from the relative base RB).
//
//	opcode	params	description
//	------	------	-----------------------------------------------
//	1	a b d	d = a + b
//	2	a b d	d = a * b
//	3	d	d = next input value
//	4	a	append a to the output queue
//	5	c t	if c != 0, jump to t
//	6	c t	if c == 0, jump to t
//	7	a b d	d = 1 if a < b, else 0
//	8	a b d	d = 1 if a == b, else 0
//	9	a	RB += a
//	99		halt
//
// Memory is unbounded and zero initialized. Addresses below a configurable
// bound (see LowMemSize) live in a contiguous slice, higher addresses live in
// a sparse map. Both are observably the same: an address that was never
// written reads as 0. Negative addresses are fatal.
//
// Input is pulled rather than pushed: the IN instruction calls the InputFunc
// given to Step or Run. When that function has no value to offer, the
// instruction is not executed and PC does not move; the next call to Step
// retries it. This is the only point where an Instance suspends, and it never
// blocks. Drivers that run several machines together (pipelines, networks) do
// so by calling Step on each instance in turn and routing output queues into
// input functions. See package github.com/db47h/intcode/sched.
//
// An invalid opcode, a negative address or a write through an immediate mode
// parameter are fatal errors: the instance records the error and returns it
// from every subsequent call to Step or Run.
package vm
