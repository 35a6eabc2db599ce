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

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInputRequested is the fatal error recorded by RunNoInput when the program
// executes an IN instruction.
var ErrInputRequested = errors.New("input requested by a program run without input")

// AddressError is raised when a negative memory address is accessed.
type AddressError struct {
	Addr Cell
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid memory address %d", e.Addr)
}

// OpcodeError is raised when the instruction at PC has an unknown opcode.
type OpcodeError struct {
	PC Cell
	Op Cell // the whole instruction, modes included
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode %d @pc=%d", e.Op, e.PC)
}

// WriteModeError is raised when an instruction writes its result through an
// immediate mode parameter.
type WriteModeError struct {
	PC    Cell
	Param int // 1 based parameter index
}

func (e *WriteModeError) Error() string {
	return fmt.Sprintf("write to immediate mode parameter %d @pc=%d", e.Param, e.PC)
}

// ModeError is raised when a parameter mode digit is not one of the known
// addressing modes.
type ModeError struct {
	PC    Cell
	Param int
	Mode  Mode
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("invalid %v for parameter %d @pc=%d", e.Mode, e.Param, e.PC)
}
