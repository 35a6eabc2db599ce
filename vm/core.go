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

import "github.com/pkg/errors"

// param returns the value of parameter n of the instruction op at pc.
func (i *Instance) param(op, pc Cell, n int) Cell {
	v := i.Read(pc + Cell(n))
	switch m := mode(op, n); m {
	case ModePosition:
		return i.Read(v)
	case ModeImmediate:
		return v
	case ModeRelative:
		return i.Read(i.RB + v)
	default:
		panic(&ModeError{PC: pc, Param: n, Mode: m})
	}
}

// store writes x to the target of parameter n of the instruction op at pc.
func (i *Instance) store(op, pc Cell, n int, x Cell) {
	v := i.Read(pc + Cell(n))
	switch m := mode(op, n); m {
	case ModePosition:
		i.Write(v, x)
	case ModeImmediate:
		panic(&WriteModeError{PC: pc, Param: n})
	case ModeRelative:
		i.Write(i.RB+v, x)
	default:
		panic(&ModeError{PC: pc, Param: n, Mode: m})
	}
}

func b2c(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

// step executes the instruction at PC. Each opcode deals with PC as needed.
func (i *Instance) step(in InputFunc) bool {
	pc := i.PC
	op := i.Read(pc)
	i.waiting = false
	switch op % 100 {
	case OpAdd:
		i.store(op, pc, 3, i.param(op, pc, 1)+i.param(op, pc, 2))
		i.PC = pc + 4
	case OpMul:
		i.store(op, pc, 3, i.param(op, pc, 1)*i.param(op, pc, 2))
		i.PC = pc + 4
	case OpIn:
		v, ok := in(i)
		if !ok {
			i.waiting = true
			return false
		}
		i.store(op, pc, 1, v)
		i.PC = pc + 2
	case OpOut:
		i.out.Push(i.param(op, pc, 1))
		i.PC = pc + 2
	case OpJnz:
		if i.param(op, pc, 1) != 0 {
			i.PC = i.param(op, pc, 2)
		} else {
			i.PC = pc + 3
		}
	case OpJz:
		if i.param(op, pc, 1) == 0 {
			i.PC = i.param(op, pc, 2)
		} else {
			i.PC = pc + 3
		}
	case OpLt:
		i.store(op, pc, 3, b2c(i.param(op, pc, 1) < i.param(op, pc, 2)))
		i.PC = pc + 4
	case OpEq:
		i.store(op, pc, 3, b2c(i.param(op, pc, 1) == i.param(op, pc, 2)))
		i.PC = pc + 4
	case OpArb:
		i.RB += i.param(op, pc, 1)
		i.PC = pc + 2
	case OpHalt:
		i.halted = true
		return true
	default:
		panic(&OpcodeError{PC: pc, Op: op})
	}
	i.insCount++
	return false
}

// recoverFault turns a runtime panic of type error into a sticky fault of the
// instance. Other panics are propagated.
func (i *Instance) recoverFault(err *error) {
	if e := recover(); e != nil {
		switch e := e.(type) {
		case error:
			i.waiting = false
			i.err = errors.Wrapf(e, "recovered error @pc=%d, rb=%d", i.PC, i.RB)
			*err = i.err
		default:
			panic(e)
		}
	}
}

// Step executes exactly one instruction and returns true if that instruction
// was HALT. If the instruction is IN and in has no value available, Step
// returns false and the instance is left untouched; Waiting will then return
// true.
//
// Fatal errors are returned wrapped with the PC and RB at the time of the
// fault. Use errors.Cause from package github.com/pkg/errors to get the
// underlying *AddressError, *OpcodeError, *WriteModeError or *ModeError. Once
// a fatal error has occurred, Step keeps returning it.
//
// Calling Step on a halted instance returns true without side effects.
func (i *Instance) Step(in InputFunc) (halted bool, err error) {
	if i.err != nil {
		return false, i.err
	}
	defer i.recoverFault(&err)
	return i.step(in), nil
}

// Run calls Step until the instance halts or a fatal error occurs.
//
// If in repeatedly reports that no input is available, Run will spin forever.
// Drivers that need to wait for input from another source should use Step.
func (i *Instance) Run(in InputFunc) (err error) {
	if i.err != nil {
		return i.err
	}
	defer i.recoverFault(&err)
	for !i.step(in) {
	}
	return nil
}

func noInput(*Instance) (Cell, bool) {
	panic(ErrInputRequested)
}

// RunNoInput runs a program that is known not to read any input. Executing an
// IN instruction is a fatal error whose cause is ErrInputRequested.
func (i *Instance) RunNoInput() error {
	return i.Run(noInput)
}
