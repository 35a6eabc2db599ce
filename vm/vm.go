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
	"io"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// DefaultLowMemSize is the default minimum size, in cells, of the contiguous
// part of the memory.
const DefaultLowMemSize = 4096

// InputFunc is the function prototype for input producers. It is called by the
// IN instruction with the instance executing it, so that the producer may
// inspect or drain the instance's output queue.
//
// An InputFunc returns ok == false if no value is available yet. In that case
// the instance suspends: the IN instruction is retried on the next call to
// Step.
type InputFunc func(i *Instance) (v Cell, ok bool)

// Instance represents an Intcode machine instance.
type Instance struct {
	PC       Cell // Program Counter (aka. Instruction Pointer)
	RB       Cell // Relative Base
	mem      []Cell
	high     map[Cell]Cell
	lowSize  int
	progLen  int
	out      Queue
	insCount int64
	waiting  bool
	halted   bool
	err      error
}

// Option is a configuration function applied by New and SetOptions.
type Option func(*Instance) error

// LowMemSize sets the minimum size of the contiguous part of the memory. The
// actual size will never be smaller than the program. Addresses above this
// bound are stored in a sparse map. The default is DefaultLowMemSize cells.
//
// When applied to a running instance, cells are moved between both parts as
// needed and no data is lost.
func LowMemSize(size int) Option {
	return func(i *Instance) error {
		if size < 0 {
			return errors.Errorf("invalid low memory size %d", size)
		}
		if i.mem == nil {
			i.lowSize = size
			return nil
		}
		i.resize(size)
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode machine instance.
//
// The program is copied into the instance's memory, so the same program slice
// can be used to create any number of independent instances.
//
// Options will be set by calling SetOptions.
func New(program []Cell, opts ...Option) (*Instance, error) {
	i := &Instance{
		lowSize: DefaultLowMemSize,
		progLen: len(program),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	i.mem = make([]Cell, max(i.lowSize, len(program)))
	copy(i.mem, program)
	return i, nil
}

// Output returns the output queue. Values are appended to it by the OUT
// instruction in execution order; callers drain it.
func (i *Instance) Output() *Queue {
	return &i.out
}

// PopOutput removes and returns the oldest value in the output queue.
func (i *Instance) PopOutput() (Cell, bool) {
	return i.out.Pop()
}

// LastOutput removes and returns the most recent value in the output queue.
func (i *Instance) LastOutput() (Cell, bool) {
	return i.out.PopBack()
}

// TakeOutput drains the output queue and returns its contents.
func (i *Instance) TakeOutput() []Cell {
	return i.out.Drain()
}

// Waiting returns true if the last call to Step suspended on an IN instruction
// because no input was available.
func (i *Instance) Waiting() bool {
	return i.waiting
}

// Halted returns true once the instance has executed a HALT instruction.
func (i *Instance) Halted() bool {
	return i.halted
}

// Err returns the fatal error that stopped the instance, if any.
func (i *Instance) Err() error {
	return i.err
}

// InstructionCount returns the number of instructions executed so far. HALT
// and suspended IN instructions are not counted.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Clone returns an independent copy of the instance, including its memory
// and output queue.
func (i *Instance) Clone() *Instance {
	c := *i
	c.mem = slices.Clone(i.mem)
	c.high = maps.Clone(i.high)
	c.out = i.out.clone()
	return &c
}

// Dump writes the instance registers and memory contents to w.
//
// The first line holds PC and RB. The second line is the contiguous memory up
// to its last non-zero cell, in program format. Each following line is a
// sparse memory cell, written as address=value, in address order.
func (i *Instance) Dump(w io.Writer) error {
	ew := ici.NewErrWriter(w)
	ew.WriteInt(int64(i.PC))
	ew.Write([]byte{' '})
	ew.WriteInt(int64(i.RB))
	ew.Write([]byte{'\n'})
	end := len(i.mem)
	for end > i.progLen && i.mem[end-1] == 0 {
		end--
	}
	Format(ew, i.mem[:end])
	keys := maps.Keys(i.high)
	slices.Sort(keys)
	for _, a := range keys {
		ew.WriteInt(int64(a))
		ew.Write([]byte{'='})
		ew.WriteInt(int64(i.high[a]))
		ew.Write([]byte{'\n'})
	}
	return ew.Err
}
