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

// Read returns the value stored at address addr. Addresses that were never
// written read as 0.
//
// Read panics with an *AddressError if addr is negative. Such panics are
// recovered by Step and Run and turned into a fatal error.
func (i *Instance) Read(addr Cell) Cell {
	if uint64(addr) < uint64(len(i.mem)) {
		return i.mem[addr]
	}
	if addr < 0 {
		panic(&AddressError{Addr: addr})
	}
	return i.high[addr]
}

// Write stores v at address addr. Like Read, it panics with an *AddressError
// if addr is negative.
func (i *Instance) Write(addr, v Cell) {
	if uint64(addr) < uint64(len(i.mem)) {
		i.mem[addr] = v
		return
	}
	if addr < 0 {
		panic(&AddressError{Addr: addr})
	}
	if i.high == nil {
		i.high = make(map[Cell]Cell)
	}
	i.high[addr] = v
}

// resize sets the size of the contiguous memory to max(size, program length)
// and moves cells between low and high memory accordingly.
func (i *Instance) resize(size int) {
	size = max(size, i.progLen)
	i.lowSize = size
	switch {
	case size > len(i.mem):
		m := make([]Cell, size)
		copy(m, i.mem)
		for a, v := range i.high {
			if a < Cell(size) {
				m[a] = v
				delete(i.high, a)
			}
		}
		i.mem = m
	case size < len(i.mem):
		for a := size; a < len(i.mem); a++ {
			if v := i.mem[a]; v != 0 {
				if i.high == nil {
					i.high = make(map[Cell]Cell)
				}
				i.high[Cell(a)] = v
			}
		}
		i.mem = i.mem[:size:size]
	}
}
