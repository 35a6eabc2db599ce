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

// Values returns an InputFunc that produces the given values in order, then
// reports that no input is available.
func Values(v ...Cell) InputFunc {
	return func(*Instance) (Cell, bool) {
		if len(v) == 0 {
			return 0, false
		}
		x := v[0]
		v = v[1:]
		return x, true
	}
}

// Const returns an InputFunc that always produces v.
func Const(v Cell) InputFunc {
	return func(*Instance) (Cell, bool) { return v, true }
}

// FromQueue returns an InputFunc that pops values from the front of q. Values
// pushed to q later on are picked up by subsequent calls.
func FromQueue(q *Queue) InputFunc {
	return func(*Instance) (Cell, bool) { return q.Pop() }
}

// Chain returns an InputFunc that tries each of fns in order and returns the
// first available value.
//
// A typical use is feeding an initial setting before switching to the output
// of another instance:
//
//	in := vm.Chain(vm.Values(phase), vm.FromQueue(prev.Output()))
func Chain(fns ...InputFunc) InputFunc {
	return func(i *Instance) (Cell, bool) {
		for _, fn := range fns {
			if v, ok := fn(i); ok {
				return v, true
			}
		}
		return 0, false
	}
}
