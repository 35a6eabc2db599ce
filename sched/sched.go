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

package sched

import (
	"context"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("intcode.sched")

// ErrDeadlock is returned when all machines are blocked on input and nothing
// can wake them up.
var ErrDeadlock = errors.New("deadlock: all machines are waiting for input")

// ErrNoOutput is returned by Pipeline.Run when the last stage halted without
// producing any output.
var ErrNoOutput = errors.New("last stage halted without output")

// checkEvery is the number of steps between two context checks while a
// machine runs without blocking.
const checkEvery = 1 << 12

type settings struct {
	loop   bool
	vmOpts []vm.Option
}

// Option configures a Pipeline or Network.
type Option func(*settings)

// Loop connects the output of the last stage of a pipeline to the input of the
// first stage. It has no effect on a Network.
func Loop() Option {
	return func(s *settings) { s.loop = true }
}

// VMOptions sets the options used to create each machine.
func VMOptions(opts ...vm.Option) Option {
	return func(s *settings) { s.vmOpts = append(s.vmOpts, opts...) }
}

func newSettings(opts []Option) *settings {
	s := new(settings)
	for _, o := range opts {
		o(s)
	}
	return s
}

// advance steps i until it halts or blocks on input. It returns true if at
// least one instruction was executed or if the machine halted.
func advance(ctx context.Context, i *vm.Instance, in vm.InputFunc) (progress bool, err error) {
	n := i.InstructionCount()
	for steps := 1; ; steps++ {
		if steps%checkEvery == 0 {
			if err = ctx.Err(); err != nil {
				return false, err
			}
		}
		halted, err := i.Step(in)
		if err != nil {
			return false, err
		}
		if halted {
			return true, nil
		}
		if i.Waiting() {
			return i.InstructionCount() != n, nil
		}
	}
}
