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
)

// Pipeline is a chain of machines running the same program. Stage k receives
// its phase setting as first input, then reads the output of stage k-1. The
// first stage receives the seed signal after its phase setting, then reads the
// output of the last stage if the pipeline is a loop.
//
// A Pipeline can be run only once.
type Pipeline struct {
	stages []*vm.Instance
	inputs []vm.InputFunc
	seed   vm.Queue
}

// NewPipeline creates a pipeline with one stage per phase setting.
func NewPipeline(program, phases []vm.Cell, opts ...Option) (*Pipeline, error) {
	if len(phases) == 0 {
		return nil, errors.New("pipeline: no stages")
	}
	s := newSettings(opts)
	p := &Pipeline{
		stages: make([]*vm.Instance, len(phases)),
		inputs: make([]vm.InputFunc, len(phases)),
	}
	for k := range phases {
		i, err := vm.New(program, s.vmOpts...)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline: stage %d", k)
		}
		p.stages[k] = i
	}
	last := p.stages[len(p.stages)-1]
	for k, ph := range phases {
		var src vm.InputFunc
		switch {
		case k > 0:
			src = vm.FromQueue(p.stages[k-1].Output())
		case s.loop:
			src = vm.Chain(vm.FromQueue(&p.seed), vm.FromQueue(last.Output()))
		default:
			src = vm.FromQueue(&p.seed)
		}
		p.inputs[k] = vm.Chain(vm.Values(ph), src)
	}
	return p, nil
}

// Stages returns the machines of the pipeline in order.
func (p *Pipeline) Stages() []*vm.Instance {
	return p.stages
}

// Run feeds seed to the first stage and runs all stages in turn until the last
// one halts. Each stage runs until it halts or blocks on input. Run returns the
// last value output by the last stage.
//
// If none of the stages can make progress during a full round, Run returns
// ErrDeadlock.
func (p *Pipeline) Run(ctx context.Context, seed vm.Cell) (vm.Cell, error) {
	p.seed.Push(seed)
	last := p.stages[len(p.stages)-1]
	var (
		signal vm.Cell
		seen   bool
	)
	for !last.Halted() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		progress := false
		for k, i := range p.stages {
			if i.Halted() {
				continue
			}
			ok, err := advance(ctx, i, p.inputs[k])
			if err != nil {
				return 0, errors.Wrapf(err, "pipeline: stage %d", k)
			}
			progress = progress || ok
		}
		if q := last.Output(); q.Len() > 0 {
			signal, seen = q.At(q.Len()-1), true
		}
		if !progress {
			log.Debugf("pipeline deadlock with %d stages", len(p.stages))
			return 0, ErrDeadlock
		}
	}
	if !seen {
		return 0, ErrNoOutput
	}
	return signal, nil
}

// RunPipeline is a shorthand for NewPipeline followed by Run.
func RunPipeline(ctx context.Context, program, phases []vm.Cell, seed vm.Cell, opts ...Option) (vm.Cell, error) {
	p, err := NewPipeline(program, phases, opts...)
	if err != nil {
		return 0, err
	}
	return p.Run(ctx, seed)
}
