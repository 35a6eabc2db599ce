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

package sched_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/sched"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	amp1 = "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0"
	amp2 = "3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0"
	amp3 = "3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33,1002,33,7,33,1,33,31,31,1,32,31,31,4,31,99,0,0,0"

	loop1 = "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5"
	loop2 = "3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54,-5,54,1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4,53,1001,56,-1,56,1005,56,6,99,0,0,0,0,10"
)

func parse(t *testing.T, s string) []vm.Cell {
	t.Helper()
	prog, err := vm.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return prog
}

func TestPipeline(t *testing.T) {
	ctx := context.Background()

	s, err := sched.RunPipeline(ctx, parse(t, amp1), []vm.Cell{4, 3, 2, 1, 0}, 0)
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(43210), s)

	p, err := sched.NewPipeline(parse(t, loop1), []vm.Cell{9, 8, 7, 6, 5}, sched.Loop())
	require.NoError(t, err)
	s, err = p.Run(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(139629729), s)
	for k, i := range p.Stages() {
		assert.True(t, i.Halted(), "stage %d", k)
	}
}

func TestPipeline_errors(t *testing.T) {
	ctx := context.Background()

	_, err := sched.NewPipeline([]vm.Cell{99}, nil)
	assert.Error(t, err)

	_, err = sched.RunPipeline(ctx, []vm.Cell{3, 0, 3, 0, 3, 0, 99}, []vm.Cell{7}, 0)
	assert.Equal(t, sched.ErrDeadlock, err)

	_, err = sched.RunPipeline(ctx, []vm.Cell{3, 0, 3, 0, 99}, []vm.Cell{1}, 0)
	assert.Equal(t, sched.ErrNoOutput, err)

	_, err = sched.RunPipeline(ctx, []vm.Cell{3, 0, 3, 0, 98}, []vm.Cell{1, 2}, 0)
	require.Error(t, err)
	var oe *vm.OpcodeError
	require.True(t, errors.As(err, &oe), "%v", err)
	assert.Equal(t, vm.Cell(98), oe.Op)
	assert.Contains(t, err.Error(), "stage 0")

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = sched.RunPipeline(cctx, parse(t, amp1), []vm.Cell{0, 1}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch(t *testing.T) {
	td := []struct {
		name  string
		prog  string
		loop  bool
		best  vm.Cell
		order []vm.Cell
	}{
		{"amp1", amp1, false, 43210, []vm.Cell{4, 3, 2, 1, 0}},
		{"amp2", amp2, false, 54321, []vm.Cell{0, 1, 2, 3, 4}},
		{"amp3", amp3, false, 65210, []vm.Cell{1, 0, 4, 3, 2}},
		{"loop1", loop1, true, 139629729, []vm.Cell{9, 8, 7, 6, 5}},
		{"loop2", loop2, true, 18216, []vm.Cell{9, 7, 8, 5, 6}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			phases := []vm.Cell{0, 1, 2, 3, 4}
			if d.loop {
				phases = []vm.Cell{5, 6, 7, 8, 9}
			}
			best, order, err := sched.Search(context.Background(), parse(t, d.prog), phases, d.loop)
			require.NoError(t, err)
			assert.Equal(t, d.best, best)
			assert.Equal(t, d.order, order)
		})
	}
}

func TestSearch_errors(t *testing.T) {
	_, _, err := sched.Search(context.Background(), parse(t, amp1), nil, false)
	assert.Error(t, err)

	_, _, err = sched.Search(context.Background(), []vm.Cell{3, 0, 3, 0, 98}, []vm.Cell{1, 2, 3}, false)
	require.Error(t, err)
	assert.IsType(t, (*vm.OpcodeError)(nil), errors.Cause(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = sched.Search(ctx, parse(t, amp1), []vm.Cell{0, 1, 2}, false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPermutations(t *testing.T) {
	var all [][]vm.Cell
	sched.Permutations([]vm.Cell{1, 2, 3}, func(p []vm.Cell) bool {
		all = append(all, append([]vm.Cell(nil), p...))
		return true
	})
	assert.Equal(t, [][]vm.Cell{
		{1, 2, 3}, {1, 3, 2}, {2, 1, 3}, {2, 3, 1}, {3, 1, 2}, {3, 2, 1},
	}, all)

	n := 0
	sched.Permutations([]vm.Cell{1, 2, 3, 4}, func([]vm.Cell) bool {
		n++
		return n < 5
	})
	assert.Equal(t, 5, n)
}

// nic forwards every packet it receives to address 255 after incrementing X.
// Node 0 starts by sending (10, 20) to node 1.
const nic = `
	in [addr]
	jnz [addr] loop
	out 1
	out 10
	out 20
:loop	in [x]
	eq [x] -1 [t]
	jnz [t] loop
	in [y]
	add [x] 1 [x]
	out 255
	out [x]
	out [y]
	jz 0 loop
:addr	0
:x	0
:y	0
:t	0
`

func nicProgram(t *testing.T) []vm.Cell {
	t.Helper()
	prog, err := asm.Assemble("nic", bytes.NewBufferString(nic))
	require.NoError(t, err)
	return prog
}

func TestNetwork_firstPacket(t *testing.T) {
	n, err := sched.NewNetwork(nicProgram(t), 2)
	require.NoError(t, err)
	p, err := n.Run(context.Background(), sched.FirstPacket(255))
	require.NoError(t, err)
	assert.Equal(t, sched.Packet{Dest: 255, X: 11, Y: 20}, p)
}

func TestNetwork_nat(t *testing.T) {
	n, err := sched.NewNetwork(nicProgram(t), 2, sched.VMOptions(vm.LowMemSize(64)))
	require.NoError(t, err)
	nat := sched.NewNAT(255)
	p, err := n.Run(context.Background(), nat)
	require.NoError(t, err)
	assert.Equal(t, sched.Packet{Dest: 0, X: 12, Y: 20}, p)
	first, ok := nat.First()
	assert.True(t, ok)
	assert.Equal(t, sched.Packet{Dest: 255, X: 11, Y: 20}, first)
	assert.Equal(t, 2, nat.WakeUps())
}

func TestNetwork_errors(t *testing.T) {
	_, err := sched.NewNetwork([]vm.Cell{99}, 0)
	assert.Error(t, err)

	n, err := sched.NewNetwork(nicProgram(t), 2)
	require.NoError(t, err)
	_, err = n.Run(context.Background(), sched.FirstPacket(99))
	assert.Equal(t, sched.ErrDeadlock, err)

	n, err = sched.NewNetwork([]vm.Cell{3, 10, 99}, 3)
	require.NoError(t, err)
	_, err = n.Run(context.Background(), sched.NewNAT(255))
	assert.Equal(t, sched.ErrDeadlock, err)

	n, err = sched.NewNetwork(nicProgram(t), 2)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = n.Run(ctx, sched.FirstPacket(255))
	assert.ErrorIs(t, err, context.Canceled)

	assert.False(t, n.Send(sched.Packet{Dest: 2}))
	assert.False(t, n.Send(sched.Packet{Dest: -1}))
	assert.True(t, n.Send(sched.Packet{Dest: 1, X: 1, Y: 2}))
}
