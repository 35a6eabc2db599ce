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
	"runtime"
	"sync"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Permutations calls fn for each permutation of v, in lexicographic order of
// the indices of v. fn must not retain its argument. If fn returns false,
// Permutations stops.
func Permutations(v []vm.Cell, fn func([]vm.Cell) bool) {
	n := len(v)
	idx := make([]int, n)
	for k := range idx {
		idx[k] = k
	}
	p := make([]vm.Cell, n)
	for {
		for k, x := range idx {
			p[k] = v[x]
		}
		if !fn(p) {
			return
		}
		// next permutation of idx
		k := n - 2
		for k >= 0 && idx[k] >= idx[k+1] {
			k--
		}
		if k < 0 {
			return
		}
		l := n - 1
		for idx[l] <= idx[k] {
			l--
		}
		idx[k], idx[l] = idx[l], idx[k]
		for a, b := k+1, n-1; a < b; a, b = a+1, b-1 {
			idx[a], idx[b] = idx[b], idx[a]
		}
	}
}

// Search runs a pipeline for every permutation of phases with a seed of 0 and
// returns the largest signal and the phase order that produced it. When
// several orders produce the same signal, the first one in lexicographic order
// of phase values wins.
//
// Pipelines are evaluated concurrently, at most runtime.NumCPU at a time. The
// first error cancels the search.
func Search(ctx context.Context, program, phases []vm.Cell, loop bool, opts ...Option) (best vm.Cell, order []vm.Cell, err error) {
	if len(phases) == 0 {
		return 0, nil, errors.New("search: no phases")
	}
	if loop {
		opts = append(opts[:len(opts):len(opts)], Loop())
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var mu sync.Mutex
	Permutations(phases, func(p []vm.Cell) bool {
		if gctx.Err() != nil {
			return false
		}
		p = slices.Clone(p)
		g.Go(func() error {
			s, err := RunPipeline(gctx, program, p, 0, opts...)
			if err != nil {
				return errors.Wrapf(err, "search: phases %v", p)
			}
			mu.Lock()
			defer mu.Unlock()
			if order == nil || s > best || s == best && slices.Compare(p, order) < 0 {
				best, order = s, p
			}
			return nil
		})
		return true
	})
	if err = g.Wait(); err != nil {
		return 0, nil, err
	}
	if err = ctx.Err(); err != nil {
		return 0, nil, err
	}
	log.Infof("search: best signal %d for phases %v", best, order)
	return best, order, nil
}
