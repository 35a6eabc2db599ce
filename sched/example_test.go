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
	"context"
	"fmt"

	"github.com/db47h/intcode/sched"
	"github.com/db47h/intcode/vm"
)

func ExampleSearch() {
	// reads a phase and an input signal, outputs input*10 + phase
	prog := []vm.Cell{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}

	best, order, err := sched.Search(context.Background(), prog, []vm.Cell{0, 1, 2, 3, 4}, false)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(best, order)

	// Output:
	// 43210 [4 3 2 1 0]
}
