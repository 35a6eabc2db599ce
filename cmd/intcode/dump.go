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

package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/db47h/intcode/vm"
	"github.com/urfave/cli/v2"
)

// state is the part of a machine shown in debug reports.
type state struct {
	PC, RB       vm.Cell
	Instructions int64
	Waiting      bool
	Halted       bool
	Output       []vm.Cell
}

// report prints a stack trace and the state of i to stderr if err is not nil
// and debugging is enabled. It returns err.
func (a *app) report(c *cli.Context, i *vm.Instance, err error) error {
	if err == nil || !a.cfg.Debug {
		return err
	}
	w := c.App.ErrWriter
	fmt.Fprintf(w, "\n%+v\n", err)
	if i == nil {
		return err
	}
	cfg := spew.ConfigState{Indent: "\t", DisablePointerAddresses: true, SortKeys: true}
	cfg.Fdump(w, state{
		PC:           i.PC,
		RB:           i.RB,
		Instructions: i.InstructionCount(),
		Waiting:      i.Waiting(),
		Halted:       i.Halted(),
		Output:       i.Output().Values(),
	})
	i.Dump(w)
	return err
}
