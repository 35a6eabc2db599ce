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
	"os"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/sched"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func (a *app) assemble(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("asm: expected exactly one source file")
	}
	name := c.Args().First()
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "asm")
	}
	defer f.Close()
	prog, err := asm.Assemble(name, f)
	if err != nil {
		return err
	}
	if out := c.String(outFlag.Name); out != "" {
		return vm.Save(out, prog)
	}
	return vm.Format(c.App.Writer, prog)
}

func (a *app) disassemble(c *cli.Context) error {
	prog, err := load(c)
	if err != nil {
		return err
	}
	return asm.DisassembleAll(prog, c.Int(baseFlag.Name), c.App.Writer)
}

func (a *app) vmOptions(c *cli.Context) sched.Option {
	return sched.VMOptions(vm.LowMemSize(a.memSize(c)))
}

func (a *app) pipeline(c *cli.Context) error {
	prog, err := load(c)
	if err != nil {
		return err
	}
	phases, err := parseValues(c.String(phasesFlag.Name))
	if err != nil {
		return errors.Wrap(err, "--phases")
	}
	ctx := c.Context
	loop := c.Bool(loopFlag.Name)
	if c.Bool(searchFlag.Name) {
		best, order, err := sched.Search(ctx, prog, phases, loop, a.vmOptions(c))
		if err != nil {
			return a.report(c, nil, err)
		}
		fmt.Fprintln(c.App.Writer, best, order)
		return nil
	}
	opts := []sched.Option{a.vmOptions(c)}
	if loop {
		opts = append(opts, sched.Loop())
	}
	s, err := sched.RunPipeline(ctx, prog, phases, vm.Cell(c.Int64(seedFlag.Name)), opts...)
	if err != nil {
		return a.report(c, nil, err)
	}
	fmt.Fprintln(c.App.Writer, s)
	return nil
}

func (a *app) network(c *cli.Context) error {
	prog, err := load(c)
	if err != nil {
		return err
	}
	n, err := sched.NewNetwork(prog, c.Int(sizeFlag.Name), a.vmOptions(c))
	if err != nil {
		return err
	}
	ctx := c.Context
	addr := vm.Cell(c.Int64(addrFlag.Name))
	if !c.Bool(natFlag.Name) {
		p, err := n.Run(ctx, sched.FirstPacket(addr))
		if err != nil {
			return a.report(c, nil, err)
		}
		fmt.Fprintln(c.App.Writer, p.Y)
		return nil
	}
	nat := sched.NewNAT(addr)
	p, err := n.Run(ctx, nat)
	if err != nil {
		return a.report(c, nil, err)
	}
	first, _ := nat.First()
	fmt.Fprintln(c.App.Writer, first.Y)
	fmt.Fprintln(c.App.Writer, p.Y)
	log.Infof("NAT woke up the network %d times", nat.WakeUps())
	return nil
}
