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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// ctrlD is read as end of input on a raw terminal.
const ctrlD = 4

// console moves values between a machine and the standard streams.
type console struct {
	in    *bufio.Reader
	vals  *bufio.Scanner
	out   *bufio.Writer
	ascii bool
	raw   bool
}

func newConsole(r io.Reader, w io.Writer, asciiMode, raw bool) *console {
	c := &console{
		in:    bufio.NewReader(r),
		out:   bufio.NewWriter(w),
		ascii: asciiMode,
		raw:   raw,
	}
	c.vals = bufio.NewScanner(c.in)
	c.vals.Split(scanValues)
	return c
}

func isSep(b byte) bool {
	return b == ',' || b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// scanValues is a bufio.SplitFunc for values separated by commas or white
// space.
func scanValues(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSep(data[start]) {
		start++
	}
	for k := start; k < len(data); k++ {
		if isSep(data[k]) {
			return k + 1, data[start:k], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

// flush writes pending output of i.
func (c *console) flush(i *vm.Instance) error {
	if c.ascii {
		rest, err := ascii.Copy(c.out, i)
		if err != nil {
			return err
		}
		for _, v := range rest {
			c.out.WriteString(strconv.FormatInt(int64(v), 10))
			c.out.WriteByte('\n')
		}
	} else {
		for _, v := range i.TakeOutput() {
			c.out.WriteString(strconv.FormatInt(int64(v), 10))
			c.out.WriteByte('\n')
		}
	}
	return c.out.Flush()
}

func (c *console) read() (vm.Cell, error) {
	if c.ascii {
		b, err := c.in.ReadByte()
		if err != nil {
			return 0, err
		}
		if c.raw && b == ctrlD {
			return 0, io.EOF
		}
		return vm.Cell(b), nil
	}
	if !c.vals.Scan() {
		if err := c.vals.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	v, err := strconv.ParseInt(c.vals.Text(), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "invalid input value")
	}
	return vm.Cell(v), nil
}

// input is the InputFunc reading from stdin. Pending output is written before
// reading so that interactive programs can prompt the user. Read errors are
// fatal to the machine.
func (c *console) input(i *vm.Instance) (vm.Cell, bool) {
	if err := c.flush(i); err != nil {
		panic(errors.Wrap(err, "write output"))
	}
	v, err := c.read()
	if err != nil {
		panic(errors.Wrap(err, "read input"))
	}
	return v, true
}

func (a *app) newInstance(c *cli.Context, prog []vm.Cell) (*vm.Instance, error) {
	i, err := vm.New(prog, vm.LowMemSize(a.memSize(c)))
	if err != nil {
		return nil, err
	}
	for _, s := range c.StringSlice(setFlag.Name) {
		addr, v, err := parseAssign(s)
		if err != nil {
			return nil, err
		}
		i.Write(addr, v)
	}
	return i, nil
}

// trace runs i one step at a time, disassembling each instruction to w.
func trace(i *vm.Instance, in vm.InputFunc, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	buf := make([]vm.Cell, vm.MaxParams+1)
	for {
		if i.PC >= 0 {
			for k := range buf {
				buf[k] = i.Read(i.PC + vm.Cell(k))
			}
			fmt.Fprintf(ew, "% 10d\t", i.PC)
			asm.Disassemble(buf, 0, ew)
			ew.Write([]byte{'\n'})
			if ew.Err != nil {
				return ew.Err
			}
		}
		halted, err := i.Step(in)
		if err != nil || halted {
			return err
		}
	}
}

func (a *app) run(c *cli.Context) (err error) {
	prog, err := load(c)
	if err != nil {
		return err
	}
	i, err := a.newInstance(c, prog)
	if err != nil {
		return err
	}
	defer func() { err = a.report(c, i, err) }()

	asciiMode := a.boolOpt(c, asciiFlag, a.cfg.ASCII)
	raw := false
	if asciiMode && a.boolOpt(c, rawFlag, a.cfg.Raw) {
		if f, ok := c.App.Reader.(*os.File); ok {
			tearDown, err := setRawIO(f)
			if err != nil {
				log.Warningf("raw mode: %v", err)
			} else {
				raw = true
				defer tearDown()
			}
		}
	}
	con := newConsole(c.App.Reader, c.App.Writer, asciiMode, raw)
	values, err := parseValues(c.String(inputFlag.Name))
	if err != nil {
		return errors.Wrap(err, "--input")
	}
	in := vm.Chain(vm.Values(values...), con.input)

	if c.Bool(traceFlag.Name) {
		err = trace(i, in, c.App.ErrWriter)
	} else {
		err = i.Run(in)
	}
	if ferr := con.flush(i); err == nil {
		err = ferr
	}
	if err == nil && c.Bool(dumpFlag.Name) {
		err = i.Dump(c.App.Writer)
	}
	log.Infof("%d instructions executed", i.InstructionCount())
	return err
}
