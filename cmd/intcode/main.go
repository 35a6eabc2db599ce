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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	"github.com/urfave/cli/v2"

	_ "github.com/tliron/commonlog/simple"
)

var (
	log = commonlog.GetLogger("intcode")

	// Global flags.
	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "load defaults from TOML `file`",
		EnvVars: []string{"INTCODE_CONFIG"},
	}
	verboseFlag = &cli.IntFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log verbosity (1 = info, 2 = debug)",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "print stack traces and machine state on errors",
	}

	// Machine flags.
	memFlag = &cli.IntFlag{
		Name:  "mem",
		Usage: "size of contiguous memory in `cells`",
		Value: vm.DefaultLowMemSize,
	}
	setFlag = &cli.StringSliceFlag{
		Name:  "set",
		Usage: "patch memory before running, as `addr=value` (can be repeated)",
	}

	// run flags.
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "comma separated `values` fed before reading stdin",
	}
	asciiFlag = &cli.BoolFlag{
		Name:  "ascii",
		Usage: "read stdin as text and print output values in the ASCII range as text",
	}
	rawFlag = &cli.BoolFlag{
		Name:  "raw",
		Usage: "switch the terminal to raw mode in ASCII mode",
	}
	traceFlag = &cli.BoolFlag{
		Name:  "trace",
		Usage: "disassemble each instruction to stderr before executing it",
	}
	dumpFlag = &cli.BoolFlag{
		Name:  "dump",
		Usage: "dump the machine state to stdout after the run",
	}

	// pipeline flags.
	phasesFlag = &cli.StringFlag{
		Name:  "phases",
		Usage: "comma separated phase `settings`, one per stage",
		Value: "0,1,2,3,4",
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "input signal of the first stage",
	}
	loopFlag = &cli.BoolFlag{
		Name:  "loop",
		Usage: "feed the output of the last stage back to the first one",
	}
	searchFlag = &cli.BoolFlag{
		Name:  "search",
		Usage: "try all permutations of phases and report the best one",
	}

	// network flags.
	sizeFlag = &cli.IntFlag{
		Name:  "size",
		Usage: "number of nodes",
		Value: 50,
	}
	addrFlag = &cli.Int64Flag{
		Name:  "addr",
		Usage: "monitor `address`",
		Value: 255,
	}
	natFlag = &cli.BoolFlag{
		Name:  "nat",
		Usage: "run a NAT on the monitor address instead of stopping on the first packet",
	}

	// asm flags.
	outFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write the program to `file` instead of stdout",
	}
	baseFlag = &cli.IntFlag{
		Name:  "base",
		Usage: "address of the first cell in listings",
	}
)

// parseValues parses a comma separated list of values.
func parseValues(s string) ([]vm.Cell, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return vm.Parse(strings.NewReader(s))
}

// parseAssign parses a memory patch of the form addr=value.
func parseAssign(s string) (addr, v vm.Cell, err error) {
	a, b, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, errors.Errorf("invalid assignment %q: missing '='", s)
	}
	x, err := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
	if err != nil || x < 0 {
		return 0, 0, errors.Errorf("invalid address in %q", s)
	}
	y, err := strconv.ParseInt(strings.TrimSpace(b), 10, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid value in %q", s)
	}
	return vm.Cell(x), vm.Cell(y), nil
}

// app holds the state shared by all commands.
type app struct {
	cfg Config
}

func (a *app) before(c *cli.Context) error {
	if fn := c.String(configFlag.Name); fn != "" {
		if err := loadConfig(fn, &a.cfg); err != nil {
			return err
		}
	}
	if c.IsSet(verboseFlag.Name) {
		a.cfg.Verbose = c.Int(verboseFlag.Name)
	}
	if c.IsSet(debugFlag.Name) {
		a.cfg.Debug = c.Bool(debugFlag.Name)
	}
	commonlog.Configure(a.cfg.Verbose, nil)
	return nil
}

// memSize returns the low memory size from flags or config.
func (a *app) memSize(c *cli.Context) int {
	if c.IsSet(memFlag.Name) || a.cfg.Memory == 0 {
		return c.Int(memFlag.Name)
	}
	return a.cfg.Memory
}

func (a *app) boolOpt(c *cli.Context, f *cli.BoolFlag, def bool) bool {
	if c.IsSet(f.Name) {
		return c.Bool(f.Name)
	}
	return def
}

// load loads the program named by the first argument of the command.
func load(c *cli.Context) ([]vm.Cell, error) {
	if c.NArg() != 1 {
		return nil, errors.Errorf("%s: expected exactly one program file", c.Command.Name)
	}
	return vm.Load(c.Args().First())
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	a := new(app)
	return &cli.App{
		Name:      "intcode",
		Usage:     "run, assemble and disassemble Intcode programs",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     []cli.Flag{configFlag, verboseFlag, debugFlag},
		Before:    a.before,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run a program",
				ArgsUsage: "<program>",
				Flags:     []cli.Flag{memFlag, setFlag, inputFlag, asciiFlag, rawFlag, traceFlag, dumpFlag},
				Action:    a.run,
			},
			{
				Name:      "asm",
				Usage:     "assemble a source file",
				ArgsUsage: "<source>",
				Flags:     []cli.Flag{outFlag},
				Action:    a.assemble,
			},
			{
				Name:      "disasm",
				Usage:     "disassemble a program",
				ArgsUsage: "<program>",
				Flags:     []cli.Flag{baseFlag},
				Action:    a.disassemble,
			},
			{
				Name:      "pipeline",
				Usage:     "run a chain of amplifiers",
				ArgsUsage: "<program>",
				Flags:     []cli.Flag{memFlag, phasesFlag, seedFlag, loopFlag, searchFlag},
				Action:    a.pipeline,
			},
			{
				Name:      "network",
				Usage:     "run a packet network",
				ArgsUsage: "<program>",
				Flags:     []cli.Flag{memFlag, sizeFlag, addrFlag, natFlag},
				Action:    a.network,
			},
		},
	}
}

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
}
