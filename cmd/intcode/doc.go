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

// The intcode command line tool runs, assembles and disassembles Intcode
// programs, and drives groups of machines with the package
// github.com/db47h/intcode/sched.
//
// Usage:
//
//	intcode [global options] command [command options] <file>
//
// Global options:
//
//	--config file
//		  load defaults from a TOML file (env INTCODE_CONFIG)
//	--verbose value, -v value
//		  log verbosity (1 = info, 2 = debug)
//	--debug
//		  print stack traces and machine state on errors
//
// Commands:
//
//	run       run a program
//	asm       assemble a source file
//	disasm    disassemble a program
//	pipeline  run a chain of amplifiers
//	network   run a packet network
//
// run: the program reads the values given with --input first, then reads
// values from stdin, separated by commas or white space. Output values are
// printed one per line. With --ascii, stdin is read as text and output values
// in the ASCII range are printed as text. --raw switches the terminal to
// character at a time input in ASCII mode; CTRL-D then ends input. --set
// addr=value patches memory before running and can be repeated. --trace prints
// each instruction to stderr before executing it, and --dump prints the machine
// registers and memory to stdout after a successful run.
//
// pipeline: runs one machine per phase setting given with --phases, each stage
// reading the output of the previous one. The first stage reads --seed after
// its phase. --loop feeds the output of the last stage back to the first one.
// With --search, all permutations of the phase settings are tried and the best
// signal is printed along with the phase order.
//
// network: runs --size machines that exchange packets. Without --nat, the Y
// value of the first packet sent to --addr is printed. With --nat, the first Y
// value received by the NAT and the first Y value it delivers twice in a row
// are printed.
//
// asm: see package github.com/db47h/intcode/asm for the source syntax. The
// assembled program is written to stdout, or to the file given with -o.
//
// The configuration file may set the keys memory, verbose, raw, ascii and
// debug. Command line options take precedence.
package main
