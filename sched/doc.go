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

// Package sched drives groups of Intcode machines that talk to each other.
//
// All drivers are built on the public API of package vm: each machine is
// stepped until it halts or blocks on input, then the driver moves values
// between output queues and input producers and switches to the next machine.
// Everything runs on the calling goroutine, except for Search which evaluates
// candidates in parallel.
//
// Two topologies are provided:
//
// A Pipeline is a chain of machines running the same program where each stage
// reads the output of the previous one. With the Loop option, the first stage
// also reads the output of the last one, forming a feedback loop.
//
// A Network is a set of machines that exchange packets of three values:
// destination address, X and Y. Packets sent to addresses outside the network
// are handed to a Monitor which decides when to stop.
//
// Library code logs through github.com/tliron/commonlog under the
// "intcode.sched" name. Nothing is output until a backend is configured.
package sched
