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

package asm_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
)

// Shows how to assemble a program, disassemble it and run it.
func ExampleAssemble() {
	code := `
		.equ START 3
	:loop	out [count]		( print count )
		add [count] -1 [count]	( decrement )
		jnz [count] loop
		hlt
	:count	START
	`

	prog, err := asm.Assemble("raw_string", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}

	asm.DisassembleAll(prog, 0, os.Stdout)

	i, _ := vm.New(prog)
	if err = i.RunNoInput(); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(i.TakeOutput())

	// Output:
	//          0	out [10]
	//          2	add [10] -1 [10]
	//          6	jnz [10] 0
	//          9	hlt
	//         10	.dat 3
	// [3 2 1]
}
