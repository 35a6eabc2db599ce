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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(stdin string, args ...string) (stdout, stderr string, err error) {
	var o, e bytes.Buffer
	err = newApp(strings.NewReader(stdin), &o, &e).Run(append([]string{"intcode"}, args...))
	return o.String(), e.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(content), 0o644))
	return fn
}

func TestParseAssign(t *testing.T) {
	a, v, err := parseAssign("1 = -12")
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(1), a)
	assert.Equal(t, vm.Cell(-12), v)

	for _, s := range []string{"12", "-1=3", "x=1", "1=y", "="} {
		_, _, err = parseAssign(s)
		assert.Error(t, err, s)
	}
}

func TestParseValues(t *testing.T) {
	v, err := parseValues(" 1, -2,3 ")
	require.NoError(t, err)
	assert.Equal(t, []vm.Cell{1, -2, 3}, v)
	v, err = parseValues("")
	require.NoError(t, err)
	assert.Empty(t, v)
	_, err = parseValues("1,,2")
	assert.Error(t, err)
}

func TestConsole_read(t *testing.T) {
	c := newConsole(strings.NewReader("1, 2\n-3\t4,"), io.Discard, false, false)
	var got []vm.Cell
	for {
		v, err := c.read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []vm.Cell{1, 2, -3, 4}, got)

	c = newConsole(strings.NewReader("a\x04b"), io.Discard, true, true)
	v, err := c.read()
	require.NoError(t, err)
	assert.Equal(t, vm.Cell('a'), v)
	_, err = c.read()
	assert.Equal(t, io.EOF, err)
}

func TestLoadConfig(t *testing.T) {
	var cfg Config
	fn := writeFile(t, "cfg.toml", "memory = 16\nverbose = 2\nascii = true\n")
	require.NoError(t, loadConfig(fn, &cfg))
	assert.Equal(t, Config{Memory: 16, Verbose: 2, ASCII: true}, cfg)

	fn = writeFile(t, "bad.toml", "memroy = 16\n")
	err := loadConfig(fn, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memroy")

	fn = writeFile(t, "neg.toml", "memory = -1\n")
	assert.Error(t, loadConfig(fn, &cfg))

	assert.Error(t, loadConfig(filepath.Join(t.TempDir(), "none.toml"), &cfg))
}

func TestRun(t *testing.T) {
	echo := writeFile(t, "echo.ic", "3,0,4,0,99\n")

	out, _, err := runApp("42\n", "run", echo)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)

	out, _, err = runApp("", "run", "--input", "7", echo)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)

	_, _, err = runApp("", "run", echo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")

	_, _, err = runApp("x\n", "run", echo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input value")

	twice := writeFile(t, "twice.ic", "3,0,4,0,4,0,104,1000,99")
	out, _, err = runApp("A", "run", "--ascii", twice)
	require.NoError(t, err)
	assert.Equal(t, "AA1000\n", out)

	cfg := writeFile(t, "cfg.toml", "ascii = true\n")
	out, _, err = runApp("B", "--config", cfg, "run", twice)
	require.NoError(t, err)
	assert.Equal(t, "BB1000\n", out)

	_, _, err = runApp("", "run")
	assert.Error(t, err)
}

func TestRun_dump(t *testing.T) {
	prog := writeFile(t, "add.ic", "1,0,0,3,2,3,11,0,99,30,40,50")
	out, _, err := runApp("", "run", "--set", "1=9", "--set", "2=10", "--dump", prog)
	require.NoError(t, err)
	assert.Equal(t, "8 0\n3500,9,10,70,2,3,11,0,99,30,40,50\n", out)

	_, _, err = runApp("", "run", "--set", "-1=0", prog)
	assert.Error(t, err)
}

func TestRun_trace(t *testing.T) {
	prog := writeFile(t, "out.ic", "104,5,99")
	out, errOut, err := runApp("", "run", "--trace", prog)
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
	assert.Contains(t, errOut, "0\tout 5\n")
	assert.Contains(t, errOut, "2\thlt\n")
}

func TestRun_debug(t *testing.T) {
	prog := writeFile(t, "bad.ic", "104,1,98")
	_, errOut, err := runApp("", "--debug", "run", prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid opcode 98")
	assert.Contains(t, errOut, "Instructions")
	assert.Contains(t, errOut, "2 0\n104,1,98\n")

	_, errOut, err = runApp("", "run", prog)
	require.Error(t, err)
	assert.Empty(t, errOut)
}

func TestAsm(t *testing.T) {
	src := writeFile(t, "prog.ics", "out 1 ( one )\nhlt\n")
	out, _, err := runApp("", "asm", src)
	require.NoError(t, err)
	assert.Equal(t, "104,1,99\n", out)

	dst := filepath.Join(t.TempDir(), "prog.ic")
	_, _, err = runApp("", "asm", "-o", dst, src)
	require.NoError(t, err)
	prog, err := vm.Load(dst)
	require.NoError(t, err)
	assert.Equal(t, []vm.Cell{104, 1, 99}, prog)

	out, _, err = runApp("", "disasm", dst)
	require.NoError(t, err)
	assert.Equal(t, "         0\tout 1\n         2\thlt\n", out)

	bad := writeFile(t, "bad.ics", "add 1 2\n")
	_, _, err = runApp("", "asm", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing operand for add")
}

func TestPipeline(t *testing.T) {
	amp := writeFile(t, "amp.ic", "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0")
	out, _, err := runApp("", "pipeline", "--phases", "4,3,2,1,0", amp)
	require.NoError(t, err)
	assert.Equal(t, "43210\n", out)

	out, _, err = runApp("", "pipeline", "--search", amp)
	require.NoError(t, err)
	assert.Equal(t, "43210 [4 3 2 1 0]\n", out)

	loop := writeFile(t, "loop.ic", "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5")
	out, _, err = runApp("", "pipeline", "--loop", "--phases", "9,8,7,6,5", loop)
	require.NoError(t, err)
	assert.Equal(t, "139629729\n", out)
}

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

func TestNetwork(t *testing.T) {
	src := writeFile(t, "nic.ics", nic)
	prog := filepath.Join(t.TempDir(), "nic.ic")
	_, _, err := runApp("", "asm", "-o", prog, src)
	require.NoError(t, err)

	out, _, err := runApp("", "network", "--size", "2", prog)
	require.NoError(t, err)
	assert.Equal(t, "20\n", out)

	out, _, err = runApp("", "network", "--size", "2", "--nat", prog)
	require.NoError(t, err)
	assert.Equal(t, "20\n20\n", out)

	_, _, err = runApp("", "network", "--size", "2", "--addr", "99", prog)
	assert.Error(t, err)
}
