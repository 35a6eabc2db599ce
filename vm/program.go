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

package vm

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

// Parse reads an Intcode program in text form: decimal integers separated by
// commas. White space around values is ignored, and so is a single trailing
// comma.
func Parse(r io.Reader) ([]Cell, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	fields := bytes.Split(data, []byte{','})
	if len(fields) > 1 && len(bytes.TrimSpace(fields[len(fields)-1])) == 0 {
		fields = fields[:len(fields)-1]
	}
	prog := make([]Cell, len(fields))
	for k, f := range fields {
		n, err := strconv.ParseInt(string(bytes.TrimSpace(f)), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cell %d", k)
		}
		prog[k] = Cell(n)
	}
	return prog, nil
}

// Load loads a program from file fileName.
func Load(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	prog, err := Parse(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: load failed", fileName)
	}
	return prog, nil
}

// Format writes prog to w in the text form accepted by Parse, followed by a
// newline.
func Format(w io.Writer, prog []Cell) error {
	ew := ici.NewErrWriter(w)
	for k, v := range prog {
		if k > 0 {
			ew.Write([]byte{','})
		}
		ew.WriteInt(int64(v))
	}
	ew.Write([]byte{'\n'})
	return ew.Err
}

// Save saves prog to file fileName in text form.
func Save(fileName string, prog []Cell) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if e := w.Flush(); err == nil && e != nil {
			err = errors.Wrap(e, "write failed")
		}
		f.Close()
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	return errors.Wrap(Format(w, prog), "save failed")
}
