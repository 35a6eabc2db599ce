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

package asm

import (
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

func isLabelName(s string) bool {
	if s == "" {
		return false
	}
	c := rune(s[0])
	return c == '_' || unicode.IsLetter(c)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type parser struct {
	i      []vm.Cell
	pc     int
	size   int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]vm.Cell
	errs   ErrAsm
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]vm.Cell)
	return p
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, ErrEntry{pos, msg})
	}
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 4096)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) useLabel(name string, pos scanner.Position) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{labelSite{pos, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

// next returns the next token, skipping comments. ok is false at EOF.
func (p *parser) next() (s string, pos scanner.Position, ok bool) {
	for {
		tok := p.s.Scan()
		if tok == scanner.EOF {
			return "", p.s.Position, false
		}
		s, pos = p.s.TokenText(), p.s.Position
		if tok != scanner.Ident {
			p.error(pos, "Unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		if s != "(" {
			return s, pos, true
		}
		for tok = p.s.Scan(); tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
		}
		if tok == scanner.EOF {
			p.error(pos, "Unterminated comment")
		}
	}
}

// value converts an integer literal, char literal or constant.
func (p *parser) value(s string, pos scanner.Position) (vm.Cell, bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			p.error(pos, "Invalid character literal "+s)
			return 0, true
		}
		return vm.Cell(r), true
	}
	if v, ok := p.consts[s]; ok {
		return v, true
	}
	return 0, false
}

// ref compiles a value or label reference.
func (p *parser) ref(s string, pos scanner.Position) {
	if v, ok := p.value(s, pos); ok {
		p.write(v)
		return
	}
	if !isLabelName(s) {
		p.error(pos, "Invalid value or label "+s)
		p.write(0)
		return
	}
	p.useLabel(s, pos)
	p.write(0)
}

// operand compiles an instruction operand and returns its mode.
func (p *parser) operand(s string, pos scanner.Position) vm.Mode {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		p.ref(s, pos)
		return vm.ModeImmediate
	}
	in := s[1 : len(s)-1]
	if in != "rb" && !strings.HasPrefix(in, "rb+") && !strings.HasPrefix(in, "rb-") {
		p.ref(in, pos)
		return vm.ModePosition
	}
	var off vm.Cell
	if len(in) > 2 {
		v, ok := p.value(in[3:], pos)
		if !ok {
			p.error(pos, "Invalid relative offset "+s)
		}
		if in[2] == '-' {
			v = -v
		}
		off = v
	}
	p.write(off)
	return vm.ModeRelative
}

func (p *parser) instruction(op vm.Cell, name string, pos scanner.Position) {
	at := p.pc
	p.write(op)
	modes := vm.Cell(100)
	n := vm.Arity(op)
	for k := 0; k < n; k++ {
		s, apos, ok := p.next()
		if !ok {
			p.error(pos, "Missing operand for "+name)
			return
		}
		switch {
		case s[0] == ':' || s[0] == '.':
			p.error(apos, "Unexpected "+s+" as operand")
		case opcodeIndex[s] != 0:
			p.error(apos, "Unexpected opcode as operand: "+s)
		}
		op += vm.Cell(p.operand(s, apos)) * modes
		modes *= 10
	}
	p.i[at] = op
}

// directive argument that must be a value.
func (p *parser) directiveValue(dir string) (vm.Cell, bool) {
	s, pos, ok := p.next()
	if !ok {
		p.error(p.s.Position, dir+": missing argument")
		return 0, false
	}
	v, ok := p.value(s, pos)
	if !ok {
		p.error(pos, dir+": expected integer or constant, got "+s)
	}
	return v, ok
}

func (p *parser) directive(s string, pos scanner.Position) {
	switch s {
	case ".org":
		if v, ok := p.directiveValue(s); ok {
			if v < 0 {
				p.error(pos, ".org: negative address")
				return
			}
			p.pc = int(v)
		}
	case ".dat":
		a, apos, ok := p.next()
		if !ok {
			p.error(pos, ".dat: missing argument")
			return
		}
		p.ref(a, apos)
	case ".equ":
		name, npos, ok := p.next()
		if !ok {
			p.error(pos, ".equ: missing identifier")
			return
		}
		if l, ok := p.labels[name]; ok {
			p.error(npos, ".equ: redefinition of "+name+", previously defined/used as a label here: "+l.pos.String())
		}
		if v, ok := p.directiveValue(s); ok {
			p.consts[name] = v
		}
	default:
		p.error(pos, "Unknown dot directive: "+s)
	}
}

func (p *parser) define(s string, pos scanner.Position) {
	n := s[1:]
	if !isLabelName(n) {
		p.error(pos, "Invalid label name: "+s)
		return
	}
	if _, ok := p.consts[n]; ok {
		p.error(pos, "Label redefinition: "+n+", previously defined as a constant")
		return
	}
	if l, ok := p.labels[n]; ok {
		if l.address != -1 {
			p.error(pos, "Label redefinition: "+n+", previous definition here: "+l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = pos
		return
	}
	p.labels[n] = &label{labelSite{pos, p.pc}, nil}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) error {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for s, pos, ok := p.next(); ok; s, pos, ok = p.next() {
		switch {
		case s[0] == ':':
			p.define(s, pos)
		case s[0] == '.':
			p.directive(s, pos)
		default:
			if op, ok := opcodeIndex[s]; ok {
				p.instruction(op, s, pos)
				break
			}
			p.ref(s, pos)
		}
	}

	// write labels
	for n, l := range p.labels {
		if l.address == -1 {
			p.error(l.uses[0].pos, "Undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}
