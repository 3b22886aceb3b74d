// Copyright 2023 Paolo Fabio Zaino
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

package oracle

import (
	"fmt"
	"strconv"
)

// Parse parses an expression with a precedence climbing parser and returns
// its tree. It shares no code with the evaluator it is used to check.
func Parse(s string) (Node, error) {
	p := &parser{input: s}
	n, err := p.binary(1)
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	return n, nil
}

type parser struct {
	input string
	pos   int
}

func precedence(op string) int {
	switch op {
	case EqOp:
		return 1
	case AddOp, SubOp:
		return 2
	case MulOp, DivOp:
		return 3
	}
	return 0
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

// peekOp returns the operator at the cursor, "" if there is none.
func (p *parser) peekOp() string {
	p.skipSpaces()
	rest := p.input[p.pos:]
	if len(rest) >= 2 && rest[:2] == EqOp {
		return EqOp
	}
	if len(rest) >= 1 && precedence(rest[:1]) > 0 {
		return rest[:1]
	}
	return ""
}

// binary parses a chain of operations binding at least as tight as minPrec.
// The right operand is parsed one level tighter, which makes every operator
// left associative.
func (p *parser) binary(minPrec int) (Node, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peekOp()
		prec := precedence(op)
		if prec == 0 || prec < minPrec {
			return left, nil
		}
		p.pos += len(op)
		right, err := p.binary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Op: op, Left: left, Right: right}
	}
}

func (p *parser) primary() (Node, error) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("unexpected end of expression")
	}

	if p.input[p.pos] == '(' {
		p.pos++
		inner, err := p.binary(1)
		if err != nil {
			return nil, err
		}
		p.skipSpaces()
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return nil, fmt.Errorf("missing ')' at position %d", p.pos)
		}
		p.pos++
		return &Paren{X: inner}, nil
	}

	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return nil, fmt.Errorf("expected a number at position %d", start)
	}
	v, err := strconv.ParseUint(p.input[start:p.pos], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad number %q: %w", p.input[start:p.pos], err)
	}
	return Literal(v), nil
}
