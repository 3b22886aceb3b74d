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

// Package oracle generates random expressions together with independently
// computed results, and reads and writes them as test fixtures of the form
// "<expected_unsigned_result> <expression>".
package oracle

import (
	"math/rand"
	"strconv"
	"strings"
)

// Operators understood by the parser and the references. The generator
// never produces EqOp.
const (
	AddOp = "+"
	SubOp = "-"
	MulOp = "*"
	DivOp = "/"
	EqOp  = "=="
)

// Node is a node of a generated expression tree. String returns the
// expression text without spaces.
type Node interface {
	String() string
}

// Literal is a non-negative integer literal.
type Literal uint64

func (l Literal) String() string {
	return strconv.FormatUint(uint64(l), 10)
}

// Paren is a parenthesised sub-expression.
type Paren struct {
	X Node
}

func (p *Paren) String() string {
	return "(" + p.X.String() + ")"
}

// BinaryOp is a binary operation between two nodes.
type BinaryOp struct {
	Op    string
	Left  Node
	Right Node
}

func (b *BinaryOp) String() string {
	return b.Left.String() + b.Op + b.Right.String()
}

// Render returns the expression text of n. When rnd is not nil up to two
// spaces are inserted at random around every token.
func Render(n Node, rnd *rand.Rand) string {
	var sb strings.Builder
	render(&sb, n, rnd)
	return sb.String()
}

func render(sb *strings.Builder, n Node, rnd *rand.Rand) {
	space := func() {
		if rnd != nil {
			sb.WriteString(strings.Repeat(" ", rnd.Intn(3)))
		}
	}
	switch n := n.(type) {
	case Literal:
		sb.WriteString(n.String())
	case *Paren:
		sb.WriteByte('(')
		space()
		render(sb, n.X, rnd)
		space()
		sb.WriteByte(')')
	case *BinaryOp:
		render(sb, n.Left, rnd)
		space()
		sb.WriteString(n.Op)
		space()
		render(sb, n.Right, rnd)
	}
}

// fullyParenthesized renders n with every operation in its own parentheses,
// so the reader does not need to know precedence or associativity.
func fullyParenthesized(n Node) string {
	switch n := n.(type) {
	case *Paren:
		return fullyParenthesized(n.X)
	case *BinaryOp:
		return "(" + fullyParenthesized(n.Left) + " " + n.Op + " " + fullyParenthesized(n.Right) + ")"
	}
	return n.String()
}
