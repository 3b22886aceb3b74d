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
	"math/rand"
)

// DefaultMaxLiteral matches the range of the C library rand().
const DefaultMaxLiteral = 2147483647

// divisorAttempts is how many times a zero divisor is regenerated before the
// division is turned into an addition.
const divisorAttempts = 4

// A Generator generates random expressions from the grammar
//
//	expr := number | (expr) | expr op expr
//
// Every parenthesis and every operation consumes one unit of a depth budget
// shared by the whole expression; once MaxDepth units are used only numbers
// are produced.
//
// The generated tree only describes the text: "expr op expr" is printed
// without parentheses, so its meaning is the one of the printed text under
// the usual precedence rules. Use Parse on the text to get the tree the
// references compute.
type Generator struct {
	// MaxDepth bounds the expression size.
	MaxDepth int

	// MaxLiteral is the largest literal generated.
	// If this is 0, DefaultMaxLiteral is used.
	MaxLiteral uint32

	// WordSize is used to detect zero divisors.
	// If this is 0, 32 is used.
	WordSize int

	rnd   *rand.Rand
	depth int
}

// NewGenerator returns a Generator seeded with seed.
func NewGenerator(seed int64, maxDepth int) *Generator {
	return &Generator{
		MaxDepth: maxDepth,
		rnd:      rand.New(rand.NewSource(seed)), // #nosec G404 // test fixtures, not secrets
	}
}

// Rand returns the generator random source.
func (g *Generator) Rand() *rand.Rand {
	return g.rnd
}

// Generate generates a random expression that never divides by zero.
func (g *Generator) Generate() Node {
	g.depth = 0
	return g.generate()
}

func (g *Generator) generate() Node {
	choice := 0
	if g.depth < g.MaxDepth {
		choice = g.rnd.Intn(3)
	}

	switch choice {
	case 1:
		g.depth++
		return &Paren{X: g.generate()}
	case 2:
		g.depth++
		b := &BinaryOp{Left: g.generate(), Op: g.randomOp()}
		b.Right = g.generate()
		if b.Op == DivOp {
			g.avoidZeroDivisor(b)
		}
		return b
	}
	return g.randomLiteral()
}

// avoidZeroDivisor makes sure the printed divisor of b is not zero. In the
// text "l/r..." the divisor is the primary right after the slash, which is
// the leftmost literal or parenthesised group of b.Right.
func (g *Generator) avoidZeroDivisor(b *BinaryOp) {
	for i := 0; i < divisorAttempts; i++ {
		if g.nonZero(leftmostPrimary(b.Right)) {
			return
		}
		b.Right = g.generate()
	}
	if !g.nonZero(leftmostPrimary(b.Right)) {
		b.Op = AddOp
	}
}

func (g *Generator) nonZero(n Node) bool {
	tree, err := Parse(n.String())
	if err != nil {
		return false
	}
	v, err := TreeReference{WordSize: g.wordSize()}.Compute(tree)
	return err == nil && v != 0
}

func leftmostPrimary(n Node) Node {
	for {
		b, ok := n.(*BinaryOp)
		if !ok {
			return n
		}
		n = b.Left
	}
}

func (g *Generator) randomOp() string {
	ops := []string{AddOp, SubOp, MulOp, DivOp}
	return ops[g.rnd.Intn(len(ops))]
}

func (g *Generator) randomLiteral() Literal {
	max := uint64(g.MaxLiteral)
	if max == 0 {
		max = DefaultMaxLiteral
	}
	if mask := wordMask(g.wordSize()); max > mask {
		max = mask
	}
	return Literal(g.rnd.Int63n(int64(max) + 1)) // #nosec G115 // max fits 32 bits
}

func (g *Generator) wordSize() int {
	if g.WordSize == 0 {
		return 32
	}
	return g.WordSize
}
