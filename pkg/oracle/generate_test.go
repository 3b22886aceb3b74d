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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countOps(n Node) int {
	switch n := n.(type) {
	case *Paren:
		return 1 + countOps(n.X)
	case *BinaryOp:
		return 1 + countOps(n.Left) + countOps(n.Right)
	}
	return 0
}

func TestGenerateDepthBudget(t *testing.T) {
	for _, maxDepth := range []int{0, 1, 5, 50} {
		g := NewGenerator(1, maxDepth)
		for i := 0; i < 200; i++ {
			n := g.Generate()
			assert.LessOrEqual(t, countOps(n), maxDepth, "depth %d: %s", maxDepth, n)
		}
	}
}

func TestGenerateZeroDepthIsLiteral(t *testing.T) {
	g := NewGenerator(7, 0)
	for i := 0; i < 20; i++ {
		_, ok := g.Generate().(Literal)
		assert.True(t, ok)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := NewGenerator(42, 20)
	b := NewGenerator(42, 20)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Generate().String(), b.Generate().String())
	}
}

func TestGenerateMaxLiteral(t *testing.T) {
	g := NewGenerator(3, 30)
	g.MaxLiteral = 9
	for i := 0; i < 100; i++ {
		text := g.Generate().String()
		for _, f := range strings.FieldsFunc(text, func(r rune) bool { return r < '0' || r > '9' }) {
			assert.Len(t, f, 1, text)
		}
	}
}

func TestGenerateLiteralFitsWord(t *testing.T) {
	g := NewGenerator(5, 10)
	g.WordSize = 8
	for i := 0; i < 100; i++ {
		n, err := Parse(g.Generate().String())
		require.NoError(t, err)
		_, err = TreeReference{WordSize: 8}.Compute(n)
		assert.NoError(t, err)
	}
}

func TestGenerateNeverDividesByZero(t *testing.T) {
	// Tiny literals make zero divisors frequent.
	g := NewGenerator(11, 40)
	g.MaxLiteral = 2
	for i := 0; i < 500; i++ {
		text := g.Generate().String()
		n, err := Parse(text)
		require.NoError(t, err)
		_, err = TreeReference{}.Compute(n)
		require.NoError(t, err, text)
	}
}

func TestLeftmostPrimary(t *testing.T) {
	n := &BinaryOp{
		Op:    MulOp,
		Left:  &BinaryOp{Op: AddOp, Left: &Paren{X: Literal(4)}, Right: Literal(5)},
		Right: Literal(6),
	}
	assert.Equal(t, "(4)", leftmostPrimary(n).String())
	assert.Equal(t, "7", leftmostPrimary(Literal(7)).String())
}

func TestRender(t *testing.T) {
	n := &BinaryOp{Op: MulOp, Left: &Paren{X: &BinaryOp{Op: AddOp, Left: Literal(1), Right: Literal(2)}}, Right: Literal(3)}
	assert.Equal(t, "(1+2)*3", Render(n, nil))

	spaced := Render(n, rand.New(rand.NewSource(9))) // #nosec G404
	assert.Equal(t, "(1+2)*3", strings.ReplaceAll(spaced, " ", ""))
}
