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
	"os"
	"testing"

	expr "github.com/pzaino/sdbexpr/pkg/exprterpreter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEvaluatorAgainstReferences feeds generated expressions to the
// evaluator and compares its results with both references and, where
// possible, with govaluate.
func TestEvaluatorAgainstReferences(t *testing.T) {
	script, err := NewScriptReference()
	require.NoError(t, err)

	g := NewGenerator(20231001, 30)
	crossChecked := 0
	for i := 0; i < 300; i++ {
		f, tree, err := g.Fixture(TreeReference{}, i%2 == 0)
		require.NoError(t, err)

		fromScript, err := script.Compute(tree)
		require.NoError(t, err, f.Expr)
		require.Equal(t, f.Expected, fromScript, "references disagree on %q", f.Expr)

		checked, err := CrossCheck(tree, f.Expected, 32)
		require.NoError(t, err, f.Expr)
		if checked {
			crossChecked++
		}

		got, err := expr.Evaluate(f.Expr)
		require.NoError(t, err, f.Expr)
		assert.Equal(t, f.Expected, got, f.Expr)
	}
	assert.Positive(t, crossChecked)
}

func TestEvaluatorWordSizes(t *testing.T) {
	for _, wordSize := range []int{8, 16, 64} {
		ev := expr.New(expr.Options{WordSize: wordSize})

		g := NewGenerator(int64(wordSize), 20)
		g.WordSize = wordSize
		ref := TreeReference{WordSize: wordSize}
		for i := 0; i < 100; i++ {
			f, _, err := g.Fixture(ref, false)
			require.NoError(t, err)
			got, err := ev.Evaluate(f.Expr)
			require.NoError(t, err, f.Expr)
			assert.Equal(t, f.Expected, got, "%d bits: %s", wordSize, f.Expr)
		}
	}
}

func TestFixtureFile(t *testing.T) {
	file, err := os.Open("../../testdata/basic.txt")
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck // read only

	fixtures, err := ReadFixtures(file)
	require.NoError(t, err)
	require.NotEmpty(t, fixtures)

	for _, f := range fixtures {
		n, err := Parse(f.Expr)
		require.NoError(t, err, f.Expr)
		want, err := TreeReference{}.Compute(n)
		require.NoError(t, err, f.Expr)
		assert.Equal(t, f.Expected, want, "reference: %s", f.Expr)

		got, err := expr.Evaluate(f.Expr)
		require.NoError(t, err, f.Expr)
		assert.Equal(t, f.Expected, got, "evaluator: %s", f.Expr)
	}
}
