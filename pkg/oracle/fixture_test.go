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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFixture(t *testing.T) {
	f, err := ParseFixture("14 2 * ( 3 + 4 )\r\n")
	require.NoError(t, err)
	assert.Equal(t, Fixture{Expected: 14, Expr: "2 * ( 3 + 4 )"}, f)
	assert.Equal(t, "14 2 * ( 3 + 4 )", f.String())
}

func TestParseFixtureErrors(t *testing.T) {
	for _, line := range []string{"14", "14 ", "x 1+1", "-1 0-1"} {
		_, err := ParseFixture(line)
		assert.Error(t, err, line)
	}
}

func TestReadFixtures(t *testing.T) {
	input := "# header\n\n3 1+2\n   \n0 1==2\n"
	fixtures, err := ReadFixtures(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Fixture{{3, "1+2"}, {0, "1==2"}}, fixtures)

	_, err = ReadFixtures(strings.NewReader("3 1+2\nbroken\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestWriteFixture(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFixture(&buf, Fixture{Expected: 7, Expr: "1+2*3"}))
	require.NoError(t, WriteFixture(&buf, Fixture{Expected: 9, Expr: "(1+2)*3"}))
	assert.Equal(t, "7 1+2*3\n9 (1+2)*3\n", buf.String())

	fixtures, err := ReadFixtures(&buf)
	require.NoError(t, err)
	assert.Len(t, fixtures, 2)
}

func TestGeneratorFixture(t *testing.T) {
	g := NewGenerator(42, 10)
	f, tree, err := g.Fixture(TreeReference{}, true)
	require.NoError(t, err)

	again, err := Parse(f.Expr)
	require.NoError(t, err)
	assert.Equal(t, fullyParenthesized(tree), fullyParenthesized(again))

	want, err := TreeReference{}.Compute(tree)
	require.NoError(t, err)
	assert.Equal(t, want, f.Expected)
}
