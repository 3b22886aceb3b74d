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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", "1"},
		{" 1 ", "1"},
		{"1+2*3", "(1 + (2 * 3))"},
		{"(1+2)*3", "((1 + 2) * 3)"},
		{"10-2-3", "((10 - 2) - 3)"},
		{"100/10/5", "((100 / 10) / 5)"},
		{"1+2==3", "((1 + 2) == 3)"},
		{"3==3==0", "((3 == 3) == 0)"},
		{"2 * ( 3 + 4 )", "(2 * (3 + 4))"},
		{"((((3))))", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fullyParenthesized(n))
		})
	}
}

func TestParseKeepsParentheses(t *testing.T) {
	n, err := Parse("(1+2)*3")
	require.NoError(t, err)
	assert.Equal(t, "(1+2)*3", n.String())
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "1+", "(1", "1)", "+1", "1 2", "()", "a", "99999999999999999999999"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.Error(t, err)
		})
	}
}
