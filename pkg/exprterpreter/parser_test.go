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

package exprterpreter

import (
	"errors"
	"testing"
)

func mustTokenize(t *testing.T, input string) []Token {
	t.Helper()
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", input, err)
	}
	return tokens
}

func TestCheckParens(t *testing.T) {
	tests := []struct {
		input   string
		wrapped bool
		err     error
	}{
		{input: "(1)", wrapped: true},
		{input: "((1+2))", wrapped: true},
		{input: "(1+2)*(3)", wrapped: false},
		{input: "(1)+(2)", wrapped: false},
		{input: "1+2", wrapped: false},
		{input: "(1", err: ErrUnbalanced},
		{input: "1)", err: ErrUnbalanced},
		{input: ")1(", err: ErrUnbalanced},
		{input: "(1))+((2)", err: ErrUnbalanced},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := mustTokenize(t, tt.input)
			wrapped, err := checkParens(tokens, 0, len(tokens)-1)
			if tt.err != nil {
				if !errors.Is(err, tt.err) || !errors.Is(err, ErrSyntax) {
					t.Errorf("checkParens(%q) error = %v, want %v", tt.input, err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("checkParens(%q) returned error: %v", tt.input, err)
			}
			if wrapped != tt.wrapped {
				t.Errorf("checkParens(%q) = %v, want %v", tt.input, wrapped, tt.wrapped)
			}
		})
	}
}

func TestMajorOp(t *testing.T) {
	tests := []struct {
		input string
		index int
	}{
		{input: "3+4*2", index: 1},
		{input: "3*4+2", index: 3},
		{input: "8-3-2", index: 3},
		{input: "100/3/3", index: 3},
		{input: "1+2==3", index: 3},
		{input: "1==1==1", index: 3},
		{input: "(1+2)*3", index: 5},
		{input: "2*(3+4)", index: 1},
		{input: "(1+2)", index: -1},
		{input: "1 2", index: -1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := mustTokenize(t, tt.input)
			if got := majorOp(tokens, 0, len(tokens)-1); got != tt.index {
				t.Errorf("majorOp(%q) = %d, want %d", tt.input, got, tt.index)
			}
		})
	}
}
