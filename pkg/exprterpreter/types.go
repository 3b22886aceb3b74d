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

// Package exprterpreter contains the expression interpreter logic used by the
// monitor's print command: integer literals, + - * / == and parentheses,
// evaluated to an unsigned machine word.
package exprterpreter

const (
	// DefaultWordSize is the width, in bits, of the evaluated word
	DefaultWordSize = 32
	// DefaultMaxTokens is the token sequence capacity of a single evaluation
	DefaultMaxTokens = 65536
	// DefaultMaxLiteralLen is the maximum number of digits of a literal
	DefaultMaxLiteralLen = 31
	// DefaultMaxDepth bounds the parenthesis nesting depth
	DefaultMaxDepth = 1024
)

// Kind is the type of a token produced by the lexer.
type Kind int

const (
	// KindNoType is produced by the whitespace rule and never emitted
	KindNoType Kind = iota
	KindInt
	KindPlus
	KindMinus
	KindMul
	KindDiv
	KindEq
	KindLParen
	KindRParen
)

var kindNames = map[Kind]string{
	KindNoType: "whitespace",
	KindInt:    "integer",
	KindPlus:   "+",
	KindMinus:  "-",
	KindMul:    "*",
	KindDiv:    "/",
	KindEq:     "==",
	KindLParen: "(",
	KindRParen: ")",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Token is a classified lexical unit. Text holds the digits of integer
// literals and the matched operator otherwise; Pos is the byte offset in
// the input.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}

// Options configures an Evaluator. Zero fields take the package defaults.
type Options struct {
	WordSize      int // 8, 16, 32 or 64
	MaxTokens     int
	MaxLiteralLen int
	MaxDepth      int
}

func (o Options) withDefaults() Options {
	if o.WordSize <= 0 || o.WordSize > 64 {
		o.WordSize = DefaultWordSize
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	if o.MaxLiteralLen <= 0 {
		o.MaxLiteralLen = DefaultMaxLiteralLen
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}

// precedence returns the binding strength of a binary operator, 0 for
// anything that is not one.
func (k Kind) precedence() int {
	switch k {
	case KindEq:
		return 1
	case KindPlus, KindMinus:
		return 2
	case KindMul, KindDiv:
		return 3
	}
	return 0
}

// IsOperator reports whether k is a binary operator.
func (k Kind) IsOperator() bool {
	return k.precedence() > 0
}
