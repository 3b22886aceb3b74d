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
	"fmt"
	"strconv"
)

// Evaluator evaluates expressions with a fixed set of options. It holds no
// per-call state and is safe for concurrent use.
type Evaluator struct {
	opts Options
	mask uint64
}

var defaultEvaluator = New(Options{})

// New returns an Evaluator using opts, with zero fields set to the defaults.
func New(opts Options) *Evaluator {
	opts = opts.withDefaults()
	mask := ^uint64(0)
	if opts.WordSize < 64 {
		mask = (uint64(1) << uint(opts.WordSize)) - 1
	}
	return &Evaluator{opts: opts, mask: mask}
}

// Options returns the options in use, defaults included.
func (e *Evaluator) Options() Options {
	return e.opts
}

// Evaluate evaluates expression with the default options.
func Evaluate(expression string) (uint64, error) {
	return defaultEvaluator.Evaluate(expression)
}

// Tokenize splits input into tokens using the evaluator's limits.
func (e *Evaluator) Tokenize(input string) ([]Token, error) {
	return tokenize(input, e.opts)
}

// Evaluate tokenizes and evaluates expression.
func (e *Evaluator) Evaluate(expression string) (uint64, error) {
	tokens, err := tokenize(expression, e.opts)
	if err != nil {
		return 0, err
	}
	return e.EvaluateTokens(tokens)
}

// EvaluateTokens evaluates an already tokenized expression.
func (e *Evaluator) EvaluateTokens(tokens []Token) (uint64, error) {
	ev := evaluation{Evaluator: e, tokens: tokens}
	return ev.eval(0, len(tokens)-1, 0)
}

// evaluation is the state of one Evaluate call.
type evaluation struct {
	*Evaluator
	tokens []Token
}

// eval evaluates tokens[p..q]. depth counts the enclosing parenthesis pairs.
func (ev *evaluation) eval(p, q, depth int) (uint64, error) {
	if depth > ev.opts.MaxDepth {
		return 0, fmt.Errorf("%w: limit is %d", ErrTooDeep, ev.opts.MaxDepth)
	}

	if p > q {
		return 0, ErrEmptyRange
	}

	if p == q {
		return ev.literal(ev.tokens[p])
	}

	wrapped, err := checkParens(ev.tokens, p, q)
	if err != nil {
		return 0, err
	}
	if wrapped {
		return ev.eval(p+1, q-1, depth+1)
	}

	op := majorOp(ev.tokens, p, q)
	if op < 0 {
		return 0, fmt.Errorf("%w: missing operator at position %d", ErrSyntax, ev.tokens[p].Pos)
	}

	// Operands stay at the current nesting depth; operator chains are
	// bounded by MaxTokens instead.
	left, err := ev.eval(p, op-1, depth)
	if err != nil {
		return 0, err
	}
	right, err := ev.eval(op+1, q, depth)
	if err != nil {
		return 0, err
	}

	return ev.apply(ev.tokens[op], left, right)
}

func (ev *evaluation) literal(t Token) (uint64, error) {
	if t.Kind != KindInt {
		return 0, fmt.Errorf("%w: %q at position %d", ErrTypeMismatch, t.Text, t.Pos)
	}
	v, err := strconv.ParseUint(t.Text, 10, ev.opts.WordSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %s does not fit in %d bits", ErrOverflow, t.Text, ev.opts.WordSize)
	}
	return v, nil
}

func (ev *evaluation) apply(op Token, left, right uint64) (uint64, error) {
	switch op.Kind {
	case KindPlus:
		return (left + right) & ev.mask, nil
	case KindMinus:
		return (left - right) & ev.mask, nil
	case KindMul:
		return (left * right) & ev.mask, nil
	case KindDiv:
		if right == 0 {
			return 0, fmt.Errorf("%w at position %d", ErrDivisionByZero, op.Pos)
		}
		return left / right, nil
	case KindEq:
		if left == right {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("%w: unexpected %s at position %d", ErrSyntax, op.Kind, op.Pos)
}
