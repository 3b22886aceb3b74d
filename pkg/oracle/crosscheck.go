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
	"math/big"

	"github.com/Knetic/govaluate"
)

// exactFloatLimit is the largest magnitude a float64 holds without losing
// integer precision.
var exactFloatLimit = new(big.Int).Lsh(big.NewInt(1), 53)

// CrossCheck evaluates n with govaluate and compares the result, reduced to
// wordSize bits, with want. govaluate works on float64, so only trees
// without divisions or comparisons whose intermediate values stay within
// 2^53 can be checked; for the others CrossCheck returns false and no error.
func CrossCheck(n Node, want uint64, wordSize int) (bool, error) {
	if _, ok := exactValue(n); !ok {
		return false, nil
	}

	text := fullyParenthesized(n)
	expression, err := govaluate.NewEvaluableExpression(text)
	if err != nil {
		return true, fmt.Errorf("govaluate cannot parse %q: %w", text, err)
	}
	result, err := expression.Evaluate(nil)
	if err != nil {
		return true, fmt.Errorf("govaluate cannot evaluate %q: %w", text, err)
	}
	f, ok := result.(float64)
	if !ok {
		return true, fmt.Errorf("govaluate returned %T for %q", result, text)
	}

	got := uint64(int64(f)) & wordMask(wordSize)
	if got != want {
		return true, fmt.Errorf("govaluate computed %d for %q, want %d", got, text, want)
	}
	return true, nil
}

// exactValue computes n without wrapping. It reports false when n divides,
// compares or leaves the exact float64 range.
func exactValue(n Node) (*big.Int, bool) {
	switch n := n.(type) {
	case Literal:
		v := new(big.Int).SetUint64(uint64(n))
		return v, v.CmpAbs(exactFloatLimit) <= 0
	case *Paren:
		return exactValue(n.X)
	case *BinaryOp:
		l, ok := exactValue(n.Left)
		if !ok {
			return nil, false
		}
		r, ok := exactValue(n.Right)
		if !ok {
			return nil, false
		}
		v := new(big.Int)
		switch n.Op {
		case AddOp:
			v.Add(l, r)
		case SubOp:
			v.Sub(l, r)
		case MulOp:
			v.Mul(l, r)
		default:
			return nil, false
		}
		return v, v.CmpAbs(exactFloatLimit) <= 0
	}
	return nil, false
}
