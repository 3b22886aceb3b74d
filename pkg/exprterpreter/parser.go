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

// checkParens scans tokens[p..q]. It fails with ErrUnbalanced when the
// running depth goes negative or does not end at zero. wrapped is true when
// the depth returns to zero only at q, i.e. tokens[p] and tokens[q] are a
// matching pair enclosing the whole range.
func checkParens(tokens []Token, p, q int) (wrapped bool, err error) {
	depth := 0
	wrapped = true
	for i := p; i <= q; i++ {
		switch tokens[i].Kind {
		case KindLParen:
			depth++
		case KindRParen:
			depth--
		}
		if depth < 0 {
			return false, ErrUnbalanced
		}
		if depth == 0 && i != q {
			wrapped = false
		}
	}
	if depth != 0 {
		return false, ErrUnbalanced
	}
	return wrapped, nil
}

// majorOp returns the index of the operator tokens[p..q] splits at: the
// lowest precedence operator outside parentheses, the rightmost one on ties
// so that operators of equal precedence associate to the left. It returns
// -1 when no operator is found at depth zero.
func majorOp(tokens []Token, p, q int) int {
	op := -1
	lowest := 0
	depth := 0
	for i := p; i <= q; i++ {
		k := tokens[i].Kind
		switch {
		case k == KindLParen:
			depth++
		case k == KindRParen:
			depth--
		case depth == 0 && k.IsOperator():
			if op == -1 || k.precedence() <= lowest {
				op = i
				lowest = k.precedence()
			}
		}
	}
	return op
}
