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

	cmn "github.com/pzaino/sdbexpr/pkg/common"
)

// Tokenize splits input into tokens using the default options.
func Tokenize(input string) ([]Token, error) {
	return tokenize(input, Options{}.withDefaults())
}

func tokenize(input string, opts Options) ([]Token, error) {
	tokens := make([]Token, 0, 16)

	position := 0
	for position < len(input) {
		r, n := match(input[position:])
		if r == nil {
			return nil, &LexError{Input: input, Position: position}
		}

		text := input[position : position+n]
		cmn.DebugMsg(cmn.DbgLvlDebug5, "match rule %q at position %d with len %d: %s", r.pattern, position, n, text)

		if r.kind != KindNoType {
			if len(tokens) >= opts.MaxTokens {
				return nil, fmt.Errorf("%w: more than %d", ErrTokenOverflow, opts.MaxTokens)
			}
			if r.kind == KindInt && n > opts.MaxLiteralLen {
				return nil, fmt.Errorf("%w: %d digits at position %d, limit is %d", ErrLiteralTooLong, n, position, opts.MaxLiteralLen)
			}
			tokens = append(tokens, Token{Kind: r.kind, Text: text, Pos: position})
		}
		position += n
	}

	return tokens, nil
}
