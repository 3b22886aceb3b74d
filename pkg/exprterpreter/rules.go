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

import "regexp"

// rule maps a pattern to the kind of token it produces. Rules are tried in
// declaration order and the first one matching at the cursor wins, so a rule
// must come before any other rule matching a prefix of its text.
type rule struct {
	pattern string
	kind    Kind
	re      *regexp.Regexp
}

// rules is compiled once at package initialisation and never modified
// afterwards. A pattern that does not compile panics here.
var rules = compileRules([]rule{
	{pattern: `[ \t\r\n]+`, kind: KindNoType},
	{pattern: `\+`, kind: KindPlus},
	{pattern: `-`, kind: KindMinus},
	{pattern: `\*`, kind: KindMul},
	{pattern: `/`, kind: KindDiv},
	{pattern: `==`, kind: KindEq},
	{pattern: `[1-9][0-9]*|0`, kind: KindInt},
	{pattern: `\(`, kind: KindLParen},
	{pattern: `\)`, kind: KindRParen},
})

func compileRules(rs []rule) []rule {
	for i := range rs {
		rs[i].re = regexp.MustCompile(`^(?:` + rs[i].pattern + `)`)
	}
	return rs
}

// match returns the first rule matching s at offset 0 and the match length.
func match(s string) (*rule, int) {
	for i := range rules {
		if loc := rules[i].re.FindStringIndex(s); loc != nil && loc[1] > 0 {
			return &rules[i], loc[1]
		}
	}
	return nil, 0
}
