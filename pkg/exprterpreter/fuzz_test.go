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
	"testing"
)

func FuzzEvaluate(f *testing.F) {
	for _, tt := range EvaluateTests {
		f.Add(tt.input)
	}
	f.Add("(1")
	f.Add("1)")
	f.Add("10/0")
	f.Add("-3")

	f.Fuzz(func(t *testing.T, input string) {
		got, err := Evaluate(input)
		if err != nil {
			if ErrorCode(err) == "unknown" {
				t.Fatalf("Evaluate(%q) returned a foreign error: %v", input, err)
			}
			return
		}

		// A well-formed expression keeps its value once parenthesised,
		// unless the extra level pushes it past one of the limits.
		wrapped, err := Evaluate("(" + input + ")")
		if err != nil {
			if code := ErrorCode(err); code != "too_deep" && code != "token_overflow" {
				t.Fatalf("Evaluate((%q)) failed: %v", input, err)
			}
			return
		}
		if wrapped != got {
			t.Fatalf("Evaluate((%q)) = %d, Evaluate(%q) = %d", input, wrapped, input, got)
		}
	})
}
