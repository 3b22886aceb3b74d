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
	"fmt"
)

var (
	// ErrLex is wrapped by every *LexError
	ErrLex = errors.New("no lexical rule matches")
	// ErrLiteralTooLong is returned for literals exceeding the token text capacity
	ErrLiteralTooLong = errors.New("integer literal too long")
	// ErrTokenOverflow is returned when the input has more tokens than allowed
	ErrTokenOverflow = errors.New("too many tokens")
	// ErrEmptyRange is returned when an operand is missing
	ErrEmptyRange = errors.New("empty expression")
	// ErrTypeMismatch is returned when a single token operand is not a literal
	ErrTypeMismatch = errors.New("operand is not an integer literal")
	// ErrSyntax is returned for malformed token sequences
	ErrSyntax = errors.New("syntax error")
	// ErrUnbalanced is the ErrSyntax returned for mismatched parentheses
	ErrUnbalanced = fmt.Errorf("%w: unbalanced parentheses", ErrSyntax)
	// ErrDivisionByZero is returned by / with a zero divisor
	ErrDivisionByZero = errors.New("division by zero")
	// ErrOverflow is returned for literals that do not fit the word size
	ErrOverflow = errors.New("integer literal overflows word")
	// ErrTooDeep is returned when the expression nests deeper than allowed
	ErrTooDeep = errors.New("expression nested too deeply")
)

// LexError reports the input position where no rule matched.
type LexError struct {
	Input    string
	Position int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("no match at position %d", e.Position)
}

// Unwrap makes errors.Is(err, ErrLex) work.
func (e *LexError) Unwrap() error {
	return ErrLex
}

// Caret returns the input followed by a line pointing at the failing position.
func (e *LexError) Caret() string {
	pad := make([]byte, e.Position)
	for i := range pad {
		pad[i] = ' '
	}
	return e.Input + "\n" + string(pad) + "^"
}

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrLex, "lex_error"},
	{ErrLiteralTooLong, "literal_too_long"},
	{ErrTokenOverflow, "token_overflow"},
	{ErrEmptyRange, "empty_range"},
	{ErrTypeMismatch, "type_mismatch"},
	{ErrUnbalanced, "unbalanced"},
	{ErrSyntax, "syntax"},
	{ErrDivisionByZero, "division_by_zero"},
	{ErrOverflow, "overflow"},
	{ErrTooDeep, "too_deep"},
}

// ErrorCode returns a stable snake_case identifier for an evaluation error,
// "" for nil and "unknown" for errors not produced by this package.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "unknown"
}
