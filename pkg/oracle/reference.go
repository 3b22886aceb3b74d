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
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/robertkrimen/otto"
)

var (
	// ErrDivisionByZero is returned by the references for a zero divisor
	ErrDivisionByZero = errors.New("division by zero")
	// ErrLiteralRange is returned for literals that do not fit the word
	ErrLiteralRange = errors.New("literal does not fit the word size")
)

// Reference computes the expected unsigned result of an expression tree.
type Reference interface {
	Compute(n Node) (uint64, error)
}

// TreeReference computes results by walking the tree with unsigned
// arithmetic wrapping at WordSize bits (32 when zero).
type TreeReference struct {
	WordSize int
}

// Compute implements Reference.
func (r TreeReference) Compute(n Node) (uint64, error) {
	mask := wordMask(r.WordSize)
	return r.compute(n, mask)
}

func (r TreeReference) compute(n Node, mask uint64) (uint64, error) {
	switch n := n.(type) {
	case Literal:
		if uint64(n) > mask {
			return 0, fmt.Errorf("%w: %d", ErrLiteralRange, uint64(n))
		}
		return uint64(n), nil
	case *Paren:
		return r.compute(n.X, mask)
	case *BinaryOp:
		l, err := r.compute(n.Left, mask)
		if err != nil {
			return 0, err
		}
		rv, err := r.compute(n.Right, mask)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case AddOp:
			return (l + rv) & mask, nil
		case SubOp:
			return (l - rv) & mask, nil
		case MulOp:
			return (l * rv) & mask, nil
		case DivOp:
			if rv == 0 {
				return 0, ErrDivisionByZero
			}
			return l / rv, nil
		case EqOp:
			if l == rv {
				return 1, nil
			}
			return 0, nil
		}
		return 0, fmt.Errorf("unknown operator %q", n.Op)
	}
	return 0, fmt.Errorf("unknown node %T", n)
}

func wordMask(wordSize int) uint64 {
	if wordSize <= 0 {
		wordSize = 32
	}
	if wordSize >= 64 {
		return math.MaxUint64
	}
	return (uint64(1) << uint(wordSize)) - 1
}

// scriptPrelude defines the 32 bit unsigned operations. Numbers are doubles
// in JavaScript, ">>> 0" reduces them modulo 2^32 and mul splits its
// operands in 16 bit halves so no partial product loses precision.
const scriptPrelude = `
function add(a, b) { return (a + b) >>> 0; }
function sub(a, b) { return (a - b) >>> 0; }
function mul(a, b) {
	var ah = (a >>> 16) & 0xffff, al = a & 0xffff;
	var bh = (b >>> 16) & 0xffff, bl = b & 0xffff;
	return ((al * bl) + (((ah * bl + al * bh) << 16) >>> 0)) >>> 0;
}
function div(a, b) {
	if (b === 0) { throw new Error("division by zero"); }
	return Math.floor(a / b) >>> 0;
}
function eq(a, b) { return a === b ? 1 : 0; }
`

// ScriptReference computes 32 bit results by translating the tree into a
// JavaScript program and running it, the same way the original fixture
// generator compiled and ran a C program.
type ScriptReference struct {
	mu sync.Mutex
	vm *otto.Otto
}

// NewScriptReference returns a ScriptReference with the prelude loaded.
func NewScriptReference() (*ScriptReference, error) {
	vm := otto.New()
	if _, err := vm.Run(scriptPrelude); err != nil {
		return nil, fmt.Errorf("loading script prelude: %w", err)
	}
	return &ScriptReference{vm: vm}, nil
}

// Compute implements Reference.
func (r *ScriptReference) Compute(n Node) (uint64, error) {
	program, err := Script(n)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v, err := r.vm.Run(program)
	if err != nil {
		if strings.Contains(err.Error(), "division by zero") {
			return 0, ErrDivisionByZero
		}
		return 0, fmt.Errorf("running %q: %w", program, err)
	}
	f, err := v.ToFloat()
	if err != nil {
		return 0, err
	}
	if f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
		return 0, fmt.Errorf("script returned %v", f)
	}
	return uint64(f), nil
}

// Script translates n into a JavaScript expression over the prelude
// functions.
func Script(n Node) (string, error) {
	var sb strings.Builder
	if err := script(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

var scriptFuncs = map[string]string{
	AddOp: "add",
	SubOp: "sub",
	MulOp: "mul",
	DivOp: "div",
	EqOp:  "eq",
}

func script(sb *strings.Builder, n Node) error {
	switch n := n.(type) {
	case Literal:
		if uint64(n) > math.MaxUint32 {
			return fmt.Errorf("%w: %d", ErrLiteralRange, uint64(n))
		}
		sb.WriteString(n.String())
		return nil
	case *Paren:
		return script(sb, n.X)
	case *BinaryOp:
		fn, ok := scriptFuncs[n.Op]
		if !ok {
			return fmt.Errorf("unknown operator %q", n.Op)
		}
		sb.WriteString(fn)
		sb.WriteByte('(')
		if err := script(sb, n.Left); err != nil {
			return err
		}
		sb.WriteString(", ")
		if err := script(sb, n.Right); err != nil {
			return err
		}
		sb.WriteByte(')')
		return nil
	}
	return fmt.Errorf("unknown node %T", n)
}
