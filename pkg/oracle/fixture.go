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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fixture is one expression with its expected unsigned result.
type Fixture struct {
	Expected uint64
	Expr     string
}

func (f Fixture) String() string {
	return strconv.FormatUint(f.Expected, 10) + " " + f.Expr
}

// ParseFixture parses a "<expected> <expression>" line. The expression is
// everything after the first space and is kept as is.
func ParseFixture(line string) (Fixture, error) {
	line = strings.TrimRight(line, "\r\n")
	value, expr, ok := strings.Cut(line, " ")
	if !ok || expr == "" {
		return Fixture{}, fmt.Errorf("missing expression in %q", line)
	}
	expected, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return Fixture{}, fmt.Errorf("invalid expected value %q: %w", value, err)
	}
	return Fixture{Expected: expected, Expr: expr}, nil
}

// ReadFixtures reads fixtures one per line. Blank lines and lines starting
// with '#' are skipped.
func ReadFixtures(r io.Reader) ([]Fixture, error) {
	var fixtures []Fixture
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		f, err := ParseFixture(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		fixtures = append(fixtures, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return fixtures, nil
}

// WriteFixture writes f as a single line.
func WriteFixture(w io.Writer, f Fixture) error {
	_, err := fmt.Fprintln(w, f.String())
	return err
}

// Fixture generates an expression, renders it (with random spaces when
// spaces is true) and computes its expected value with ref on the tree
// parsed back from the rendered text.
func (g *Generator) Fixture(ref Reference, spaces bool) (Fixture, Node, error) {
	n := g.Generate()

	var text string
	if spaces {
		text = Render(n, g.rnd)
	} else {
		text = Render(n, nil)
	}

	tree, err := Parse(text)
	if err != nil {
		return Fixture{}, nil, fmt.Errorf("parsing generated %q: %w", text, err)
	}
	v, err := ref.Compute(tree)
	if err != nil {
		return Fixture{}, nil, fmt.Errorf("computing %q: %w", text, err)
	}
	return Fixture{Expected: v, Expr: text}, tree, nil
}
