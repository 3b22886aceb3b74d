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

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	cmn "github.com/pzaino/sdbexpr/pkg/common"
	expr "github.com/pzaino/sdbexpr/pkg/exprterpreter"
)

// monitor holds the evaluator and the settings changed by "set".
type monitor struct {
	opts      expr.Options
	evaluator *expr.Evaluator
	out       io.Writer
}

// command is an entry of the command table. The handler returns true to
// leave the main loop.
type command struct {
	name        string
	description string
	handler     func(m *monitor, args string) bool
}

var commands []command

func init() {
	// Assigned here because cmdHelp reads the table.
	commands = []command{
		{"help", "Display information about all supported commands", cmdHelp},
		{"p", "Evaluate an expression and print its value: p EXPR", cmdP},
		{"q", "Exit the monitor", cmdQ},
		{"set", "Change a setting: set width 8|16|32|64, set debug LEVEL", cmdSet},
	}
}

func newMonitor(opts expr.Options, out io.Writer) *monitor {
	m := &monitor{out: out}
	m.configure(opts)
	return m
}

func (m *monitor) configure(opts expr.Options) {
	m.evaluator = expr.New(opts)
	m.opts = m.evaluator.Options()
}

// exec runs one command line and reports whether the monitor should quit.
func (m *monitor) exec(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	name, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)

	for _, c := range commands {
		if c.name == name {
			cmn.DebugMsg(cmn.DbgLvlDebug3, "sdb: running command '%s' with '%s'", name, args)
			return c.handler(m, args)
		}
	}
	fmt.Fprintf(m.out, "Unknown command '%s'\n", name)
	return false
}

// print evaluates expression and prints its value, or the error. It
// reports whether the evaluation succeeded.
func (m *monitor) print(expression string) bool {
	v, err := m.evaluator.Evaluate(expression)
	if err != nil {
		fmt.Fprintf(m.out, "error: %v\n", err)
		var lexErr *expr.LexError
		if errors.As(err, &lexErr) {
			fmt.Fprintln(m.out, lexErr.Caret())
		}
		return false
	}
	fmt.Fprintf(m.out, "%d (%#x)\n", v, v)
	return true
}

func cmdHelp(m *monitor, args string) bool {
	if args == "" {
		for _, c := range commands {
			fmt.Fprintf(m.out, "%s - %s\n", c.name, c.description)
		}
		return false
	}
	for _, c := range commands {
		if c.name == args {
			fmt.Fprintf(m.out, "%s - %s\n", c.name, c.description)
			return false
		}
	}
	fmt.Fprintf(m.out, "Unknown command '%s'\n", args)
	return false
}

func cmdP(m *monitor, args string) bool {
	if args == "" {
		fmt.Fprintln(m.out, "Usage: p EXPR")
		return false
	}
	m.print(args)
	return false
}

func cmdQ(*monitor, string) bool {
	return true
}

func cmdSet(m *monitor, args string) bool {
	key, value, _ := strings.Cut(args, " ")
	value = strings.TrimSpace(value)

	switch key {
	case "width":
		width, err := strconv.Atoi(value)
		if err != nil || (width != 8 && width != 16 && width != 32 && width != 64) {
			fmt.Fprintf(m.out, "error: invalid width '%s', want 8, 16, 32 or 64\n", value)
			return false
		}
		opts := m.opts
		opts.WordSize = width
		m.configure(opts)
		fmt.Fprintf(m.out, "width = %d\n", width)
	case "debug":
		if !cmn.SetDebugLevelFromString(value) {
			fmt.Fprintf(m.out, "error: invalid debug level '%s'\n", value)
			return false
		}
		fmt.Fprintf(m.out, "debug = %s\n", value)
	default:
		fmt.Fprintln(m.out, "Usage: set width N | set debug LEVEL")
	}
	return false
}
