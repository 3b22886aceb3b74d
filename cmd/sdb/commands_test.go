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
	"bytes"
	"strings"
	"testing"

	cmn "github.com/pzaino/sdbexpr/pkg/common"
	expr "github.com/pzaino/sdbexpr/pkg/exprterpreter"

	"github.com/stretchr/testify/assert"
)

func run(t *testing.T, m *monitor, line string) (string, bool) {
	t.Helper()
	out := m.out.(*bytes.Buffer)
	out.Reset()
	quit := m.exec(line)
	return out.String(), quit
}

func TestCommands(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"p 1+2*3", "7 (0x7)\n"},
		{"p (1 + 2) * 3", "9 (0x9)\n"},
		{"p 0-1", "4294967295 (0xffffffff)\n"},
		{"p 0", "0 (0x0)\n"},
		{"  p   10/4  ", "2 (0x2)\n"},
		{"p 1/0", "error: division by zero at position 1\n"},
		{"p 1 $ 2", "error: no match at position 2\n1 $ 2\n  ^\n"},
		{"p", "Usage: p EXPR\n"},
		{"x 1", "Unknown command 'x'\n"},
		{"help q", "q - Exit the monitor\n"},
		{"help nope", "Unknown command 'nope'\n"},
		{"", ""},
	}

	m := newMonitor(expr.Options{}, &bytes.Buffer{})
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, quit := run(t, m, tt.line)
			assert.Equal(t, tt.want, got)
			assert.False(t, quit)
		})
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	m := newMonitor(expr.Options{}, &bytes.Buffer{})
	got, _ := run(t, m, "help")
	for _, c := range commands {
		assert.Contains(t, got, c.name+" - ")
	}
}

func TestQuit(t *testing.T) {
	m := newMonitor(expr.Options{}, &bytes.Buffer{})
	_, quit := run(t, m, "q")
	assert.True(t, quit)
}

func TestSetWidth(t *testing.T) {
	m := newMonitor(expr.Options{}, &bytes.Buffer{})

	got, _ := run(t, m, "set width 8")
	assert.Equal(t, "width = 8\n", got)
	got, _ = run(t, m, "p 255+1")
	assert.Equal(t, "0 (0x0)\n", got)

	got, _ = run(t, m, "set width 12")
	assert.True(t, strings.HasPrefix(got, "error: invalid width"))
	assert.Equal(t, 8, m.opts.WordSize)

	got, _ = run(t, m, "set")
	assert.Equal(t, "Usage: set width N | set debug LEVEL\n", got)
}

func TestSetDebug(t *testing.T) {
	defer cmn.SetDebugLevel(cmn.DbgLvlNone)

	m := newMonitor(expr.Options{}, &bytes.Buffer{})
	got, _ := run(t, m, "set debug debug2")
	assert.Equal(t, "debug = debug2\n", got)
	assert.Equal(t, cmn.DbgLvlDebug2, cmn.GetDebugLevel())

	got, _ = run(t, m, "set debug loud")
	assert.Equal(t, "error: invalid debug level 'loud'\n", got)
}

func TestMainLoop(t *testing.T) {
	out := &bytes.Buffer{}
	m := newMonitor(expr.Options{}, out)

	mainLoop(m, strings.NewReader("p 2*21\nq\np 1\n"))
	assert.Equal(t, prompt+"42 (0x2a)\n"+prompt, out.String())
}

func TestMainLoopEOF(t *testing.T) {
	out := &bytes.Buffer{}
	m := newMonitor(expr.Options{}, out)

	mainLoop(m, strings.NewReader("p 1"))
	assert.Equal(t, prompt+"1 (0x1)\n"+prompt+"\n", out.String())
}
