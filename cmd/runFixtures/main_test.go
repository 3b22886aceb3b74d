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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixtures(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunPass(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(cliOptions{FilesCSV: "../../testdata/*.txt"}, &out))

	assert.Contains(t, out.String(), "=== Fixture Test Plan ===")
	assert.Contains(t, out.String(), "[PASS] ")
	assert.NotContains(t, out.String(), "[FAIL] ")
	assert.Contains(t, out.String(), "Failed: 0")
}

func TestRunFail(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir, "a.txt", "3 1+2\n4 1+2\n0 1/0\n")

	var out bytes.Buffer
	err := run(cliOptions{FilesCSV: filepath.Join(dir, "*.txt")}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 test(s) failed")
	assert.Contains(t, out.String(), "[FAIL] ")
	assert.Contains(t, out.String(), "got 3, want 4")
	assert.Contains(t, out.String(), "division by zero")
	assert.Contains(t, out.String(), "Total: 3, Passed: 1, Failed: 2")
}

func TestRunList(t *testing.T) {
	dir := t.TempDir()
	a := writeFixtures(t, dir, "a.txt", "3 1+2\n")
	b := writeFixtures(t, dir, "b.txt", "# nothing yet\n")

	var out bytes.Buffer
	require.NoError(t, run(cliOptions{FilesCSV: a + "," + b + "," + a, ListOnly: true}, &out))
	assert.Equal(t, "=== Fixture Test Plan ===\n- "+a+" (1 fixtures)\n- "+b+" (0 fixtures)\n", out.String())
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	broken := writeFixtures(t, dir, "broken.txt", "3 1+2\nthree 1+2\n")

	err := run(cliOptions{FilesCSV: broken}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	err = run(cliOptions{FilesCSV: filepath.Join(dir, "*.none")}, &bytes.Buffer{})
	assert.Error(t, err)

	err = run(cliOptions{FilesCSV: broken, DebugLevel: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}
