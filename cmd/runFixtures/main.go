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

// Package main (runFixtures) evaluates fixture files of
// "<expected> <expression>" lines and reports the mismatches.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	cmn "github.com/pzaino/sdbexpr/pkg/common"
	cfg "github.com/pzaino/sdbexpr/pkg/config"
	expr "github.com/pzaino/sdbexpr/pkg/exprterpreter"
	"github.com/pzaino/sdbexpr/pkg/oracle"
)

type cliOptions struct {
	ConfigPath string
	FilesCSV   string
	ListOnly   bool
	DebugLevel string
}

// TestCase struct to hold a single fixture
type TestCase struct {
	File    string
	Index   int // 1-based position among the fixtures of the file
	Fixture oracle.Fixture
}

// TestPlan struct to hold the overall test plan
type TestPlan struct {
	Files       []string
	TestsByFile map[string][]TestCase
}

// TestResult struct to hold the result of a single test case
type TestResult struct {
	File   string
	Expr   string
	Passed bool
	Error  string
}

// ExecResult struct to hold the overall execution result
type ExecResult struct {
	Results []TestResult
	Failed  int
}

func main() {
	opts := parseFlags()

	cmn.InitLogger("runFixtures")

	// Keep failures explicit and non-panicky for CI.
	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "runFixtures: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() cliOptions {
	var o cliOptions

	flag.StringVar(&o.ConfigPath, "config", "", "Path to the configuration file (optional)")
	flag.StringVar(&o.FilesCSV, "fixtures", "", "Fixture paths/globs (comma-separated). Default: ./testdata/*.txt")
	flag.BoolVar(&o.ListOnly, "list", false, "List discovered fixtures and exit")
	flag.StringVar(&o.DebugLevel, "debug", "", "Debug level (info, debug1..debug5)")

	flag.Parse()
	return o
}

func run(opts cliOptions, out io.Writer) error {
	var conf cfg.Config
	if opts.ConfigPath != "" {
		var err error
		conf, err = cfg.LoadConfig(opts.ConfigPath)
		if err != nil {
			return fmt.Errorf("loading config %s failed: %w", opts.ConfigPath, err)
		}
	} else {
		cfg.SetDefaults(&conf)
	}
	cmn.SetDebugLevel(cmn.DbgLevel(conf.DebugLevel))
	if opts.DebugLevel != "" && !cmn.SetDebugLevelFromString(opts.DebugLevel) {
		return fmt.Errorf("invalid -debug %q", opts.DebugLevel)
	}

	globs := cmn.SplitCSV(opts.FilesCSV)
	if len(globs) == 0 {
		globs = []string{"./testdata/*.txt"}
	}

	files, err := discoverFiles(globs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no fixture files match %s", strings.Join(globs, ","))
	}

	plan, err := buildTestPlan(files)
	if err != nil {
		return fmt.Errorf("building test plan failed: %w", err)
	}

	printTestPlan(out, plan)

	if opts.ListOnly {
		return nil
	}

	execRes := runTestPlan(plan, expr.New(conf.EvaluatorOptions()))
	printExecResult(out, execRes)

	if execRes.Failed > 0 {
		return fmt.Errorf("%d test(s) failed", execRes.Failed)
	}
	return nil
}

func discoverFiles(globs []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string

	for _, g := range globs {
		matches, err := filepath.Glob(g)
		if err != nil {
			return nil, fmt.Errorf("bad fixture glob %q: %w", g, err)
		}

		for _, path := range matches {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			out = append(out, path)
		}
	}

	sort.Strings(out)
	return out, nil
}

func buildTestPlan(files []string) (*TestPlan, error) {
	plan := &TestPlan{
		Files:       files,
		TestsByFile: make(map[string][]TestCase),
	}

	for _, path := range files {
		f, err := os.Open(path) // #nosec G304 // this is a test tool
		if err != nil {
			return nil, fmt.Errorf("reading fixture file %s failed: %w", path, err)
		}
		fixtures, err := oracle.ReadFixtures(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		for i, fx := range fixtures {
			plan.TestsByFile[path] = append(plan.TestsByFile[path], TestCase{
				File:    path,
				Index:   i + 1,
				Fixture: fx,
			})
		}
		cmn.DebugMsg(cmn.DbgLvlDebug2, "Loaded %d fixtures from %s", len(fixtures), path)
	}

	return plan, nil
}

func printTestPlan(out io.Writer, plan *TestPlan) {
	fmt.Fprintln(out, "=== Fixture Test Plan ===")

	for _, file := range plan.Files {
		tests := plan.TestsByFile[file]
		fmt.Fprintf(out, "- %s (%d fixtures)\n", file, len(tests))
	}
}

func runTestPlan(plan *TestPlan, ev *expr.Evaluator) ExecResult {
	var res ExecResult

	for _, file := range plan.Files {
		for _, tc := range plan.TestsByFile[file] {
			r := TestResult{File: file, Expr: tc.Fixture.Expr}

			got, err := ev.Evaluate(tc.Fixture.Expr)
			switch {
			case err != nil:
				r.Error = fmt.Sprintf("#%d: %v", tc.Index, err)
			case got != tc.Fixture.Expected:
				r.Error = fmt.Sprintf("#%d: got %d, want %d", tc.Index, got, tc.Fixture.Expected)
			default:
				r.Passed = true
			}

			if !r.Passed {
				res.Failed++
			}
			res.Results = append(res.Results, r)
		}
	}

	return res
}

func printExecResult(out io.Writer, res ExecResult) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "=== Fixture Test Results ===")

	for _, r := range res.Results {
		if r.Passed {
			fmt.Fprintf(out, "[PASS] %s: %s\n", r.File, r.Expr)
		} else {
			fmt.Fprintf(out, "[FAIL] %s: %s (%s)\n", r.File, r.Expr, r.Error)
		}
	}

	fmt.Fprintf(out, "\nTotal: %d, Passed: %d, Failed: %d\n", len(res.Results), len(res.Results)-res.Failed, res.Failed)
}
