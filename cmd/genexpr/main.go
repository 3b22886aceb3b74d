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

// Package main (genexpr) generates random expressions with their expected
// values, one "<expected> <expression>" fixture per line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	cmn "github.com/pzaino/sdbexpr/pkg/common"
	cfg "github.com/pzaino/sdbexpr/pkg/config"
	"github.com/pzaino/sdbexpr/pkg/oracle"
)

type cliOptions struct {
	ConfigPath string
	Count      int
	Seed       int64
	Depth      int
	Spaces     bool
	Reference  string
	CrossCheck bool
}

func main() {
	opts := parseFlags()

	cmn.InitLogger("genexpr")

	out := bufio.NewWriter(os.Stdout)
	err := run(opts, out)
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "genexpr: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() cliOptions {
	var o cliOptions

	flag.StringVar(&o.ConfigPath, "config", "", "Path to the configuration file (optional)")
	flag.IntVar(&o.Count, "n", 1, "Number of expressions to generate")
	flag.Int64Var(&o.Seed, "seed", 0, "Random seed (0 uses the configured seed, or the time if none)")
	flag.IntVar(&o.Depth, "depth", 0, "Maximum expression depth (0 uses the configured depth)")
	flag.BoolVar(&o.Spaces, "spaces", false, "Insert random spaces between tokens")
	flag.StringVar(&o.Reference, "reference", "", "How expected values are computed: script|tree")
	flag.BoolVar(&o.CrossCheck, "crosscheck", false, "Check expected values with govaluate where it is exact")

	flag.Parse()
	return o
}

// loadConfig returns the configuration with the command line applied.
func loadConfig(opts cliOptions) (cfg.Config, error) {
	var config cfg.Config
	if opts.ConfigPath != "" {
		var err error
		config, err = cfg.LoadConfig(opts.ConfigPath)
		if err != nil {
			return config, fmt.Errorf("loading config %s failed: %w", opts.ConfigPath, err)
		}
	} else {
		cfg.SetDefaults(&config)
	}

	if opts.Seed != 0 {
		config.Generator.Seed = opts.Seed
	}
	if opts.Depth > 0 {
		config.Generator.MaxDepth = opts.Depth
	}
	if opts.Reference != "" {
		config.Generator.Reference = opts.Reference
	}
	config.Generator.Spaces = config.Generator.Spaces || opts.Spaces
	config.Generator.CrossCheck = config.Generator.CrossCheck || opts.CrossCheck

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func newReference(config cfg.Config) (oracle.Reference, error) {
	switch config.Generator.Reference {
	case cfg.ReferenceScript:
		return oracle.NewScriptReference()
	case cfg.ReferenceTree:
		return oracle.TreeReference{WordSize: config.Evaluator.WordSize}, nil
	}
	return nil, fmt.Errorf("unknown reference %q", config.Generator.Reference)
}

func run(opts cliOptions, out io.Writer) error {
	config, err := loadConfig(opts)
	if err != nil {
		return err
	}
	cmn.SetDebugLevel(cmn.DbgLevel(config.DebugLevel))

	ref, err := newReference(config)
	if err != nil {
		return err
	}

	seed := config.Generator.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cmn.DebugMsg(cmn.DbgLvlDebug1, "genexpr: seed %d, depth %d, reference %s", seed, config.Generator.MaxDepth, config.Generator.Reference)

	g := oracle.NewGenerator(seed, config.Generator.MaxDepth)
	g.MaxLiteral = config.Generator.MaxLiteral
	g.WordSize = config.Evaluator.WordSize

	crossChecked := 0
	for i := 0; i < opts.Count; i++ {
		f, tree, err := g.Fixture(ref, config.Generator.Spaces)
		if err != nil {
			return err
		}

		if config.Generator.CrossCheck {
			checked, err := oracle.CrossCheck(tree, f.Expected, config.Evaluator.WordSize)
			if err != nil {
				return fmt.Errorf("cross check of %q failed: %w", f.Expr, err)
			}
			if checked {
				crossChecked++
			}
		}

		if err := oracle.WriteFixture(out, f); err != nil {
			return err
		}
	}

	cmn.DebugMsg(cmn.DbgLvlDebug1, "genexpr: %d fixtures written, %d cross checked", opts.Count, crossChecked)
	return nil
}
