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

// Package main (sdb) is the monitor: a small command line debugger shell
// whose "p" command evaluates expressions.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	cmn "github.com/pzaino/sdbexpr/pkg/common"
	cfg "github.com/pzaino/sdbexpr/pkg/config"
)

const prompt = "(sdb) "

func main() {
	configFile := flag.String("config", "", "Path to the configuration file (optional)")
	expression := flag.String("e", "", "Evaluate an expression, print it and exit")
	flag.Parse()

	cmn.InitLogger("sdb")

	var config cfg.Config
	if *configFile != "" {
		var err error
		config, err = cfg.LoadConfig(*configFile)
		if err != nil {
			cmn.DebugMsg(cmn.DbgLvlError, "Error loading the configuration: %v", err)
			os.Exit(1)
		}
	} else {
		cfg.SetDefaults(&config)
	}
	cmn.SetDebugLevel(cmn.DbgLevel(config.DebugLevel))
	cmn.UpdateLoggerConfig()

	m := newMonitor(config.EvaluatorOptions(), os.Stdout)

	if *expression != "" {
		if !m.print(*expression) {
			os.Exit(1)
		}
		return
	}

	mainLoop(m, os.Stdin)
}

// mainLoop reads commands from in until "q" or the end of the input.
func mainLoop(m *monitor, in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(m.out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(m.out)
			break
		}
		if m.exec(scanner.Text()) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		cmn.DebugMsg(cmn.DbgLvlError, "Error reading the input: %v", err)
	}
}
