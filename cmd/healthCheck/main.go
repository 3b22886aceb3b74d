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

// Package main (healthCheck) is a command line that checks if the
// expression evaluation API is reachable and working.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	cmn "github.com/pzaino/sdbexpr/pkg/common"
	cfg "github.com/pzaino/sdbexpr/pkg/config"
)

func genHealthURL(config cfg.Config) string {
	rval := fmt.Sprintf("%s:%d/v1/health", config.API.Host, config.API.Port)
	if config.API.SSLMode == cmn.EnableStr {
		return fmt.Sprintf("%s://%s", cmn.HTTPSStr, rval)
	}
	return fmt.Sprintf("%s://%s", cmn.HTTPStr, rval)
}

// checkHealth reports whether url answers 200.
func checkHealth(client *http.Client, url string) error {
	resp, err := client.Get(url) //nolint:gosec // This is usually a localhost connection
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // read only
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")

	cmn.InitLogger("healthCheck")

	// Parse the command line arguments
	flag.Parse()

	// Load the configuration file
	config, err := cfg.LoadConfig(*configFile)
	if err != nil {
		cmn.DebugMsg(cmn.DbgLvlError, "Health check failed to load %s: %v", *configFile, err)
		os.Exit(1)
	}

	healthURL := genHealthURL(config)
	client := &http.Client{Timeout: time.Duration(config.API.Timeout) * time.Second}
	if err := checkHealth(client, healthURL); err != nil {
		cmn.DebugMsg(cmn.DbgLvlDebug, "Health check failed for %s: %v", healthURL, err)
		// If there's an error or the status is not 200, exit with a non-zero status
		os.Exit(1)
	}

	// If successful, exit with zero (healthy)
	os.Exit(0)
}
