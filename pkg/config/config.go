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

// Package config contains the configuration file parsing logic.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	cmn "github.com/pzaino/sdbexpr/pkg/common"
	expr "github.com/pzaino/sdbexpr/pkg/exprterpreter"

	"gopkg.in/yaml.v2"
)

const (
	// ReferenceScript computes fixture results by running a generated script
	ReferenceScript = "script"
	// ReferenceTree computes fixture results by walking the expression tree
	ReferenceTree = "tree"
)

// FileReader abstracts file access for the include processing.
type FileReader interface {
	ReadFile(filename string) ([]byte, error)
}

// OsFileReader reads files from the local file system.
type OsFileReader struct{}

// ReadFile reads the named file.
func (OsFileReader) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename) // #nosec G304 // config paths come from the operator
}

var (
	envVarPattern  = regexp.MustCompile(`\$\{?(\w+)\}?`)
	includePattern = regexp.MustCompile(`include:\s*["']?([^"'\s]+)["']?`)
)

// fileExists checks if a file exists at the given filename.
// It returns true if the file exists and is not a directory, and false otherwise.
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// interpolateEnvVars replaces occurrences of `${VAR}` or `$VAR` in the input string
// with the value of the VAR environment variable.
func interpolateEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(varName string) string {
		trimmedVarName := strings.TrimPrefix(varName, "${")
		trimmedVarName = strings.TrimPrefix(trimmedVarName, "$")
		trimmedVarName = strings.TrimSuffix(trimmedVarName, "}")
		return os.Getenv(trimmedVarName)
	})
}

// recursiveInclude processes the "include" directives in YAML files.
// It supports environment variable interpolation in file paths.
func recursiveInclude(yamlContent string, baseDir string, reader FileReader) (string, error) {
	matches := includePattern.FindAllStringSubmatch(yamlContent, -1)

	for _, match := range matches {
		includePath := interpolateEnvVars(match[1])
		includePath = filepath.Join(baseDir, includePath)

		includedContentBytes, err := reader.ReadFile(includePath)
		if err != nil {
			return "", err
		}

		includedContent := string(includedContentBytes)
		if strings.Contains(includedContent, "include:") {
			includedContent, err = recursiveInclude(includedContent, filepath.Dir(includePath), reader)
			if err != nil {
				return "", err
			}
		}

		yamlContent = strings.Replace(yamlContent, match[0], includedContent, 1)
	}

	return yamlContent, nil
}

// getConfigFile reads and unmarshals a configuration file with the given name.
func getConfigFile(confName string) (Config, error) {
	if !fileExists(confName) {
		return Config{}, fmt.Errorf("file does not exist: %s", confName)
	}

	data, err := os.ReadFile(confName) // #nosec G304 // config paths come from the operator
	if err != nil {
		return Config{}, err
	}

	return ParseConfig(data, filepath.Dir(confName), OsFileReader{})
}

// ParseConfig interpolates, expands includes relative to baseDir and
// unmarshals a configuration document.
func ParseConfig(data []byte, baseDir string, reader FileReader) (Config, error) {
	interpolatedData := interpolateEnvVars(string(data))

	finalData, err := recursiveInclude(interpolatedData, baseDir, reader)
	if err != nil {
		return Config{}, err
	}

	var config Config
	if strings.TrimSpace(finalData) != "" {
		err = yaml.Unmarshal([]byte(finalData), &config)
	}
	return config, err
}

// LoadConfig is responsible for loading the configuration file
// and return the Config struct
func LoadConfig(confName string) (Config, error) {
	config, err := getConfigFile(confName)
	if err != nil {
		return config, err
	}

	SetDefaults(&config)

	if err := config.Validate(); err != nil {
		return config, err
	}

	cmn.DebugMsg(cmn.DbgLvlDebug2, "Configuration loaded from %s", confName)
	return config, nil
}

// SetDefaults fills the unset fields of config.
func SetDefaults(config *Config) {
	config.OS = runtime.GOOS

	if config.Evaluator.WordSize == 0 {
		config.Evaluator.WordSize = expr.DefaultWordSize
	}
	if config.Evaluator.MaxTokens == 0 {
		config.Evaluator.MaxTokens = expr.DefaultMaxTokens
	}
	if config.Evaluator.MaxLiteralLen == 0 {
		config.Evaluator.MaxLiteralLen = expr.DefaultMaxLiteralLen
	}
	if config.Evaluator.MaxDepth == 0 {
		config.Evaluator.MaxDepth = expr.DefaultMaxDepth
	}

	if config.Generator.MaxDepth == 0 {
		config.Generator.MaxDepth = 100
	}
	if config.Generator.MaxLiteral == 0 {
		config.Generator.MaxLiteral = 2147483647
	}
	if config.Generator.Reference == "" {
		config.Generator.Reference = ReferenceScript
		if config.Evaluator.WordSize != 32 {
			config.Generator.Reference = ReferenceTree
		}
	}

	if config.API.Host == "" {
		config.API.Host = cmn.LocalhostStr
	}
	if config.API.Port == 0 {
		config.API.Port = 8080
	}
	if config.API.Timeout == 0 {
		config.API.Timeout = 10
	}
	if config.API.ReadHeaderTimeout == 0 {
		config.API.ReadHeaderTimeout = 5
	}
	if config.API.ReadTimeout == 0 {
		config.API.ReadTimeout = 10
	}
	if config.API.WriteTimeout == 0 {
		config.API.WriteTimeout = 10
	}
	if strings.TrimSpace(config.API.RateLimit) == "" {
		config.API.RateLimit = "10,10"
	}
	if config.API.SSLMode == "" {
		config.API.SSLMode = cmn.DisableStr
	}
	if config.API.MaxBatch == 0 {
		config.API.MaxBatch = 64
	}

	if config.Prometheus.Host == "" {
		config.Prometheus.Host = cmn.LocalhostStr
	}
	if config.Prometheus.Port == 0 {
		config.Prometheus.Port = 9091
	}
}

// Validate checks the values SetDefaults cannot fix.
func (c *Config) Validate() error {
	switch c.Evaluator.WordSize {
	case 8, 16, 32, 64:
	default:
		return fmt.Errorf("evaluator.word_size must be 8, 16, 32 or 64, got %d", c.Evaluator.WordSize)
	}
	if c.Evaluator.MaxTokens < 0 || c.Evaluator.MaxLiteralLen < 0 || c.Evaluator.MaxDepth < 0 {
		return fmt.Errorf("evaluator limits must not be negative")
	}
	switch c.Generator.Reference {
	case ReferenceScript, ReferenceTree:
	default:
		return fmt.Errorf("generator.reference must be %q or %q, got %q", ReferenceScript, ReferenceTree, c.Generator.Reference)
	}
	if c.Generator.Reference == ReferenceScript && c.Evaluator.WordSize != 32 {
		return fmt.Errorf("generator.reference %q requires a 32 bit word", ReferenceScript)
	}
	if c.API.MaxBatch < 0 {
		return fmt.Errorf("api.max_batch must not be negative")
	}
	return nil
}

// EvaluatorOptions returns the evaluator section as exprterpreter options.
func (c *Config) EvaluatorOptions() expr.Options {
	return expr.Options{
		WordSize:      c.Evaluator.WordSize,
		MaxTokens:     c.Evaluator.MaxTokens,
		MaxLiteralLen: c.Evaluator.MaxLiteralLen,
		MaxDepth:      c.Evaluator.MaxDepth,
	}
}

// IsEmpty checks if the given config is empty.
// It returns true if the config is empty, false otherwise.
func IsEmpty(config Config) bool {
	return config == Config{}
}
