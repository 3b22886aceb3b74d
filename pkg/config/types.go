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

package config

// Config represents the structure of the configuration file
type Config struct {
	Evaluator  Evaluator  `yaml:"evaluator"`
	Generator  Generator  `yaml:"generator"`
	API        API        `yaml:"api"`
	Prometheus Prometheus `yaml:"prometheus"`
	OS         string     `yaml:"os"`
	DebugLevel int        `yaml:"debug_level"`
}

// Evaluator holds the limits of the expression evaluator
type Evaluator struct {
	WordSize      int `yaml:"word_size"`       // 8, 16, 32 or 64 bits
	MaxTokens     int `yaml:"max_tokens"`      // token sequence capacity
	MaxLiteralLen int `yaml:"max_literal_len"` // digits per literal
	MaxDepth      int `yaml:"max_depth"`       // parenthesis nesting bound
}

// Generator holds the random fixture generator settings
type Generator struct {
	MaxDepth   int    `yaml:"max_depth"`
	MaxLiteral uint32 `yaml:"max_literal"`
	Spaces     bool   `yaml:"spaces"`
	Reference  string `yaml:"reference"` // "script" or "tree"
	Seed       int64  `yaml:"seed"`      // 0 means time based
	CrossCheck bool   `yaml:"crosscheck"`
}

// API holds the evaluation service settings
type API struct {
	Host              string `yaml:"host"`
	Port              int    `yaml:"port"`
	Timeout           int    `yaml:"timeout"`
	ReadHeaderTimeout int    `yaml:"readheader_timeout"`
	ReadTimeout       int    `yaml:"read_timeout"`
	WriteTimeout      int    `yaml:"write_timeout"`
	RateLimit         string `yaml:"rate_limit"` // "rate,burst"
	SSLMode           string `yaml:"sslmode"`
	CertFile          string `yaml:"cert_file"`
	KeyFile           string `yaml:"key_file"`
	MaxBatch          int    `yaml:"max_batch"`
}

// Prometheus holds the push gateway settings
type Prometheus struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}
