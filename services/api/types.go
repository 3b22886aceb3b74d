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
	cfg "github.com/pzaino/sdbexpr/pkg/config"
)

var (
	config cfg.Config // Global variable to store the configuration
)

// HealthCheck is the /v1/health response
type HealthCheck struct {
	Status string `json:"status"`
}

// ReadyCheck is the /v1/ready response
type ReadyCheck struct {
	Status string `json:"status"`
}

// EvalRequest is the body of POST /v1/eval
type EvalRequest struct {
	Expression string `json:"expression"`
}

// EvalResponse is a successful evaluation
type EvalResponse struct {
	RequestID  string `json:"request_id"`
	Expression string `json:"expression"`
	Result     uint64 `json:"result"`
	Hex        string `json:"hex"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
}

// BatchRequest is the body of POST /v1/eval/batch
type BatchRequest struct {
	Expressions []string `json:"expressions"`
}

// BatchItem is the outcome of one expression of a batch. Result and Hex are
// set on success, Error and Code on failure.
type BatchItem struct {
	Expression string  `json:"expression"`
	Result     *uint64 `json:"result,omitempty"`
	Hex        string  `json:"hex,omitempty"`
	Error      string  `json:"error,omitempty"`
	Code       string  `json:"code,omitempty"`
}

// BatchResponse is the /v1/eval/batch response
type BatchResponse struct {
	RequestID string      `json:"request_id"`
	Results   []BatchItem `json:"results"`
	Errors    int         `json:"errors"`
}
