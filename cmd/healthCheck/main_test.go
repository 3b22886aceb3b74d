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
	"net/http"
	"net/http/httptest"
	"testing"

	cfg "github.com/pzaino/sdbexpr/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestGenHealthURL(t *testing.T) {
	var config cfg.Config
	cfg.SetDefaults(&config)
	assert.Equal(t, "http://localhost:8080/v1/health", genHealthURL(config))

	config.API.SSLMode = "enable"
	config.API.Port = 8443
	assert.Equal(t, "https://localhost:8443/v1/health", genHealthURL(config))
}

func TestCheckHealth(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()
	assert.NoError(t, checkHealth(healthy.Client(), healthy.URL))

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()
	assert.Error(t, checkHealth(broken.Client(), broken.URL))
}
