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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	cmn "github.com/pzaino/sdbexpr/pkg/common"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 1 << 20
)

func newRequestID() string {
	return uuid.NewString()
}

// handleErrorAndRespond encapsulates common error handling and JSON response logic.
func handleErrorAndRespond(w http.ResponseWriter, err error, results interface{}, errMsg string, errCode int, successCode int) {
	var response interface{}
	code := successCode

	if successCode == 0 {
		code = http.StatusOK
	}

	if err != nil {
		// Log the error and prepare an error response
		cmn.DebugMsg(cmn.DbgLvlDebug3, errMsg+": %v", err)
		response = ErrorResponse{
			RequestID: w.Header().Get(requestIDHeader),
			Error:     err.Error(),
			Message:   errMsg,
		}
		code = errCode
	} else {
		response = results
	}

	respondJSON(w, code, response)
}

// respondJSON writes v as the JSON body of a response with the given status.
func respondJSON(w http.ResponseWriter, code int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log the error and send a fallback error response
		cmn.DebugMsg(cmn.DbgLvlDebug3, "Error encoding JSON response: %v", err)
		cmn.DebugMsg(cmn.DbgLvlDebug3, "Original Results: %+v", v)

		code = http.StatusInternalServerError
		body = []byte(`{"error":"Internal Server Error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(append(body, '\n')); err != nil {
		cmn.DebugMsg(cmn.DbgLvlDebug3, "Error writing response: %v", err)
	}
}

// readBody reads a POST body up to maxBodyBytes.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer r.Body.Close() //nolint:errcheck // Don't lint for error not checked, this is a defer statement
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return body, nil
}

// extractQuery returns the q parameter of a GET request.
func extractQuery(r *http.Request) (string, error) {
	values := r.URL.Query()
	if !values.Has("q") {
		return "", fmt.Errorf("query parameter 'q' is required")
	}
	return values.Get("q"), nil
}

// parseRateLimit parses a "rate,burst" setting. Missing or invalid parts
// default to 10.
func parseRateLimit(setting string) (rate.Limit, int) {
	if strings.TrimSpace(setting) == "" {
		setting = "10,10"
	}
	if !strings.Contains(setting, ",") {
		setting += ",10"
	}
	rlStr, blStr, _ := strings.Cut(setting, ",")

	rl, err := strconv.Atoi(strings.TrimSpace(rlStr))
	if err != nil || rl <= 0 {
		rl = 10
	}
	bl, err := strconv.Atoi(strings.TrimSpace(blStr))
	if err != nil || bl <= 0 {
		bl = 10
	}
	return rate.Limit(rl), bl
}

// hex formats v the way the monitor prints it.
func hex(v uint64) string {
	return "0x" + strconv.FormatUint(v, 16)
}
