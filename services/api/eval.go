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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	cmn "github.com/pzaino/sdbexpr/pkg/common"
	expr "github.com/pzaino/sdbexpr/pkg/exprterpreter"

	"github.com/qri-io/jsonschema"
)

const evalRequestSchema = `{
	"title": "eval request",
	"type": "object",
	"properties": {
		"expression": { "type": "string" }
	},
	"required": ["expression"],
	"additionalProperties": false
}`

const batchRequestSchema = `{
	"title": "batch eval request",
	"type": "object",
	"properties": {
		"expressions": {
			"type": "array",
			"items": { "type": "string" }
		}
	},
	"required": ["expressions"],
	"additionalProperties": false
}`

var (
	evalSchema  = mustLoadSchema(evalRequestSchema)
	batchSchema = mustLoadSchema(batchRequestSchema)
)

func mustLoadSchema(schema string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(schema), rs); err != nil {
		panic(fmt.Sprintf("invalid request schema: %v", err))
	}
	return rs
}

// validateBody checks body against schema and reports every violation.
func validateBody(schema *jsonschema.Schema, body []byte) error {
	errs, err := schema.ValidateBytes(context.Background(), body)
	if err != nil {
		return fmt.Errorf("error validating document: %v", err)
	}

	if len(errs) > 0 {
		var validationErrors []string
		for _, e := range errs {
			validationErrors = append(validationErrors, e.Error())
		}
		return fmt.Errorf("validation errors: %s", strings.Join(validationErrors, "; "))
	}
	return nil
}

// decodeBody reads, validates and decodes a POST body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, schema *jsonschema.Schema, v interface{}) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := validateBody(schema, body); err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// evalHandler evaluates a single expression, from the q parameter of a GET
// request or from the body of a POST request.
func evalHandler(w http.ResponseWriter, r *http.Request) {
	var expression string
	switch r.Method {
	case http.MethodGet:
		q, err := extractQuery(r)
		if err != nil {
			handleErrorAndRespond(w, err, nil, "Invalid query", http.StatusBadRequest, http.StatusOK)
			return
		}
		expression = q
	case http.MethodPost:
		var req EvalRequest
		if err := decodeBody(w, r, evalSchema, &req); err != nil {
			handleErrorAndRespond(w, err, nil, "Invalid request body", http.StatusBadRequest, http.StatusOK)
			return
		}
		expression = req.Expression
	default:
		w.Header().Set("Allow", "GET, POST")
		handleErrorAndRespond(w, fmt.Errorf("method %s not allowed", r.Method), nil, "Invalid method", http.StatusMethodNotAllowed, http.StatusOK)
		return
	}

	requestID := w.Header().Get(requestIDHeader)
	cmn.DebugMsg(cmn.DbgLvlDebug2, "API: [%s] evaluating %q", requestID, expression)

	result, err := state().evaluator.Evaluate(expression)
	countEvaluation(err)
	if err != nil {
		cmn.DebugMsg(cmn.DbgLvlDebug2, "API: [%s] evaluation failed: %v", requestID, err)
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			RequestID: requestID,
			Error:     err.Error(),
			Code:      expr.ErrorCode(err),
			Message:   "Error evaluating expression",
		})
		return
	}

	respondJSON(w, http.StatusOK, EvalResponse{
		RequestID:  requestID,
		Expression: expression,
		Result:     result,
		Hex:        hex(result),
	})
}

// evalBatchHandler evaluates a list of expressions. A failing expression is
// reported in its own item and does not fail the batch.
func evalBatchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		handleErrorAndRespond(w, fmt.Errorf("method %s not allowed", r.Method), nil, "Invalid method", http.StatusMethodNotAllowed, http.StatusOK)
		return
	}

	var req BatchRequest
	if err := decodeBody(w, r, batchSchema, &req); err != nil {
		handleErrorAndRespond(w, err, nil, "Invalid request body", http.StatusBadRequest, http.StatusOK)
		return
	}

	st := state()
	if st.maxBatch > 0 && len(req.Expressions) > st.maxBatch {
		err := fmt.Errorf("%d expressions exceed the batch limit of %d", len(req.Expressions), st.maxBatch)
		handleErrorAndRespond(w, err, nil, "Batch too large", http.StatusBadRequest, http.StatusOK)
		return
	}

	resp := BatchResponse{
		RequestID: w.Header().Get(requestIDHeader),
		Results:   make([]BatchItem, 0, len(req.Expressions)),
	}
	for _, expression := range req.Expressions {
		item := BatchItem{Expression: expression}
		result, err := st.evaluator.Evaluate(expression)
		countEvaluation(err)
		if err != nil {
			item.Error = err.Error()
			item.Code = expr.ErrorCode(err)
			resp.Errors++
		} else {
			item.Result = &result
			item.Hex = hex(result)
		}
		resp.Results = append(resp.Results, item)
	}

	cmn.DebugMsg(cmn.DbgLvlDebug2, "API: [%s] batch of %d expressions, %d errors", resp.RequestID, len(req.Expressions), resp.Errors)
	respondJSON(w, http.StatusOK, resp)
}
