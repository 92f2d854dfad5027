// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package models

import (
	"time"
)

// APIResponse is the envelope of every JSON endpoint. Status is "success",
// "error", or a probe specific value such as "ready".
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how the response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is a structured error.
//
// Codes used by the server:
//   - VALIDATION_ERROR: request parameters failed validation
//   - INVALID_SIGNATURE: webhook signature missing or wrong
//   - BAD_REQUEST: malformed body
//   - NOT_FOUND, METHOD_NOT_ALLOWED, RATE_LIMIT_EXCEEDED
//   - INTERNAL_ERROR
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
