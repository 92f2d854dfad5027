// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide. Field names in errors
// come from the first of the query, koanf or json tags, so messages name
// the parameter or setting a user actually typed.
//
// # Quick Start
//
//	type RecommendRequest struct {
//	    User string   `query:"user" validate:"required,max=128"`
//	    Q    string   `query:"q" validate:"omitempty,notblank,max=200"`
//	    Lat  *float64 `query:"lat" validate:"omitempty,latitude"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Custom Tags
//
//   - notblank: string must contain a non-whitespace character
package validation
