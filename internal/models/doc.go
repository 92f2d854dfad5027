// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

/*
Package models defines the JSON shapes of the HTTP API.

Every endpoint answers with an APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "2026-10-15T12:00:00Z", "query_time_ms": 1}
	}

Errors carry an APIError with a machine readable code:

	{
	  "status": "error",
	  "data": null,
	  "metadata": {"timestamp": "2026-10-15T12:00:00Z"},
	  "error": {"code": "VALIDATION_ERROR", "message": "user is required"}
	}

The payload types (CategoryList, RecommendResponse, PlaceView) are plain data;
conversion from domain types lives in the api package.
*/
package models
