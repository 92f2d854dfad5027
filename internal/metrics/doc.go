// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

/*
Package metrics provides Prometheus metrics for the recommendation bot.

All collectors are registered with the default registry through promauto and
exposed at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation:
  - foodbot_resolutions_total{kind}: resolved messages by result kind
  - foodbot_nearby_results: size of nearby result sets (histogram)

Catalog and context:
  - foodbot_catalog_places, foodbot_catalog_categories (gauges)
  - foodbot_catalog_load_duration_seconds (gauge)
  - foodbot_context_users (gauge), foodbot_context_expired_total (counter)
  - foodbot_context_lookups_total{result} (hit, miss)

Messaging:
  - foodbot_webhook_events_total{type}
  - foodbot_webhook_signature_failures_total
  - foodbot_reply_send_total{outcome}, foodbot_reply_send_duration_seconds
  - foodbot_review_lookups_total{result}
  - foodbot_circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests, api_rate_limit_hits_total{endpoint}

# Usage

	metrics.RecordResolution("category_match")
	metrics.RecordAPIRequest("GET", "/api/v1/recommend", "200", time.Since(start))
*/
package metrics
