// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

/*
Package api serves Foodbot over HTTP.

Routes:

	POST /callback               LINE webhook, X-Line-Signature verified
	GET  /                       plain text status with the store count
	GET  /api/v1/health/live     liveness probe
	GET  /api/v1/health/ready    readiness probe, ready once the catalog is loaded
	GET  /api/v1/categories      category names and place counts
	GET  /api/v1/recommend       resolve ?user=&q= or ?user=&lat=&lon=
	GET  /metrics                Prometheus

JSON endpoints answer with the models.APIResponse envelope. The webhook
answers 400 on a missing or invalid signature and 200 "OK" otherwise; reply
delivery failures are logged and never change the webhook status.

The recommend endpoint goes through the same resolver as chat messages and
updates the user's context the same way.
*/
package api
