// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

/*
Command server runs the foodbot webhook and JSON API.

Startup order:

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, json or console output
 3. Catalog: KML or KMZ dataset loaded once and never mutated
 4. Segmenter: gse dictionary extended with every category and place name
 5. Resolver, context store, review provider, reply formatter
 6. LINE reply client with rate limiting and a circuit breaker
 7. Chi router
 8. Supervisor tree: api-layer (HTTP server), maintenance-layer (context janitor)

A dataset that cannot be read is logged and served as an empty catalog; the
readiness probe then reports the catalog as missing.

Core environment variables:

	HTTP_PORT=5000
	DATASET_PATH=data/foodbot.kml
	LINE_CHANNEL_SECRET=<secret>
	LINE_CHANNEL_ACCESS_TOKEN=<token>
	LOG_LEVEL=info
	LOG_FORMAT=json

SIGINT and SIGTERM cancel the root context; the HTTP server drains for
SHUTDOWN_TIMEOUT before the process exits.
*/
package main
