// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

/*
Package config loads Foodbot configuration.

# Configuration Sources

Sources are layered, later ones overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - Optional YAML file: $CONFIG_PATH, config.yaml, config.yml, /etc/foodbot/config.yaml
  - Environment variables listed in envMappings

Unlisted environment variables are ignored.

# Environment Variables

Server:
  - HTTP_HOST (default: 0.0.0.0)
  - HTTP_PORT (default: 5000)
  - HTTP_TIMEOUT (default: 30s)
  - SHUTDOWN_TIMEOUT (default: 15s)

Dataset:
  - DATASET_PATH: KML or KMZ file (default: data/foodbot.kml)
  - DATASET_AREA: area prefixed to map searches (default: 埔里)
  - DATASET_PLACEHOLDER_DESCRIPTION

Recommendations:
  - RECOMMEND_DISPLAY_CAP (default: 5)
  - RECOMMEND_RADIUS_KM (default: 3)
  - RECOMMEND_MAX_NEARBY (default: 5, clamped to 10)
  - RECOMMEND_SEED: non-zero for reproducible sampling
  - RECOMMEND_GREETING_KEYWORDS, RECOMMEND_RANDOM_KEYWORDS, RECOMMEND_REPEAT_KEYWORDS: comma-separated

User context:
  - CONTEXT_CAPACITY (default: 10000)
  - CONTEXT_TTL (default: 24h)
  - CONTEXT_CLEANUP_INTERVAL (default: 10m)

Replies and reviews:
  - REPLY_MAX_CARDS (default: 10)
  - REPLY_MAX_OPTIONS (default: 13)
  - REVIEW_PATH: JSON review file, empty disables enrichment

LINE:
  - LINE_CHANNEL_SECRET
  - LINE_CHANNEL_ACCESS_TOKEN
  - LINE_API_BASE_URL (default: https://api.line.me)
  - LINE_REPLY_TIMEOUT (default: 10s)
  - LINE_REPLY_RATE_PER_SECOND (default: 20)

Security:
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated

Logging:
  - LOG_LEVEL, LOG_FORMAT (json|console), LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

Validate runs the struct tag rules through the shared validator and then
the cross-field checks. A missing channel secret is allowed in development
and rejected when ENVIRONMENT=production.
*/
package config
