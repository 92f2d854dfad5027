// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Recommend RecommendConfig `koanf:"recommend"`
	Context   ContextConfig   `koanf:"context"`
	Reply     ReplyConfig     `koanf:"reply"`
	Review    ReviewConfig    `koanf:"review"`
	LINE      LINEConfig      `koanf:"line"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	Environment     string        `koanf:"environment" validate:"oneof=development staging production"`
}

// DatasetConfig locates the place catalog.
type DatasetConfig struct {
	// Path is a KML or KMZ file. A missing file yields an empty catalog.
	Path string `koanf:"path"`

	// Area is prefixed to map searches for places with coordinates.
	Area string `koanf:"area"`

	// PlaceholderDescription replaces empty place descriptions.
	PlaceholderDescription string `koanf:"placeholder_description"`
}

// RecommendConfig mirrors recommend.Config.
type RecommendConfig struct {
	DisplayCap       int      `koanf:"display_cap" validate:"min=1,max=10"`
	RadiusKM         float64  `koanf:"radius_km" validate:"gt=0,lte=50"`
	MaxNearby        int      `koanf:"max_nearby" validate:"min=1"`
	Seed             int64    `koanf:"seed"`
	GreetingKeywords []string `koanf:"greeting_keywords"`
	RandomKeywords   []string `koanf:"random_keywords"`
	RepeatKeywords   []string `koanf:"repeat_keywords"`
}

// ContextConfig sizes the per-user context store.
type ContextConfig struct {
	Capacity        int           `koanf:"capacity" validate:"min=1"`
	TTL             time.Duration `koanf:"ttl" validate:"gt=0"`
	CleanupInterval time.Duration `koanf:"cleanup_interval" validate:"gt=0"`
}

// ReplyConfig bounds reply sizes.
type ReplyConfig struct {
	MaxCards   int `koanf:"max_cards" validate:"min=1,max=10"`
	MaxOptions int `koanf:"max_options" validate:"min=1,max=13"`
}

// ReviewConfig locates pre-collected reviews. An empty path disables enrichment.
type ReviewConfig struct {
	Path string `koanf:"path"`
}

// LINEConfig holds Messaging API credentials and client limits.
type LINEConfig struct {
	ChannelSecret      string        `koanf:"channel_secret"`
	ChannelAccessToken string        `koanf:"channel_access_token"`
	APIBaseURL         string        `koanf:"api_base_url" validate:"required,url"`
	ReplyTimeout       time.Duration `koanf:"reply_timeout" validate:"gt=0"`
	ReplyRatePerSecond float64       `koanf:"reply_rate_per_second" validate:"gt=0"`
}

// SecurityConfig holds HTTP rate limit and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`

	// Format is json or console.
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes file and line in log entries.
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
