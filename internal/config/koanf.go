// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/foodbot/config.yaml",
	"/etc/foodbot/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Dataset: DatasetConfig{
			Path:                   "data/foodbot.kml",
			Area:                   "埔里",
			PlaceholderDescription: "埔里在地美食",
		},
		Recommend: RecommendConfig{
			DisplayCap: 5,
			RadiusKM:   3.0,
			MaxNearby:  5,
		},
		Context: ContextConfig{
			Capacity:        10000,
			TTL:             24 * time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
		Reply: ReplyConfig{
			MaxCards:   10,
			MaxOptions: 13,
		},
		LINE: LINEConfig{
			APIBaseURL:         "https://api.line.me",
			ReplyTimeout:       10 * time.Second,
			ReplyRatePerSecond: 20,
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from defaults, the first config file found and
// the environment, in increasing priority, then validates it.
func Load() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is Load with an explicit config file. An empty path skips the
// file layer.
func LoadFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from env.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"recommend.greeting_keywords",
	"recommend.random_keywords",
	"recommend.repeat_keywords",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Dataset
	"dataset_path":                    "dataset.path",
	"dataset_area":                    "dataset.area",
	"dataset_placeholder_description": "dataset.placeholder_description",

	// Recommendations
	"recommend_display_cap":       "recommend.display_cap",
	"recommend_radius_km":         "recommend.radius_km",
	"recommend_max_nearby":        "recommend.max_nearby",
	"recommend_seed":              "recommend.seed",
	"recommend_greeting_keywords": "recommend.greeting_keywords",
	"recommend_random_keywords":   "recommend.random_keywords",
	"recommend_repeat_keywords":   "recommend.repeat_keywords",

	// User context
	"context_capacity":         "context.capacity",
	"context_ttl":              "context.ttl",
	"context_cleanup_interval": "context.cleanup_interval",

	// Replies and reviews
	"reply_max_cards":   "reply.max_cards",
	"reply_max_options": "reply.max_options",
	"review_path":       "review.path",

	// LINE
	"line_channel_secret":        "line.channel_secret",
	"line_channel_access_token":  "line.channel_access_token",
	"line_api_base_url":          "line.api_base_url",
	"line_reply_timeout":         "line.reply_timeout",
	"line_reply_rate_per_second": "line.reply_rate_per_second",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc returns the config path for a mapped variable and an
// empty string for everything else, which koanf skips.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Server.Environment = strings.ToLower(strings.TrimSpace(c.Server.Environment))
}
