// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package recommend

import (
	"fmt"
	"math"
)

const (
	// DefaultDisplayCap is the category sample size.
	DefaultDisplayCap = 5

	// DefaultRadiusKM bounds nearby queries.
	DefaultRadiusKM = 3.0

	// DefaultMaxNearby is the nearby result count.
	DefaultMaxNearby = 5

	// MaxNearbyHardCap is the carousel limit of the messaging platform.
	MaxNearbyHardCap = 10
)

// Config controls resolver behaviour.
type Config struct {
	// DisplayCap is the maximum number of places sampled from a category.
	DisplayCap int `json:"display_cap"`

	// RadiusKM is the nearby search radius.
	RadiusKM float64 `json:"radius_km"`

	// MaxNearby caps nearby results; values above MaxNearbyHardCap are clamped.
	MaxNearby int `json:"max_nearby"`

	// Seed makes sampling reproducible when non-zero.
	Seed int64 `json:"seed"`

	// Keyword vocabularies. Empty lists select the built-in defaults.
	GreetingKeywords []string `json:"greeting_keywords"`
	RandomKeywords   []string `json:"random_keywords"`
	RepeatKeywords   []string `json:"repeat_keywords"`
}

// DefaultConfig returns the canonical settings.
func DefaultConfig() *Config {
	return &Config{
		DisplayCap: DefaultDisplayCap,
		RadiusKM:   DefaultRadiusKM,
		MaxNearby:  DefaultMaxNearby,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.DisplayCap < 1 {
		return fmt.Errorf("display_cap must be positive, got %d", c.DisplayCap)
	}
	if math.IsNaN(c.RadiusKM) || math.IsInf(c.RadiusKM, 0) || c.RadiusKM <= 0 {
		return fmt.Errorf("radius_km must be a positive number, got %v", c.RadiusKM)
	}
	if c.MaxNearby < 1 {
		return fmt.Errorf("max_nearby must be positive, got %d", c.MaxNearby)
	}
	return nil
}

// maxNearby returns MaxNearby clamped to the platform cap.
func (c *Config) maxNearby() int {
	return min(c.MaxNearby, MaxNearbyHardCap)
}
