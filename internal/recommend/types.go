// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package recommend

import (
	"fmt"

	"github.com/tomtom215/foodbot/internal/catalog"
)

// Kind identifies which variant of Result is active.
type Kind int

const (
	// KindNotFound means nothing matched.
	KindNotFound Kind = iota
	// KindGreeting answers a greeting with the category menu.
	KindGreeting
	// KindRandomPick carries one place chosen uniformly from the catalog.
	KindRandomPick
	// KindCategoryMatch carries a random sample of one category.
	KindCategoryMatch
	// KindPlaceMatch carries the place whose name matched.
	KindPlaceMatch
	// KindNearbyMatches carries places near a coordinate, nearest first.
	KindNearbyMatches
)

// String returns the snake_case name used in logs, metrics and JSON.
func (k Kind) String() string {
	switch k {
	case KindGreeting:
		return "greeting"
	case KindRandomPick:
		return "random_pick"
	case KindCategoryMatch:
		return "category_match"
	case KindPlaceMatch:
		return "place_match"
	case KindNearbyMatches:
		return "nearby_matches"
	default:
		return "not_found"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	for _, candidate := range []Kind{KindNotFound, KindGreeting, KindRandomPick, KindCategoryMatch, KindPlaceMatch, KindNearbyMatches} {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown result kind %q", text)
}

// NearbyPlace is a place with its distance from the query point.
type NearbyPlace struct {
	Place      *catalog.Place `json:"place"`
	DistanceKM float64        `json:"distance_km"`
}

// Result is the outcome of resolving one message. Only the fields that
// belong to Kind are set.
type Result struct {
	Kind Kind `json:"kind"`

	// Place is set for RandomPick and PlaceMatch.
	Place *catalog.Place `json:"place,omitempty"`

	// Category and Sample are set for CategoryMatch.
	Category string           `json:"category,omitempty"`
	Sample   []*catalog.Place `json:"sample,omitempty"`

	// Nearby is set (possibly empty) for NearbyMatches.
	Nearby []NearbyPlace `json:"nearby,omitempty"`
}

// NotFound returns the empty result.
func NotFound() Result {
	return Result{Kind: KindNotFound}
}

// InputKind tells text and location input apart.
type InputKind int

const (
	InputText InputKind = iota
	InputLocation
)

// Input is either free text or a coordinate pair.
type Input struct {
	Kind      InputKind
	Text      string
	Latitude  float64
	Longitude float64
}

// Text builds a text input.
func Text(s string) Input {
	return Input{Kind: InputText, Text: s}
}

// Location builds a coordinate input.
func Location(lat, lon float64) Input {
	return Input{Kind: InputLocation, Latitude: lat, Longitude: lon}
}
