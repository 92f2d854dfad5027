// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

// Package reply turns recommendation results into transport-neutral chat
// replies: plain text, quick options or a list of cards.
package reply

import (
	"net/url"
	"unicode/utf8"

	"github.com/tomtom215/foodbot/internal/catalog"
)

// Kind is the presentation form of a reply.
type Kind int

const (
	KindPlainText Kind = iota
	KindQuickOptions
	KindCards
)

// String returns the snake_case kind name.
func (k Kind) String() string {
	switch k {
	case KindQuickOptions:
		return "quick_options"
	case KindCards:
		return "cards"
	default:
		return "plain_text"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Option is a tappable suggestion. Value is the text sent back when tapped.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Card is one carousel column.
type Card struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Link  string `json:"link"`
}

// Reply is the outbound message. Text is the message itself for PlainText,
// the prompt for QuickOptions and the alternative text for Cards.
type Reply struct {
	Kind    Kind     `json:"kind"`
	Text    string   `json:"text"`
	Options []Option `json:"options,omitempty"`
	Cards   []Card   `json:"cards,omitempty"`
}

// Presentation limits.
const (
	MaxTitleRunes  = 40
	MaxBodyRunes   = 60
	MaxLabelRunes  = 20
	DefaultArea    = "埔里"
	mapsSearchBase = "https://www.google.com/maps/search/?api=1&query="
)

// MapLink returns a Google Maps search link for the place. Places with
// coordinates are searched together with the area name; others by name alone.
func MapLink(area string, place *catalog.Place) string {
	query := place.Name
	if place.HasCoordinates() && area != "" {
		query = area + " " + place.Name
	}
	return mapsSearchBase + url.QueryEscape(query)
}

// truncate shortens s to at most limit runes, marking the cut with "…".
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
