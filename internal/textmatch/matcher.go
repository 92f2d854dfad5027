// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package textmatch

import (
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/foodbot/internal/catalog"
)

// MatchCategory returns the first category, in catalog order, whose name
// contains any token or is itself contained in the raw input. Comparison is
// case-insensitive. Tokens are expected to be folded already.
func MatchCategory(tokens []string, raw string, cat *catalog.Catalog) (*catalog.Category, bool) {
	input := Fold(strings.TrimSpace(raw))

	for _, c := range cat.Categories() {
		name := Fold(c.Name)
		if name == "" {
			continue
		}
		if input != "" && strings.Contains(input, name) {
			return c, true
		}
		for _, tok := range tokens {
			if tok != "" && strings.Contains(name, tok) {
				return c, true
			}
		}
	}
	return nil, false
}

// MatchPlace returns the first place, across categories in catalog order,
// whose name contains a token longer than one character.
func MatchPlace(tokens []string, cat *catalog.Catalog) (*catalog.Place, bool) {
	candidates := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) > 1 {
			candidates = append(candidates, tok)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	for _, p := range cat.Places() {
		name := Fold(p.Name)
		for _, tok := range candidates {
			if strings.Contains(name, tok) {
				return p, true
			}
		}
	}
	return nil, false
}
