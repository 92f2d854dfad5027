// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package textmatch

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold lower-cases s for case-insensitive comparison.
// A Caser is stateful, so one is created per call.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// ContainsHan reports whether s has any ideographic (Han) characters.
func ContainsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// isNoise reports whether a token consists only of punctuation, symbols or space.
func isNoise(tok string) bool {
	for _, r := range tok {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// isWordRune reports whether r belongs to a space-delimited script word.
// Han characters are excluded: they carry no word boundaries.
func isWordRune(r rune) bool {
	if unicode.Is(unicode.Han, r) {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
