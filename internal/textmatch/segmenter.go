// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

// Package textmatch turns free-text chat messages into tokens and matches
// them against catalog categories, places and intent keywords.
package textmatch

import (
	"strings"
	"sync"

	"github.com/go-ego/gse"
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodbot/internal/catalog"
)

// DefaultDictionary is the gse embedded dictionary (Traditional Chinese).
const DefaultDictionary = "zh_t"

// nameFrequency is the dictionary weight given to catalog names so the
// segmenter keeps them whole.
const nameFrequency = 20000

// Segmenter tokenizes user input. Text containing Han characters goes
// through dictionary segmentation; anything else is split on whitespace.
type Segmenter struct {
	mu       sync.RWMutex
	seg      gse.Segmenter
	loaded   bool
	register sync.Once
	logger   zerolog.Logger
}

// NewSegmenter loads the named embedded dictionary. If the dictionary cannot
// be loaded the segmenter still works, splitting Han text on whitespace only.
func NewSegmenter(dictionary string, logger zerolog.Logger) *Segmenter {
	if dictionary == "" {
		dictionary = DefaultDictionary
	}

	s := &Segmenter{logger: logger}
	if err := s.seg.LoadDictEmbed(dictionary); err != nil {
		logger.Warn().Err(err).Str("dictionary", dictionary).Msg("Failed to load segmentation dictionary")
		return s
	}
	s.loaded = true
	logger.Debug().Str("dictionary", dictionary).Msg("Segmentation dictionary loaded")
	return s
}

// Loaded reports whether dictionary segmentation is available.
func (s *Segmenter) Loaded() bool {
	return s.loaded
}

// RegisterCatalog adds every category and place name to the dictionary.
// Only the first call has any effect.
func (s *Segmenter) RegisterCatalog(cat *catalog.Catalog) {
	s.register.Do(func() {
		if !s.loaded {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		added := 0
		for _, c := range cat.Categories() {
			s.addToken(c.Name)
			added++
			for _, p := range c.Places {
				s.addToken(p.Name)
				added++
			}
		}
		s.logger.Info().Int("entries", added).Msg("Registered catalog names with segmenter")
	})
}

func (s *Segmenter) addToken(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	s.seg.AddToken(name, nameFrequency)
}

// Tokenize splits text into lower-cased tokens, dropping blank and
// punctuation-only pieces.
func (s *Segmenter) Tokenize(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var raw []string
	if s.loaded && ContainsHan(text) {
		s.mu.RLock()
		raw = s.seg.Cut(text, true)
		s.mu.RUnlock()
	} else {
		raw = strings.Fields(text)
	}

	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		tok = strings.TrimSpace(tok)
		if tok == "" || isNoise(tok) {
			continue
		}
		tokens = append(tokens, Fold(tok))
	}
	return tokens
}
