// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package review

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodbot/internal/metrics"
	"github.com/tomtom215/foodbot/internal/textmatch"
)

// fileDocument is the on-disk format of pre-collected reviews:
//
//	{"places": {"阿嬤麵店": [{"rating": 5, "text": "..."}]}}
type fileDocument struct {
	Places map[string][]Entry `json:"places"`
}

// FileProvider serves reviews loaded once from a JSON document.
type FileProvider struct {
	reviews map[string]*Review
}

// NewFileProvider reads and summarizes the review document at path.
func NewFileProvider(path string) (*FileProvider, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read reviews: %w", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}

	p := &FileProvider{reviews: make(map[string]*Review, len(doc.Places))}
	for name, entries := range doc.Places {
		key := reviewKey(name)
		if key == "" {
			continue
		}
		if r, err := Summarize(entries); err == nil {
			p.reviews[key] = r
		}
	}
	return p, nil
}

// Len returns the number of places with a review.
func (p *FileProvider) Len() int {
	return len(p.reviews)
}

// Lookup returns the review for a place or ErrNotFound.
func (p *FileProvider) Lookup(placeName string) (*Review, error) {
	r, ok := p.reviews[reviewKey(placeName)]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

// Fetch implements Provider.
func (p *FileProvider) Fetch(ctx context.Context, placeName string) (*Review, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	r, err := p.Lookup(placeName)
	metrics.RecordReviewLookup(err == nil)
	return r, err == nil
}

func reviewKey(name string) string {
	return textmatch.Fold(strings.TrimSpace(name))
}

// Load returns a FileProvider for path, or Nop when path is empty or the
// document cannot be used.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Load(path string, logger zerolog.Logger) Provider {
	if strings.TrimSpace(path) == "" {
		return Nop{}
	}

	p, err := NewFileProvider(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Review enrichment disabled")
		return Nop{}
	}
	logger.Info().Int("places", p.Len()).Msg("Review enrichment enabled")
	return p
}
