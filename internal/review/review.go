// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

// Package review provides optional review snippets for places. Enrichment
// is best effort: a provider that fails simply reports no review.
package review

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no review exists for a place.
var ErrNotFound = errors.New("review: not found")

// PositiveRating is the lowest rating classified as positive.
const PositiveRating = 4

// Sentiment classifies a single review.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
)

// SentimentFor classifies a star rating.
func SentimentFor(rating int) Sentiment {
	if rating >= PositiveRating {
		return SentimentPositive
	}
	return SentimentNegative
}

// Entry is one review.
type Entry struct {
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Sentiment Sentiment `json:"sentiment"`
}

// Review holds the best and worst review of a place.
type Review struct {
	Best  Entry `json:"best"`
	Worst Entry `json:"worst"`
}

// Provider looks up reviews by place name.
type Provider interface {
	Fetch(ctx context.Context, placeName string) (*Review, bool)
}

// Nop never has a review.
type Nop struct{}

// Fetch implements Provider.
func (Nop) Fetch(context.Context, string) (*Review, bool) {
	return nil, false
}

// Summarize picks the highest and lowest rated entries (first wins on ties)
// and fills in their sentiment. It returns ErrNotFound for no entries.
func Summarize(entries []Entry) (*Review, error) {
	if len(entries) == 0 {
		return nil, ErrNotFound
	}

	best, worst := entries[0], entries[0]
	for _, e := range entries[1:] {
		if e.Rating > best.Rating {
			best = e
		}
		if e.Rating < worst.Rating {
			worst = e
		}
	}
	best.Sentiment = SentimentFor(best.Rating)
	worst.Sentiment = SentimentFor(worst.Rating)

	return &Review{Best: best, Worst: worst}, nil
}
