// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package review

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/foodbot/internal/logging"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestSentimentFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rating int
		want   Sentiment
	}{
		{5, SentimentPositive},
		{4, SentimentPositive},
		{3, SentimentNegative},
		{1, SentimentNegative},
	}
	for _, tt := range tests {
		if got := SentimentFor(tt.rating); got != tt.want {
			t.Errorf("SentimentFor(%d) = %s, want %s", tt.rating, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	r, err := Summarize([]Entry{
		{Rating: 3, Text: "ok"},
		{Rating: 5, Text: "great"},
		{Rating: 1, Text: "cold"},
		{Rating: 5, Text: "also great"},
		{Rating: 1, Text: "also cold"},
	})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if r.Best.Text != "great" || r.Best.Sentiment != SentimentPositive {
		t.Errorf("Best = %+v, want first 5-star positive", r.Best)
	}
	if r.Worst.Text != "cold" || r.Worst.Sentiment != SentimentNegative {
		t.Errorf("Worst = %+v, want first 1-star negative", r.Worst)
	}

	if _, err := Summarize(nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Summarize(nil) error = %v, want ErrNotFound", err)
	}
}

func TestFileProvider(t *testing.T) {
	t.Parallel()

	path := writeFile(t, `{"places": {
		" 阿嬤麵店 ": [{"rating": 5, "text": "湯頭很棒"}, {"rating": 2, "text": "排隊太久"}],
		"Shaved Ice": [{"rating": 4, "text": "sweet"}],
		"Nobody": []
	}}`)

	p, err := NewFileProvider(path)
	if err != nil {
		t.Fatalf("NewFileProvider() error = %v", err)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}

	r, ok := p.Fetch(context.Background(), "阿嬤麵店")
	if !ok || r.Best.Text != "湯頭很棒" || r.Worst.Rating != 2 {
		t.Errorf("Fetch(阿嬤麵店) = %+v, %v", r, ok)
	}
	if _, ok := p.Fetch(context.Background(), "shaved ice"); !ok {
		t.Error("lookup should be case-insensitive")
	}
	if _, err := p.Lookup("Nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup(Nobody) error = %v, want ErrNotFound", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := p.Fetch(ctx, "Shaved Ice"); ok {
		t.Error("cancelled context should skip enrichment")
	}
}

func TestLoad_FallsBackToNop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"empty path", func(*testing.T) string { return "" }},
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.json") }},
		{"corrupt json", func(t *testing.T) string { return writeFile(t, "{not json") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := Load(tt.path(t), logging.Nop())
			if _, ok := p.(Nop); !ok {
				t.Errorf("Load() = %T, want Nop", p)
			}
		})
	}

	p := Load(writeFile(t, `{"places": {}}`), logging.Nop())
	if _, ok := p.(*FileProvider); !ok {
		t.Errorf("Load(valid) = %T, want *FileProvider", p)
	}
}

func TestNop(t *testing.T) {
	t.Parallel()

	if r, ok := (Nop{}).Fetch(context.Background(), "anything"); ok || r != nil {
		t.Error("Nop should never return a review")
	}
}
