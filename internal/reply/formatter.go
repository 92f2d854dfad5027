// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package reply

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/foodbot/internal/catalog"
	"github.com/tomtom215/foodbot/internal/recommend"
	"github.com/tomtom215/foodbot/internal/review"
)

// Defaults for Config.
const (
	DefaultMaxCards   = 10
	DefaultMaxOptions = 13
)

// User-facing texts. Failures of any kind share the same polite message.
const (
	greetingText   = "你好！想吃什麼呢？選一個分類，或傳送位置給我找附近美食。"
	notFoundText   = "找不到相關美食，試試以下分類吧！"
	noNearbyText   = "附近沒有找到美食，試試以下分類吧！"
	emptyText      = "抱歉，目前沒有美食資料，請稍後再試。"
	randomAltText  = "隨機推薦：%s"
	categoryAlt    = "為您推薦「%s」"
	nearbyAltText  = "附近美食 %d 家"
	reviewTemplate = "★%d %s"
)

// Config controls presentation limits.
type Config struct {
	// MaxCards caps the cards in one reply.
	MaxCards int

	// MaxOptions caps quick options.
	MaxOptions int

	// Area is prefixed to map searches for places with coordinates.
	Area string
}

// Formatter renders results for a fixed catalog.
type Formatter struct {
	cfg     Config
	catalog *catalog.Catalog
	reviews review.Provider
}

// NewFormatter creates a formatter. Zero config values select the defaults
// and a nil provider disables review enrichment.
func NewFormatter(cat *catalog.Catalog, cfg Config, reviews review.Provider) *Formatter {
	if cfg.MaxCards <= 0 || cfg.MaxCards > DefaultMaxCards {
		cfg.MaxCards = DefaultMaxCards
	}
	if cfg.MaxOptions <= 0 || cfg.MaxOptions > DefaultMaxOptions {
		cfg.MaxOptions = DefaultMaxOptions
	}
	if strings.TrimSpace(cfg.Area) == "" {
		cfg.Area = DefaultArea
	}
	if cat == nil {
		cat = catalog.Empty()
	}
	if reviews == nil {
		reviews = review.Nop{}
	}
	return &Formatter{cfg: cfg, catalog: cat, reviews: reviews}
}

// Format maps each result kind to exactly one reply form.
func (f *Formatter) Format(ctx context.Context, res recommend.Result) Reply {
	switch res.Kind {
	case recommend.KindGreeting:
		return f.menu(greetingText)

	case recommend.KindCategoryMatch:
		if len(res.Sample) == 0 {
			return f.menu(notFoundText)
		}
		cards := make([]Card, 0, len(res.Sample))
		for _, p := range res.Sample {
			cards = append(cards, f.card(p, truncate(p.Description, MaxBodyRunes)))
		}
		return f.cards(fmt.Sprintf(categoryAlt, res.Category), cards)

	case recommend.KindNearbyMatches:
		if len(res.Nearby) == 0 {
			return f.menu(noNearbyText)
		}
		cards := make([]Card, 0, len(res.Nearby))
		for _, n := range res.Nearby {
			cards = append(cards, f.card(n.Place, withSuffix(n.Place.Description, fmt.Sprintf("（%.1f km）", n.DistanceKM))))
		}
		return f.cards(fmt.Sprintf(nearbyAltText, len(cards)), cards)

	case recommend.KindPlaceMatch, recommend.KindRandomPick:
		if res.Place == nil {
			return f.menu(notFoundText)
		}
		alt := res.Place.Name
		if res.Kind == recommend.KindRandomPick {
			alt = fmt.Sprintf(randomAltText, res.Place.Name)
		}
		return f.cards(alt, []Card{f.card(res.Place, f.enrichedBody(ctx, res.Place))})

	default:
		return f.menu(notFoundText)
	}
}

// menu offers every category as a quick option, or apologises when there
// is nothing to offer.
func (f *Formatter) menu(prompt string) Reply {
	names := f.catalog.CategoryNames()
	if len(names) == 0 {
		return Reply{Kind: KindPlainText, Text: emptyText}
	}
	if len(names) > f.cfg.MaxOptions {
		names = names[:f.cfg.MaxOptions]
	}

	options := make([]Option, len(names))
	for i, name := range names {
		options[i] = Option{Label: truncate(name, MaxLabelRunes), Value: name}
	}
	return Reply{Kind: KindQuickOptions, Text: prompt, Options: options}
}

func (f *Formatter) cards(alt string, cards []Card) Reply {
	if len(cards) > f.cfg.MaxCards {
		cards = cards[:f.cfg.MaxCards]
	}
	return Reply{Kind: KindCards, Text: truncate(alt, MaxBodyRunes), Cards: cards}
}

func (f *Formatter) card(p *catalog.Place, body string) Card {
	return Card{
		Title: truncate(p.Name, MaxTitleRunes),
		Body:  body,
		Link:  MapLink(f.cfg.Area, p),
	}
}

// enrichedBody appends the best review snippet when one is available.
// The snippet takes at most half the body; the description is cut first.
func (f *Formatter) enrichedBody(ctx context.Context, p *catalog.Place) string {
	r, ok := f.reviews.Fetch(ctx, p.Name)
	if !ok || r == nil || strings.TrimSpace(r.Best.Text) == "" {
		return truncate(p.Description, MaxBodyRunes)
	}
	snippet := truncate(fmt.Sprintf(reviewTemplate, r.Best.Rating, strings.TrimSpace(r.Best.Text)), MaxBodyRunes/2)
	if strings.TrimSpace(p.Description) == "" {
		return snippet
	}
	return withSuffix(p.Description, "\n"+snippet)
}

// withSuffix keeps suffix intact and truncates text to make room for it.
func withSuffix(text, suffix string) string {
	room := MaxBodyRunes - len([]rune(suffix))
	return truncate(text, room) + suffix
}
