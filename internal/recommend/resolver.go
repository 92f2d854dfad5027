// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodbot/internal/catalog"
	"github.com/tomtom215/foodbot/internal/geo"
	"github.com/tomtom215/foodbot/internal/logging"
	"github.com/tomtom215/foodbot/internal/metrics"
	"github.com/tomtom215/foodbot/internal/textmatch"
	"github.com/tomtom215/foodbot/internal/usercontext"
)

// Tokenizer splits free text into folded tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// ContextStore remembers each user's last category.
type ContextStore interface {
	Get(userID string) usercontext.UserContext
	SetLastCategory(userID, category string)
}

// Resolver maps messages to results. It is safe for concurrent use.
type Resolver struct {
	config    *Config
	catalog   *catalog.Catalog
	index     *geo.Index
	tokenizer Tokenizer
	contexts  ContextStore
	intents   textmatch.Intents
	rules     []rule
	logger    zerolog.Logger

	// Random source for sampling (protected by rngMu for concurrent access)
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewResolver creates a resolver over an immutable catalog. A nil tokenizer
// falls back to whitespace splitting; a nil cfg selects DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResolver(cfg *Config, cat *catalog.Catalog, tokenizer Tokenizer, contexts ContextStore, logger zerolog.Logger) (*Resolver, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if contexts == nil {
		return nil, fmt.Errorf("context store is required")
	}
	if cat == nil {
		cat = catalog.Empty()
	}
	if tokenizer == nil {
		tokenizer = &textmatch.Segmenter{}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	index := geo.NewCatalogIndex(cat, 0)
	logger.Info().
		Int("indexed_places", index.Len()).
		Int("cells", index.NumCells()).
		Msg("Spatial index built")

	return &Resolver{
		config:    cfg,
		catalog:   cat,
		index:     index,
		tokenizer: tokenizer,
		contexts:  contexts,
		intents:   textmatch.NewIntents(cfg.GreetingKeywords, cfg.RandomKeywords, cfg.RepeatKeywords),
		rules:     textRules(),
		logger:    logger,
		rng:       rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for recommendation sampling
	}, nil
}

// Catalog returns the catalog the resolver serves.
func (r *Resolver) Catalog() *catalog.Catalog {
	return r.catalog
}

// Resolve decides the result for one message from userID.
func (r *Resolver) Resolve(ctx context.Context, userID string, in Input) Result {
	var result Result
	var matchedBy string

	switch in.Kind {
	case InputLocation:
		result = r.resolveLocation(in.Latitude, in.Longitude)
		matchedBy = "location"
	default:
		result, matchedBy = r.resolveText(userID, in.Text)
	}

	metrics.RecordResolution(result.Kind.String())

	logging.Ctx(ctx).Debug().
		Str("user_id", logging.SanitizeValue(userID)).
		Str("rule", matchedBy).
		Str("kind", result.Kind.String()).
		Msg("message resolved")

	return result
}

func (r *Resolver) resolveText(userID, text string) (Result, string) {
	m := &message{
		userID: userID,
		raw:    text,
		tokens: r.tokenizer.Tokenize(text),
		ctx:    r.contexts.Get(userID),
	}

	for _, rl := range r.rules {
		if result, ok := rl.apply(r, m); ok {
			return result, rl.name
		}
	}
	return NotFound(), "none"
}

func (r *Resolver) resolveLocation(lat, lon float64) Result {
	if !geo.ValidPoint(lat, lon) {
		return NotFound()
	}

	hits := r.index.Nearby(lat, lon, r.config.RadiusKM)
	if limit := r.config.maxNearby(); len(hits) > limit {
		hits = hits[:limit]
	}

	nearby := make([]NearbyPlace, len(hits))
	for i, h := range hits {
		nearby[i] = NearbyPlace{Place: h.Place, DistanceKM: h.DistanceKM}
	}
	metrics.RecordNearby(len(nearby))

	return Result{Kind: KindNearbyMatches, Nearby: nearby}
}

// sample returns min(len(places), DisplayCap) distinct places in random order.
func (r *Resolver) sample(places []*catalog.Place) []*catalog.Place {
	n := len(places)
	k := min(n, r.config.DisplayCap)

	pool := make([]*catalog.Place, n)
	copy(pool, places)

	r.rngMu.Lock()
	for i := 0; i < k; i++ {
		j := i + r.rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	r.rngMu.Unlock()

	return pool[:k]
}

// pick returns one place uniformly at random.
func (r *Resolver) pick(places []*catalog.Place) *catalog.Place {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return places[r.rng.Intn(len(places))]
}
