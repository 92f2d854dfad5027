// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodbot/internal/logging"
	"github.com/tomtom215/foodbot/internal/metrics"
)

// DefaultCleanupInterval is used when the janitor is given a non-positive interval.
const DefaultCleanupInterval = 10 * time.Minute

// ContextSweeper is the part of usercontext.Store the janitor drives.
type ContextSweeper interface {
	CleanupExpired() int
	Len() int
}

// ContextJanitorService periodically drops expired conversation contexts.
type ContextJanitorService struct {
	store    ContextSweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewContextJanitorService sweeps store every interval.
func NewContextJanitorService(store ContextSweeper, interval time.Duration) *ContextJanitorService {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &ContextJanitorService{
		store:    store,
		interval: interval,
		logger:   logging.WithComponent("context-janitor"),
		name:     "context-janitor",
	}
}

// Serve implements suture.Service.
func (j *ContextJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *ContextJanitorService) sweep() {
	removed := j.store.CleanupExpired()
	metrics.RecordContextExpired(removed)
	if removed > 0 {
		j.logger.Debug().
			Int("removed", removed).
			Int("remaining", j.store.Len()).
			Msg("Expired user contexts removed")
	}
}

func (j *ContextJanitorService) String() string {
	return j.name
}
