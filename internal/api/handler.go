// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package api

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodbot/internal/catalog"
	"github.com/tomtom215/foodbot/internal/line"
	"github.com/tomtom215/foodbot/internal/logging"
	"github.com/tomtom215/foodbot/internal/recommend"
	"github.com/tomtom215/foodbot/internal/reply"
)

// Resolver turns a message into a recommendation.
type Resolver interface {
	Resolve(ctx context.Context, userID string, in recommend.Input) recommend.Result
}

// Formatter renders a recommendation as a chat reply.
type Formatter interface {
	Format(ctx context.Context, res recommend.Result) reply.Reply
}

// ContextStore is the part of the user context store the handlers use.
type ContextStore interface {
	Len() int
	Forget(userID string) bool
}

// Dependencies are the collaborators of the HTTP handlers.
type Dependencies struct {
	Catalog         *catalog.Catalog
	Resolver        Resolver
	Formatter       Formatter
	Replier         line.Replier
	Contexts        ContextStore
	ChannelSecret   string
	Area            string
	SegmenterLoaded bool
	ReplyConfigured bool
}

// Handler serves every route.
type Handler struct {
	deps      Dependencies
	startTime time.Time
	logger    zerolog.Logger

	// replies tracks reply deliveries still running after their webhook ACK.
	replies sync.WaitGroup
}

// NewHandler creates a handler. A nil catalog is served as an empty one and
// reported as not ready.
func NewHandler(deps Dependencies) *Handler {
	if deps.Area == "" {
		deps.Area = reply.DefaultArea
	}
	return &Handler{
		deps:      deps,
		startTime: time.Now(),
		logger:    logging.WithComponent("api"),
	}
}
