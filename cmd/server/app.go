// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/tomtom215/foodbot/internal/api"
	"github.com/tomtom215/foodbot/internal/catalog"
	"github.com/tomtom215/foodbot/internal/config"
	"github.com/tomtom215/foodbot/internal/line"
	"github.com/tomtom215/foodbot/internal/logging"
	"github.com/tomtom215/foodbot/internal/metrics"
	"github.com/tomtom215/foodbot/internal/recommend"
	"github.com/tomtom215/foodbot/internal/reply"
	"github.com/tomtom215/foodbot/internal/review"
	"github.com/tomtom215/foodbot/internal/textmatch"
	"github.com/tomtom215/foodbot/internal/usercontext"
)

// app holds the wired components owned by main.
type app struct {
	catalog  *catalog.Catalog
	contexts *usercontext.Store
	handler  *api.Handler
	server   *http.Server
}

// newApp builds every component from cfg. Only an invalid recommendation
// configuration is fatal; a missing dataset yields an empty catalog.
func newApp(cfg *config.Config) (*app, error) {
	cat := loadCatalog(cfg.Dataset)

	segmenter := textmatch.NewSegmenter("", logging.WithComponent("textmatch"))
	segmenter.RegisterCatalog(cat)

	contexts := usercontext.NewStore(cfg.Context.Capacity, cfg.Context.TTL)
	metrics.ObserveContextStore(contexts)

	resolver, err := recommend.NewResolver(recommendConfig(cfg.Recommend), cat, segmenter, contexts,
		logging.WithComponent("recommend"))
	if err != nil {
		return nil, fmt.Errorf("build resolver: %w", err)
	}

	reviews := review.Load(cfg.Review.Path, logging.WithComponent("review"))
	formatter := reply.NewFormatter(cat, reply.Config{
		MaxCards:   cfg.Reply.MaxCards,
		MaxOptions: cfg.Reply.MaxOptions,
		Area:       cfg.Dataset.Area,
	}, reviews)

	client := line.NewClient(line.ClientConfig{
		BaseURL:       cfg.LINE.APIBaseURL,
		AccessToken:   cfg.LINE.ChannelAccessToken,
		Timeout:       cfg.LINE.ReplyTimeout,
		RatePerSecond: cfg.LINE.ReplyRatePerSecond,
	})
	if !client.Configured() {
		logging.Warn().Msg("LINE_CHANNEL_ACCESS_TOKEN not set, replies will be skipped")
	}
	if cfg.LINE.ChannelSecret == "" {
		logging.Warn().Msg("LINE_CHANNEL_SECRET not set, signed webhook callbacks will be rejected")
	}

	handler := api.NewHandler(api.Dependencies{
		Catalog:         cat,
		Resolver:        resolver,
		Formatter:       formatter,
		Replier:         client,
		Contexts:        contexts,
		ChannelSecret:   cfg.LINE.ChannelSecret,
		Area:            cfg.Dataset.Area,
		SegmenterLoaded: segmenter.Loaded(),
		ReplyConfigured: client.Configured(),
	})

	mw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
		BaseContext:       requestBaseContext,
	}

	return &app{catalog: cat, contexts: contexts, handler: handler, server: server}, nil
}

// requestBaseContext gives every request a logger tagged with the http component.
func requestBaseContext(net.Listener) context.Context {
	return logging.ContextWithLogger(context.Background(), logging.WithComponent("http"))
}

// loadCatalog reads the dataset and publishes its size. The loader logs read
// failures and returns an empty catalog for them.
func loadCatalog(cfg config.DatasetConfig) *catalog.Catalog {
	loader := catalog.NewLoader(
		catalog.WithLogger(logging.WithComponent("catalog")),
		catalog.WithPlaceholder(cfg.PlaceholderDescription),
	)

	start := time.Now()
	cat := loader.LoadFile(cfg.Path)
	metrics.SetCatalogSize(cat.Len(), cat.PlaceCount(), time.Since(start))
	return cat
}

func recommendConfig(c config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		DisplayCap:       c.DisplayCap,
		RadiusKM:         c.RadiusKM,
		MaxNearby:        c.MaxNearby,
		Seed:             c.Seed,
		GreetingKeywords: c.GreetingKeywords,
		RandomKeywords:   c.RandomKeywords,
		RepeatKeywords:   c.RepeatKeywords,
	}
}
