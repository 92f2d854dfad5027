// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodbot_resolutions_total",
			Help: "Total number of resolved messages by result kind",
		},
		[]string{"kind"}, // greeting, random_pick, category_match, place_match, nearby_matches, not_found
	)

	NearbyResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodbot_nearby_results",
			Help:    "Number of places returned by nearby queries",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
	)

	// Catalog Metrics
	CatalogPlaces = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foodbot_catalog_places",
			Help: "Number of places in the loaded catalog",
		},
	)

	CatalogCategories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foodbot_catalog_categories",
			Help: "Number of categories in the loaded catalog",
		},
	)

	CatalogLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foodbot_catalog_load_duration_seconds",
			Help: "Time spent loading the catalog at startup",
		},
	)

	// User Context Metrics, read from the store registered with ObserveContextStore
	ContextUsers = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "foodbot_context_users",
			Help: "Number of users with a stored conversation context",
		},
		func() float64 {
			_, _, size := contextStats()
			return float64(size)
		},
	)

	ContextLookupHits = promauto.NewCounterFunc(
		prometheus.CounterOpts{
			Name:        "foodbot_context_lookups_total",
			Help:        "Total number of user context lookups by result",
			ConstLabels: prometheus.Labels{"result": "hit"},
		},
		func() float64 {
			hits, _, _ := contextStats()
			return float64(hits)
		},
	)

	ContextLookupMisses = promauto.NewCounterFunc(
		prometheus.CounterOpts{
			Name:        "foodbot_context_lookups_total",
			Help:        "Total number of user context lookups by result",
			ConstLabels: prometheus.Labels{"result": "miss"},
		},
		func() float64 {
			_, misses, _ := contextStats()
			return float64(misses)
		},
	)

	ContextExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodbot_context_expired_total",
			Help: "Total number of user contexts removed after their idle TTL",
		},
	)

	// Messaging Metrics
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodbot_webhook_events_total",
			Help: "Total number of webhook events received by type",
		},
		[]string{"type"}, // text, location, ignored
	)

	WebhookSignatureFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodbot_webhook_signature_failures_total",
			Help: "Total number of webhook requests rejected for a missing or invalid signature",
		},
	)

	ReplySendTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodbot_reply_send_total",
			Help: "Total number of reply deliveries by outcome",
		},
		[]string{"outcome"}, // success, error, rejected, rate_limited
	)

	ReplySendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodbot_reply_send_duration_seconds",
			Help:    "Duration of reply API calls in seconds",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	ReviewLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodbot_review_lookups_total",
			Help: "Total number of review enrichment lookups by result",
		},
		[]string{"result"}, // hit, miss
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "foodbot_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodbot_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodbot_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordResolution counts one resolved message.
func RecordResolution(kind string) {
	ResolutionsTotal.WithLabelValues(kind).Inc()
}

// RecordNearby records the size of a nearby result set.
func RecordNearby(count int) {
	NearbyResults.Observe(float64(count))
}

// SetCatalogSize publishes the loaded catalog's dimensions.
func SetCatalogSize(categories, places int, loadDuration time.Duration) {
	CatalogCategories.Set(float64(categories))
	CatalogPlaces.Set(float64(places))
	CatalogLoadDuration.Set(loadDuration.Seconds())
}

// ContextSource reports lookup counts and size of the user context store.
type ContextSource interface {
	Stats() (hits, misses int64, size int)
}

var contextSource atomic.Pointer[ContextSource]

// ObserveContextStore makes src the store behind the context metrics.
// A later call replaces the previous source.
func ObserveContextStore(src ContextSource) {
	contextSource.Store(&src)
}

func contextStats() (hits, misses int64, size int) {
	src := contextSource.Load()
	if src == nil || *src == nil {
		return 0, 0, 0
	}
	return (*src).Stats()
}

// RecordContextExpired counts contexts removed by a cleanup pass.
func RecordContextExpired(removed int) {
	if removed > 0 {
		ContextExpired.Add(float64(removed))
	}
}

// RecordWebhookEvent counts an inbound webhook event.
func RecordWebhookEvent(eventType string) {
	WebhookEventsTotal.WithLabelValues(eventType).Inc()
}

// RecordReplySend records a reply delivery attempt.
func RecordReplySend(outcome string, duration time.Duration) {
	ReplySendTotal.WithLabelValues(outcome).Inc()
	if duration > 0 {
		ReplySendDuration.Observe(duration.Seconds())
	}
}

// RecordReviewLookup counts a review enrichment lookup.
func RecordReviewLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	ReviewLookups.WithLabelValues(result).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
