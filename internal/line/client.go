// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package line

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/foodbot/internal/logging"
	"github.com/tomtom215/foodbot/internal/metrics"
	"github.com/tomtom215/foodbot/internal/reply"
)

// Client defaults.
const (
	DefaultBaseURL       = "https://api.line.me"
	DefaultTimeout       = 10 * time.Second
	DefaultRatePerSecond = 20.0
	replyPath            = "/v2/bot/message/reply"
	breakerName          = "line-reply"
	maxErrorBody         = 4 << 10
)

// Reply send outcomes used as metric labels.
const (
	outcomeSuccess  = "success"
	outcomeFailure  = "failure"
	outcomeRejected = "rejected"
	outcomeSkipped  = "skipped"
)

var (
	// ErrNotConfigured is returned when no channel access token is set.
	ErrNotConfigured = errors.New("line: channel access token not configured")

	// ErrEmptyReplyToken is returned for events that cannot be replied to.
	ErrEmptyReplyToken = errors.New("line: empty reply token")
)

// APIError is a non-2xx response from the Messaging API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("line api: status %d: %s", e.StatusCode, e.Body)
}

// ClientConfig configures the reply client.
type ClientConfig struct {
	BaseURL       string
	AccessToken   string
	Timeout       time.Duration
	RatePerSecond float64
}

// Replier sends a formatted reply for a reply token.
type Replier interface {
	Reply(ctx context.Context, replyToken string, r reply.Reply) error
}

// Client sends replies to the Messaging API.
//
// Requests wait on a token bucket limiter and pass through a circuit
// breaker, so a failing API is not hammered with every incoming message.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[interface{}]
	logger     zerolog.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithClientLogger replaces the component logger.
func WithClientLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a reply client. Zero config values select the defaults.
func NewClient(cfg ClientConfig, opts ...ClientOption) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = DefaultRatePerSecond
	}
	burst := int(cfg.RatePerSecond)
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.AccessToken,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst),
		logger:     logging.WithComponent("line"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cb = newBreaker(breakerName, c.logger)
	return c
}

func newBreaker(name string, logger zerolog.Logger) *gobreaker.CircuitBreaker[interface{}] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", stateName(from)).Str("to", stateName(to)).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateName(from), stateName(to)).Inc()
		},
	})
}

// Configured reports whether an access token is set.
func (c *Client) Configured() bool {
	return c.token != ""
}

// Reply sends r as the answer to replyToken.
func (c *Client) Reply(ctx context.Context, replyToken string, r reply.Reply) error {
	start := time.Now()
	if !c.Configured() {
		metrics.RecordReplySend(outcomeSkipped, 0)
		return ErrNotConfigured
	}
	if replyToken == "" {
		metrics.RecordReplySend(outcomeSkipped, 0)
		return ErrEmptyReplyToken
	}

	payload, err := json.Marshal(replyRequest{ReplyToken: replyToken, Messages: Messages(r)})
	if err != nil {
		return fmt.Errorf("encode reply: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordReplySend(outcomeRejected, time.Since(start))
		return fmt.Errorf("wait for rate limiter: %w", err)
	}

	_, err = c.cb.Execute(func() (interface{}, error) {
		return nil, c.post(ctx, replyPath, payload)
	})
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
		metrics.RecordReplySend(outcomeSuccess, time.Since(start))
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		metrics.RecordReplySend(outcomeRejected, time.Since(start))
		return fmt.Errorf("send reply: %w", err)
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		metrics.RecordReplySend(outcomeFailure, time.Since(start))
		return fmt.Errorf("send reply: %w", err)
	}
}

type replyRequest struct {
	ReplyToken string       `json:"replyToken"`
	Messages   []OutMessage `json:"messages"`
}

func (c *Client) post(ctx context.Context, path string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateName(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
