// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/foodbot/internal/recommend"
)

// SignatureHeader carries the base64 HMAC-SHA256 of the request body.
const SignatureHeader = "X-Line-Signature"

// Event and message types handled by the bot.
const (
	EventTypeMessage    = "message"
	EventTypeUnfollow   = "unfollow"
	MessageTypeText     = "text"
	MessageTypeLocation = "location"
)

var (
	// ErrMissingSignature is returned when the signature header is absent.
	ErrMissingSignature = errors.New("line: missing signature")

	// ErrInvalidSignature is returned when the signature does not match the body.
	ErrInvalidSignature = errors.New("line: invalid signature")
)

// Source identifies the sender of an event.
type Source struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// Message is the subset of a LINE message object the bot understands.
type Message struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Text      string  `json:"text,omitempty"`
	Title     string  `json:"title,omitempty"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Event is one webhook event.
type Event struct {
	Type       string   `json:"type"`
	ReplyToken string   `json:"replyToken"`
	Timestamp  int64    `json:"timestamp"`
	Source     Source   `json:"source"`
	Message    *Message `json:"message,omitempty"`
}

type webhookBody struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

// VerifySignature checks signature against the HMAC-SHA256 of body keyed by
// the channel secret.
func VerifySignature(channelSecret string, body []byte, signature string) error {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return ErrMissingSignature
	}
	given, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}
	if !hmac.Equal(given, Sign(channelSecret, body)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign returns the raw HMAC-SHA256 of body.
func Sign(channelSecret string, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	return mac.Sum(nil)
}

// SignBase64 returns the header value LINE would send for body.
func SignBase64(channelSecret string, body []byte) string {
	return base64.StdEncoding.EncodeToString(Sign(channelSecret, body))
}

// ParseEvents decodes a webhook body. An empty event list is valid; LINE
// sends one when verifying the endpoint.
func ParseEvents(body []byte) ([]Event, error) {
	var wb webhookBody
	if err := json.Unmarshal(body, &wb); err != nil {
		return nil, fmt.Errorf("decode webhook body: %w", err)
	}
	return wb.Events, nil
}

// Input maps the event to a resolver input. Non-message events and
// unsupported message types report false.
func (e Event) Input() (recommend.Input, bool) {
	if e.Type != EventTypeMessage || e.Message == nil {
		return recommend.Input{}, false
	}
	switch e.Message.Type {
	case MessageTypeText:
		return recommend.Text(e.Message.Text), true
	case MessageTypeLocation:
		return recommend.Location(e.Message.Latitude, e.Message.Longitude), true
	default:
		return recommend.Input{}, false
	}
}

// UserID returns the sender, or an empty string for anonymous sources.
func (e Event) UserID() string {
	return e.Source.UserID
}

// Label is a short name for metrics.
func (e Event) Label() string {
	if e.Type == EventTypeMessage && e.Message != nil {
		return e.Type + "_" + e.Message.Type
	}
	if e.Type == "" {
		return "unknown"
	}
	return e.Type
}
