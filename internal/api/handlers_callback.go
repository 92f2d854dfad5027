// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/tomtom215/foodbot/internal/line"
	"github.com/tomtom215/foodbot/internal/logging"
	"github.com/tomtom215/foodbot/internal/metrics"
	"github.com/tomtom215/foodbot/internal/reply"
)

// maxWebhookBody bounds webhook payloads.
const maxWebhookBody = 1 << 20

// replyTimeout bounds reply delivery for one event.
const replyTimeout = 15 * time.Second

// Callback handles POST /callback.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody+1))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Failed to read request body", err)
		return
	}
	if len(body) > maxWebhookBody {
		respondError(w, r, http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "Request body too large", nil)
		return
	}

	if err := line.VerifySignature(h.deps.ChannelSecret, body, r.Header.Get(line.SignatureHeader)); err != nil {
		metrics.WebhookSignatureFailures.Inc()
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Rejected webhook")
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidSignature, "Invalid signature", nil)
		return
	}

	events, err := line.ParseEvents(body)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Malformed webhook body", err)
		return
	}

	// Events resolve in order so context updates stay ordered; delivery runs
	// after the ACK and outlives the webhook request.
	ctx := context.WithoutCancel(r.Context())
	pending := make([]pendingReply, 0, len(events))
	for i := range events {
		if p, ok := h.resolveEvent(ctx, &events[i]); ok {
			pending = append(pending, p)
		}
	}
	h.dispatchReplies(pending)

	respondText(w, http.StatusOK, "OK")
}

// pendingReply is a formatted reply waiting for delivery.
type pendingReply struct {
	ctx   context.Context
	token string
	reply reply.Reply
	kind  string
}

func (h *Handler) resolveEvent(ctx context.Context, ev *line.Event) (pendingReply, bool) {
	metrics.RecordWebhookEvent(ev.Label())

	if ev.Type == line.EventTypeUnfollow {
		h.forget(ctx, ev.UserID())
		return pendingReply{}, false
	}

	in, ok := ev.Input()
	if !ok {
		return pendingReply{}, false
	}

	ctx = logging.ContextWithUserID(ctx, ev.UserID())
	res := h.deps.Resolver.Resolve(ctx, ev.UserID(), in)
	return pendingReply{
		ctx:   ctx,
		token: ev.ReplyToken,
		reply: h.deps.Formatter.Format(ctx, res),
		kind:  res.Kind.String(),
	}, true
}

// forget drops the context of a user who blocked the bot.
func (h *Handler) forget(ctx context.Context, userID string) {
	if h.deps.Contexts == nil || userID == "" {
		return
	}
	if h.deps.Contexts.Forget(userID) {
		logging.Ctx(logging.ContextWithUserID(ctx, userID)).Info().Msg("User unfollowed, context dropped")
	}
}

// dispatchReplies sends replies in event order on a background goroutine.
func (h *Handler) dispatchReplies(pending []pendingReply) {
	if len(pending) == 0 || h.deps.Replier == nil {
		return
	}
	h.replies.Add(1)
	go func() {
		defer h.replies.Done()
		for _, p := range pending {
			h.deliver(p)
		}
	}()
}

func (h *Handler) deliver(p pendingReply) {
	ctx, cancel := context.WithTimeout(p.ctx, replyTimeout)
	defer cancel()

	if err := h.deps.Replier.Reply(ctx, p.token, p.reply); err != nil {
		event := logging.Ctx(ctx).Warn()
		if errors.Is(err, line.ErrNotConfigured) {
			event = logging.Ctx(ctx).Debug()
		}
		event.Err(err).Str("result", p.kind).Msg("Reply not delivered")
	}
}

// WaitForReplies blocks until every dispatched reply has been attempted or
// the timeout elapses. It reports whether all deliveries finished.
func (h *Handler) WaitForReplies(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		h.replies.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
