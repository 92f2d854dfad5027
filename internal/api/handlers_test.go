// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/foodbot/internal/catalog"
	"github.com/tomtom215/foodbot/internal/line"
	"github.com/tomtom215/foodbot/internal/logging"
	"github.com/tomtom215/foodbot/internal/models"
	"github.com/tomtom215/foodbot/internal/recommend"
	"github.com/tomtom215/foodbot/internal/reply"
	"github.com/tomtom215/foodbot/internal/usercontext"
)

const testSecret = "test-secret"

type sentReply struct {
	token string
	reply reply.Reply
}

type fakeReplier struct {
	mu   sync.Mutex
	sent []sentReply
	err  error

	// release, when set, holds every Reply call until it is closed.
	release chan struct{}
}

func (f *fakeReplier) Reply(ctx context.Context, token string, r reply.Reply) error {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentReply{token: token, reply: r})
	return f.err
}

func (f *fakeReplier) replies() []sentReply {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentReply(nil), f.sent...)
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]*catalog.Category{
		{Name: "Noodles", Places: []*catalog.Place{
			{Name: "Beef Noodle", Description: "broth", Coordinates: &catalog.Coordinates{Latitude: 23.9650, Longitude: 120.9650}},
			{Name: "Dry Noodle", Description: "sesame"},
		}},
		{Name: "Desserts", Places: []*catalog.Place{
			{Name: "Tofu Pudding", Description: "sweet", Coordinates: &catalog.Coordinates{Latitude: 23.9660, Longitude: 120.9660}},
		}},
	})
}

type testEnv struct {
	handler  *Handler
	router   http.Handler
	replier  *fakeReplier
	contexts *usercontext.Store
}

func newTestEnv(t *testing.T, cat *catalog.Catalog, mw *ChiMiddleware) *testEnv {
	t.Helper()

	cfg := recommend.DefaultConfig()
	cfg.Seed = 1
	store := usercontext.NewStore(100, time.Hour)
	resolver, err := recommend.NewResolver(cfg, cat, nil, store, logging.Nop())
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	rep := &fakeReplier{}
	h := NewHandler(Dependencies{
		Catalog:       cat,
		Resolver:      resolver,
		Formatter:     reply.NewFormatter(cat, reply.Config{}, nil),
		Replier:       rep,
		Contexts:      store,
		ChannelSecret: testSecret,
	})
	return &testEnv{handler: h, router: NewRouter(h, mw).SetupChi(), replier: rep, contexts: store}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) models.APIResponse {
	t.Helper()
	var raw struct {
		Status   string           `json:"status"`
		Data     json.RawMessage  `json:"data"`
		Metadata models.Metadata  `json:"metadata"`
		Error    *models.APIError `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	if data != nil && len(raw.Data) > 0 && string(raw.Data) != "null" {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("decode data %s: %v", raw.Data, err)
		}
	}
	return models.APIResponse{Status: raw.Status, Metadata: raw.Metadata, Error: raw.Error}
}

func TestRoot(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testCatalog(), nil)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "Foodbot is online! Total: 3 stores." {
		t.Errorf("GET / = %d %q", rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testCatalog(), nil)

	live := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))
	if live.Code != http.StatusOK {
		t.Errorf("live = %d", live.Code)
	}

	ready := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	var status models.ServiceStatus
	resp := decodeEnvelope(t, ready, &status)
	if ready.Code != http.StatusOK || resp.Status != "ready" || !status.CatalogLoaded || status.Places != 3 {
		t.Errorf("ready = %d %+v %+v", ready.Code, resp, status)
	}
	if ready.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}

func TestHealthReady_EmptyCatalogIsReady(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, catalog.Empty(), nil)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("ready with empty catalog = %d, want 200", rec.Code)
	}
}

func TestHealthReady_NoCatalog(t *testing.T) {
	t.Parallel()

	h := NewHandler(Dependencies{})
	rec := httptest.NewRecorder()
	h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready without catalog = %d, want 503", rec.Code)
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testCatalog(), nil)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))

	var list models.CategoryList
	resp := decodeEnvelope(t, rec, &list)
	if rec.Code != http.StatusOK || resp.Status != "success" {
		t.Fatalf("categories = %d %+v", rec.Code, resp)
	}
	want := []models.CategorySummary{{Name: "Noodles", Count: 2}, {Name: "Desserts", Count: 1}}
	if list.TotalPlaces != 3 || len(list.Categories) != 2 || list.Categories[0] != want[0] || list.Categories[1] != want[1] {
		t.Errorf("list = %+v", list)
	}
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testCatalog(), nil)

	tests := []struct {
		name      string
		query     string
		wantKind  string
		wantReply reply.Kind
	}{
		{"category", "user=U1&q=Noodles", "category_match", reply.KindCards},
		{"greeting", "user=U1&q=hello", "greeting", reply.KindQuickOptions},
		{"nearby", "user=U1&lat=23.965&lon=120.965", "nearby_matches", reply.KindCards},
		{"nothing", "user=U1&q=zzzz", "not_found", reply.KindQuickOptions},
	}
	for _, tt := range tests {
		rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/recommend?"+tt.query, nil))
		var body struct {
			Result models.ResultView `json:"result"`
			Raw    struct {
				Kind string `json:"kind"`
			} `json:"reply"`
		}
		decodeEnvelope(t, rec, &body)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d body=%s", tt.name, rec.Code, rec.Body.String())
			continue
		}
		if body.Result.Kind != tt.wantKind || body.Raw.Kind != tt.wantReply.String() {
			t.Errorf("%s: kind=%s reply=%s, want %s %s", tt.name, body.Result.Kind, body.Raw.Kind, tt.wantKind, tt.wantReply)
		}
	}

	if got := env.contexts.Get("U1"); got.LastCategory != "Noodles" {
		t.Errorf("context after category request = %+v", got)
	}
}

func TestRecommend_NearbyCarriesDistance(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testCatalog(), nil)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/recommend?user=U2&lat=23.965&lon=120.965", nil))

	var body models.RecommendResponse
	decodeEnvelope(t, rec, &body)
	if len(body.Result.Nearby) != 2 {
		t.Fatalf("nearby = %+v", body.Result.Nearby)
	}
	first := body.Result.Nearby[0]
	if first.Name != "Beef Noodle" || first.DistanceKM == nil || *first.DistanceKM > 0.01 || first.Category != "Noodles" {
		t.Errorf("first nearby = %+v", first)
	}
}

func TestRecommend_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testCatalog(), nil)
	tests := []struct {
		name  string
		query string
	}{
		{"missing user", "q=Noodles"},
		{"blank user", "user=%20&q=Noodles"},
		{"neither", "user=U1"},
		{"both", "user=U1&q=a&lat=1&lon=1"},
		{"lat only", "user=U1&lat=23"},
		{"bad lat", "user=U1&lat=abc&lon=1"},
		{"nan lat", "user=U1&lat=NaN&lon=1"},
		{"out of range", "user=U1&lat=91&lon=1"},
		{"blank q", "user=U1&q=%20%20"},
	}
	for _, tt := range tests {
		rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/recommend?"+tt.query, nil))
		resp := decodeEnvelope(t, rec, nil)
		if rec.Code != http.StatusBadRequest || resp.Error == nil || resp.Error.Code != ErrCodeValidation {
			t.Errorf("%s: status=%d body=%s", tt.name, rec.Code, rec.Body.String())
		}
	}
}

func webhookRequest(body, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	if signature != "" {
		req.Header.Set(line.SignatureHeader, signature)
	}
	return req
}

func TestCallback_Signature(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testCatalog(), nil)
	body := `{"events":[]}`

	tests := []struct {
		name      string
		signature string
		want      int
	}{
		{"missing", "", http.StatusBadRequest},
		{"invalid", line.SignBase64("wrong", []byte(body)), http.StatusBadRequest},
		{"valid", line.SignBase64(testSecret, []byte(body)), http.StatusOK},
	}
	for _, tt := range tests {
		rec := env.do(webhookRequest(body, tt.signature))
		if rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.name, rec.Code, tt.want)
		}
	}
	if len(env.replier.replies()) != 0 {
		t.Error("no replies expected")
	}
}

func TestCallback_RepliesToMessages(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testCatalog(), nil)
	body := `{"destination":"U0","events":[
		{"type":"message","replyToken":"t1","source":{"type":"user","userId":"U9"},"message":{"id":"1","type":"text","text":"Desserts"}},
		{"type":"message","replyToken":"t2","source":{"type":"user","userId":"U9"},"message":{"id":"2","type":"sticker"}},
		{"type":"follow","replyToken":"t3","source":{"type":"user","userId":"U9"}},
		{"type":"message","replyToken":"t4","source":{"type":"user","userId":"U9"},"message":{"id":"3","type":"location","latitude":23.966,"longitude":120.966}}
	]}`

	rec := env.do(webhookRequest(body, line.SignBase64(testSecret, []byte(body))))
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("callback = %d %q", rec.Code, rec.Body.String())
	}
	if !env.handler.WaitForReplies(2 * time.Second) {
		t.Fatal("replies not delivered in time")
	}

	sent := env.replier.replies()
	if len(sent) != 2 {
		t.Fatalf("replies = %d, want 2", len(sent))
	}
	if sent[0].token != "t1" || sent[0].reply.Kind != reply.KindCards || sent[0].reply.Cards[0].Title != "Tofu Pudding" {
		t.Errorf("first reply = %+v", sent[0])
	}
	if sent[1].token != "t4" || sent[1].reply.Kind != reply.KindCards {
		t.Errorf("second reply = %+v", sent[1])
	}
	if env.contexts.Get("U9").LastCategory != "Desserts" {
		t.Error("context not updated by webhook message")
	}
}

func TestCallback_UnfollowDropsContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		events  string
		wantLen int
	}{
		{
			name: "known user",
			events: `{"type":"message","replyToken":"t1","source":{"userId":"U7"},"message":{"type":"text","text":"Noodles"}},
				{"type":"unfollow","source":{"type":"user","userId":"U7"}}`,
			wantLen: 0,
		},
		{
			name:    "unknown user",
			events:  `{"type":"unfollow","source":{"type":"user","userId":"U8"}}`,
			wantLen: 0,
		},
		{
			name: "other users kept",
			events: `{"type":"message","replyToken":"t1","source":{"userId":"U7"},"message":{"type":"text","text":"Noodles"}},
				{"type":"unfollow","source":{"type":"user","userId":"U8"}}`,
			wantLen: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, testCatalog(), nil)
			body := `{"events":[` + tt.events + `]}`
			rec := env.do(webhookRequest(body, line.SignBase64(testSecret, []byte(body))))
			if rec.Code != http.StatusOK {
				t.Fatalf("callback = %d", rec.Code)
			}
			if got := env.contexts.Len(); got != tt.wantLen {
				t.Errorf("contexts = %d, want %d", got, tt.wantLen)
			}
			env.handler.WaitForReplies(2 * time.Second)
		})
	}
}

func TestCallback_ReplyFailureStillOK(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testCatalog(), nil)
	env.replier.err = line.ErrNotConfigured
	body := `{"events":[{"type":"message","replyToken":"t","source":{"userId":"U"},"message":{"type":"text","text":"hi"}}]}`

	rec := env.do(webhookRequest(body, line.SignBase64(testSecret, []byte(body))))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCallback_AckDoesNotWaitForDelivery(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testCatalog(), nil)
	env.replier.release = make(chan struct{})
	body := `{"events":[
		{"type":"message","replyToken":"t1","source":{"userId":"U7"},"message":{"type":"text","text":"Noodles"}},
		{"type":"message","replyToken":"t2","source":{"userId":"U7"},"message":{"type":"text","text":"Desserts"}}
	]}`

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() { done <- env.do(webhookRequest(body, line.SignBase64(testSecret, []byte(body)))) }()

	select {
	case rec := <-done:
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	case <-time.After(2 * time.Second):
		close(env.replier.release)
		t.Fatal("webhook ACK waited for reply delivery")
	}

	if got := env.contexts.Get("U7").LastCategory; got != "Desserts" {
		t.Errorf("LastCategory = %q, want Desserts (events resolved in order before ACK)", got)
	}
	if n := len(env.replier.replies()); n != 0 {
		t.Errorf("replies before release = %d, want 0", n)
	}

	close(env.replier.release)
	if !env.handler.WaitForReplies(2 * time.Second) {
		t.Fatal("replies not delivered after release")
	}
	sent := env.replier.replies()
	if len(sent) != 2 || sent[0].token != "t1" || sent[1].token != "t2" {
		t.Errorf("delivered = %+v, want t1 then t2", sent)
	}
}

func TestCallback_MalformedBody(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testCatalog(), nil)
	body := "{not json"
	rec := env.do(webhookRequest(body, line.SignBase64(testSecret, []byte(body))))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	big := bytes.Repeat([]byte("a"), maxWebhookBody+1)
	rec = env.do(webhookRequest(string(big), line.SignBase64(testSecret, big)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("oversized status = %d", rec.Code)
	}
}
