// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package line

import (
	"errors"
	"testing"

	"github.com/tomtom215/foodbot/internal/recommend"
)

const testSecret = "channel-secret"

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	body := []byte(`{"events":[]}`)
	valid := SignBase64(testSecret, body)

	tests := []struct {
		name      string
		signature string
		body      []byte
		wantErr   error
	}{
		{"valid", valid, body, nil},
		{"valid with whitespace", " " + valid + "\n", body, nil},
		{"missing", "", body, ErrMissingSignature},
		{"not base64", "%%%", body, ErrInvalidSignature},
		{"wrong secret", SignBase64("other", body), body, ErrInvalidSignature},
		{"tampered body", valid, []byte(`{"events":[{}]}`), ErrInvalidSignature},
	}
	for _, tt := range tests {
		err := VerifySignature(testSecret, tt.body, tt.signature)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: VerifySignature() = %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestParseEvents(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"destination": "U0",
		"events": [
			{"type":"message","replyToken":"r1","source":{"type":"user","userId":"U1"},
			 "message":{"id":"1","type":"text","text":"拉麵"}},
			{"type":"message","replyToken":"r2","source":{"type":"user","userId":"U2"},
			 "message":{"id":"2","type":"location","title":"here","latitude":23.96,"longitude":120.97}},
			{"type":"message","replyToken":"r3","source":{"type":"user","userId":"U3"},
			 "message":{"id":"3","type":"sticker"}},
			{"type":"follow","replyToken":"r4","source":{"type":"user","userId":"U4"}}
		]
	}`)

	events, err := ParseEvents(body)
	if err != nil {
		t.Fatalf("ParseEvents() error = %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("len(events) = %d, want 4", len(events))
	}

	in, ok := events[0].Input()
	if !ok || in.Kind != recommend.InputText || in.Text != "拉麵" {
		t.Errorf("text input = %+v, %v", in, ok)
	}
	if events[0].UserID() != "U1" || events[0].ReplyToken != "r1" {
		t.Errorf("event 0 = %+v", events[0])
	}

	in, ok = events[1].Input()
	if !ok || in.Kind != recommend.InputLocation || in.Latitude != 23.96 || in.Longitude != 120.97 {
		t.Errorf("location input = %+v, %v", in, ok)
	}

	for _, i := range []int{2, 3} {
		if _, ok := events[i].Input(); ok {
			t.Errorf("event %d should be ignored", i)
		}
	}

	labels := []string{"message_text", "message_location", "message_sticker", "follow"}
	for i, want := range labels {
		if got := events[i].Label(); got != want {
			t.Errorf("Label(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestParseEvents_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := ParseEvents([]byte("not json")); err == nil {
		t.Error("expected error for malformed body")
	}
	events, err := ParseEvents([]byte(`{"destination":"U0","events":[]}`))
	if err != nil || len(events) != 0 {
		t.Errorf("verification body = %v, %v", events, err)
	}
}
