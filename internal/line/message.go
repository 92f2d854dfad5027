// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package line

import (
	"strings"

	"github.com/tomtom215/foodbot/internal/reply"
)

const mapActionLabel = "查看地圖"

// Action is a LINE action object.
type Action struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Text  string `json:"text,omitempty"`
	URI   string `json:"uri,omitempty"`
}

// QuickReplyItem wraps one quick reply action.
type QuickReplyItem struct {
	Type   string `json:"type"`
	Action Action `json:"action"`
}

// QuickReply holds the tappable suggestions attached to a message.
type QuickReply struct {
	Items []QuickReplyItem `json:"items"`
}

// Column is one carousel column.
type Column struct {
	Title   string   `json:"title,omitempty"`
	Text    string   `json:"text"`
	Actions []Action `json:"actions"`
}

// Template is a carousel template.
type Template struct {
	Type    string   `json:"type"`
	Columns []Column `json:"columns"`
}

// OutMessage is an outbound LINE message object.
type OutMessage struct {
	Type       string      `json:"type"`
	Text       string      `json:"text,omitempty"`
	AltText    string      `json:"altText,omitempty"`
	Template   *Template   `json:"template,omitempty"`
	QuickReply *QuickReply `json:"quickReply,omitempty"`
}

// Messages converts a reply into the LINE messages sent for it.
func Messages(r reply.Reply) []OutMessage {
	switch r.Kind {
	case reply.KindQuickOptions:
		items := make([]QuickReplyItem, 0, len(r.Options))
		for _, o := range r.Options {
			items = append(items, QuickReplyItem{
				Type:   "action",
				Action: Action{Type: "message", Label: o.Label, Text: o.Value},
			})
		}
		msg := OutMessage{Type: "text", Text: r.Text}
		if len(items) > 0 {
			msg.QuickReply = &QuickReply{Items: items}
		}
		return []OutMessage{msg}

	case reply.KindCards:
		if len(r.Cards) == 0 {
			return []OutMessage{{Type: "text", Text: r.Text}}
		}
		columns := make([]Column, 0, len(r.Cards))
		for _, c := range r.Cards {
			text := c.Body
			if strings.TrimSpace(text) == "" {
				text = c.Title
			}
			columns = append(columns, Column{
				Title:   c.Title,
				Text:    text,
				Actions: []Action{{Type: "uri", Label: mapActionLabel, URI: c.Link}},
			})
		}
		return []OutMessage{{
			Type:     "template",
			AltText:  r.Text,
			Template: &Template{Type: "carousel", Columns: columns},
		}}

	default:
		return []OutMessage{{Type: "text", Text: r.Text}}
	}
}
