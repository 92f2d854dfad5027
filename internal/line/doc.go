// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

/*
Package line speaks the LINE Messaging API: it verifies and decodes webhook
deliveries and sends replies through a rate limited, circuit broken client.

Webhook flow:

	body, _ := io.ReadAll(r.Body)
	if err := line.VerifySignature(secret, body, r.Header.Get(line.SignatureHeader)); err != nil {
		// 400
	}
	events, err := line.ParseEvents(body)
	for _, ev := range events {
		in, ok := ev.Input()
		if !ok {
			continue
		}
		// resolve, format, then client.Reply(ctx, ev.ReplyToken, rep)
	}

Outbound replies are converted from reply.Reply into LINE message objects:
plain text, text with quick reply items, or a carousel template.
*/
package line
