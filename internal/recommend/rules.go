// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package recommend

import (
	"github.com/tomtom215/foodbot/internal/textmatch"
	"github.com/tomtom215/foodbot/internal/usercontext"
)

// message is one text input prepared for the rule table.
type message struct {
	userID string
	raw    string
	tokens []string
	ctx    usercontext.UserContext
}

// rule is one row of the decision table. apply reports whether it decided
// the result; the first rule that does wins.
type rule struct {
	name  string
	apply func(r *Resolver, m *message) (Result, bool)
}

// textRules returns the decision table in precedence order.
func textRules() []rule {
	return []rule{
		{name: "greeting", apply: greetingRule},
		{name: "random", apply: randomRule},
		{name: "repeat", apply: repeatRule},
		{name: "category", apply: categoryRule},
		{name: "place", apply: placeRule},
	}
}

func greetingRule(r *Resolver, m *message) (Result, bool) {
	if !r.intents.Greeting.Contains(m.raw) {
		return Result{}, false
	}
	return Result{Kind: KindGreeting}, true
}

// randomRule answers NotFound on an empty catalog rather than falling through.
func randomRule(r *Resolver, m *message) (Result, bool) {
	if !r.intents.Random.Contains(m.raw) {
		return Result{}, false
	}
	places := r.catalog.Places()
	if len(places) == 0 {
		return NotFound(), true
	}
	return Result{Kind: KindRandomPick, Place: r.pick(places)}, true
}

// repeatRule only applies while the remembered category still exists.
func repeatRule(r *Resolver, m *message) (Result, bool) {
	if !m.ctx.HasLastCategory() || !r.intents.Repeat.Contains(m.raw) {
		return Result{}, false
	}
	cat, ok := r.catalog.Category(m.ctx.LastCategory)
	if !ok {
		return Result{}, false
	}
	return Result{Kind: KindCategoryMatch, Category: cat.Name, Sample: r.sample(cat.Places)}, true
}

func categoryRule(r *Resolver, m *message) (Result, bool) {
	cat, ok := textmatch.MatchCategory(m.tokens, m.raw, r.catalog)
	if !ok {
		return Result{}, false
	}
	r.contexts.SetLastCategory(m.userID, cat.Name)
	return Result{Kind: KindCategoryMatch, Category: cat.Name, Sample: r.sample(cat.Places)}, true
}

func placeRule(r *Resolver, m *message) (Result, bool) {
	place, ok := textmatch.MatchPlace(m.tokens, r.catalog)
	if !ok {
		return Result{}, false
	}
	return Result{Kind: KindPlaceMatch, Place: place}, true
}
