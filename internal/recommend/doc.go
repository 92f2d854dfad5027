// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

// Package recommend resolves a chat message into a recommendation result.
//
// # Decision Order
//
// Text input runs through an ordered rule table; the first rule that
// matches decides the result:
//
//  1. greeting keyword: Greeting
//  2. random keyword: RandomPick over the whole catalog (NotFound when empty)
//  3. repeat keyword with a remembered category: CategoryMatch, re-sampled
//  4. category match: CategoryMatch, remembered for the user
//  5. place match: PlaceMatch
//  6. otherwise: NotFound
//
// Location input returns the places within the configured radius, nearest
// first, as NearbyMatches. An empty result is not an error.
//
// # Determinism
//
// Sampling uses a mutex-guarded math/rand source. A non-zero Config.Seed
// makes picks reproducible, which the tests rely on.
//
// # Usage
//
//	resolver, err := recommend.NewResolver(cfg, cat, segmenter, store, logger)
//	if err != nil {
//	    return err
//	}
//	result := resolver.Resolve(ctx, userID, recommend.Text("noodles"))
package recommend
