// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

/*
Package services adapts foodbot components to suture's Serve(ctx) model.

HTTPServerService wraps an *http.Server: ListenAndServe runs in a goroutine
and context cancellation triggers Shutdown with a bounded timeout.

ContextJanitorService sweeps expired conversation contexts on a ticker and
publishes the sweep results as Prometheus metrics.

Return values drive supervisor behavior:

	nil         -> stopped cleanly, not restarted
	error       -> crashed, restarted with backoff
	ctx.Err()   -> shutdown requested

Every service implements fmt.Stringer so suture can name it in log events.
*/
package services
