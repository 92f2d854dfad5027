// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/foodbot/internal/models"
)

// statusTemplate is the plain text answer of GET /.
const statusTemplate = "Foodbot is online! Total: %d stores."

// Root handles GET /.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	respondText(w, http.StatusOK, fmt.Sprintf(statusTemplate, h.deps.Catalog.PlaceCount()))
}

// HealthLive handles GET /api/v1/health/live.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: metadata(r, time.Time{}),
	})
}

// HealthReady handles GET /api/v1/health/ready. The service is ready once a
// catalog has been loaded, even an empty one.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	cat := h.deps.Catalog
	ready := cat != nil

	status := models.ServiceStatus{
		CatalogLoaded:   ready,
		Categories:      cat.Len(),
		Places:          cat.PlaceCount(),
		SegmenterLoaded: h.deps.SegmenterLoaded,
		ReplyConfigured: h.deps.ReplyConfigured,
		Uptime:          time.Since(h.startTime).Seconds(),
	}
	if h.deps.Contexts != nil {
		status.ActiveUsers = h.deps.Contexts.Len()
	}

	code, label := http.StatusOK, "ready"
	if !ready {
		code, label = http.StatusServiceUnavailable, "not_ready"
	}
	respondJSON(w, code, &models.APIResponse{
		Status:   label,
		Data:     status,
		Metadata: metadata(r, time.Time{}),
	})
}
