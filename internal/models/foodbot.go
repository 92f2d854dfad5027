// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package models

// CategorySummary is one category with its place count.
type CategorySummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryList is the payload of GET /api/v1/categories.
type CategoryList struct {
	TotalPlaces int               `json:"total_places"`
	Categories  []CategorySummary `json:"categories"`
}

// PlaceView is a place as exposed over HTTP.
type PlaceView struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	DistanceKM  *float64 `json:"distance_km,omitempty"`
	MapURL      string   `json:"map_url"`
}

// ResultView mirrors a resolver result.
type ResultView struct {
	Kind     string      `json:"kind"`
	Category string      `json:"category,omitempty"`
	Place    *PlaceView  `json:"place,omitempty"`
	Sample   []PlaceView `json:"sample,omitempty"`
	Nearby   []PlaceView `json:"nearby,omitempty"`
}

// RecommendResponse is the payload of GET /api/v1/recommend. Reply is the
// chat reply that would be sent for the same message.
type RecommendResponse struct {
	Result ResultView  `json:"result"`
	Reply  interface{} `json:"reply"`
}

// ServiceStatus is the readiness payload.
type ServiceStatus struct {
	CatalogLoaded   bool    `json:"catalog_loaded"`
	Categories      int     `json:"categories"`
	Places          int     `json:"places"`
	SegmenterLoaded bool    `json:"segmenter_loaded"`
	ReplyConfigured bool    `json:"reply_configured"`
	ActiveUsers     int     `json:"active_users"`
	Uptime          float64 `json:"uptime"`
}
