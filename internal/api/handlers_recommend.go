// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package api

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/foodbot/internal/catalog"
	"github.com/tomtom215/foodbot/internal/logging"
	"github.com/tomtom215/foodbot/internal/models"
	"github.com/tomtom215/foodbot/internal/recommend"
	"github.com/tomtom215/foodbot/internal/reply"
	"github.com/tomtom215/foodbot/internal/validation"
)

// recommendRequest holds the query parameters of GET /api/v1/recommend.
type recommendRequest struct {
	User string   `query:"user" validate:"required,notblank,max=128"`
	Q    string   `query:"q" validate:"omitempty,notblank,max=500"`
	Lat  *float64 `query:"lat" validate:"omitempty,latitude"`
	Lon  *float64 `query:"lon" validate:"omitempty,longitude"`
}

// Categories handles GET /api/v1/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cats := h.deps.Catalog.Categories()
	list := models.CategoryList{
		TotalPlaces: h.deps.Catalog.PlaceCount(),
		Categories:  make([]models.CategorySummary, 0, len(cats)),
	}
	for _, c := range cats {
		list.Categories = append(list.Categories, models.CategorySummary{Name: c.Name, Count: len(c.Places)})
	}
	respondSuccess(w, r, list, start)
}

// Recommend handles GET /api/v1/recommend.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, msg := parseRecommendRequest(r)
	if msg != "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, msg, nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	var in recommend.Input
	switch {
	case req.Q != "" && req.Lat != nil:
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "use either q or lat/lon", nil)
		return
	case req.Lat != nil:
		in = recommend.Location(*req.Lat, *req.Lon)
	case req.Q != "":
		in = recommend.Text(req.Q)
	default:
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "q or lat/lon is required", nil)
		return
	}

	ctx := logging.ContextWithUserID(r.Context(), req.User)
	res := h.deps.Resolver.Resolve(ctx, req.User, in)
	rep := h.deps.Formatter.Format(ctx, res)

	respondSuccess(w, r, models.RecommendResponse{
		Result: h.resultView(res),
		Reply:  rep,
	}, start)
}

// parseRecommendRequest reads query parameters. A non-empty message reports
// a parse failure.
func parseRecommendRequest(r *http.Request) (recommendRequest, string) {
	q := r.URL.Query()
	req := recommendRequest{
		User: strings.TrimSpace(q.Get("user")),
		Q:    q.Get("q"),
	}

	var ok bool
	if req.Lat, ok = parseCoordinate(q.Get("lat")); !ok {
		return req, "lat must be a number"
	}
	if req.Lon, ok = parseCoordinate(q.Get("lon")); !ok {
		return req, "lon must be a number"
	}
	if (req.Lat == nil) != (req.Lon == nil) {
		return req, "lat and lon must be given together"
	}
	return req, ""
}

func parseCoordinate(raw string) (*float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return &v, true
}

func (h *Handler) resultView(res recommend.Result) models.ResultView {
	view := models.ResultView{Kind: res.Kind.String(), Category: res.Category}
	if res.Place != nil {
		pv := h.placeView(res.Place, nil)
		view.Place = &pv
	}
	for _, p := range res.Sample {
		view.Sample = append(view.Sample, h.placeView(p, nil))
	}
	for _, n := range res.Nearby {
		d := n.DistanceKM
		view.Nearby = append(view.Nearby, h.placeView(n.Place, &d))
	}
	return view
}

func (h *Handler) placeView(p *catalog.Place, distance *float64) models.PlaceView {
	pv := models.PlaceView{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		DistanceKM:  distance,
		MapURL:      reply.MapLink(h.deps.Area, p),
	}
	if p.HasCoordinates() {
		lat, lon := p.Coordinates.Latitude, p.Coordinates.Longitude
		pv.Latitude, pv.Longitude = &lat, &lon
	}
	return pv
}
