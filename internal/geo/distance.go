// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

// Package geo provides great-circle distances and a spatial index for
// radius queries over catalog places.
package geo

import "math"

// EarthRadiusKM is the mean Earth radius used for all distances.
const EarthRadiusKM = 6371.0

// kmPerDegree is the approximate length of one degree of latitude.
const kmPerDegree = 111.0

// DistanceKM returns the haversine great-circle distance between two points.
// The haversine term is clamped to [0,1] so coincident and antipodal points
// never push asin outside its domain.
func DistanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	sinLat := math.Sin(deltaLat / 2)
	sinLon := math.Sin(deltaLon / 2)
	a := sinLat*sinLat + math.Cos(lat1Rad)*math.Cos(lat2Rad)*sinLon*sinLon
	a = math.Max(0, math.Min(1, a))

	return 2 * EarthRadiusKM * math.Asin(math.Sqrt(a))
}

// ValidPoint reports whether lat/lon are finite and within WGS84 bounds.
func ValidPoint(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
