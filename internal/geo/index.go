// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package geo

import (
	"math"
	"sort"

	"github.com/tomtom215/foodbot/internal/catalog"
)

// DefaultCellSizeKM suits city-scale radius queries.
const DefaultCellSizeKM = 2.0

// Hit is a place found by a radius query.
type Hit struct {
	Place      *catalog.Place
	DistanceKM float64
}

type cellKey struct {
	X, Y int
}

type entry struct {
	place *catalog.Place
	lat   float64
	lon   float64
	order int // position in catalog order, used to break distance ties
}

// Index is a spatial hash grid over the places that have coordinates.
// Queries only visit the cells around the query point; radius queries that
// would wrap around the grid or reach a pole use a linear scan instead.
//
// An Index is immutable after construction and safe for concurrent use.
type Index struct {
	cells    map[cellKey][]entry
	all      []entry
	cellSize float64 // degrees
	columns  int
}

// NewIndex indexes every place with coordinates. cellSizeKM <= 0 selects
// DefaultCellSizeKM.
func NewIndex(places []*catalog.Place, cellSizeKM float64) *Index {
	if cellSizeKM <= 0 {
		cellSizeKM = DefaultCellSizeKM
	}
	cellSize := cellSizeKM / kmPerDegree

	idx := &Index{
		cells:    make(map[cellKey][]entry),
		cellSize: cellSize,
		columns:  int(math.Ceil(360 / cellSize)),
	}

	for i, p := range places {
		if !p.HasCoordinates() || !p.Coordinates.Valid() {
			continue
		}
		e := entry{place: p, lat: p.Coordinates.Latitude, lon: p.Coordinates.Longitude, order: i}
		key := idx.cellFor(e.lat, e.lon)
		idx.cells[key] = append(idx.cells[key], e)
		idx.all = append(idx.all, e)
	}
	return idx
}

// NewCatalogIndex indexes a catalog in catalog order.
func NewCatalogIndex(cat *catalog.Catalog, cellSizeKM float64) *Index {
	return NewIndex(cat.Places(), cellSizeKM)
}

func (idx *Index) cellFor(lat, lon float64) cellKey {
	x := int(math.Floor((lon + 180) / idx.cellSize))
	y := int(math.Floor((lat + 90) / idx.cellSize))
	return cellKey{X: idx.wrapColumn(x), Y: y}
}

func (idx *Index) wrapColumn(x int) int {
	return ((x % idx.columns) + idx.columns) % idx.columns
}

// Len returns the number of indexed places.
func (idx *Index) Len() int {
	return len(idx.all)
}

// NumCells returns the number of non-empty cells.
func (idx *Index) NumCells() int {
	return len(idx.cells)
}

// Nearby returns every indexed place within radiusKM of the point, sorted by
// ascending distance with ties kept in catalog order. Invalid points and
// negative radii yield nil.
func (idx *Index) Nearby(lat, lon, radiusKM float64) []Hit {
	if !ValidPoint(lat, lon) || math.IsNaN(radiusKM) || radiusKM < 0 || len(idx.all) == 0 {
		return nil
	}

	var found []scoredHit
	collect := func(entries []entry) {
		for _, e := range entries {
			d := DistanceKM(lat, lon, e.lat, e.lon)
			if d <= radiusKM {
				found = append(found, scoredHit{Hit: Hit{Place: e.place, DistanceKM: d}, order: e.order})
			}
		}
	}

	if rows, cols, ok := idx.span(lat, radiusKM); ok {
		center := idx.cellFor(lat, lon)
		for dx := -cols; dx <= cols; dx++ {
			x := idx.wrapColumn(center.X + dx)
			for dy := -rows; dy <= rows; dy++ {
				collect(idx.cells[cellKey{X: x, Y: center.Y + dy}])
			}
		}
	} else {
		collect(idx.all)
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].DistanceKM != found[j].DistanceKM {
			return found[i].DistanceKM < found[j].DistanceKM
		}
		return found[i].order < found[j].order
	})

	hits := make([]Hit, len(found))
	for i := range found {
		hits[i] = found[i].Hit
	}
	return hits
}

type scoredHit struct {
	Hit
	order int
}

// span returns how many neighbouring rows and columns a query must visit.
// ok is false when the grid cannot answer the query correctly: the search
// box reaches a pole or covers the whole longitude range.
func (idx *Index) span(lat, radiusKM float64) (rows, cols int, ok bool) {
	radiusDeg := radiusKM / kmPerDegree
	if math.Abs(lat)+radiusDeg >= 89 {
		return 0, 0, false
	}

	lonScale := math.Cos((math.Abs(lat) + radiusDeg) * math.Pi / 180)
	rows = int(math.Ceil(radiusDeg/idx.cellSize)) + 1
	cols = int(math.Ceil(radiusDeg/lonScale/idx.cellSize)) + 1
	if 2*cols+1 >= idx.columns {
		return 0, 0, false
	}
	return rows, cols, true
}
