// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package catalog

import "math"

const (
	// UncategorizedName names a Folder that has no name child.
	UncategorizedName = "Uncategorized"

	// AllCategoryName is the synthetic category used when a document has no Folders.
	AllCategoryName = "All"

	// DefaultPlaceholderDescription is used for placemarks without a description.
	DefaultPlaceholderDescription = "埔里在地美食"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point lies within latitude/longitude bounds.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Place is a single point of interest.
type Place struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`

	// Category is the name of the owning category.
	Category string `json:"category"`
}

// HasCoordinates reports whether the place can take part in nearby queries.
func (p *Place) HasCoordinates() bool {
	return p != nil && p.Coordinates != nil
}

// Category is a named group of places in document order.
type Category struct {
	Name   string   `json:"name"`
	Places []*Place `json:"places"`
}

// Catalog is the read-only set of categories loaded at startup.
type Catalog struct {
	categories []*Category
	byName     map[string]*Category
	places     []*Place
}

// New builds a catalog from categories in the given order.
// Empty categories are dropped and categories sharing a name are merged into
// the first occurrence. Places are re-parented to the category they end up in.
func New(categories []*Category) *Catalog {
	c := &Catalog{byName: make(map[string]*Category, len(categories))}

	for _, in := range categories {
		if in == nil {
			continue
		}
		places := make([]*Place, 0, len(in.Places))
		for _, p := range in.Places {
			if p != nil && p.Name != "" {
				places = append(places, p)
			}
		}
		if len(places) == 0 {
			continue
		}

		existing, ok := c.byName[in.Name]
		if !ok {
			existing = &Category{Name: in.Name}
			c.byName[in.Name] = existing
			c.categories = append(c.categories, existing)
		}
		for _, p := range places {
			p.Category = existing.Name
			existing.Places = append(existing.Places, p)
		}
	}

	for _, cat := range c.categories {
		c.places = append(c.places, cat.Places...)
	}
	return c
}

// Empty returns a catalog with no categories.
func Empty() *Catalog {
	return New(nil)
}

// Categories returns the categories in catalog order. Callers must not modify the slice.
func (c *Catalog) Categories() []*Category {
	if c == nil {
		return nil
	}
	return c.categories
}

// Category looks up a category by exact name.
func (c *Catalog) Category(name string) (*Category, bool) {
	if c == nil {
		return nil, false
	}
	cat, ok := c.byName[name]
	return cat, ok
}

// CategoryNames returns the category names in catalog order.
func (c *Catalog) CategoryNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Places returns every place flattened in catalog order.
func (c *Catalog) Places() []*Place {
	if c == nil {
		return nil
	}
	return c.places
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.categories)
}

// PlaceCount returns the total number of places.
func (c *Catalog) PlaceCount() int {
	if c == nil {
		return 0
	}
	return len(c.places)
}

// IsEmpty reports whether the catalog has no places.
func (c *Catalog) IsEmpty() bool {
	return c.PlaceCount() == 0
}
