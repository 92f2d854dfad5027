// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

// Package catalog holds the in-memory restaurant catalog and the loader that
// builds it from a KML document or a KMZ archive.
//
// # Data Model
//
//   - Place: name, plain-text description and optional coordinates
//   - Category: a named, ordered group of places (one KML Folder)
//   - Catalog: categories in document order plus a name index
//
// A Catalog is immutable once constructed and safe for concurrent reads.
// Categories with no places are never exposed.
//
// # Loading
//
// The loader sniffs magic bytes rather than trusting file extensions: zip
// containers are opened and their doc.kml member parsed, everything else is
// treated as raw KML. Markup is read with the HTML tokenizer, so a stray "<"
// or a broken attribute affects only the element it sits in; unbalanced end
// tags close the nearest matching element. Load never fails: I/O and parse
// problems are logged and yield an empty or partial catalog.
//
//	cat := catalog.NewLoader(catalog.WithLogger(logger)).LoadFile("puli.kmz")
//	for _, c := range cat.Categories() {
//	    fmt.Println(c.Name, len(c.Places))
//	}
package catalog
