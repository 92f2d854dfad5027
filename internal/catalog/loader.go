// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package catalog

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodbot/internal/logging"
)

// MaxDocumentSize bounds how much of a dataset (or a KMZ member) is read.
const MaxDocumentSize = 64 << 20

// primaryKMLMember is the member name Google Earth uses inside a KMZ.
const primaryKMLMember = "doc.kml"

// ErrNoKMLMember is returned when a zip container has no .kml member.
var ErrNoKMLMember = errors.New("catalog: archive has no kml member")

// Loader builds catalogs from KML/KMZ sources.
type Loader struct {
	logger      zerolog.Logger
	placeholder string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger zerolog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithPlaceholder overrides the description used for placemarks without one.
// An empty value keeps the default.
func WithPlaceholder(text string) LoaderOption {
	return func(l *Loader) {
		if strings.TrimSpace(text) != "" {
			l.placeholder = text
		}
	}
}

// NewLoader creates a loader with the given options.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		logger:      logging.WithComponent("catalog"),
		placeholder: DefaultPlaceholderDescription,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads a catalog with the default loader.
func Load(r io.Reader) *Catalog {
	return NewLoader().Load(r)
}

// LoadFile reads a catalog from path with the default loader.
func LoadFile(filePath string) *Catalog {
	return NewLoader().LoadFile(filePath)
}

// LoadFile opens path and loads it. A missing or unreadable file yields an
// empty catalog.
func (l *Loader) LoadFile(filePath string) *Catalog {
	f, err := os.Open(filePath) //nolint:gosec // dataset path comes from operator config
	if err != nil {
		l.logger.Warn().Err(err).Str("path", filePath).Msg("Dataset unavailable, serving empty catalog")
		return Empty()
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.logger.Debug().Err(cerr).Msg("Failed to close dataset file")
		}
	}()

	cat := l.Load(f)
	l.logger.Info().
		Str("path", filePath).
		Int("categories", cat.Len()).
		Int("places", cat.PlaceCount()).
		Msg("Catalog loaded")
	return cat
}

// Load reads the whole stream and parses it. It never returns nil.
func (l *Loader) Load(r io.Reader) *Catalog {
	start := time.Now()

	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize))
	if err != nil {
		l.logger.Warn().Err(err).Msg("Failed to read dataset, serving empty catalog")
		return Empty()
	}

	cat, err := l.Parse(data)
	if err != nil {
		l.logger.Warn().Err(err).
			Int("categories", cat.Len()).
			Int("places", cat.PlaceCount()).
			Msg("Dataset malformed, keeping what was parsed")
	}

	l.logger.Debug().
		Dur("duration", time.Since(start)).
		Int("bytes", len(data)).
		Msg("Dataset parsed")
	return cat
}

// Parse decodes raw KML or a KMZ archive. The returned catalog is never nil;
// a non-nil error describes why it may be partial or empty.
func (l *Loader) Parse(data []byte) (*Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Empty(), fmt.Errorf("catalog: empty document")
	}

	if isZipContainer(data) {
		kml, err := extractKML(data)
		if err != nil {
			return Empty(), err
		}
		data = kml
	}

	return parseKML(data, l.placeholder, l.logger)
}

// isZipContainer reports whether the payload is a zip archive or any format
// derived from one (KMZ, for instance).
func isZipContainer(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return true
		}
	}
	return false
}

// extractKML returns the doc.kml member, or the first .kml member when the
// archive does not follow the Google Earth naming convention.
func extractKML(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("catalog: open archive: %w", err)
	}

	var member *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if path.Base(f.Name) == primaryKMLMember {
			member = f
			break
		}
		if member == nil && strings.EqualFold(path.Ext(f.Name), ".kml") {
			member = f
		}
	}
	if member == nil {
		return nil, ErrNoKMLMember
	}

	rc, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", member.Name, err)
	}
	defer rc.Close()

	kml, err := io.ReadAll(io.LimitReader(rc, MaxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", member.Name, err)
	}
	return kml, nil
}
