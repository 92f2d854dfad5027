// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// ErrMalformedMarkup reports that unbalanced markup was repaired while
// parsing. The catalog returned alongside it is complete as far as the
// document allowed.
var ErrMalformedMarkup = errors.New("catalog: malformed markup repaired")

// voidElements are HTML elements that show up unclosed inside descriptions.
// "link" is left out because it collides with the KML <Link> element.
var voidElements = map[string]bool{
	"br": true, "hr": true, "img": true, "meta": true, "input": true, "wbr": true,
}

// commaSpace normalizes "lon, lat" tuples written with spaces.
var commaSpace = regexp.MustCompile(`\s*,\s*`)

// xmlEncoding finds the encoding label of an XML declaration.
var xmlEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*encoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type folderBuilder struct {
	depth   int
	name    strings.Builder
	hasName bool
	places  []*Place
}

type placemarkBuilder struct {
	depth          int
	name           strings.Builder
	description    strings.Builder
	coordinates    strings.Builder
	hasCoordinates bool
}

type capture struct {
	buf   *strings.Builder
	depth int
}

// kmlWalker turns a token stream into folders and places. Each placemark is
// owned by the innermost open folder. Open elements are kept on a stack so
// that a stray or unbalanced tag only affects itself.
type kmlWalker struct {
	placeholder string
	logger      zerolog.Logger

	stack     []string
	open      []*folderBuilder
	folders   []*folderBuilder
	placemark *placemarkBuilder
	capture   *capture
	orphans   []*Place

	discarded     int
	badCoordinate int
	repaired      int
}

// parseKML walks the document with the HTML tokenizer, which accepts any
// byte sequence. Element names are matched case-insensitively by local name.
func parseKML(data []byte, placeholder string, logger zerolog.Logger) (*Catalog, error) {
	data, err := toUTF8(data)
	if err != nil {
		logger.Warn().Err(err).Msg("Unsupported dataset encoding, reading as UTF-8")
	}

	z := html.NewTokenizer(bytes.NewReader(data))
	z.AllowCDATA(true)

	w := &kmlWalker{placeholder: placeholder, logger: logger}

	var parseErr error
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				parseErr = fmt.Errorf("catalog: parse kml: %w", err)
			}
			break
		}
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			raw, _ := z.TagName()
			name := localName(raw)
			if name != "script" {
				z.NextIsNotRawText()
			}
			w.start(name)
			if tt == html.SelfClosingTagToken || voidElements[name] {
				w.closeTop()
			}
		case html.EndTagToken:
			raw, _ := z.TagName()
			w.end(localName(raw))
		case html.TextToken:
			w.text(z.Text())
		}
	}
	w.flush()

	if w.discarded > 0 || w.badCoordinate > 0 {
		logger.Debug().
			Int("discarded_placemarks", w.discarded).
			Int("invalid_coordinates", w.badCoordinate).
			Msg("Skipped unusable placemark data")
	}
	if parseErr == nil && w.repaired > 0 {
		parseErr = fmt.Errorf("%w: %d unbalanced elements", ErrMalformedMarkup, w.repaired)
	}

	return w.catalog(), parseErr
}

// localName lower-cases a tag name and drops any namespace prefix.
func localName(raw []byte) string {
	name := strings.ToLower(string(raw))
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// toUTF8 converts documents that declare a non UTF-8 encoding.
func toUTF8(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	m := xmlEncoding.FindSubmatch(data[:min(len(data), 512)])
	if m == nil {
		return data, nil
	}
	label := strings.ToLower(string(m[1]))
	if label == "utf-8" || label == "utf8" {
		return data, nil
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		return data, fmt.Errorf("catalog: encoding %q: %w", label, err)
	}
	converted, err := io.ReadAll(r)
	if err != nil {
		return data, fmt.Errorf("catalog: decode %q: %w", label, err)
	}
	return converted, nil
}

func isElement(local, want string) bool {
	return strings.EqualFold(local, want)
}

func (w *kmlWalker) innermost() *folderBuilder {
	if len(w.open) == 0 {
		return nil
	}
	return w.open[len(w.open)-1]
}

func (w *kmlWalker) start(local string) {
	w.stack = append(w.stack, local)
	depth := len(w.stack)
	pm := w.placemark

	switch {
	case isElement(local, "Folder"):
		fb := &folderBuilder{depth: depth}
		w.open = append(w.open, fb)
		w.folders = append(w.folders, fb)

	case isElement(local, "Placemark"):
		if pm == nil {
			w.placemark = &placemarkBuilder{depth: depth}
		}

	case w.capture != nil:
		// Markup inside a captured field contributes text only.

	case isElement(local, "name"):
		if pm != nil {
			if depth == pm.depth+1 && pm.name.Len() == 0 {
				w.capture = &capture{buf: &pm.name, depth: depth}
			}
			return
		}
		if f := w.innermost(); f != nil && depth == f.depth+1 && !f.hasName {
			f.hasName = true
			w.capture = &capture{buf: &f.name, depth: depth}
		}

	case isElement(local, "description"):
		if pm != nil && depth == pm.depth+1 && pm.description.Len() == 0 {
			w.capture = &capture{buf: &pm.description, depth: depth}
		}

	case isElement(local, "coordinates"):
		if pm != nil && !pm.hasCoordinates {
			pm.hasCoordinates = true
			w.capture = &capture{buf: &pm.coordinates, depth: depth}
		}
	}
}

// end closes the nearest open element with the given name, and every element
// left open above it. An end tag with no open counterpart is ignored.
func (w *kmlWalker) end(local string) {
	i := len(w.stack) - 1
	for i >= 0 && w.stack[i] != local {
		i--
	}
	if i < 0 {
		w.repaired++
		return
	}
	w.repaired += len(w.stack) - 1 - i
	for len(w.stack) > i {
		w.closeTop()
	}
}

func (w *kmlWalker) closeTop() {
	depth := len(w.stack)
	if depth == 0 {
		return
	}
	local := w.stack[depth-1]

	if w.capture != nil && w.capture.depth == depth {
		w.capture = nil
	}
	switch {
	case isElement(local, "Placemark"):
		if w.placemark != nil && w.placemark.depth == depth {
			w.finishPlacemark()
		}
	case isElement(local, "Folder"):
		if f := w.innermost(); f != nil && f.depth == depth {
			w.open = w.open[:len(w.open)-1]
		}
	}
	w.stack = w.stack[:depth-1]
}

func (w *kmlWalker) text(data []byte) {
	if w.capture == nil {
		return
	}
	if top := len(w.stack) - 1; top >= 0 && (w.stack[top] == "script" || w.stack[top] == "style") {
		return
	}
	w.capture.buf.Write(data)
}

// flush closes whatever a truncated document left open.
func (w *kmlWalker) flush() {
	w.repaired += len(w.stack)
	for len(w.stack) > 0 {
		w.closeTop()
	}
}

func (w *kmlWalker) finishPlacemark() {
	pm := w.placemark
	w.placemark = nil

	name := strings.TrimSpace(pm.name.String())
	if name == "" {
		w.discarded++
		return
	}

	place := &Place{
		Name:        name,
		Description: stripHTML(pm.description.String()),
	}
	if place.Description == "" {
		place.Description = w.placeholder
	}
	if raw := strings.TrimSpace(pm.coordinates.String()); raw != "" {
		place.Coordinates = parseCoordinates(raw)
		if place.Coordinates == nil {
			w.badCoordinate++
		}
	}

	if f := w.innermost(); f != nil {
		f.places = append(f.places, place)
		return
	}
	w.orphans = append(w.orphans, place)
}

// catalog assembles categories in folder document order. Placemarks outside
// any folder are only used when the document has no folders at all.
func (w *kmlWalker) catalog() *Catalog {
	if len(w.folders) == 0 {
		return New([]*Category{{Name: AllCategoryName, Places: w.orphans}})
	}

	categories := make([]*Category, 0, len(w.folders))
	for _, f := range w.folders {
		name := strings.TrimSpace(f.name.String())
		if name == "" {
			name = UncategorizedName
		}
		categories = append(categories, &Category{Name: name, Places: f.places})
	}
	return New(categories)
}

// parseCoordinates reads the first "lon,lat[,alt]" tuple.
func parseCoordinates(raw string) *Coordinates {
	fields := strings.Fields(commaSpace.ReplaceAllString(raw, ","))
	if len(fields) == 0 {
		return nil
	}
	parts := strings.Split(fields[0], ",")
	if len(parts) < 2 {
		return nil
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil
	}

	c := Coordinates{Latitude: lat, Longitude: lon}
	if !c.Valid() {
		return nil
	}
	return &c
}

var blockElements = map[string]bool{
	"br": true, "p": true, "div": true, "li": true, "tr": true,
	"td": true, "hr": true, "h1": true, "h2": true, "h3": true,
}

// stripHTML extracts the text content of a description and collapses whitespace.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapseSpace(s)
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return collapseSpace(b.String())
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tt == html.StartTagToken && (tag == "script" || tag == "style") {
				skip++
			}
			if blockElements[tag] {
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
			if blockElements[tag] {
				b.WriteByte(' ')
			}
		}
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
