// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package catalog

import (
	"archive/zip"
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/foodbot/internal/logging"
)

const sampleKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <name>Puli Food Map</name>
    <Folder>
      <name>Noodles</name>
      <Placemark>
        <name> 阿嬤麵店 </name>
        <description><![CDATA[<b>Beef</b> noodle<br>since 1970]]></description>
        <Point><coordinates>120.9686,23.9660,0</coordinates></Point>
      </Placemark>
      <Placemark>
        <name>Broken Coords</name>
        <Point><coordinates>not,a,number</coordinates></Point>
      </Placemark>
      <Placemark>
        <description>no name here</description>
      </Placemark>
    </Folder>
    <Folder>
      <name>Desserts</name>
      <Placemark>
        <name>Tofu Pudding</name>
        <description>Sweet &amp; cold</description>
        <Point><coordinates> 120.97 , 23.97 </coordinates></Point>
      </Placemark>
      <Folder>
        <name>Ice</name>
        <Placemark>
          <name>Shaved Ice</name>
        </Placemark>
      </Folder>
    </Folder>
    <Folder>
      <Placemark><name>Mystery Stall</name></Placemark>
    </Folder>
    <Folder>
      <name>Empty</name>
    </Folder>
  </Document>
</kml>`

func testLoader() *Loader {
	return NewLoader(WithLogger(logging.Nop()))
}

func buildKMZ(t *testing.T, members map[string]string, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(members[name])); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func assertSampleCatalog(t *testing.T, cat *Catalog) {
	t.Helper()

	wantOrder := []string{"Noodles", "Desserts", "Ice", UncategorizedName}
	got := cat.CategoryNames()
	if strings.Join(got, "|") != strings.Join(wantOrder, "|") {
		t.Fatalf("CategoryNames() = %v, want %v", got, wantOrder)
	}

	noodles, ok := cat.Category("Noodles")
	if !ok {
		t.Fatal("expected Noodles category")
	}
	if len(noodles.Places) != 2 {
		t.Fatalf("Noodles has %d places, want 2 (unnamed placemark discarded)", len(noodles.Places))
	}

	first := noodles.Places[0]
	if first.Name != "阿嬤麵店" {
		t.Errorf("name = %q, want trimmed name", first.Name)
	}
	if first.Description != "Beef noodle since 1970" {
		t.Errorf("description = %q, want HTML stripped", first.Description)
	}
	if !first.HasCoordinates() {
		t.Fatal("expected coordinates on first place")
	}
	if first.Coordinates.Latitude != 23.9660 || first.Coordinates.Longitude != 120.9686 {
		t.Errorf("coordinates = %+v, want lat 23.9660 lon 120.9686", *first.Coordinates)
	}
	if first.Category != "Noodles" {
		t.Errorf("Category = %q, want Noodles", first.Category)
	}

	broken := noodles.Places[1]
	if broken.HasCoordinates() {
		t.Error("malformed coordinates should leave place without coordinates")
	}
	if broken.Description != DefaultPlaceholderDescription {
		t.Errorf("description = %q, want placeholder", broken.Description)
	}

	desserts, _ := cat.Category("Desserts")
	if len(desserts.Places) != 1 || desserts.Places[0].Name != "Tofu Pudding" {
		t.Errorf("Desserts places = %v, want only Tofu Pudding (nested folder owns Shaved Ice)", desserts.Places)
	}
	if desserts.Places[0].Description != "Sweet & cold" {
		t.Errorf("entity description = %q", desserts.Places[0].Description)
	}
	if c := desserts.Places[0].Coordinates; c == nil || c.Latitude != 23.97 {
		t.Errorf("spaced coordinates not parsed: %+v", c)
	}

	if _, ok := cat.Category("Empty"); ok {
		t.Error("empty folder must not become a category")
	}

	if cat.PlaceCount() != 5 {
		t.Errorf("PlaceCount() = %d, want 5", cat.PlaceCount())
	}
}

func TestLoad_RawKML(t *testing.T) {
	t.Parallel()

	cat := testLoader().Load(strings.NewReader(sampleKML))
	assertSampleCatalog(t, cat)
}

func TestLoad_KMZ(t *testing.T) {
	t.Parallel()

	data := buildKMZ(t, map[string]string{
		"doc.kml":         sampleKML,
		"files/icon.png":  "not really a png",
		"other/extra.kml": `<kml><Folder><name>Wrong</name><Placemark><name>X</name></Placemark></Folder></kml>`,
	}, []string{"doc.kml", "files/icon.png", "other/extra.kml"})

	cat := testLoader().Load(bytes.NewReader(data))
	assertSampleCatalog(t, cat)
}

func TestLoad_KMZFallsBackToFirstKMLMember(t *testing.T) {
	t.Parallel()

	data := buildKMZ(t, map[string]string{
		"readme.txt":   "hello",
		"map/food.kml": sampleKML,
	}, []string{"readme.txt", "map/food.kml"})

	cat := testLoader().Load(bytes.NewReader(data))
	assertSampleCatalog(t, cat)
}

func TestParse_ZipWithoutKML(t *testing.T) {
	t.Parallel()

	data := buildKMZ(t, map[string]string{"readme.txt": "hello"}, []string{"readme.txt"})

	cat, err := testLoader().Parse(data)
	if !errors.Is(err, ErrNoKMLMember) {
		t.Fatalf("Parse() error = %v, want ErrNoKMLMember", err)
	}
	if !cat.IsEmpty() {
		t.Error("expected empty catalog")
	}
}

func TestLoad_NoFoldersUsesAllCategory(t *testing.T) {
	t.Parallel()

	doc := `<kml><Document>
		<Placemark><name>One</name></Placemark>
		<Placemark><name>Two</name><description></description></Placemark>
	</Document></kml>`

	cat := testLoader().Load(strings.NewReader(doc))
	if got := cat.CategoryNames(); len(got) != 1 || got[0] != AllCategoryName {
		t.Fatalf("CategoryNames() = %v, want [%s]", got, AllCategoryName)
	}
	if cat.PlaceCount() != 2 {
		t.Errorf("PlaceCount() = %d, want 2", cat.PlaceCount())
	}
}

func TestLoad_PrefixedNamespace(t *testing.T) {
	t.Parallel()

	doc := `<kml:kml xmlns:kml="http://www.opengis.net/kml/2.2"><kml:Folder>
		<kml:name>Rice</kml:name>
		<kml:Placemark><kml:name>Bowl</kml:name></kml:Placemark>
	</kml:Folder></kml:kml>`

	cat := testLoader().Load(strings.NewReader(doc))
	rice, ok := cat.Category("Rice")
	if !ok || len(rice.Places) != 1 {
		t.Fatalf("expected Rice with one place, got %v", cat.CategoryNames())
	}
}

func TestLoad_MergesSameNamedFolders(t *testing.T) {
	t.Parallel()

	doc := `<kml>
		<Folder><name>Rice</name><Placemark><name>A</name></Placemark></Folder>
		<Folder><name>Soup</name><Placemark><name>B</name></Placemark></Folder>
		<Folder><name>Rice</name><Placemark><name>C</name></Placemark></Folder>
	</kml>`

	cat := testLoader().Load(strings.NewReader(doc))
	if got := strings.Join(cat.CategoryNames(), ","); got != "Rice,Soup" {
		t.Fatalf("CategoryNames() = %s, want Rice,Soup", got)
	}
	rice, _ := cat.Category("Rice")
	if len(rice.Places) != 2 || rice.Places[1].Name != "C" {
		t.Errorf("merged Rice places = %d, want A then C", len(rice.Places))
	}
}

func TestLoad_MalformedInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		doc        string
		wantPlaces int
	}{
		{"empty", "", 0},
		{"whitespace", "   \n\t", 0},
		{"not xml", "this is not a map", 0},
		{"binary garbage", "\x00\x01\x02\x03PK", 0},
		{
			name:       "truncated after first placemark",
			doc:        `<kml><Folder><name>Rice</name><Placemark><name>A</name></Placemark><Placemark><name>B</name>`,
			wantPlaces: 2,
		},
		{
			name:       "unclosed html in description",
			doc:        `<kml><Folder><name>Rice</name><Placemark><name>A</name><description>x<br>y</description></Placemark></Folder></kml>`,
			wantPlaces: 1,
		},
		{
			name:       "out of range coordinates",
			doc:        `<kml><Folder><name>Rice</name><Placemark><name>A</name><Point><coordinates>200,95</coordinates></Point></Placemark></Folder></kml>`,
			wantPlaces: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cat := testLoader().Load(strings.NewReader(tt.doc))
			if cat == nil {
				t.Fatal("Load() returned nil")
			}
			if cat.PlaceCount() != tt.wantPlaces {
				t.Errorf("PlaceCount() = %d, want %d", cat.PlaceCount(), tt.wantPlaces)
			}
			for _, c := range cat.Categories() {
				if len(c.Places) == 0 {
					t.Errorf("category %q exposed with zero places", c.Name)
				}
				for _, p := range c.Places {
					if p.Coordinates != nil && !p.Coordinates.Valid() {
						t.Errorf("place %q has invalid coordinates %+v", p.Name, *p.Coordinates)
					}
				}
			}
		})
	}
}

func TestLoad_RecoversFromBadMarkup(t *testing.T) {
	t.Parallel()

	const tail = `<Placemark><name>B</name></Placemark></Folder>` +
		`<Folder><name>Noodles</name><Placemark><name>C</name></Placemark></Folder></Document></kml>`

	tests := []struct {
		name      string
		doc       string
		wantDescA string
		repaired  bool
	}{
		{
			name:      "unescaped less-than in description",
			doc:       `<kml><Document><Folder><name>Rice</name><Placemark><name>A</name><description>price < 100</description></Placemark>` + tail,
			wantDescA: "price < 100",
		},
		{
			name:      "broken attribute quoting",
			doc:       `<kml><Document><Folder><name>Rice</name><Placemark id=x"><name>A</name></Placemark>` + tail,
			wantDescA: DefaultPlaceholderDescription,
		},
		{
			name:      "stray end tag and unclosed inline markup",
			doc:       `<kml><Document><Folder><name>Rice</name></Point><Placemark><name>A</name><description>hot <b>soup</description></Placemark>` + tail,
			wantDescA: "hot soup",
			repaired:  true,
		},
		{
			name:      "namespace prefixed elements",
			doc:       `<kml:kml><kml:Document><kml:Folder><kml:name>Rice</kml:name><kml:Placemark><kml:name>A</kml:name></kml:Placemark>` + tail,
			wantDescA: DefaultPlaceholderDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cat, err := testLoader().Parse([]byte(tt.doc))
			if tt.repaired != errors.Is(err, ErrMalformedMarkup) {
				t.Errorf("Parse() error = %v, want ErrMalformedMarkup: %v", err, tt.repaired)
			}

			if got := strings.Join(cat.CategoryNames(), ","); got != "Rice,Noodles" {
				t.Fatalf("CategoryNames() = %q, want Rice,Noodles", got)
			}
			var names []string
			for _, p := range cat.Places() {
				names = append(names, p.Name)
			}
			if got := strings.Join(names, ","); got != "A,B,C" {
				t.Errorf("places = %q, want A,B,C", got)
			}
			if got := cat.Places()[0].Description; got != tt.wantDescA {
				t.Errorf("A description = %q, want %q", got, tt.wantDescA)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	cat := testLoader().LoadFile(filepath.Join(t.TempDir(), "missing.kmz"))
	if cat == nil || !cat.IsEmpty() {
		t.Fatal("missing dataset should yield an empty catalog")
	}
}

func TestWithPlaceholder(t *testing.T) {
	t.Parallel()

	doc := `<kml><Folder><name>Rice</name><Placemark><name>A</name></Placemark></Folder></kml>`
	cat := NewLoader(WithLogger(logging.Nop()), WithPlaceholder("local favourite")).Load(strings.NewReader(doc))
	if got := cat.Places()[0].Description; got != "local favourite" {
		t.Errorf("Description = %q, want configured placeholder", got)
	}
}

func TestEveryPlaceOwnedByExactlyOneCategory(t *testing.T) {
	t.Parallel()

	cat := testLoader().Load(strings.NewReader(sampleKML))
	seen := make(map[*Place]string)
	for _, c := range cat.Categories() {
		for _, p := range c.Places {
			if prev, dup := seen[p]; dup {
				t.Errorf("place %q in both %q and %q", p.Name, prev, c.Name)
			}
			seen[p] = c.Name
			if p.Category != c.Name {
				t.Errorf("place %q Category = %q, listed under %q", p.Name, p.Category, c.Name)
			}
		}
	}
	if len(seen) != len(cat.Places()) {
		t.Errorf("Places() has %d entries, categories hold %d", len(cat.Places()), len(seen))
	}
}

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain   text\n here", "plain text here"},
		{"<p>one</p><p>two</p>", "one two"},
		{"a &amp; b", "a & b"},
		{"<style>.x{}</style>visible<script>alert(1)</script>", "visible"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripHTML(tt.in); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
