package kml

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

func boundsClose(a, b *BoundingBox) bool {
	if a == nil || b == nil {
		return a == b
	}
	const eps = 1e-9
	return math.Abs(a.North-b.North) < eps && math.Abs(a.South-b.South) < eps &&
		math.Abs(a.East-b.East) < eps && math.Abs(a.West-b.West) < eps
}

func checkRoundTrip(t *testing.T, want, got *Document) {
	t.Helper()

	if got.Name != want.Name || got.Description != want.Description {
		t.Errorf("expected %q/%q, got %q/%q", want.Name, want.Description, got.Name, got.Description)
	}
	if len(got.Placemarks) != len(want.Placemarks) {
		t.Fatalf("expected %d placemarks, got %d", len(want.Placemarks), len(got.Placemarks))
	}

	for i, pm := range got.Placemarks {
		w := want.Placemarks[i]
		if pm.Name != w.Name {
			t.Errorf("placemark %d: expected name %q, got %q", i, w.Name, pm.Name)
		}
		if pm.Geometry.GeoJSONType() != w.Geometry.GeoJSONType() {
			t.Errorf("placemark %d: expected %s, got %s", i, w.Geometry.GeoJSONType(), pm.Geometry.GeoJSONType())
		}
		if (pm.Style == nil) != (w.Style == nil) {
			t.Errorf("placemark %d: style mismatch %+v vs %+v", i, w.Style, pm.Style)
			continue
		}
		if pm.Style != nil && *pm.Style != *w.Style {
			t.Errorf("placemark %d: expected style %+v, got %+v", i, *w.Style, *pm.Style)
		}
	}

	if !boundsClose(got.Bounds, want.Bounds) {
		t.Errorf("expected bounds %+v, got %+v", want.Bounds, got.Bounds)
	}
}

func TestWriteKML_RoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleKML), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteKML(&buf, doc); err != nil {
		t.Fatalf("WriteKML failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<kml") || !strings.Contains(out, `<Style id="red">`) {
		t.Errorf("unexpected KML output:\n%s", out)
	}
	if n := strings.Count(out, "<Style "); n != 2 {
		t.Errorf("expected 2 shared styles, got %d", n)
	}

	got, err := Parse(buf.Bytes(), nil)
	if err != nil {
		t.Fatalf("Parse of written KML failed: %v", err)
	}
	checkRoundTrip(t, doc, got)
}

func TestWriteKMZ_RoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleKML), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteKMZ(&buf, doc); err != nil {
		t.Fatalf("WriteKMZ failed: %v", err)
	}

	got, err := Decode("export.kmz", buf.Bytes(), nil)
	if err != nil {
		t.Fatalf("Decode of written KMZ failed: %v", err)
	}
	checkRoundTrip(t, doc, got)
}

func TestWriteKML_MultiGeometry(t *testing.T) {
	doc := &Document{
		Name: "multi",
		Placemarks: []Placemark{{
			ID:   "placemark-0",
			Name: "both",
			Geometry: orb.Collection{
				orb.Point{1, 2},
				orb.LineString{{0, 0}, {3, 3}},
			},
		}},
	}

	var buf bytes.Buffer
	if err := WriteKML(&buf, doc); err != nil {
		t.Fatalf("WriteKML failed: %v", err)
	}

	got, err := Parse(buf.Bytes(), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(got.Placemarks) != 1 {
		t.Fatalf("expected 1 placemark, got %d", len(got.Placemarks))
	}
	c, ok := got.Placemarks[0].Geometry.(orb.Collection)
	if !ok || len(c) != 2 {
		t.Errorf("expected 2-member collection, got %v", got.Placemarks[0].Geometry)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		ok      bool
		r, g, b uint8
	}{
		{"#ff0000", true, 0xff, 0, 0},
		{"#0A0b0C", true, 0x0a, 0x0b, 0x0c},
		{"00ff00", true, 0, 0xff, 0},
		{"#fff", false, 0, 0, 0},
		{"#gggggg", false, 0, 0, 0},
		{"", false, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, ok := parseHexColor(tt.in)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && (c.R != tt.r || c.G != tt.g || c.B != tt.b || c.A != 0xff) {
				t.Errorf("unexpected color %+v", c)
			}
		})
	}
}
