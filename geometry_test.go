package kml

import (
	"testing"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb"
)

func TestFGBGeometryType(t *testing.T) {
	tests := []struct {
		name     string
		geom     orb.Geometry
		expected flattypes.GeometryType
	}{
		{"Point", orb.Point{1, 2}, flattypes.GeometryTypePoint},
		{"LineString", orb.LineString{{0, 0}, {1, 1}}, flattypes.GeometryTypeLineString},
		{"Polygon", orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}, flattypes.GeometryTypePolygon},
		{"Collection", orb.Collection{orb.Point{1, 2}}, flattypes.GeometryTypeGeometryCollection},
		{"MultiPoint", orb.MultiPoint{{1, 2}}, flattypes.GeometryTypeUnknown},
		{"nil", nil, flattypes.GeometryTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fgbGeometryType(tt.geom); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLayerGeometryType(t *testing.T) {
	points := []Placemark{{Geometry: orb.Point{1, 2}}, {Geometry: orb.Point{3, 4}}}
	if got := layerGeometryType(points); got != flattypes.GeometryTypePoint {
		t.Errorf("expected Point, got %v", got)
	}

	mixed := append(points, Placemark{Geometry: orb.LineString{{0, 0}, {1, 1}}})
	if got := layerGeometryType(mixed); got != flattypes.GeometryTypeUnknown {
		t.Errorf("expected Unknown for mixed layer, got %v", got)
	}

	if got := layerGeometryType(nil); got != flattypes.GeometryTypeUnknown {
		t.Errorf("expected Unknown for empty layer, got %v", got)
	}
}

func TestGeometryToFGB(t *testing.T) {
	geoms := []orb.Geometry{
		orb.Point{1.5, 2.5},
		orb.LineString{{0, 0}, {1, 1}, {2, 2}},
		orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}},
		orb.Collection{orb.Point{1, 2}, orb.LineString{{0, 0}, {1, 1}}},
	}

	for _, g := range geoms {
		t.Run(g.GeoJSONType(), func(t *testing.T) {
			if geometryToFGB(g, flatbuffers.NewBuilder(256)) == nil {
				t.Fatal("expected non-nil geometry")
			}
		})
	}

	if geometryToFGB(orb.MultiLineString{}, flatbuffers.NewBuilder(256)) != nil {
		t.Error("expected nil for unsupported geometry")
	}
}

func TestPolygonToXYEnds(t *testing.T) {
	poly := orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 0}},
		{{2, 2}, {3, 2}, {3, 3}, {2, 2}},
	}

	xy, ends := polygonToXYEnds(poly)
	if len(xy) != 16 {
		t.Errorf("expected 16 ordinates, got %d", len(xy))
	}
	if len(ends) != 2 || ends[0] != 4 || ends[1] != 8 {
		t.Errorf("expected ends [4 8], got %v", ends)
	}
}
