package kml

import (
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb"
)

// fgbGeometryType maps a placemark geometry to its FlatGeobuf type.
func fgbGeometryType(geom orb.Geometry) flattypes.GeometryType {
	switch geom.(type) {
	case orb.Point:
		return flattypes.GeometryTypePoint
	case orb.LineString:
		return flattypes.GeometryTypeLineString
	case orb.Polygon:
		return flattypes.GeometryTypePolygon
	case orb.Collection:
		return flattypes.GeometryTypeGeometryCollection
	default:
		return flattypes.GeometryTypeUnknown
	}
}

// layerGeometryType returns the shared type of all placemarks, or Unknown
// when they differ.
func layerGeometryType(placemarks []Placemark) flattypes.GeometryType {
	if len(placemarks) == 0 {
		return flattypes.GeometryTypeUnknown
	}

	t := fgbGeometryType(placemarks[0].Geometry)
	for _, pm := range placemarks[1:] {
		if fgbGeometryType(pm.Geometry) != t {
			return flattypes.GeometryTypeUnknown
		}
	}
	return t
}

// geometryToFGB converts a placemark geometry to a FlatGeobuf geometry.
// It returns nil for types a Placemark cannot hold.
func geometryToFGB(geom orb.Geometry, builder *flatbuffers.Builder) *writer.Geometry {
	g := writer.NewGeometry(builder)

	switch v := geom.(type) {
	case orb.Point:
		g.SetType(flattypes.GeometryTypePoint)
		g.SetXY([]float64{v[0], v[1]})

	case orb.LineString:
		g.SetType(flattypes.GeometryTypeLineString)
		g.SetXY(pointsToXY(v))

	case orb.Polygon:
		g.SetType(flattypes.GeometryTypePolygon)
		xy, ends := polygonToXYEnds(v)
		g.SetXY(xy)
		g.SetEnds(ends)

	case orb.Collection:
		g.SetType(flattypes.GeometryTypeGeometryCollection)
		parts := make([]writer.Geometry, 0, len(v))
		for _, child := range v {
			if part := geometryToFGB(child, builder); part != nil {
				parts = append(parts, *part)
			}
		}
		g.SetParts(parts)

	default:
		return nil
	}

	return g
}

func pointsToXY(points []orb.Point) []float64 {
	xy := make([]float64, 0, len(points)*2)
	for _, p := range points {
		xy = append(xy, p[0], p[1])
	}
	return xy
}

func polygonToXYEnds(poly orb.Polygon) ([]float64, []uint32) {
	var xy []float64
	ends := make([]uint32, 0, len(poly))

	for _, ring := range poly {
		xy = append(xy, pointsToXY(ring)...)
		ends = append(ends, uint32(len(xy)/2))
	}

	return xy, ends
}
