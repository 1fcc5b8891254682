package kml

import (
	"math"

	"github.com/paulmach/orb"
)

// ComputeBounds folds every coordinate of every placemark into a single
// bounding box. It returns nil when there is nothing to fold.
func ComputeBounds(placemarks []Placemark) *BoundingBox {
	// Seeds any real coordinate overwrites.
	b := BoundingBox{North: -90, South: 90, East: -180, West: 180}
	seen := false

	for _, pm := range placemarks {
		eachPoint(pm.Geometry, func(p orb.Point) {
			seen = true
			b.North = math.Max(b.North, p.Lat())
			b.South = math.Min(b.South, p.Lat())
			b.East = math.Max(b.East, p.Lon())
			b.West = math.Min(b.West, p.Lon())
		})
	}

	if !seen {
		return nil
	}
	return &b
}

// eachPoint calls fn for every vertex of the geometries a Placemark can hold.
func eachPoint(g orb.Geometry, fn func(orb.Point)) {
	switch v := g.(type) {
	case orb.Point:
		fn(v)
	case orb.LineString:
		for _, p := range v {
			fn(p)
		}
	case orb.Ring:
		for _, p := range v {
			fn(p)
		}
	case orb.Polygon:
		for _, r := range v {
			eachPoint(r, fn)
		}
	case orb.Collection:
		for _, child := range v {
			eachPoint(child, fn)
		}
	}
}
