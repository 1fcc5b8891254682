package kml

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Minimum number of parsed coordinate pairs per geometry type.
const (
	minPointCoords      = 1
	minLineStringCoords = 2
	minPolygonCoords    = 3
)

type geometryParser struct {
	name  string
	parse func(*element) orb.Geometry
}

// simpleParsers handle the geometries a MultiGeometry may contain, in the
// order MultiGeometry members are collected.
var simpleParsers = []geometryParser{
	{"Point", parsePoint},
	{"LineString", parseLineString},
	{"Polygon", parsePolygon},
}

// extractPlacemarks decodes every <Placemark> in document order, at any
// depth. Placemarks without a usable geometry are dropped, but still take
// up an index so ids stay stable.
func extractPlacemarks(root *element, styles map[string]*Style, log *slog.Logger) []Placemark {
	elements := root.findAll("Placemark")
	placemarks := make([]Placemark, 0, len(elements))

	for i, el := range elements {
		pm, ok := parsePlacemark(el, i, styles)
		if !ok {
			log.Debug("kml: dropped placemark without geometry", "index", i, "name", pm.Name)
			continue
		}
		placemarks = append(placemarks, pm)
	}

	return placemarks
}

func parsePlacemark(el *element, index int, styles map[string]*Style) (Placemark, bool) {
	pm := Placemark{
		ID:          "placemark-" + strconv.Itoa(index),
		Name:        strings.TrimSpace(el.child("name").text()),
		Description: strings.TrimSpace(el.child("description").text()),
	}
	if pm.Name == "" {
		pm.Name = "Placemark " + strconv.Itoa(index+1)
	}

	// First match wins: a Placemark holding both a Point and a LineString
	// decodes as the Point.
	candidates := append(simpleParsers[:len(simpleParsers):len(simpleParsers)],
		geometryParser{"MultiGeometry", parseMultiGeometry})
	for _, gp := range candidates {
		child := el.child(gp.name)
		if child == nil {
			continue
		}
		if g := gp.parse(child); g != nil {
			pm.Geometry = g
			break
		}
	}
	if pm.Geometry == nil {
		return pm, false
	}

	pm.Style = lookupStyle(styles, trimmed(el.child("styleUrl")))
	return pm, true
}

func parsePoint(el *element) orb.Geometry {
	coords := ParseCoordinates(el.find("coordinates").text())
	if len(coords) < minPointCoords {
		return nil
	}
	return coords[0]
}

func parseLineString(el *element) orb.Geometry {
	coords := ParseCoordinates(el.find("coordinates").text())
	if len(coords) < minLineStringCoords {
		return nil
	}
	return orb.LineString(coords)
}

// parsePolygon reads the outer boundary only; inner rings are ignored.
func parsePolygon(el *element) orb.Geometry {
	coords := ParseCoordinates(el.path("outerBoundaryIs", "LinearRing", "coordinates").text())
	if len(coords) < minPolygonCoords {
		return nil
	}
	return orb.Polygon{CloseRing(orb.Ring(coords))}
}

// parseMultiGeometry gathers Points, then LineStrings, then Polygons.
// A single member is returned unwrapped.
func parseMultiGeometry(el *element) orb.Geometry {
	var members orb.Collection
	for _, gp := range simpleParsers {
		for _, child := range el.findAll(gp.name) {
			if g := gp.parse(child); g != nil {
				members = append(members, g)
			}
		}
	}

	switch len(members) {
	case 0:
		return nil
	case 1:
		return members[0]
	default:
		return members
	}
}
