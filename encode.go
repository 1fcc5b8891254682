package kml

import (
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	gokml "github.com/twpayne/go-kml"
	"github.com/twpayne/go-kmz"
)

// WriteKML writes the document as indented KML. Styles referenced by
// placemarks are emitted once as shared styles.
func WriteKML(w io.Writer, doc *Document) error {
	return gokml.KML(doc.kmlElement()).WriteIndent(w, "", "  ")
}

// WriteKMZ writes the document as a KMZ archive holding a single doc.kml.
func WriteKMZ(w io.Writer, doc *Document) error {
	return kmz.NewKMZ(doc.kmlElement()).WriteIndent(w, "", "  ")
}

func (d *Document) kmlElement() *gokml.CompoundElement {
	el := gokml.Document(gokml.Name(d.Name))
	if d.Description != "" {
		el.Add(gokml.Description(d.Description))
	}

	seen := make(map[string]bool)
	for _, pm := range d.Placemarks {
		if pm.Style == nil || pm.Style.ID == "" || seen[pm.Style.ID] {
			continue
		}
		seen[pm.Style.ID] = true
		el.Add(styleElement(pm.Style))
	}

	for _, pm := range d.Placemarks {
		if p := placemarkElement(pm); p != nil {
			el.Add(p)
		}
	}

	return el
}

func styleElement(s *Style) gokml.Element {
	var children []gokml.Element
	if s.IconURL != "" {
		children = append(children, gokml.IconStyle(gokml.Icon(gokml.Href(s.IconURL))))
	}
	if c, ok := parseHexColor(s.LineColor); ok {
		children = append(children, gokml.LineStyle(gokml.Color(c)))
	}
	if c, ok := parseHexColor(s.FillColor); ok {
		children = append(children, gokml.PolyStyle(gokml.Color(c)))
	}
	return gokml.SharedStyle(s.ID, children...)
}

func placemarkElement(pm Placemark) gokml.Element {
	geom := geometryElement(pm.Geometry)
	if geom == nil {
		return nil
	}

	el := gokml.Placemark(gokml.Name(pm.Name))
	if pm.Description != "" {
		el.Add(gokml.Description(pm.Description))
	}
	if pm.Style != nil && pm.Style.ID != "" {
		el.Add(gokml.StyleURL("#" + pm.Style.ID))
	}
	return el.Add(geom)
}

func geometryElement(g orb.Geometry) gokml.Element {
	switch v := g.(type) {
	case orb.Point:
		return gokml.Point(gokml.Coordinates(coordinate(v)))
	case orb.LineString:
		return gokml.LineString(gokml.Coordinates(coordinates(v)...))
	case orb.Polygon:
		if len(v) == 0 {
			return nil
		}
		return gokml.Polygon(
			gokml.OuterBoundaryIs(
				gokml.LinearRing(gokml.Coordinates(coordinates(v[0])...)),
			),
		)
	case orb.Collection:
		el := gokml.MultiGeometry()
		for _, child := range v {
			if c := geometryElement(child); c != nil {
				el.Add(c)
			}
		}
		return el
	default:
		return nil
	}
}

func coordinate(p orb.Point) gokml.Coordinate {
	return gokml.Coordinate{Lon: p.Lon(), Lat: p.Lat()}
}

func coordinates(points []orb.Point) []gokml.Coordinate {
	cs := make([]gokml.Coordinate, len(points))
	for i, p := range points {
		cs[i] = coordinate(p)
	}
	return cs
}

// parseHexColor parses #rrggbb into an opaque color.
func parseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
