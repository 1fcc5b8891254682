// Package kml decodes KML and KMZ files into orb geometries.
// It unwraps KMZ archives, builds the style table, extracts placemark
// geometries and computes the bounding box of everything it accepted.
// Decoded documents can be exported as GeoJSON, FlatGeobuf, KML or KMZ.
package kml

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"
)

// Common errors returned by this package.
var (
	ErrArchive         = errors.New("kml: invalid or corrupted KMZ archive")
	ErrFormat          = errors.New("kml: invalid KML document")
	ErrNoKML           = fmt.Errorf("%w: no KML file found in KMZ archive", ErrFormat)
	ErrTooLarge        = errors.New("kml: document exceeds size limit")
	ErrUnsupportedFile = errors.New("kml: only .kml and .kmz files are supported")
	ErrEmptyDocument   = errors.New("kml: document has no placemarks")
	ErrUnsupportedType = errors.New("kml: unsupported geometry type")
)

const (
	// DefaultDocumentName is used when the KML Document has no <name>.
	DefaultDocumentName = "Untitled Map"

	// DefaultColor replaces KML colors that are not 8 hex digits long.
	DefaultColor = "#3b82f6"
)

// Style holds the visual attributes a placemark can reference via styleUrl.
type Style struct {
	ID        string `json:"id"`
	LineColor string `json:"lineColor,omitempty"` // #rrggbb
	FillColor string `json:"fillColor,omitempty"` // #rrggbb
	IconURL   string `json:"iconUrl,omitempty"`
}

// Placemark is one decoded <Placemark> element.
// Geometry is an orb.Point, orb.LineString, orb.Polygon (outer ring only)
// or an orb.Collection of those; it is never nil.
type Placemark struct {
	ID          string
	Name        string
	Description string
	Geometry    orb.Geometry
	Style       *Style
}

// Document is the result of decoding a KML file.
type Document struct {
	Name        string
	Description string
	Placemarks  []Placemark
	Bounds      *BoundingBox // nil when no placemark contributed a coordinate
}

// BoundingBox is a north/south/east/west rectangle in decimal degrees.
type BoundingBox struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Bound returns the box as an orb.Bound.
func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.West, b.South},
		Max: orb.Point{b.East, b.North},
	}
}

// Options configures decoding.
type Options struct {
	MaxKMLSize int64        // Max decompressed size of the KML text in bytes, 0 for no limit
	Logger     *slog.Logger // Debug logging of dropped elements (default: slog.Default())
}

// DefaultOptions returns default options for decoding.
func DefaultOptions() *Options {
	return &Options{
		MaxKMLSize: 256 << 20,
	}
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
