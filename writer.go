package kml

import (
	"io"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
)

// CRS represents a coordinate reference system.
type CRS struct {
	Code        int    // EPSG code (e.g., 4326 for WGS84)
	Name        string // CRS name
	Description string // CRS description
}

// WGS84 returns the WGS84 CRS (EPSG:4326) all KML coordinates use.
func WGS84() *CRS {
	return &CRS{
		Code: 4326,
		Name: "WGS 84",
	}
}

// WriteOptions configures FlatGeobuf export.
type WriteOptions struct {
	Name         string // Layer name (default: document name)
	Description  string // Layer description (default: document description)
	IncludeIndex bool   // Include spatial index (default: true)
	CRS          *CRS   // Coordinate reference system (default: WGS84)
}

// DefaultWriteOptions returns default options for FlatGeobuf export.
func DefaultWriteOptions() *WriteOptions {
	return &WriteOptions{
		IncludeIndex: true,
		CRS:          WGS84(),
	}
}

// WriteFlatGeobuf writes the document's placemarks as a FlatGeobuf layer.
// Placemark id, name, description and style attributes become string columns.
func WriteFlatGeobuf(w io.Writer, doc *Document, opts *WriteOptions) error {
	if opts == nil {
		opts = DefaultWriteOptions()
	}
	if doc == nil || len(doc.Placemarks) == 0 {
		return ErrEmptyDocument
	}
	for _, pm := range doc.Placemarks {
		if fgbGeometryType(pm.Geometry) == flattypes.GeometryTypeUnknown {
			return ErrUnsupportedType
		}
	}

	builder := flatbuffers.NewBuilder(4096)

	header := writer.NewHeader(builder)
	header.SetGeometryType(layerGeometryType(doc.Placemarks))

	name, description := opts.Name, opts.Description
	if name == "" {
		name = doc.Name
	}
	if description == "" {
		description = doc.Description
	}
	if name != "" {
		header.SetName(name)
	}
	if description != "" {
		header.SetDescription(description)
	}

	header.SetColumns(buildColumns(builder))

	if opts.CRS != nil {
		crs := writer.NewCrs(builder)
		crs.SetOrg("EPSG")
		if opts.CRS.Code > 0 {
			crs.SetCode(int32(opts.CRS.Code))
		}
		if opts.CRS.Name != "" {
			crs.SetName(opts.CRS.Name)
		}
		if opts.CRS.Description != "" {
			crs.SetDescription(opts.CRS.Description)
		}
		header.SetCrs(crs)
	}

	gen := &placemarkGenerator{placemarks: doc.Placemarks}
	_, err := writer.NewWriter(header, opts.IncludeIndex, gen, nil).Write(w)
	return err
}

// placemarkGenerator feeds placemarks to the FlatGeobuf writer.
type placemarkGenerator struct {
	placemarks []Placemark
	index      int
}

func (g *placemarkGenerator) Generate() *writer.Feature {
	if g.index >= len(g.placemarks) {
		return nil
	}

	pm := g.placemarks[g.index]
	g.index++

	builder := flatbuffers.NewBuilder(1024)
	feature := writer.NewFeature(builder)
	feature.SetGeometry(geometryToFGB(pm.Geometry, builder))
	if props := encodeProperties(pm); len(props) > 0 {
		feature.SetProperties(props)
	}

	return feature
}
