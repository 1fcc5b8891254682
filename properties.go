package kml

import (
	"bytes"
	"encoding/binary"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
)

// Placemark attributes written as FlatGeobuf columns, in column order.
var placemarkColumns = []struct {
	name  string
	title string
	value func(Placemark) string
}{
	{"id", "Placemark ID", func(p Placemark) string { return p.ID }},
	{"name", "Name", func(p Placemark) string { return p.Name }},
	{"description", "Description", func(p Placemark) string { return p.Description }},
	{"style_id", "Style ID", func(p Placemark) string {
		if p.Style == nil {
			return ""
		}
		return p.Style.ID
	}},
	{"line_color", "Line color", func(p Placemark) string {
		if p.Style == nil {
			return ""
		}
		return p.Style.LineColor
	}},
	{"fill_color", "Fill color", func(p Placemark) string {
		if p.Style == nil {
			return ""
		}
		return p.Style.FillColor
	}},
	{"icon_url", "Icon URL", func(p Placemark) string {
		if p.Style == nil {
			return ""
		}
		return p.Style.IconURL
	}},
}

// buildColumns creates the column schema. Every column is a nullable string.
func buildColumns(builder *flatbuffers.Builder) []*writer.Column {
	columns := make([]*writer.Column, 0, len(placemarkColumns))
	for _, pc := range placemarkColumns {
		col := writer.NewColumn(builder)
		col.SetName(pc.name)
		col.SetTitle(pc.title)
		col.SetType(flattypes.ColumnTypeString)
		col.SetNullable(true)
		columns = append(columns, col)
	}
	return columns
}

// encodeProperties encodes the placemark attributes in FlatGeobuf property
// layout: [uint16 column index][uint32 byte length][UTF-8 bytes] per value.
// Empty values are omitted and read back as null.
func encodeProperties(p Placemark) []byte {
	var buf bytes.Buffer
	var scratch [4]byte

	for i, pc := range placemarkColumns {
		v := pc.value(p)
		if v == "" {
			continue
		}

		binary.LittleEndian.PutUint16(scratch[:2], uint16(i))
		buf.Write(scratch[:2])

		binary.LittleEndian.PutUint32(scratch[:], uint32(len(v)))
		buf.Write(scratch[:])

		buf.WriteString(v)
	}

	return buf.Bytes()
}
