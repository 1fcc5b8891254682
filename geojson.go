package kml

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb/geojson"
)

// ToFeatureCollection converts the document to GeoJSON. Each placemark
// becomes a feature with its id, and name, description and style colors
// as properties. The collection bbox is set from the document bounds.
func (d *Document) ToFeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if d.Bounds != nil {
		fc.BBox = geojson.NewBBox(d.Bounds.Bound())
	}

	for _, pm := range d.Placemarks {
		fc.Append(pm.Feature())
	}

	return fc
}

// Feature returns the placemark as a GeoJSON feature.
func (p Placemark) Feature() *geojson.Feature {
	f := geojson.NewFeature(p.Geometry)
	f.ID = p.ID
	f.Properties["name"] = p.Name
	if p.Description != "" {
		f.Properties["description"] = p.Description
	}
	if s := p.Style; s != nil {
		f.Properties["styleId"] = s.ID
		if s.LineColor != "" {
			f.Properties["stroke"] = s.LineColor
		}
		if s.FillColor != "" {
			f.Properties["fill"] = s.FillColor
		}
		if s.IconURL != "" {
			f.Properties["icon"] = s.IconURL
		}
	}
	return f
}

// placemarkJSON is the serialized form of a Placemark; the geometry is
// GeoJSON so stored documents can be read back without this package.
type placemarkJSON struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Geometry    *geojson.Geometry `json:"geometry"`
	Style       *Style            `json:"style,omitempty"`
}

// MarshalJSON encodes the placemark with a GeoJSON geometry.
func (p Placemark) MarshalJSON() ([]byte, error) {
	if p.Geometry == nil {
		return nil, fmt.Errorf("kml: placemark %s: nil geometry", p.ID)
	}
	return json.Marshal(placemarkJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Geometry:    geojson.NewGeometry(p.Geometry),
		Style:       p.Style,
	})
}

// UnmarshalJSON decodes a placemark written by MarshalJSON.
func (p *Placemark) UnmarshalJSON(data []byte) error {
	var v placemarkJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Geometry == nil || v.Geometry.Geometry() == nil {
		return fmt.Errorf("kml: placemark %s: missing geometry", v.ID)
	}

	*p = Placemark{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Geometry:    v.Geometry.Geometry(),
		Style:       v.Style,
	}
	return nil
}

type documentJSON struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Placemarks  []Placemark  `json:"placemarks"`
	Bounds      *BoundingBox `json:"bounds,omitempty"`
}

// MarshalJSON encodes the document. Placemarks is always an array.
func (d Document) MarshalJSON() ([]byte, error) {
	v := documentJSON(d)
	if v.Placemarks == nil {
		v.Placemarks = []Placemark{}
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes a document written by MarshalJSON.
func (d *Document) UnmarshalJSON(data []byte) error {
	var v documentJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = Document(v)
	return nil
}
