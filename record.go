package kml

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is what a caller persists for an imported map: the original KML
// text keyed by a generated id. It is decoded again when the map is opened.
type Record struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	KMLContent  string    `json:"kmlContent"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewRecord builds a record for a file that decoded to doc. The name comes
// from the file name when there is one, else from the document. KMZ input
// should pass the extracted KML text.
func NewRecord(fileName string, kmlText []byte, doc *Document) *Record {
	now := time.Now().UTC()
	r := &Record{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Name:       MapName(fileName),
		KMLContent: string(kmlText),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if doc != nil {
		if r.Name == "" {
			r.Name = doc.Name
		}
		r.Description = doc.Description
	}
	return r
}

// Decode parses the stored KML text.
func (r *Record) Decode(opts *Options) (*Document, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	return Parse([]byte(r.KMLContent), opts)
}

// MapName derives a display name from a file name by dropping the
// directory and a .kml or .kmz extension.
func MapName(fileName string) string {
	base := filepath.Base(fileName)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	switch ext := filepath.Ext(base); strings.ToLower(ext) {
	case ".kml", ".kmz":
		return strings.TrimSuffix(base, ext)
	}
	return base
}
