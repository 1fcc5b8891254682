package kml

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadFile reads and decodes a .kml or .kmz file.
// The container kind is taken from the file extension.
func ReadFile(path string, opts *Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(filepath.Base(path), data, opts)
}

// DecodeReader reads r to the end and decodes it as the file called name.
func DecodeReader(name string, r io.Reader, opts *Options) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return Decode(name, data, opts)
}

// Decode decodes data read from the file called name. Names ending in
// .kmz are unzipped first; anything else is treated as KML text.
func Decode(name string, data []byte, opts *Options) (*Document, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	text, err := NewRawDocument(name, data).KML(opts)
	if err != nil {
		return nil, err
	}

	return Parse(text, opts)
}

// Parse decodes KML text. It fails with ErrFormat only when the XML itself
// is malformed; bad placemarks, coordinates and colors are skipped or
// replaced by defaults.
func Parse(text []byte, opts *Options) (*Document, error) {
	root, err := parseTree(text)
	if err != nil {
		return nil, err
	}

	log := opts.logger()
	styles := buildStyles(root, log)
	placemarks := extractPlacemarks(root, styles, log)

	doc := &Document{
		Name:       DefaultDocumentName,
		Placemarks: placemarks,
		Bounds:     ComputeBounds(placemarks),
	}

	// Document may be the root or sit under <kml>.
	docEl := root
	if root.name != "Document" {
		docEl = root.child("Document")
	}
	if name := strings.TrimSpace(docEl.child("name").text()); name != "" {
		doc.Name = name
	}
	doc.Description = strings.TrimSpace(docEl.child("description").text())

	log.Debug("kml: decoded document", "name", doc.Name, "placemarks", len(placemarks), "styles", len(styles))
	return doc, nil
}
