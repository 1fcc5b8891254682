package kml

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Kind identifies how a RawDocument's bytes are packaged.
type Kind int

const (
	// KindKML is a plain KML text document.
	KindKML Kind = iota
	// KindKMZ is a zip archive containing at least one KML document.
	KindKMZ
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindKMZ:
		return "kmz-archive"
	default:
		return "kml-text"
	}
}

// DetectKind determines the container kind from a file name.
// Only a .kmz extension (any case) marks an archive.
func DetectKind(name string) Kind {
	if strings.EqualFold(filepath.Ext(name), ".kmz") {
		return KindKMZ
	}
	return KindKML
}

// CheckFileName rejects names that are neither .kml nor .kmz.
// Callers run it before handing a file to the decoder.
func CheckFileName(name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".kml", ".kmz":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFile, filepath.Base(name))
	}
}

// RawDocument is the undecoded input: a named byte buffer and its kind.
type RawDocument struct {
	Name string
	Kind Kind
	Data []byte
}

// NewRawDocument wraps data read from the file called name.
func NewRawDocument(name string, data []byte) RawDocument {
	return RawDocument{
		Name: name,
		Kind: DetectKind(name),
		Data: data,
	}
}

// KML returns the KML text of the document. Plain documents are returned
// unchanged; archives yield the first .kml entry listed in the zip directory.
func (d RawDocument) KML(opts *Options) ([]byte, error) {
	if d.Kind != KindKMZ {
		if limit := maxSize(opts); limit > 0 && int64(len(d.Data)) > limit {
			return nil, fmt.Errorf("%w: %s", ErrTooLarge, d.Name)
		}
		return d.Data, nil
	}
	return ExtractKML(bytes.NewReader(d.Data), int64(len(d.Data)), opts)
}

// ExtractKML reads a KMZ archive and returns the text of its first .kml
// entry that is not a directory. When an archive holds several KML files,
// the one listed first in the zip directory wins.
func ExtractKML(ra io.ReaderAt, size int64, opts *Options) ([]byte, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(f.Name), ".kml") {
			continue
		}
		opts.logger().Debug("kml: using archive entry", "entry", f.Name, "entries", len(zr.File))
		return readEntry(f, maxSize(opts))
	}

	return nil, ErrNoKML
}

// readEntry decompresses one archive entry, enforcing limit when positive.
func readEntry(f *zip.File, limit int64) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrArchive, f.Name, err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if limit > 0 {
		r = io.LimitReader(rc, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrArchive, f.Name, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, f.Name)
	}

	return data, nil
}

func maxSize(opts *Options) int64 {
	if opts == nil {
		return 0
	}
	return opts.MaxKMLSize
}
