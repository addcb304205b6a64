package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"listeditor/internal/domain"
)

// Importer interface for reading bulk-load records from various formats
type Importer interface {
	Parse(r io.Reader) ([]domain.Record, error)
	Format() string
}

// Exporter interface for writing bulk-load records to various formats
type Exporter interface {
	Export(records []domain.Record, w io.Writer) error
	Format() string
}

// Codec reads and writes one format
type Codec interface {
	Importer
	Exporter
}

// ForPath picks a codec from a file extension
func ForPath(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONCodec(), nil
	case ".yaml", ".yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported document format: %q", filepath.Ext(path))
	}
}

// ForFormat picks a codec by its Format identifier
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported document format: %q", format)
	}
}
