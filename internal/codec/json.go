package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"listeditor/internal/domain"
)

// JSONCodec handles the editor's JSON document
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse reads a JSON array of records
func (c *JSONCodec) Parse(r io.Reader) ([]domain.Record, error) {
	var records []domain.Record
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return records, nil
}

// Export writes records as an indented JSON array
func (c *JSONCodec) Export(records []domain.Record, w io.Writer) error {
	if records == nil {
		records = []domain.Record{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
