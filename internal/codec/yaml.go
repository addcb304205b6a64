package codec

import (
	"fmt"
	"io"

	"listeditor/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles the records document spelled in YAML
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

type yamlRecord struct {
	ID                string    `yaml:"id,omitempty"`
	Value             yamlValue `yaml:"value"`
	ConnectedNodesIDs []string  `yaml:"connectedNodesIds"`
}

type yamlValue struct {
	Value      any    `yaml:"value"`
	NextNodeID string `yaml:"nextNodeId,omitempty"`
}

// Parse reads a YAML sequence of records
func (c *YAMLCodec) Parse(r io.Reader) ([]domain.Record, error) {
	var yr []yamlRecord
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yr); err != nil {
		if err == io.EOF {
			return []domain.Record{}, nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	records := make([]domain.Record, 0, len(yr))
	for i, y := range yr {
		value, err := scalar(y.Value.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: record %d: %w", i, err)
		}
		records = append(records, domain.Record{
			ID: y.ID,
			Value: domain.RecordValue{
				Value:      value,
				NextNodeID: y.Value.NextNodeID,
			},
			ConnectedNodesIDs: y.ConnectedNodesIDs,
		})
	}

	return records, nil
}

// Export writes records as a YAML sequence
func (c *YAMLCodec) Export(records []domain.Record, w io.Writer) error {
	yr := make([]yamlRecord, 0, len(records))
	for _, r := range records {
		connected := r.ConnectedNodesIDs
		if connected == nil {
			connected = []string{}
		}
		yr = append(yr, yamlRecord{
			ID: r.ID,
			Value: yamlValue{
				Value:      r.Value.Value.String(),
				NextNodeID: r.Value.NextNodeID,
			},
			ConnectedNodesIDs: connected,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yr); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// scalar accepts the same value kinds as domain.Scalar does in JSON
func scalar(v any) (domain.Scalar, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return domain.Scalar(v), nil
	case int, int64, uint64, float64, bool:
		return domain.Scalar(fmt.Sprint(v)), nil
	default:
		return "", fmt.Errorf("value must be a string or number, got %T", v)
	}
}
