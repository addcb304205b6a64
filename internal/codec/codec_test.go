package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listeditor/internal/domain"
)

const jsonDoc = `[
  {"id": "#c329ef", "value": {"value": 5, "nextNodeId": "#a7b1d8"}, "connectedNodesIds": ["#a7b1d8"]},
  {"id": "#a7b1d8", "value": {"value": "three"}, "connectedNodesIds": ["TAIL"]},
  {"value": {"value": 2, "nextNodeId": ""}, "connectedNodesIds": []}
]`

const yamlDoc = `
- id: "#c329ef"
  value:
    value: 5
    nextNodeId: "#a7b1d8"
  connectedNodesIds: ["#a7b1d8"]
- id: "#a7b1d8"
  value:
    value: three
  connectedNodesIds: [TAIL]
- value:
    value: 2.5
  connectedNodesIds: []
`

func TestJSONCodec_Parse(t *testing.T) {
	records, err := NewJSONCodec().Parse(strings.NewReader(jsonDoc))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "#c329ef", records[0].ID)
	assert.Equal(t, domain.Scalar("5"), records[0].Value.Value)
	assert.Equal(t, "#a7b1d8", records[0].Value.NextNodeID)
	assert.Equal(t, []string{"#a7b1d8"}, records[0].ConnectedNodesIDs)
	assert.Equal(t, domain.Scalar("three"), records[1].Value.Value)
	assert.Empty(t, records[2].ID)
	assert.Equal(t, domain.Scalar("2"), records[2].Value.Value)
}

func TestJSONCodec_ParseRejectsObjectValues(t *testing.T) {
	_, err := NewJSONCodec().Parse(strings.NewReader(`[{"value": {"value": {"x": 1}}}]`))
	assert.Error(t, err)
}

func TestJSONCodec_ExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(nil, &buf))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestYAMLCodec_Parse(t *testing.T) {
	records, err := NewYAMLCodec().Parse(strings.NewReader(yamlDoc))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, domain.Scalar("5"), records[0].Value.Value)
	assert.Equal(t, "#a7b1d8", records[0].Value.NextNodeID)
	assert.Equal(t, []string{domain.TailMarker}, records[1].ConnectedNodesIDs)
	assert.Equal(t, domain.Scalar("three"), records[1].Value.Value)
	assert.Equal(t, domain.Scalar("2.5"), records[2].Value.Value)
}

func TestYAMLCodec_ParseEmpty(t *testing.T) {
	records, err := NewYAMLCodec().Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestYAMLCodec_ParseRejectsMappingValues(t *testing.T) {
	_, err := NewYAMLCodec().Parse(strings.NewReader("- value:\n    value: {x: 1}\n"))
	assert.Error(t, err)
}

func TestCodecs_RoundTrip(t *testing.T) {
	records := []domain.Record{
		{ID: "a", Value: domain.RecordValue{Value: "1", NextNodeID: "b"}, ConnectedNodesIDs: []string{"b"}},
		{ID: "b", Value: domain.RecordValue{Value: "two", NextNodeID: domain.TailMarker}, ConnectedNodesIDs: []string{domain.TailMarker}},
	}

	for _, c := range []Codec{NewJSONCodec(), NewYAMLCodec()} {
		t.Run(c.Format(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, c.Export(records, &buf))

			got, err := c.Parse(&buf)
			require.NoError(t, err)
			assert.Equal(t, records, got)
		})
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		format  string
		wantErr bool
	}{
		{"list.json", "json", false},
		{"seed.YAML", "yaml", false},
		{"/etc/listeditor/seed.yml", "yaml", false},
		{"list.csv", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c, err := ForPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, c.Format())
		})
	}
}

func TestForFormat(t *testing.T) {
	c, err := ForFormat("")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Format())

	c, err = ForFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, "yaml", c.Format())

	_, err = ForFormat("xml")
	assert.Error(t, err)
}
