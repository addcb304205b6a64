package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one node of the bulk-load document the editor imports and
// exports. Adjacency comes from ConnectedNodesIDs; Value.NextNodeID is
// informational only.
type Record struct {
	ID                string      `json:"id,omitempty"`
	Value             RecordValue `json:"value"`
	ConnectedNodesIDs []string    `json:"connectedNodesIds"`
}

// RecordValue is the payload of a Record
type RecordValue struct {
	Value      Scalar `json:"value"`
	NextNodeID string `json:"nextNodeId,omitempty"`
}

// Scalar holds a value that documents may spell as a string or a number
type Scalar string

// UnmarshalJSON accepts strings, numbers, booleans and null
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = Scalar(num.String())
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("value must be a string or number, got %s", data)
	}
	*s = Scalar(fmt.Sprint(b))
	return nil
}

// String returns the scalar's text
func (s Scalar) String() string {
	return string(s)
}

// RecordFromNode converts a list node into its document form
func RecordFromNode(n ListNode) Record {
	return Record{
		ID: n.ID,
		Value: RecordValue{
			Value:      Scalar(n.Value.Value),
			NextNodeID: n.Value.NextNodeID,
		},
		ConnectedNodesIDs: append([]string{}, n.ConnectedNodesIDs...),
	}
}
