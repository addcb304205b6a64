package linkedlist

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listeditor/internal/domain"
)

const parsedDocument = `[
  {"id": "#c329ef", "value": {"value": 5, "nextNodeId": "#a7b1d8"}, "connectedNodesIds": ["#a7b1d8"]},
  {"id": "#a7b1d8", "value": {"value": 3, "nextNodeId": "#8f6e72"}, "connectedNodesIds": ["#8f6e72"]},
  {"id": "#8f6e72", "value": {"value": 7, "nextNodeId": "#e4962a"}, "connectedNodesIds": ["#e4962a"]},
  {"id": "#e4962a", "value": {"value": 1, "nextNodeId": "#d7bf5c"}, "connectedNodesIds": ["#d7bf5c"]},
  {"id": "#d7bf5c", "value": {"value": 9, "nextNodeId": "#f3a9e8"}, "connectedNodesIds": ["#f3a9e8"]},
  {"id": "#f3a9e8", "value": {"value": 4}, "connectedNodesIds": ["#b2d84f"]},
  {"value": {"value": 2, "nextNodeId": ""}, "connectedNodesIds": []}
]`

func parseRecords(t *testing.T, doc string) []domain.Record {
	t.Helper()
	var records []domain.Record
	require.NoError(t, json.Unmarshal([]byte(doc), &records))
	return records
}

func record(id, value string, connected ...string) domain.Record {
	return domain.Record{
		ID:                id,
		Value:             domain.RecordValue{Value: domain.Scalar(value)},
		ConnectedNodesIDs: connected,
	}
}

func TestSetNodesByJSON_ParsedDocument(t *testing.T) {
	l := newTestList(t, "old")

	require.NoError(t, l.SetNodesByJSON(parseRecords(t, parsedDocument)))

	require.Len(t, l.Nodes(), 8)
	assert.Equal(t, []string{"5", "3", "7", "1", "9", "4", "2"}, values(l))
	assert.Equal(t, "#c329ef", l.Head().Next())
	// the dangling reference falls back to the next record
	assert.Equal(t, l.Nodes()[7].ID, l.Nodes()[6].Next())
	assert.NotEmpty(t, l.Nodes()[7].ID)
	assertInvariants(t, l)
}

func TestSetNodesByJSON_FollowsAdjacencyNotSliceOrder(t *testing.T) {
	l := newTestList(t)
	records := []domain.Record{
		record("c", "third", domain.TailMarker),
		record("a", "first", "b"),
		record("b", "second", "c"),
	}

	require.NoError(t, l.SetNodesByJSON(records))

	assert.Equal(t, []string{"first", "second", "third"}, values(l))
	assertInvariants(t, l)
}

func TestSetNodesByJSON_FallsBackToSliceOrder(t *testing.T) {
	l := newTestList(t)
	records := []domain.Record{
		record("", "x"),
		record("", "y"),
		record("", "z"),
	}

	require.NoError(t, l.SetNodesByJSON(records))

	assert.Equal(t, []string{"x", "y", "z"}, values(l))
	assertInvariants(t, l)
}

func TestSetNodesByJSON_BreaksCycles(t *testing.T) {
	l := newTestList(t)
	records := []domain.Record{
		record("a", "1", "b"),
		record("b", "2", "c"),
		record("c", "3", "a"),
	}

	require.NoError(t, l.SetNodesByJSON(records))

	assert.Equal(t, []string{"1", "2", "3"}, values(l))
	assertInvariants(t, l)
}

func TestSetNodesByJSON_IgnoresSelfReference(t *testing.T) {
	l := newTestList(t)
	records := []domain.Record{
		record("a", "1", "a"),
		record("b", "2"),
	}

	require.NoError(t, l.SetNodesByJSON(records))

	assert.Equal(t, []string{"1", "2"}, values(l))
	assertInvariants(t, l)
}

func TestSetNodesByJSON_ReplacesDuplicateAndReservedIDs(t *testing.T) {
	l := newTestList(t)
	records := []domain.Record{
		record("a", "1"),
		record("a", "2"),
		record(domain.TailMarker, "3"),
		record(domain.HeadValue, "4"),
	}

	require.NoError(t, l.SetNodesByJSON(records))

	require.Equal(t, 4, l.Len())
	assert.Equal(t, "a", l.Nodes()[1].ID)
	assert.NotEqual(t, "a", l.Nodes()[2].ID)
	assert.NotEqual(t, domain.TailMarker, l.Nodes()[3].ID)
	assert.NotEqual(t, domain.HeadValue, l.Nodes()[4].ID)
	assert.Equal(t, "4", l.Nodes()[4].Value.Value)
	assertInvariants(t, l)
}

func TestSetNodesByJSON_RejectsHeadValue(t *testing.T) {
	l := newTestList(t, "keep")
	before := append([]domain.ListNode{}, l.Nodes()...)

	err := l.SetNodesByJSON([]domain.Record{record("a", "1"), record("b", domain.HeadValue)})

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "value", validation.First().Parameter)
	assert.Equal(t, before, l.Nodes())
}

func TestSetNodesByJSON_RejectsEmptyInput(t *testing.T) {
	l := newTestList(t, "keep")

	err := l.SetNodesByJSON(nil)

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "records", validation.First().Parameter)
	assert.Equal(t, []string{"keep"}, values(l))
}

func TestSetNodesByJSON_RoundTrip(t *testing.T) {
	source := newTestList(t, "a", "b", "c", "d")
	records := source.Records()
	require.Len(t, records, 4)

	target := newTestList(t)
	require.NoError(t, target.SetNodesByJSON(records))

	require.Len(t, target.Nodes(), len(records)+1)
	assert.Equal(t, values(source), values(target))
	for i, r := range records {
		assert.Equal(t, r.ID, target.Nodes()[i+1].ID)
	}
	assertInvariants(t, target)
}

func TestSetNodesByJSON_LaysOutNodes(t *testing.T) {
	l := newTestList(t)

	require.NoError(t, l.SetNodesByJSON([]domain.Record{record("a", "1"), record("b", "2")}))

	assert.Equal(t, domain.NewPosition(40, 40), l.Nodes()[0].Position)
	assert.Equal(t, domain.NewPosition(440, 40), l.Nodes()[2].Position)
}

func TestRecords(t *testing.T) {
	l := newTestList(t, "1", "2")

	records := l.Records()

	require.Len(t, records, 2)
	assert.Equal(t, domain.Scalar("1"), records[0].Value.Value)
	assert.Equal(t, records[1].ID, records[0].Value.NextNodeID)
	assert.Equal(t, []string{domain.TailMarker}, records[1].ConnectedNodesIDs)
}

func TestSetNodesByJSON_KeepsHeadID(t *testing.T) {
	l := newTestList(t, "old")
	headID := l.Head().ID

	require.NoError(t, l.SetNodesByJSON([]domain.Record{record("a", "1")}))
	assert.Equal(t, headID, l.Head().ID)

	require.NoError(t, l.SetNodesByJSON([]domain.Record{record(headID, "1")}))
	assert.NotEqual(t, headID, l.Head().ID, "a record that claims the HEAD id keeps it")
	assert.Equal(t, headID, l.Nodes()[1].ID)
	assertInvariants(t, l)
}

func TestSetNodesByJSON_GeneratedIDsAvoidExplicitOnes(t *testing.T) {
	l := newTestList(t)
	// n1 is the HEAD; the next generated id would be n2
	records := []domain.Record{
		record("", "first"),
		record("n2", "second"),
	}

	require.NoError(t, l.SetNodesByJSON(records))

	assert.Equal(t, "n2", l.Nodes()[2].ID)
	assert.NotEqual(t, "n2", l.Nodes()[1].ID)
	assertInvariants(t, l)
}
