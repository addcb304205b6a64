package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listeditor/internal/domain"
)

func TestNewGridManager_RejectsNonPositiveColumns(t *testing.T) {
	_, err := NewGridManager(0, 0)
	assert.Error(t, err)
}

func TestGridManager_UpdatePositions(t *testing.T) {
	manager, err := NewGridManager(20, 2)
	require.NoError(t, err)

	positions, err := manager.UpdatePositions(makePlacements(5))
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.Position{
		"id1": {X: 20, Y: 20},
		"id2": {X: 220, Y: 20},
		"id3": {X: 20, Y: 220},
		"id4": {X: 220, Y: 220},
		"id5": {X: 20, Y: 420},
	}, positions)
}

func TestGridManager_UpdateTargetPosition(t *testing.T) {
	manager, err := NewGridManager(0, 3)
	require.NoError(t, err)

	positions, err := manager.UpdateTargetPosition(makePlacements(5), "id4")
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.Position{
		"id4": {X: 0, Y: 200},
		"id5": {X: 200, Y: 200},
	}, positions)

	_, err = manager.UpdateTargetPosition(makePlacements(5), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewStrategy(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"", Options{Padding: 60}, false},
		{StrategyList, Options{}, false},
		{StrategyGrid, Options{Columns: 4}, false},
		{StrategyGrid, Options{}, true},
		{"force", Options{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := New(tt.name, tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, strategy)
		})
	}
}
