package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listeditor/internal/domain"
	"listeditor/internal/layout"
	"listeditor/internal/logical"
	"listeditor/internal/repository/sqlite"
	"listeditor/internal/service"
)

func newService(t *testing.T) *service.ListService {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	factory := func() (logical.PositionManager, error) {
		return layout.DefaultListManager(), nil
	}
	return service.NewListService(repo, service.NewEventBus(), factory)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestSeeder_Load(t *testing.T) {
	svc := newService(t)
	path := filepath.Join(t.TempDir(), "seed.json")
	writeFile(t, path, `[{"id":"a","value":{"value":"1"},"connectedNodesIds":["b"]},{"id":"b","value":{"value":"2"},"connectedNodesIds":[]}]`)

	seeder := NewSeeder(svc, path, "default", "Default", nil)
	snap, err := seeder.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "default", snap.ID)
	assert.Equal(t, "Default", snap.Name)
	assert.Equal(t, 2, snap.Length)
	assert.Equal(t, "1", snap.Nodes[1].Value.Value)
	assert.Equal(t, "2", snap.Nodes[2].Value.Value)
}

func TestSeeder_LoadYAML(t *testing.T) {
	svc := newService(t)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeFile(t, path, "- id: x\n  value:\n    value: only\n")

	snap, err := NewSeeder(svc, path, "default", "Default", nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Length)
	assert.Equal(t, "only", snap.Nodes[1].Value.Value)
}

func TestSeeder_Errors(t *testing.T) {
	svc := newService(t)
	dir := t.TempDir()

	_, err := NewSeeder(svc, filepath.Join(dir, "seed.txt"), "default", "Default", nil).Load(context.Background())
	assert.Error(t, err, "unsupported extension")

	_, err = NewSeeder(svc, filepath.Join(dir, "missing.json"), "default", "Default", nil).Load(context.Background())
	assert.Error(t, err, "missing file")

	empty := filepath.Join(dir, "empty.json")
	writeFile(t, empty, `[]`)
	_, err = NewSeeder(svc, empty, "default", "Default", nil).Load(context.Background())
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSeeder_ReloadKeepsListOnFailure(t *testing.T) {
	svc := newService(t)
	path := filepath.Join(t.TempDir(), "seed.json")
	writeFile(t, path, `[{"id":"a","value":{"value":"1"}}]`)

	seeder := NewSeeder(svc, path, "default", "Default", nil)
	_, err := seeder.Load(context.Background())
	require.NoError(t, err)

	writeFile(t, path, `not json`)
	seeder.Reload(context.Background())

	snap, err := svc.Get(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Length)
}

func TestWatcher_CallsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	writeFile(t, path, `[]`)

	var calls atomic.Int32
	w := New(path, func(context.Context) { calls.Add(1) }, nil).WithDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// Give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	writeFile(t, filepath.Join(dir, "other.json"), `[]`)
	writeFile(t, path, `[1]`)
	writeFile(t, path, `[1,2]`)

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "nope", "seed.json"), func(context.Context) {}, nil)
	assert.Error(t, w.Watch(context.Background()))
}
