package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"listeditor/internal/codec"
	"listeditor/internal/domain"
	"listeditor/internal/service"
)

// ListLoader is the part of service.ListService a Seeder needs
type ListLoader interface {
	Open(ctx context.Context, id, name string) (*service.Snapshot, error)
	Load(ctx context.Context, id string, records []domain.Record) (*service.Snapshot, error)
}

// Seeder loads a records file into one list
type Seeder struct {
	svc    ListLoader
	path   string
	listID string
	name   string
	logger *slog.Logger
}

// NewSeeder creates a seeder that fills the list listID (created as name if
// absent) from the file at path. The format follows the file extension.
func NewSeeder(svc ListLoader, path, listID, name string, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{svc: svc, path: path, listID: listID, name: name, logger: logger}
}

// Load reads the file and replaces the list contents with it
func (s *Seeder) Load(ctx context.Context) (*service.Snapshot, error) {
	c, err := codec.ForPath(s.path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	records, err := c.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	if _, err := s.svc.Open(ctx, s.listID, s.name); err != nil {
		return nil, err
	}
	snap, err := s.svc.Load(ctx, s.listID, records)
	if err != nil {
		return nil, err
	}
	s.logger.Info("seed loaded", "path", s.path, "list", s.listID, "length", snap.Length)
	return snap, nil
}

// Reload is a Watcher callback. Failures are logged and the list keeps its
// previous contents.
func (s *Seeder) Reload(ctx context.Context) {
	if _, err := s.Load(ctx); err != nil {
		s.logger.Error("seed reload failed", "path", s.path, "error", err)
	}
}
