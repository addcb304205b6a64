package repository

import (
	"context"

	"listeditor/internal/domain"
)

// Repository defines the interface for persisted list documents
type Repository interface {
	// Read operations
	GetDocument(ctx context.Context, id string) (*domain.Document, error)
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// Write operations
	SaveDocument(ctx context.Context, doc *domain.Document) error
	DeleteDocument(ctx context.Context, id string) error

	// Close releases resources
	Close() error
}
