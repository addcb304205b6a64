package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"listeditor/internal/domain"
)

// documentRow holds all columns from a document query for scanning
type documentRow struct {
	ID          string
	Name        string
	RecordsJSON sql.NullString
	UpdatedAt   int64
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match documentColumns order exactly
func (r *documentRow) scanArgs() []any {
	return []any{
		&r.ID,
		&r.Name,
		&r.RecordsJSON,
		&r.UpdatedAt,
	}
}

// toDomain converts the scanned row to a domain.Document
func (r *documentRow) toDomain() (*domain.Document, error) {
	doc := &domain.Document{
		ID:        r.ID,
		Name:      r.Name,
		Records:   make([]domain.Record, 0),
		UpdatedAt: fromMillis(r.UpdatedAt),
	}

	if r.RecordsJSON.Valid && r.RecordsJSON.String != "" {
		if err := json.Unmarshal([]byte(r.RecordsJSON.String), &doc.Records); err != nil {
			return nil, fmt.Errorf("unmarshal records: %w", err)
		}
	}

	return doc, nil
}

const documentColumns = `id, name, records, updated_at`

// documentInsertArgs prepares arguments for document UPSERT, in
// documentColumns order
func documentInsertArgs(doc *domain.Document) ([]any, error) {
	records := doc.Records
	if records == nil {
		records = []domain.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal records: %w", err)
	}

	return []any{
		doc.ID,
		doc.Name,
		string(data),
		toMillis(doc.UpdatedAt),
	}, nil
}

// Timestamps are stored as unix milliseconds
func toMillis(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
