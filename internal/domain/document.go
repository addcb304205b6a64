package domain

import "time"

// Document is a named, persisted list in its bulk-load form. The HEAD
// sentinel is never stored; it is synthesized again on load.
type Document struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Records   []Record  `json:"records"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDocument creates a document stamped with the current time
func NewDocument(id, name string, records []Record) *Document {
	if records == nil {
		records = make([]Record, 0)
	}
	return &Document{
		ID:        id,
		Name:      name,
		Records:   records,
		UpdatedAt: time.Now(),
	}
}
