// Package repository defines the data access interface for saved lists.
//
// A list is persisted as a domain.Document: a name plus the list's records
// in bulk-load form. The HEAD sentinel is never stored. The implementation
// lives in the sqlite subpackage.
//
// GetDocument returns nil, nil for an unknown id; callers decide whether a
// missing document is an error.
package repository
