// Package domain defines the core types of the linked list editor.
//
// # Core Types
//
// Node is a generic, uniquely identified entity with a 2D Position, a payload
// and an adjacency list (ConnectedNodesIDs). In this domain a node has at most
// one successor.
//
// ListValue is the linked list payload. Every list starts with a HEAD
// sentinel node (Value "HEAD") and its last node points at the TAIL marker.
//
// Placement is the payload-free view of a node that position strategies use.
//
// # Documents
//
// Record is the bulk-load form of a node: optional id, value, and adjacency by
// id. Document is a named, persisted sequence of records.
//
// # Errors
//
// ValidationError carries {parameter, error} pairs for rejected arguments.
// NotFoundError reports missing nodes and matches ErrNotFound.
//
// # Design Principles
//
// - Nodes are values; collections are replaced, never shared
// - No database or external dependencies
// - ConnectedNodesIDs is the single source of truth for adjacency
package domain
