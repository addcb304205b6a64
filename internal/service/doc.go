// Package service implements the editing sessions behind the HTTP API.
//
// ListService owns a set of sessions. Each session wraps one
// linkedlist.List with its own position strategy, so there is no process-wide
// list. Edits to a session run under that session's mutex; the list itself is
// single-threaded.
//
// # Events
//
// Every successful edit publishes EventListUpdated on the EventBus, which the
// SSE hub forwards to connected clients. Failed edits publish nothing.
//
// # Persistence
//
// Save stores a session's records as a domain.Document under the session id.
// Restore reloads it, creating the session if it is no longer live.
//
// # Metrics
//
// listeditor_operations_total counts operations by outcome and
// listeditor_list_length tracks each session's length.
package service
