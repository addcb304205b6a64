// Package handler implements the HTTP API of the list editor.
//
// ListHandler maps REST routes onto service.ListService. Every mutating
// route answers with the list snapshot after the edit, so a client can
// redraw without a second request.
//
// # Errors
//
// Errors are JSON objects of the form {error, parameter, details}:
//   - 400 for validation failures (bad index, empty document, malformed body)
//   - 404 for unknown lists, nodes or saved documents
//   - 500 for everything else
//
// Request bodies are validated with go-playground/validator before they
// reach the service.
//
// # Documents
//
// PUT /api/lists/{id}/nodes accepts a records document as JSON or, when the
// Content-Type names yaml, as YAML. GET /api/lists/{id}/export writes one in
// the format selected by ?format.
//
// Middleware provides panic recovery, CORS and request logging.
package handler
