package handler

import (
	"mime"
	"net/http"
	"strings"

	"listeditor/internal/codec"
)

// LoadRecords replaces a list with the records in the body. YAML is read
// when the Content-Type says so, JSON otherwise.
func (h *ListHandler) LoadRecords(w http.ResponseWriter, r *http.Request) {
	c := codecForContentType(r.Header.Get("Content-Type"))

	records, err := c.Parse(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := h.svc.Load(r.Context(), r.PathValue("id"), records)
	h.respond(w, "Failed to load list", snap, err)
}

// ExportRecords writes a list's records; ?format=yaml selects YAML
func (h *ListHandler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	c, err := codec.ForFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.writeError(w, "Unsupported format", err.Error(), http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	records, err := h.svc.Records(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "Failed to export list", err)
		return
	}

	if c.Format() == "yaml" {
		w.Header().Set("Content-Type", "application/x-yaml")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+id+"."+c.Format())

	if err := c.Export(records, w); err != nil {
		// Can't write error response as we already set headers
		h.logger.Error("failed to export list", "session", id, "error", err)
	}
}

func codecForContentType(contentType string) codec.Codec {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil && strings.Contains(mediaType, "yaml") {
		return codec.NewYAMLCodec()
	}
	return codec.NewJSONCodec()
}
