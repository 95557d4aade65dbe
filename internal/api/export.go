package api

import (
	"log/slog"
	"net/http"

	"github.com/relay-letters/relay/internal/export"
)

// ExportMarkdown compiles and serves the text artifact.
func (h *Handler) ExportMarkdown(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	doc, err := h.exporter.Markdown(r.Context(), sess.State(), h.now())
	if err != nil {
		slog.Error("Markdown export failed", "error", err)
		Error(w, http.StatusInternalServerError, "export failed")
		return
	}
	serveDocument(w, doc)
}

// ExportPDF compiles and serves the paginated artifact.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	doc, err := h.exporter.PDF(r.Context(), sess.State(), h.now())
	if err != nil {
		slog.Error("PDF export failed", "error", err)
		Error(w, http.StatusInternalServerError, "export failed")
		return
	}
	serveDocument(w, doc)
}

func serveDocument(w http.ResponseWriter, doc export.Document) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}
