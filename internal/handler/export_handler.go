// Package handler provides HTTP handlers for the API.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"inspection-export/internal/domain"
)

// ExportHandler handles document export HTTP requests
type ExportHandler struct {
	exportService   domain.ExportService
	finalizeTimeout time.Duration
	logger          domain.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService domain.ExportService, finalizeTimeoutMS int64, logger domain.Logger) *ExportHandler {
	return &ExportHandler{
		exportService:   exportService,
		finalizeTimeout: time.Duration(finalizeTimeoutMS) * time.Millisecond,
		logger:          logger,
	}
}

// CreateExport opens a new document and returns its handle
func (h *ExportHandler) CreateExport(w http.ResponseWriter, r *http.Request) {
	id, err := h.exportService.Create()
	if err != nil {
		h.logger.Error("Failed to create export document", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ApplyOperation commits one content operation against an open document
func (h *ExportHandler) ApplyOperation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	var op domain.ContentOperation
	if err := json.NewDecoder(r.Body).Decode(&op); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.exportService.Apply(id, op); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "applied"})
}

// GetState returns a snapshot of an open document
func (h *ExportHandler) GetState(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	state, err := h.exportService.State(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// GetLineHeight returns the line height of the document's style context
func (h *ExportHandler) GetLineHeight(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	lineHeight, err := h.exportService.LineHeight(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"line_height": lineHeight})
}

// AddHeader retrofits the header across every buffered page
func (h *ExportHandler) AddHeader(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	var spec domain.HeaderSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.exportService.ApplyHeader(id, spec); err != nil {
		h.logger.Error("Header retrofit failed", err, "document_id", id)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "applied"})
}

// AddFooter retrofits the footer across every buffered page
func (h *ExportHandler) AddFooter(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	var spec domain.FooterSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.exportService.ApplyFooter(id, spec); err != nil {
		h.logger.Error("Footer retrofit failed", err, "document_id", id)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "applied"})
}

type finalizeRequest struct {
	Filename string `json:"filename"`
}

// FinalizeExport closes the document and streams the finished bytes
func (h *ExportHandler) FinalizeExport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	var req finalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Filename == "" {
		writeError(w, http.StatusBadRequest, "Filename is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.finalizeTimeout)
	defer cancel()

	artifact, err := h.exportService.Finalize(ctx, id, req.Filename)
	if err != nil {
		h.logger.Error("Export finalization failed", err, "document_id", id)
		writeServiceError(w, err)
		return
	}
	writeArtifact(w, artifact.ContentType, artifact.Filename, artifact.Data)
}

// DiscardExport drops an open document without producing an artifact
func (h *ExportHandler) DiscardExport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	if err := h.exportService.Discard(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "discarded"})
}
