package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"inspection-export/internal/domain"
)

// ArchiveHandler handles archive session HTTP requests
type ArchiveHandler struct {
	archiveService  domain.ArchiveService
	finalizeTimeout time.Duration
	logger          domain.Logger
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(archiveService domain.ArchiveService, finalizeTimeoutMS int64, logger domain.Logger) *ArchiveHandler {
	return &ArchiveHandler{
		archiveService:  archiveService,
		finalizeTimeout: time.Duration(finalizeTimeoutMS) * time.Millisecond,
		logger:          logger,
	}
}

type createArchiveRequest struct {
	SessionID string `json:"session_id"`
}

// CreateArchive opens an empty session for a caller-supplied identifier
func (h *ArchiveHandler) CreateArchive(w http.ResponseWriter, r *http.Request) {
	var req createArchiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.archiveService.Create(req.SessionID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": req.SessionID})
}

type addEntryRequest struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

// AddEntry stores one named, base64-encoded payload in a live session
func (h *ArchiveHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.archiveService.AddEntry(sessionID, req.Name, req.Data); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "stored"})
}

// FinalizeArchive bundles all entries and streams the archive bytes
func (h *ArchiveHandler) FinalizeArchive(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID is required")
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

	artifact, err := h.archiveService.Finalize(ctx, sessionID, req.Filename)
	if err != nil {
		h.logger.Error("Archive finalization failed", err, "session_id", sessionID)
		writeServiceError(w, err)
		return
	}
	writeArtifact(w, artifact.ContentType, artifact.Filename, artifact.Data)
}

// DiscardArchive drops a live session without producing an archive
func (h *ArchiveHandler) DiscardArchive(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	if err := h.archiveService.Discard(sessionID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "discarded"})
}
