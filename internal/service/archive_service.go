package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"sort"
	"sync"

	"inspection-export/internal/domain"
	apperrors "inspection-export/pkg/errors"
)

// archiveSession accumulates named byte entries for one downloadable bundle.
// Entry names are unique; re-adding a name overwrites the prior payload.
type archiveSession struct {
	entries map[string][]byte
}

// ArchiveManager maps caller-supplied session identifiers to independent
// accumulators. Distinct identifiers never contend; operations on one
// identifier must be serialized by the caller.
type ArchiveManager struct {
	mu       sync.Mutex
	sessions map[string]*archiveSession

	maxEntrySize int64
	storage      domain.StorageService
	logger       domain.Logger
}

// NewArchiveManager creates the session registry. maxEntrySize of zero or
// less disables the per-entry size cap.
func NewArchiveManager(maxEntrySize int64, storage domain.StorageService, logger domain.Logger) *ArchiveManager {
	return &ArchiveManager{
		sessions:     make(map[string]*archiveSession),
		maxEntrySize: maxEntrySize,
		storage:      storage,
		logger:       logger,
	}
}

// Create opens an empty session for the identifier.
func (m *ArchiveManager) Create(sessionID string) error {
	if sessionID == "" {
		return apperrors.NewValidationError("session identifier is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[sessionID]; exists {
		return apperrors.NewDuplicateSessionError("session already live: " + sessionID)
	}
	m.sessions[sessionID] = &archiveSession{entries: make(map[string][]byte)}
	m.logger.Info("archive session created", "session_id", sessionID)
	return nil
}

// AddEntry decodes the transport-encoded payload and stores it under name.
// Last write wins for duplicate names.
func (m *ArchiveManager) AddEntry(sessionID, name, encoded string) error {
	if name == "" {
		return apperrors.NewValidationError("entry name is required")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return apperrors.NewMalformedPayloadError("entry payload is not valid base64", err)
	}
	if m.maxEntrySize > 0 && int64(len(data)) > m.maxEntrySize {
		return apperrors.NewValidationError("entry payload exceeds size limit", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return apperrors.NewUnknownSessionError("no live session: " + sessionID)
	}
	session.entries[name] = data
	return nil
}

// Finalize serializes all entries into one archive stream and evicts the
// session. Finalize is single-use: the identifier is no longer live after
// this call, whatever the outcome.
func (m *ArchiveManager) Finalize(ctx context.Context, sessionID, filename string) (*domain.Artifact, error) {
	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()
	if !ok {
		return nil, apperrors.NewUnknownSessionError("no live session: " + sessionID)
	}

	names := make([]string, 0, len(session.entries))
	for name := range session.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.NewDeliveryError("archive serialization cancelled", err)
		}
		entry, err := zw.Create(name)
		if err != nil {
			return nil, apperrors.NewDeliveryError("archive entry could not be created: "+name, err)
		}
		if _, err := entry.Write(session.entries[name]); err != nil {
			return nil, apperrors.NewDeliveryError("archive entry could not be written: "+name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, apperrors.NewDeliveryError("archive serialization failed", err)
	}

	artifact := &domain.Artifact{
		Filename:    SanitizeFilename(filename),
		ContentType: "application/zip",
		Data:        buf.Bytes(),
	}

	m.uploadCopy(ctx, artifact)
	m.logger.Info("archive session finalized", "session_id", sessionID, "entries", len(names), "filename", artifact.Filename)
	return artifact, nil
}

// Discard drops a live session without producing an archive.
func (m *ArchiveManager) Discard(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return apperrors.NewUnknownSessionError("no live session: " + sessionID)
	}
	delete(m.sessions, sessionID)
	m.logger.Info("archive session discarded", "session_id", sessionID)
	return nil
}

func (m *ArchiveManager) uploadCopy(ctx context.Context, artifact *domain.Artifact) {
	if m.storage == nil {
		return
	}
	if err := m.storage.Upload(ctx, artifact.Filename, artifact.Data); err != nil {
		m.logger.Warn("remote copy of archive failed", "filename", artifact.Filename, "error", err)
	}
}
