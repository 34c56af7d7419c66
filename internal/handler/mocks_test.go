package handler

import (
	"context"

	"inspection-export/internal/domain"
	apperrors "inspection-export/pkg/errors"
)

// Mock implementations for testing

type MockExportService struct {
	nextID   string
	ops      map[string][]domain.ContentOperation
	headers  map[string]domain.HeaderSpec
	footers  map[string]domain.FooterSpec
	applyErr error
	artifact *domain.Artifact
	finalErr error
}

func NewMockExportService() *MockExportService {
	return &MockExportService{
		nextID:  "doc-1",
		ops:     make(map[string][]domain.ContentOperation),
		headers: make(map[string]domain.HeaderSpec),
		footers: make(map[string]domain.FooterSpec),
		artifact: &domain.Artifact{
			Filename:    "out.pdf",
			ContentType: "application/pdf",
			Data:        []byte("%PDF-mock"),
		},
	}
}

func (m *MockExportService) Create() (string, error) {
	m.ops[m.nextID] = nil
	return m.nextID, nil
}

func (m *MockExportService) Apply(id string, op domain.ContentOperation) error {
	if m.applyErr != nil {
		return m.applyErr
	}
	if _, ok := m.ops[id]; !ok {
		return apperrors.NewInvalidStateError("no open document for handle " + id)
	}
	m.ops[id] = append(m.ops[id], op)
	return nil
}

func (m *MockExportService) LineHeight(id string) (float64, error) {
	if _, ok := m.ops[id]; !ok {
		return 0, apperrors.NewInvalidStateError("no open document for handle " + id)
	}
	return 5.08, nil
}

func (m *MockExportService) State(id string) (*domain.ExportState, error) {
	if _, ok := m.ops[id]; !ok {
		return nil, apperrors.NewInvalidStateError("no open document for handle " + id)
	}
	return &domain.ExportState{ID: id, PageCount: 1}, nil
}

func (m *MockExportService) ApplyHeader(id string, spec domain.HeaderSpec) error {
	if _, ok := m.ops[id]; !ok {
		return apperrors.NewInvalidStateError("no open document for handle " + id)
	}
	m.headers[id] = spec
	return nil
}

func (m *MockExportService) ApplyFooter(id string, spec domain.FooterSpec) error {
	if _, ok := m.ops[id]; !ok {
		return apperrors.NewInvalidStateError("no open document for handle " + id)
	}
	m.footers[id] = spec
	return nil
}

func (m *MockExportService) Finalize(ctx context.Context, id, filename string) (*domain.Artifact, error) {
	if m.finalErr != nil {
		return nil, m.finalErr
	}
	if _, ok := m.ops[id]; !ok {
		return nil, apperrors.NewInvalidStateError("no open document for handle " + id)
	}
	delete(m.ops, id)
	return m.artifact, nil
}

func (m *MockExportService) Discard(id string) error {
	if _, ok := m.ops[id]; !ok {
		return apperrors.NewInvalidStateError("no open document for handle " + id)
	}
	delete(m.ops, id)
	return nil
}

type MockArchiveService struct {
	sessions map[string]map[string]string
	artifact *domain.Artifact
}

func NewMockArchiveService() *MockArchiveService {
	return &MockArchiveService{
		sessions: make(map[string]map[string]string),
		artifact: &domain.Artifact{
			Filename:    "out.zip",
			ContentType: "application/zip",
			Data:        []byte("PK-mock"),
		},
	}
}

func (m *MockArchiveService) Create(sessionID string) error {
	if _, ok := m.sessions[sessionID]; ok {
		return apperrors.NewDuplicateSessionError("session already live: " + sessionID)
	}
	m.sessions[sessionID] = make(map[string]string)
	return nil
}

func (m *MockArchiveService) AddEntry(sessionID, name, encoded string) error {
	session, ok := m.sessions[sessionID]
	if !ok {
		return apperrors.NewUnknownSessionError("no live session: " + sessionID)
	}
	session[name] = encoded
	return nil
}

func (m *MockArchiveService) Finalize(ctx context.Context, sessionID, filename string) (*domain.Artifact, error) {
	if _, ok := m.sessions[sessionID]; !ok {
		return nil, apperrors.NewUnknownSessionError("no live session: " + sessionID)
	}
	delete(m.sessions, sessionID)
	return m.artifact, nil
}

func (m *MockArchiveService) Discard(sessionID string) error {
	if _, ok := m.sessions[sessionID]; !ok {
		return apperrors.NewUnknownSessionError("no live session: " + sessionID)
	}
	delete(m.sessions, sessionID)
	return nil
}
