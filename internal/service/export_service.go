package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"inspection-export/internal/domain"
	apperrors "inspection-export/pkg/errors"
)

// ExportManager holds the live documents keyed by opaque handle. The registry
// is an explicit, injectable store rather than package-level state, so leaks
// are bounded by Discard and observable in tests.
type ExportManager struct {
	mu       sync.Mutex
	builders map[string]*DocumentBuilder

	newEngine domain.EngineFactory
	styles    *StyleResolver
	storage   domain.StorageService
	logger    domain.Logger
}

// NewExportManager creates the document registry. storage may be nil when no
// remote copy of finalized artifacts is wanted.
func NewExportManager(newEngine domain.EngineFactory, storage domain.StorageService, logger domain.Logger) *ExportManager {
	return &ExportManager{
		builders:  make(map[string]*DocumentBuilder),
		newEngine: newEngine,
		styles:    NewStyleResolver(),
		storage:   storage,
		logger:    logger,
	}
}

// Create opens a new document and returns its opaque handle.
func (m *ExportManager) Create() (string, error) {
	id := uuid.NewString()
	builder := NewDocumentBuilder(m.newEngine(), m.styles, m.logger)

	m.mu.Lock()
	m.builders[id] = builder
	m.mu.Unlock()

	m.logger.Info("export document created", "document_id", id)
	return id, nil
}

func (m *ExportManager) get(id string) (*DocumentBuilder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	builder, ok := m.builders[id]
	if !ok {
		return nil, apperrors.NewInvalidStateError("no open document for handle " + id)
	}
	return builder, nil
}

// Apply routes one content operation to the document's builder.
func (m *ExportManager) Apply(id string, op domain.ContentOperation) error {
	builder, err := m.get(id)
	if err != nil {
		return err
	}

	switch op.Kind {
	case domain.OpText:
		return builder.AddContent(op.Text, op.Size, op.Font, op.Alignment, op.Color)
	case domain.OpTextAt:
		return builder.AddContentAt(op.Text, op.Size, op.Font, op.Alignment, op.Color, op.X, op.Y, op.AdvanceLines)
	case domain.OpLine:
		return builder.AddLine(op.CapStyle, op.X, op.Y, op.X2, op.Y2, op.Color)
	case domain.OpUnderline:
		return builder.AddUnderlinedText(op.Text, op.Font, op.Size, op.AdvanceLines)
	case domain.OpSliced:
		return builder.AddSlicedText(op.Text, op.SplitIndex, op.TotalLength, op.Font, op.FontB, op.Color, op.ColorB, op.AdvanceLines)
	case domain.OpListItem:
		return builder.AddNumberedListItem(op.Number, op.Text)
	case domain.OpPageBreak:
		return builder.AddPage()
	case domain.OpSetFont:
		return builder.SetFont(op.Font, op.Size)
	case domain.OpMoveDown:
		return builder.MoveDown(op.Lines)
	default:
		return apperrors.NewValidationError("unknown operation kind", string(op.Kind))
	}
}

// LineHeight reports the line height of the document's running style context.
func (m *ExportManager) LineHeight(id string) (float64, error) {
	builder, err := m.get(id)
	if err != nil {
		return 0, err
	}
	return builder.LineHeight(), nil
}

// State snapshots an open document.
func (m *ExportManager) State(id string) (*domain.ExportState, error) {
	builder, err := m.get(id)
	if err != nil {
		return nil, err
	}
	state := builder.State()
	state.ID = id
	return &state, nil
}

// ApplyHeader runs the header retrofit pass over the document.
func (m *ExportManager) ApplyHeader(id string, spec domain.HeaderSpec) error {
	builder, err := m.get(id)
	if err != nil {
		return err
	}
	return builder.ApplyHeader(spec)
}

// ApplyFooter runs the footer retrofit pass over the document.
func (m *ExportManager) ApplyFooter(id string, spec domain.FooterSpec) error {
	builder, err := m.get(id)
	if err != nil {
		return err
	}
	return builder.ApplyFooter(spec)
}

// Finalize closes the document, serializes it and evicts the handle. The
// artifact filename is sanitized for delivery.
func (m *ExportManager) Finalize(ctx context.Context, id, filename string) (*domain.Artifact, error) {
	builder, err := m.get(id)
	if err != nil {
		return nil, err
	}

	data, err := builder.Finalize(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	delete(m.builders, id)
	m.mu.Unlock()

	artifact := &domain.Artifact{
		Filename:    SanitizeFilename(filename),
		ContentType: "application/pdf",
		Data:        data,
	}

	m.uploadCopy(ctx, artifact)
	m.logger.Info("export document finalized", "document_id", id, "filename", artifact.Filename, "bytes", len(data))
	return artifact, nil
}

// Discard drops an open document without producing an artifact.
func (m *ExportManager) Discard(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.builders[id]; !ok {
		return apperrors.NewInvalidStateError("no open document for handle " + id)
	}
	delete(m.builders, id)
	m.logger.Info("export document discarded", "document_id", id)
	return nil
}

// uploadCopy pushes a remote copy of the artifact when storage is configured.
// The download to the caller is the delivery of record, so a failed upload is
// logged rather than surfaced.
func (m *ExportManager) uploadCopy(ctx context.Context, artifact *domain.Artifact) {
	if m.storage == nil {
		return
	}
	if err := m.storage.Upload(ctx, artifact.Filename, artifact.Data); err != nil {
		m.logger.Warn("remote copy of artifact failed", "filename", artifact.Filename, "error", err)
	}
}
