package domain

import (
	"context"
	"io"
)

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetExportBucket() string
	GetPageFormat() string
	GetFinalizeTimeoutMS() int64
	GetMaxEntrySize() int64
}

// PDFEngine is the boundary to the external document library. One engine
// instance backs exactly one in-flight document. Page numbers are 1-based.
type PDFEngine interface {
	AddPage()
	PageCount() int
	SetPage(n int)

	SetFont(family, style string, size float64)
	SetTextColor(r, g, b int)
	SetDrawColor(r, g, b int)
	SetLineCap(capStyle string)

	Text(x, y float64, s string)
	Line(x1, y1, x2, y2 float64)
	Image(data []byte, x, y, w float64) error

	StringWidth(s string) float64
	FontUnitSize() float64
	PageSize() (w, h float64)

	Margins() (left, top, right, bottom float64)
	SetTopMargin(m float64)
	SetBottomMargin(m float64)

	Output(w io.Writer) error
	Err() error
}

// EngineFactory creates a fresh engine for one document.
type EngineFactory func() PDFEngine

// ExportService defines the use-case operations for building documents.
// All operations on one handle must be serialized by the caller.
type ExportService interface {
	Create() (string, error)
	Apply(id string, op ContentOperation) error
	LineHeight(id string) (float64, error)
	State(id string) (*ExportState, error)
	ApplyHeader(id string, spec HeaderSpec) error
	ApplyFooter(id string, spec FooterSpec) error
	Finalize(ctx context.Context, id, filename string) (*Artifact, error)
	Discard(id string) error
}

// ArchiveService defines the archive session lifecycle.
type ArchiveService interface {
	Create(sessionID string) error
	AddEntry(sessionID, name, encoded string) error
	Finalize(ctx context.Context, sessionID, filename string) (*Artifact, error)
	Discard(sessionID string) error
}

// StorageService uploads finished artifacts to remote storage.
type StorageService interface {
	Upload(ctx context.Context, path string, data []byte) error
}
