package service

import (
	"context"
	"io"
	"strings"

	"inspection-export/internal/domain"
)

// fakeEngine is a recording stand-in for the document library. Geometry is
// simplified: string width is proportional to rune count and font size.
type fakeText struct {
	x, y   float64
	s      string
	family string
	style  string
	size   float64
	color  [3]int
}

type fakeImage struct {
	x, y, w float64
}

type fakePage struct {
	texts  []fakeText
	lines  [][4]float64
	images []fakeImage
}

type fakeEngine struct {
	pages   []*fakePage
	current int // 1-based

	left, top, right, bottom float64
	topMarginSets            []float64
	bottomMarginSets         []float64

	fontFamily string
	fontStyle  string
	fontSize   float64
	textColor  [3]int

	outputErr   error
	outputBlock chan struct{} // when non-nil, Output waits for close
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{left: 10, top: 10, right: 10, bottom: 10}
}

func (e *fakeEngine) AddPage() {
	e.pages = append(e.pages, &fakePage{})
	e.current = len(e.pages)
}

func (e *fakeEngine) PageCount() int { return len(e.pages) }

func (e *fakeEngine) SetPage(n int) { e.current = n }

func (e *fakeEngine) SetFont(family, style string, size float64) {
	e.fontFamily, e.fontStyle, e.fontSize = family, style, size
}

func (e *fakeEngine) SetTextColor(r, g, b int) { e.textColor = [3]int{r, g, b} }

func (e *fakeEngine) SetDrawColor(r, g, b int) {}

func (e *fakeEngine) SetLineCap(capStyle string) {}

func (e *fakeEngine) Text(x, y float64, s string) {
	page := e.pages[e.current-1]
	page.texts = append(page.texts, fakeText{
		x: x, y: y, s: s,
		family: e.fontFamily, style: e.fontStyle, size: e.fontSize,
		color: e.textColor,
	})
}

func (e *fakeEngine) Line(x1, y1, x2, y2 float64) {
	page := e.pages[e.current-1]
	page.lines = append(page.lines, [4]float64{x1, y1, x2, y2})
}

func (e *fakeEngine) Image(data []byte, x, y, w float64) error {
	page := e.pages[e.current-1]
	page.images = append(page.images, fakeImage{x: x, y: y, w: w})
	return nil
}

func (e *fakeEngine) StringWidth(s string) float64 {
	return float64(len([]rune(s))) * e.fontSize * 0.35
}

func (e *fakeEngine) FontUnitSize() float64 { return e.fontSize * 0.3528 }

func (e *fakeEngine) PageSize() (float64, float64) { return 210, 297 }

func (e *fakeEngine) Margins() (float64, float64, float64, float64) {
	return e.left, e.top, e.right, e.bottom
}

func (e *fakeEngine) SetTopMargin(m float64) {
	e.top = m
	e.topMarginSets = append(e.topMarginSets, m)
}

func (e *fakeEngine) SetBottomMargin(m float64) {
	e.bottom = m
	e.bottomMarginSets = append(e.bottomMarginSets, m)
}

func (e *fakeEngine) Output(w io.Writer) error {
	if e.outputBlock != nil {
		<-e.outputBlock
	}
	if e.outputErr != nil {
		return e.outputErr
	}
	_, err := w.Write([]byte("%PDF-1.4 fake"))
	return err
}

func (e *fakeEngine) Err() error { return nil }

// pageTexts joins all text runs on a page for substring assertions.
func (e *fakeEngine) pageTexts(n int) string {
	var parts []string
	for _, t := range e.pages[n-1].texts {
		parts = append(parts, t.s)
	}
	return strings.Join(parts, "\n")
}

// findText returns the first text run on a page matching s.
func (e *fakeEngine) findText(n int, s string) (fakeText, bool) {
	for _, t := range e.pages[n-1].texts {
		if t.s == s {
			return t, true
		}
	}
	return fakeText{}, false
}

// Shared test doubles for the service package.

type MockLogger struct{}

func NewMockLogger() domain.Logger { return &MockLogger{} }

func (l *MockLogger) Info(msg string, fields ...interface{})             {}
func (l *MockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockLogger) Warn(msg string, fields ...interface{})             {}

type MockStorageService struct {
	uploads map[string][]byte
	err     error
}

func NewMockStorageService() *MockStorageService {
	return &MockStorageService{uploads: make(map[string][]byte)}
}

func (m *MockStorageService) Upload(ctx context.Context, path string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.uploads[path] = data
	return nil
}
