package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"inspection-export/internal/domain"
	apperrors "inspection-export/pkg/errors"
)

const (
	lineSpacing     = 1.2
	defaultFont     = "arial"
	defaultFontSize = 12.0

	// Fixed indents for numbered list items, measured from the page edge.
	listNumberIndent = 15.0
	listTextIndent   = 25.0

	// A list item whose cursor sits more than listOverflowOffset below the
	// top margin is moved to a fresh page first, landing at listRestartY.
	// This keeps list items from rendering partially off-page.
	listOverflowOffset = 230.0
	listRestartY       = 20.0

	underlineDrop = 1.5
)

// paginationTracker follows the vertical cursor and the page count as
// content operations are applied.
type paginationTracker struct {
	pageHeight   float64
	marginTop    float64
	marginBottom float64

	y     float64
	pages int
}

func (t *paginationTracker) bottomLimit() float64 {
	return t.pageHeight - t.marginBottom
}

func (t *paginationTracker) listOverflowed() bool {
	return t.y > t.marginTop+listOverflowOffset
}

// DocumentBuilder orchestrates the content stream against the external
// document library. One builder owns exactly one in-flight document; all
// calls must come from a single logical sequence.
type DocumentBuilder struct {
	engine domain.PDFEngine
	styles *StyleResolver
	logger domain.Logger

	tracker     paginationTracker
	pageWidth   float64
	marginLeft  float64
	marginRight float64

	// font is the running style context used by operations that do not
	// carry their own font and size.
	font      domain.FontFace
	finalized bool
}

// NewDocumentBuilder opens a fresh document with its initial page.
func NewDocumentBuilder(engine domain.PDFEngine, styles *StyleResolver, logger domain.Logger) *DocumentBuilder {
	engine.AddPage()
	pageWidth, pageHeight := engine.PageSize()
	left, top, right, bottom := engine.Margins()

	face, _ := styles.ResolveFont(defaultFont, defaultFontSize)
	engine.SetFont(face.Family, face.Style, face.Size)

	return &DocumentBuilder{
		engine: engine,
		styles: styles,
		logger: logger,
		tracker: paginationTracker{
			pageHeight:   pageHeight,
			marginTop:    top,
			marginBottom: bottom,
			y:            top,
			pages:        1,
		},
		pageWidth:   pageWidth,
		marginLeft:  left,
		marginRight: right,
		font:        face,
	}
}

func (b *DocumentBuilder) ensureOpen() error {
	if b.finalized {
		return apperrors.NewInvalidStateError("document is finalized")
	}
	return nil
}

// applyContextFont restores the running style context on the engine after an
// operation has written with its own style.
func (b *DocumentBuilder) applyContextFont() {
	b.engine.SetFont(b.font.Family, b.font.Style, b.font.Size)
}

func (b *DocumentBuilder) lineHeight() float64 {
	return b.engine.FontUnitSize() * lineSpacing
}

func (b *DocumentBuilder) contentWidth() float64 {
	return b.pageWidth - b.marginLeft - b.marginRight
}

func (b *DocumentBuilder) alignedX(line, align string) float64 {
	switch align {
	case "C":
		return b.marginLeft + (b.contentWidth()-b.engine.StringWidth(line))/2
	case "R":
		return b.pageWidth - b.marginRight - b.engine.StringWidth(line)
	default:
		return b.marginLeft
	}
}

// wrapText splits text into lines that fit the given width. Words are never
// split mid-word; a single oversized word occupies its own line.
func (b *DocumentBuilder) wrapText(text string, width float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if b.engine.StringWidth(candidate) > width {
			lines = append(lines, current)
			current = word
		} else {
			current = candidate
		}
	}
	return append(lines, current)
}

func (b *DocumentBuilder) breakPage() {
	b.engine.AddPage()
	b.tracker.pages++
	b.tracker.y = b.tracker.marginTop
}

// AddContent writes text at the running cursor with word-wrap to the page
// width, leaving the cursor one line below the last written baseline.
func (b *DocumentBuilder) AddContent(text string, size float64, font, alignment, color string) error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	style, err := b.styles.Resolve(font, size, color, alignment)
	if err != nil {
		return err
	}
	b.engine.SetFont(style.Font.Family, style.Font.Style, style.Font.Size)
	b.engine.SetTextColor(style.Color.R, style.Color.G, style.Color.B)

	lh := b.lineHeight()
	for _, line := range b.wrapText(text, b.contentWidth()) {
		if b.tracker.y > b.tracker.bottomLimit() {
			b.breakPage()
		}
		b.engine.Text(b.alignedX(line, style.Align), b.tracker.y, line)
		b.tracker.y += lh
	}
	b.applyContextFont()
	return b.engine.Err()
}

// AddContentAt writes a single run at an absolute page-relative position,
// then moves the cursor advanceLines below that position.
func (b *DocumentBuilder) AddContentAt(text string, size float64, font, alignment, color string, x, y, advanceLines float64) error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	style, err := b.styles.Resolve(font, size, color, alignment)
	if err != nil {
		return err
	}
	b.engine.SetFont(style.Font.Family, style.Font.Style, style.Font.Size)
	b.engine.SetTextColor(style.Color.R, style.Color.G, style.Color.B)
	b.engine.Text(x, y, text)

	b.tracker.y = y + advanceLines*b.lineHeight()
	b.applyContextFont()
	return b.engine.Err()
}

// AddLine draws a ruled segment. The cursor does not move.
func (b *DocumentBuilder) AddLine(capStyle string, x1, y1, x2, y2 float64, color string) error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	rgb, err := b.styles.ResolveColor(color)
	if err != nil {
		return err
	}
	switch capStyle {
	case "round", "square", "butt":
	default:
		capStyle = "butt"
	}
	b.engine.SetDrawColor(rgb.R, rgb.G, rgb.B)
	b.engine.SetLineCap(capStyle)
	b.engine.Line(x1, y1, x2, y2)
	return b.engine.Err()
}

// AddUnderlinedText writes text with an underline spanning its measured
// width, then advances the cursor.
func (b *DocumentBuilder) AddUnderlinedText(text, font string, size, advanceLines float64) error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	face, err := b.styles.ResolveFont(font, size)
	if err != nil {
		return err
	}
	b.engine.SetFont(face.Family, face.Style, face.Size)

	y := b.tracker.y
	width := b.engine.StringWidth(text)
	b.engine.Text(b.marginLeft, y, text)
	b.engine.Line(b.marginLeft, y+underlineDrop, b.marginLeft+width, y+underlineDrop)

	b.tracker.y += advanceLines * b.lineHeight()
	b.applyContextFont()
	return b.engine.Err()
}

// AddSlicedText writes text[0:splitIndex] in the first style immediately
// followed, on the same baseline, by text[splitIndex:totalLength] in the
// second style.
func (b *DocumentBuilder) AddSlicedText(text string, splitIndex, totalLength int, fontA, fontB, colorA, colorB string, advanceLines float64) error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	if splitIndex < 0 || splitIndex > totalLength || totalLength > len(text) {
		return apperrors.NewRangeError(fmt.Sprintf("slice indices %d:%d out of bounds for text of length %d", splitIndex, totalLength, len(text)))
	}

	// Both styles resolve before anything is written.
	faceA, err := b.styles.ResolveFont(fontA, b.font.Size)
	if err != nil {
		return err
	}
	rgbA, err := b.styles.ResolveColor(colorA)
	if err != nil {
		return err
	}
	faceB, err := b.styles.ResolveFont(fontB, b.font.Size)
	if err != nil {
		return err
	}
	rgbB, err := b.styles.ResolveColor(colorB)
	if err != nil {
		return err
	}

	y := b.tracker.y
	first := text[:splitIndex]
	second := text[splitIndex:totalLength]

	b.engine.SetFont(faceA.Family, faceA.Style, faceA.Size)
	b.engine.SetTextColor(rgbA.R, rgbA.G, rgbA.B)
	b.engine.Text(b.marginLeft, y, first)
	firstWidth := b.engine.StringWidth(first)

	b.engine.SetFont(faceB.Family, faceB.Style, faceB.Size)
	b.engine.SetTextColor(rgbB.R, rgbB.G, rgbB.B)
	b.engine.Text(b.marginLeft+firstWidth, y, second)

	b.applyContextFont()
	b.tracker.y += advanceLines * b.lineHeight()
	return b.engine.Err()
}

// AddNumberedListItem writes "{number}." at a fixed left indent and the item
// text at a fixed content indent on the same baseline. If the cursor has
// crossed the overflow threshold the item starts on a fresh page instead.
func (b *DocumentBuilder) AddNumberedListItem(number int, text string) error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	if b.tracker.listOverflowed() {
		b.breakPage()
		b.tracker.y = listRestartY
	}

	b.applyContextFont()
	lh := b.lineHeight()
	b.engine.Text(listNumberIndent, b.tracker.y, fmt.Sprintf("%d.", number))

	width := b.pageWidth - b.marginRight - listTextIndent
	for _, line := range b.wrapText(text, width) {
		b.engine.Text(listTextIndent, b.tracker.y, line)
		b.tracker.y += lh
	}
	return b.engine.Err()
}

// AddPage commits an explicit page break and resets the cursor to the top
// margin of the new page.
func (b *DocumentBuilder) AddPage() error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	b.breakPage()
	return b.engine.Err()
}

// SetFont mutates the running style context used by operations that do not
// specify their own font and size.
func (b *DocumentBuilder) SetFont(font string, size float64) error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	face, err := b.styles.ResolveFont(font, size)
	if err != nil {
		return err
	}
	b.font = face
	b.applyContextFont()
	return nil
}

// MoveDown advances the cursor by the given number of line-heights without
// writing content.
func (b *DocumentBuilder) MoveDown(lines float64) error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	b.tracker.y += lines * b.lineHeight()
	return nil
}

// LineHeight reports the line height implied by the running style context.
func (b *DocumentBuilder) LineHeight() float64 {
	return b.lineHeight()
}

// PageCount reports the number of buffered pages.
func (b *DocumentBuilder) PageCount() int {
	return b.tracker.pages
}

// State snapshots the builder for diagnostics.
func (b *DocumentBuilder) State() domain.ExportState {
	return domain.ExportState{
		PageCount: b.tracker.pages,
		CursorY:   b.tracker.y,
		Finalized: b.finalized,
	}
}

// Finalize closes the document to further content operations and flushes the
// page buffer to a single byte stream. The context bounds the wait on the
// library's serialization.
func (b *DocumentBuilder) Finalize(ctx context.Context) ([]byte, error) {
	if b.finalized {
		return nil, apperrors.NewInvalidStateError("document already finalized")
	}
	b.finalized = true

	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- b.engine.Output(&buf)
	}()

	select {
	case err := <-done:
		if err != nil {
			return nil, apperrors.NewDeliveryError("document serialization failed", err)
		}
		return buf.Bytes(), nil
	case <-ctx.Done():
		return nil, apperrors.NewDeliveryError("document serialization did not complete", ctx.Err())
	}
}
