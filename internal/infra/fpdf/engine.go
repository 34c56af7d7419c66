// Package fpdf adapts the go-pdf/fpdf document library to the
// domain.PDFEngine boundary.
package fpdf

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	gofpdf "github.com/go-pdf/fpdf"
)

// Engine wraps one fpdf document. Automatic page breaks are disabled: the
// builder owns pagination, so the library must never insert pages on its own.
type Engine struct {
	pdf          *gofpdf.Fpdf
	bottomMargin float64
	imageSeq     int
}

const defaultBottomMargin = 15.0

// New creates an engine for one portrait document in millimeter units.
// pageFormat is a format name the library understands, e.g. "A4" or "Letter".
func New(pageFormat string) *Engine {
	pdf := gofpdf.New("P", "mm", pageFormat, "")
	pdf.SetAutoPageBreak(false, defaultBottomMargin)
	return &Engine{pdf: pdf, bottomMargin: defaultBottomMargin}
}

func (e *Engine) AddPage() {
	e.pdf.AddPage()
}

func (e *Engine) PageCount() int {
	return e.pdf.PageCount()
}

func (e *Engine) SetPage(n int) {
	e.pdf.SetPage(n)
}

func (e *Engine) SetFont(family, style string, size float64) {
	e.pdf.SetFont(family, style, size)
}

func (e *Engine) SetTextColor(r, g, b int) {
	e.pdf.SetTextColor(r, g, b)
}

func (e *Engine) SetDrawColor(r, g, b int) {
	e.pdf.SetDrawColor(r, g, b)
}

func (e *Engine) SetLineCap(capStyle string) {
	e.pdf.SetLineCapStyle(capStyle)
}

func (e *Engine) Text(x, y float64, s string) {
	e.pdf.Text(x, y, s)
}

func (e *Engine) Line(x1, y1, x2, y2 float64) {
	e.pdf.Line(x1, y1, x2, y2)
}

// Image registers the payload under a fresh name and draws it at (x, y) with
// the given width, height derived from the image's aspect ratio.
func (e *Engine) Image(data []byte, x, y, w float64) error {
	imageType := ""
	switch http.DetectContentType(data) {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg":
		imageType = "JPG"
	case "image/gif":
		imageType = "GIF"
	}

	e.imageSeq++
	name := fmt.Sprintf("embedded-%d", e.imageSeq)
	options := gofpdf.ImageOptions{ImageType: imageType}
	e.pdf.RegisterImageOptionsReader(name, options, bytes.NewReader(data))
	if err := e.pdf.Error(); err != nil {
		return err
	}
	e.pdf.ImageOptions(name, x, y, w, 0, false, options, 0, "")
	return e.pdf.Error()
}

func (e *Engine) StringWidth(s string) float64 {
	return e.pdf.GetStringWidth(s)
}

// FontUnitSize reports the current font size in document units.
func (e *Engine) FontUnitSize() float64 {
	_, unitSize := e.pdf.GetFontSize()
	return unitSize
}

func (e *Engine) PageSize() (float64, float64) {
	w, h := e.pdf.GetPageSize()
	return w, h
}

func (e *Engine) Margins() (left, top, right, bottom float64) {
	left, top, right, _ = e.pdf.GetMargins()
	return left, top, right, e.bottomMargin
}

func (e *Engine) SetTopMargin(m float64) {
	e.pdf.SetTopMargin(m)
}

// SetBottomMargin adjusts the bottom margin. Auto page breaks stay disabled.
func (e *Engine) SetBottomMargin(m float64) {
	e.bottomMargin = m
	e.pdf.SetAutoPageBreak(false, m)
}

func (e *Engine) Output(w io.Writer) error {
	return e.pdf.Output(w)
}

func (e *Engine) Err() error {
	return e.pdf.Error()
}
