package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"inspection-export/internal/domain"
	apperrors "inspection-export/pkg/errors"
)

const (
	headerImageWidth = 30.0
	headerImageLift  = 4.0
)

// Headers and footers are not ordinary content operations: a footer shows
// "Page X of N" and N is unknown until all body content is written. Both are
// therefore retrofitted across every buffered page in one pass, after the
// fact. The pass never creates pages and never moves the running cursor.
//
// Re-applying a header or footer layers a second render over the first; the
// caller is expected to apply each at most once per document.

// withZeroedTopMargin runs fn against one page with its top margin zeroed so
// absolute-position writes inside the margin band are not clipped. The
// original margin is restored on every exit path.
func (b *DocumentBuilder) withZeroedTopMargin(page int, fn func(origTop float64) error) error {
	b.engine.SetPage(page)
	_, origTop, _, _ := b.engine.Margins()
	b.engine.SetTopMargin(0)
	defer b.engine.SetTopMargin(origTop)
	return fn(origTop)
}

// withZeroedBottomMargin is the footer-side counterpart of withZeroedTopMargin.
func (b *DocumentBuilder) withZeroedBottomMargin(page int, fn func(origBottom float64) error) error {
	b.engine.SetPage(page)
	_, _, _, origBottom := b.engine.Margins()
	b.engine.SetBottomMargin(0)
	defer b.engine.SetBottomMargin(origBottom)
	return fn(origBottom)
}

// decodeImagePayload decodes a transport-encoded image and verifies it is a
// renderable format before anything touches page state.
func decodeImagePayload(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperrors.NewMalformedPayloadError("image payload is not valid base64", err)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, apperrors.NewMalformedPayloadError("image payload is not a decodable image", err)
	}
	return data, nil
}

// ApplyHeader retrofits the header onto every buffered page: date/time text
// on the left, the supplied image right-aligned against the page edge.
func (b *DocumentBuilder) ApplyHeader(spec domain.HeaderSpec) error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	face, err := b.styles.ResolveFont(spec.Font, spec.Size)
	if err != nil {
		return err
	}
	rgb, err := b.styles.ResolveColor(spec.Color)
	if err != nil {
		return err
	}
	img, err := decodeImagePayload(spec.ImageData)
	if err != nil {
		return err
	}

	total := b.engine.PageCount()
	for page := 1; page <= total; page++ {
		err := b.withZeroedTopMargin(page, func(origTop float64) error {
			y := origTop / 2
			b.engine.SetFont(face.Family, face.Style, face.Size)
			b.engine.SetTextColor(rgb.R, rgb.G, rgb.B)
			b.engine.Text(spec.HorizontalMargin, y, spec.DateTimeText)

			imgX := b.pageWidth - spec.HorizontalMargin - headerImageWidth
			return b.engine.Image(img, imgX, y-headerImageLift, headerImageWidth)
		})
		if err != nil {
			return apperrors.NewDeliveryError(fmt.Sprintf("header render failed on page %d", page), err)
		}
	}

	b.engine.SetPage(total)
	b.applyContextFont()
	return b.engine.Err()
}

// ApplyFooter retrofits the footer onto every buffered page: caller text on
// the left, the "Page X of N" indicator right-aligned. N is the page count
// at the time of this pass.
func (b *DocumentBuilder) ApplyFooter(spec domain.FooterSpec) error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	leftFace, err := b.styles.ResolveFont(spec.LeftFont, spec.LeftSize)
	if err != nil {
		return err
	}
	leftColor, err := b.styles.ResolveColor(spec.LeftColor)
	if err != nil {
		return err
	}
	rightFace, err := b.styles.ResolveFont(spec.RightFont, spec.RightSize)
	if err != nil {
		return err
	}
	rightColor, err := b.styles.ResolveColor(spec.RightColor)
	if err != nil {
		return err
	}

	total := b.engine.PageCount()
	for page := 1; page <= total; page++ {
		err := b.withZeroedBottomMargin(page, func(origBottom float64) error {
			y := b.tracker.pageHeight - origBottom/2

			b.engine.SetFont(leftFace.Family, leftFace.Style, leftFace.Size)
			b.engine.SetTextColor(leftColor.R, leftColor.G, leftColor.B)
			b.engine.Text(spec.HorizontalMargin, y, spec.Text)

			b.engine.SetFont(rightFace.Family, rightFace.Style, rightFace.Size)
			b.engine.SetTextColor(rightColor.R, rightColor.G, rightColor.B)
			indicator := fmt.Sprintf("Page %d of %d", page, total)
			x := b.pageWidth - spec.HorizontalMargin - b.engine.StringWidth(indicator)
			b.engine.Text(x, y, indicator)
			return nil
		})
		if err != nil {
			return apperrors.NewDeliveryError(fmt.Sprintf("footer render failed on page %d", page), err)
		}
	}

	b.engine.SetPage(total)
	b.applyContextFont()
	return b.engine.Err()
}
