package service

import (
	"strconv"
	"strings"

	"inspection-export/internal/domain"
	apperrors "inspection-export/pkg/errors"
)

// fontSpec maps a symbolic font token onto a document-library font face.
type fontSpec struct {
	family string
	style  string
}

// StyleResolver validates symbolic style descriptors and turns them into
// rendering parameters. It holds no mutable state; resolution is deterministic.
type StyleResolver struct {
	fonts  map[string]fontSpec
	colors map[string]domain.RGB
}

// NewStyleResolver creates a resolver with the registered font set and the
// named color palette.
func NewStyleResolver() *StyleResolver {
	fonts := make(map[string]fontSpec)
	for _, family := range []string{"arial", "helvetica", "times", "courier"} {
		fonts[family] = fontSpec{family: family}
		fonts[family+"-bold"] = fontSpec{family: family, style: "B"}
		fonts[family+"-italic"] = fontSpec{family: family, style: "I"}
		fonts[family+"-bolditalic"] = fontSpec{family: family, style: "BI"}
	}
	fonts["symbol"] = fontSpec{family: "symbol"}
	fonts["zapfdingbats"] = fontSpec{family: "zapfdingbats"}

	return &StyleResolver{
		fonts: fonts,
		colors: map[string]domain.RGB{
			"black":   {R: 0, G: 0, B: 0},
			"white":   {R: 255, G: 255, B: 255},
			"red":     {R: 220, G: 30, B: 30},
			"green":   {R: 30, G: 150, B: 60},
			"blue":    {R: 30, G: 60, B: 200},
			"yellow":  {R: 240, G: 200, B: 20},
			"orange":  {R: 240, G: 130, B: 20},
			"gray":    {R: 128, G: 128, B: 128},
			"grey":    {R: 128, G: 128, B: 128},
			"cyan":    {R: 0, G: 180, B: 200},
			"magenta": {R: 200, G: 0, B: 180},
		},
	}
}

// ResolveFont validates a font token against the registered set.
func (r *StyleResolver) ResolveFont(name string, size float64) (domain.FontFace, error) {
	spec, ok := r.fonts[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return domain.FontFace{}, apperrors.NewInvalidStyleError("unregistered font", name)
	}
	return domain.FontFace{Family: spec.family, Style: spec.style, Size: size}, nil
}

// ResolveColor accepts a named color or a 3/6-digit hex string, with or
// without a leading '#'.
func (r *StyleResolver) ResolveColor(token string) (domain.RGB, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	if rgb, ok := r.colors[normalized]; ok {
		return rgb, nil
	}

	hex := strings.TrimPrefix(normalized, "#")
	switch len(hex) {
	case 3:
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[2*i] = hex[i]
			expanded[2*i+1] = hex[i]
		}
		hex = string(expanded)
	case 6:
		// handled below
	default:
		return domain.RGB{}, apperrors.NewInvalidStyleError("unresolvable color token", token)
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return domain.RGB{}, apperrors.NewInvalidStyleError("unresolvable color token", token)
	}
	return domain.RGB{
		R: int(value >> 16 & 0xff),
		G: int(value >> 8 & 0xff),
		B: int(value & 0xff),
	}, nil
}

// ResolveAlignment maps an alignment token onto the engine's alignment code.
// Unknown tokens fall back to left alignment; only fonts and colors are
// rejected during resolution.
func (r *StyleResolver) ResolveAlignment(token string) string {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "center", "centre", "c":
		return "C"
	case "right", "r":
		return "R"
	default:
		return "L"
	}
}

// Resolve validates a full style tuple. It fails before any content is
// committed, so a bad style never leaves a partial write behind.
func (r *StyleResolver) Resolve(font string, size float64, color, alignment string) (domain.ResolvedStyle, error) {
	face, err := r.ResolveFont(font, size)
	if err != nil {
		return domain.ResolvedStyle{}, err
	}
	rgb, err := r.ResolveColor(color)
	if err != nil {
		return domain.ResolvedStyle{}, err
	}
	return domain.ResolvedStyle{
		Font:  face,
		Color: rgb,
		Align: r.ResolveAlignment(alignment),
	}, nil
}
