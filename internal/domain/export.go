package domain

// RGB is a resolved color in 0-255 components.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// FontFace is a validated font selection understood by the document library.
type FontFace struct {
	Family string  `json:"family"`
	Style  string  `json:"style"` // "", "B", "I" or "BI"
	Size   float64 `json:"size"`
}

// ResolvedStyle bundles the rendering parameters for one styled write.
type ResolvedStyle struct {
	Font  FontFace `json:"font"`
	Color RGB      `json:"color"`
	Align string   `json:"align"` // "L", "C" or "R"
}

// OpKind identifies one kind of content operation in the stream.
type OpKind string

const (
	OpText      OpKind = "text"
	OpTextAt    OpKind = "text_at"
	OpLine      OpKind = "line"
	OpUnderline OpKind = "underline"
	OpSliced    OpKind = "sliced"
	OpListItem  OpKind = "list_item"
	OpPageBreak OpKind = "page_break"
	OpSetFont   OpKind = "set_font"
	OpMoveDown  OpKind = "move_down"
)

// ContentOperation is one instruction submitted against an open document.
// Which fields are meaningful depends on Kind; unused fields are ignored.
type ContentOperation struct {
	Kind OpKind `json:"type"`

	Text      string  `json:"text,omitempty"`
	Font      string  `json:"font,omitempty"`
	Size      float64 `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	Alignment string  `json:"alignment,omitempty"`

	// Absolute placement (text_at) and line geometry (line).
	X  float64 `json:"x,omitempty"`
	Y  float64 `json:"y,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	CapStyle string `json:"cap_style,omitempty"`

	// Dual-styled (sliced) runs.
	SplitIndex  int    `json:"split_index,omitempty"`
	TotalLength int    `json:"total_length,omitempty"`
	FontB       string `json:"font_b,omitempty"`
	ColorB      string `json:"color_b,omitempty"`

	// Numbered list items.
	Number int `json:"number,omitempty"`

	// Cursor movement.
	AdvanceLines float64 `json:"advance_lines,omitempty"`
	Lines        float64 `json:"lines,omitempty"`
}

// HeaderSpec is the deferred header applied to every page in one pass.
// ImageData carries the right-side image payload, base64-encoded.
type HeaderSpec struct {
	DateTimeText     string  `json:"date_time_text"`
	ImageData        string  `json:"image_data"`
	Font             string  `json:"font"`
	Size             float64 `json:"size"`
	Color            string  `json:"color"`
	HorizontalMargin float64 `json:"horizontal_margin"`
}

// FooterSpec is the deferred footer applied to every page in one pass.
// The right side always renders the "Page X of N" indicator.
type FooterSpec struct {
	Text             string  `json:"text"`
	LeftFont         string  `json:"left_font"`
	LeftSize         float64 `json:"left_size"`
	LeftColor        string  `json:"left_color"`
	RightFont        string  `json:"right_font"`
	RightSize        float64 `json:"right_size"`
	RightColor       string  `json:"right_color"`
	HorizontalMargin float64 `json:"horizontal_margin"`
}

// ExportState is a snapshot of an open document, for host-side diagnostics.
type ExportState struct {
	ID        string  `json:"id"`
	PageCount int     `json:"page_count"`
	CursorY   float64 `json:"cursor_y"`
	Finalized bool    `json:"finalized"`
}

// Artifact is a finished byte stream ready for delivery.
type Artifact struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}
