package compose

import (
	"strconv"
	"strings"

	"github.com/alexh-scrt/mcp-pdf/spec"
)

// RGB is an RGB color value.
type RGB struct {
	R, G, B int
}

// ParseHex converts a hex color string ("#RRGGBB" or "#RGB") to RGB.
// A malformed value yields black rather than an error; the theme defaults
// are always well formed, so this only affects user-supplied overrides.
func ParseHex(s string) RGB {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}
	}
	return RGB{R: int(v >> 16 & 0xFF), G: int(v >> 8 & 0xFF), B: int(v & 0xFF)}
}

// Alignment selects horizontal text alignment within a paragraph.
type Alignment int

// Paragraph alignments.
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignJustify
)

// ParagraphStyle is the resolved visual style of a text primitive.
// Font is the theme's font name (e.g. "Helvetica-Bold"); the backend maps
// it to a concrete font face.
type ParagraphStyle struct {
	Font        string
	Size        float64
	Color       RGB
	Align       Alignment
	SpaceBefore float64
	SpaceAfter  float64
	LeftIndent  float64
	RightIndent float64
	Leading     float64 // line-height multiplier
}

// TableStyle is the resolved styling of a table primitive: one band style
// for the first row and one uniform style for every following row, plus
// full grid lines.
type TableStyle struct {
	HeaderFill RGB
	HeaderText RGB
	HeaderFont string
	HeaderSize float64

	BodyFill RGB
	BodyText RGB
	BodyFont string
	BodySize float64

	GridColor RGB
	GridWidth float64
}

// StyleTable is the fully resolved theme keyed by semantic role. It is
// immutable once built and shared by every page of one generation run.
type StyleTable struct {
	Theme spec.ThemeSpec

	Title    ParagraphStyle
	Subtitle ParagraphStyle
	H1       ParagraphStyle
	H2       ParagraphStyle
	H3       ParagraphStyle
	Body     ParagraphStyle
	Bullet   ParagraphStyle
	Code     ParagraphStyle
	Caption  ParagraphStyle
}

// NewStyleTable builds the per-role styles from a theme. The theme is
// resolved first, so a partial theme is always safe to pass.
func NewStyleTable(theme spec.ThemeSpec) *StyleTable {
	t := theme.Resolve()

	primary := ParseHex(t.Colors.Primary)
	secondary := ParseHex(t.Colors.Secondary)
	text := ParseHex(t.Colors.Text)

	return &StyleTable{
		Theme: t,
		Title: ParagraphStyle{
			Font:       t.Fonts.Heading,
			Size:       t.TitleFontSize,
			Color:      primary,
			Align:      AlignCenter,
			SpaceAfter: t.ParagraphSpacing * 5,
			Leading:    t.LineSpacing,
		},
		Subtitle: ParagraphStyle{
			Font:       t.Fonts.Body,
			Size:       t.SubtitleFontSize,
			Color:      secondary,
			Align:      AlignCenter,
			SpaceAfter: t.ParagraphSpacing * 3,
			Leading:    t.LineSpacing,
		},
		H1: ParagraphStyle{
			Font:        t.Fonts.Heading,
			Size:        t.H1FontSize,
			Color:       primary,
			SpaceBefore: t.ParagraphSpacing * 2,
			SpaceAfter:  t.ParagraphSpacing * 2,
			Leading:     t.LineSpacing,
		},
		H2: ParagraphStyle{
			Font:        t.Fonts.Heading,
			Size:        t.H2FontSize,
			Color:       secondary,
			SpaceBefore: t.ParagraphSpacing,
			SpaceAfter:  t.ParagraphSpacing,
			Leading:     t.LineSpacing,
		},
		H3: ParagraphStyle{
			Font:        t.Fonts.Heading,
			Size:        t.H3FontSize,
			Color:       text,
			SpaceBefore: t.ParagraphSpacing * 0.8,
			SpaceAfter:  t.ParagraphSpacing * 0.8,
			Leading:     t.LineSpacing,
		},
		Body: ParagraphStyle{
			Font:       t.Fonts.Body,
			Size:       t.BodyFontSize,
			Color:      text,
			Align:      AlignJustify,
			SpaceAfter: t.ParagraphSpacing,
			Leading:    t.LineSpacing,
		},
		Bullet: ParagraphStyle{
			Font:       t.Fonts.Body,
			Size:       t.BodyFontSize,
			Color:      text,
			LeftIndent: 20,
			SpaceAfter: t.ParagraphSpacing,
			Leading:    t.LineSpacing,
		},
		Code: ParagraphStyle{
			Font:        t.Fonts.Code,
			Size:        t.CodeFontSize,
			Color:       text,
			LeftIndent:  10,
			RightIndent: 10,
			SpaceAfter:  t.ParagraphSpacing,
			Leading:     t.LineSpacing,
		},
		Caption: ParagraphStyle{
			Font:       t.Fonts.Body,
			Size:       9,
			Color:      ParseHex("#666666"),
			Align:      AlignCenter,
			SpaceAfter: t.ParagraphSpacing,
			Leading:    t.LineSpacing,
		},
	}
}

// TableStyle derives the table band styles from the theme: the first row
// gets the primary background with white bold text, every other row the
// neutral body styling one size below body text.
func (s *StyleTable) TableStyle() TableStyle {
	return TableStyle{
		HeaderFill: ParseHex(s.Theme.Colors.Primary),
		HeaderText: RGB{R: 245, G: 245, B: 245},
		HeaderFont: s.Theme.Fonts.Heading,
		HeaderSize: s.Theme.BodyFontSize,
		BodyFill:   RGB{R: 245, G: 245, B: 220},
		BodyText:   ParseHex(s.Theme.Colors.Text),
		BodyFont:   s.Theme.Fonts.Body,
		BodySize:   s.Theme.BodyFontSize - 1,
		GridColor:  RGB{},
		GridWidth:  1,
	}
}
