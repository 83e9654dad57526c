// Package compose turns validated page specifications into a linear stream
// of layout primitives consumed by the rendering backend.
//
// Each page kind has its own composition rule; every composed page ends with
// a PageBreak, so one page specification maps to exactly one physical page.
package compose

// An inch in points, the unit all primitives are measured in.
const inch = 72.0

// Flowable is a single backend-agnostic layout primitive.
type Flowable interface {
	flowable()
}

// Paragraph is a styled run of text.
type Paragraph struct {
	Text  string
	Style ParagraphStyle
}

func (Paragraph) flowable() {}

// Spacer is vertical whitespace of a fixed height in points.
type Spacer struct {
	Height float64
}

func (Spacer) flowable() {}

// PageBreak forces the following primitives onto a new physical page.
type PageBreak struct{}

func (PageBreak) flowable() {}

// Image embeds a local raster file at a fixed size.
type Image struct {
	Path   string
	Width  float64
	Height float64
}

func (Image) flowable() {}

// Preformatted is a block of text rendered verbatim in a fixed-width font.
// MaxLineLen is a wrapping hint for the backend.
type Preformatted struct {
	Text       string
	Style      ParagraphStyle
	MaxLineLen int
}

func (Preformatted) flowable() {}

// Table is a grid of text cells. The first row always receives the header
// styling, whether or not an explicit header row was supplied.
type Table struct {
	Rows  [][]string
	Style TableStyle
}

func (Table) flowable() {}
