// Package render materializes a flowable stream into a PDF file.
//
// It is the layout backend of the pipeline: it walks the primitives emitted
// by the composer and drives gofpdf to produce paginated output. Pagination
// of oversized content within a page is handled here (auto page break), not
// by the composer.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/alexh-scrt/mcp-pdf/compose"
	"github.com/alexh-scrt/mcp-pdf/spec"
)

// WriteFile renders the flowable stream to a PDF at path.
func WriteFile(path string, theme spec.ThemeSpec, flow []compose.Flowable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: creating output file: %w", err)
	}
	if err := Write(f, theme, flow); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("render: closing output file: %w", err)
	}
	return nil
}

// Write renders the flowable stream to w using the theme's page geometry.
func Write(w io.Writer, theme spec.ThemeSpec, flow []compose.Flowable) error {
	t := theme.Resolve()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: t.PageWidth, Ht: t.PageHeight},
	})
	pdf.SetMargins(t.MarginLeft, t.MarginTop, t.MarginRight)
	pdf.SetAutoPageBreak(true, t.MarginBottom)
	pdf.AddPage()

	// A page break only takes effect when more content follows, so the
	// trailing break of the last page never yields a blank page.
	pending := false
	for _, f := range flow {
		if _, ok := f.(compose.PageBreak); ok {
			pending = true
			continue
		}
		if pending {
			pdf.AddPage()
			pending = false
		}
		switch v := f.(type) {
		case compose.Paragraph:
			drawParagraph(pdf, v.Text, v.Style)
		case compose.Spacer:
			pdf.Ln(v.Height)
		case compose.Image:
			drawImage(pdf, v)
		case compose.Preformatted:
			drawPreformatted(pdf, v)
		case compose.Table:
			drawTable(pdf, v)
		}
	}

	if pdf.Err() {
		return fmt.Errorf("render: %w", pdf.Error())
	}
	return pdf.Output(w)
}

// fontFace maps a theme font name like "Helvetica-Bold" onto a gofpdf core
// font family and style string.
func fontFace(name string) (family, style string) {
	family = name
	for _, suffix := range []struct{ tag, style string }{
		{"-BoldOblique", "BI"},
		{"-BoldItalic", "BI"},
		{"-Bold", "B"},
		{"-Oblique", "I"},
		{"-Italic", "I"},
		{"-Roman", ""},
	} {
		if strings.HasSuffix(name, suffix.tag) {
			return strings.TrimSuffix(name, suffix.tag), suffix.style
		}
	}
	return family, ""
}

func alignStr(a compose.Alignment) string {
	switch a {
	case compose.AlignCenter:
		return "C"
	case compose.AlignJustify:
		return "J"
	default:
		return "L"
	}
}

func lineHeight(s compose.ParagraphStyle) float64 {
	leading := s.Leading
	if leading == 0 {
		leading = 1.2
	}
	return s.Size * leading
}

func contentWidth(pdf *gofpdf.Fpdf) float64 {
	pageW, _ := pdf.GetPageSize()
	lm, _, rm, _ := pdf.GetMargins()
	return pageW - lm - rm
}

func drawParagraph(pdf *gofpdf.Fpdf, text string, style compose.ParagraphStyle) {
	family, face := fontFace(style.Font)
	pdf.SetFont(family, face, style.Size)
	pdf.SetTextColor(style.Color.R, style.Color.G, style.Color.B)

	if style.SpaceBefore > 0 {
		pdf.Ln(style.SpaceBefore)
	}

	lm, _, _, _ := pdf.GetMargins()
	pdf.SetX(lm + style.LeftIndent)
	w := contentWidth(pdf) - style.LeftIndent - style.RightIndent
	pdf.MultiCell(w, lineHeight(style), text, "", alignStr(style.Align), false)

	if style.SpaceAfter > 0 {
		pdf.Ln(style.SpaceAfter)
	}
	pdf.SetTextColor(0, 0, 0)
}

func drawImage(pdf *gofpdf.Fpdf, img compose.Image) {
	x := pdf.GetX()
	y := pdf.GetY()
	pdf.ImageOptions(img.Path, x, y, img.Width, img.Height, false, gofpdf.ImageOptions{}, 0, "")
	pdf.SetY(y + img.Height + 2)
}

func drawPreformatted(pdf *gofpdf.Fpdf, pre compose.Preformatted) {
	family, face := fontFace(pre.Style.Font)
	pdf.SetFont(family, face, pre.Style.Size)
	pdf.SetTextColor(pre.Style.Color.R, pre.Style.Color.G, pre.Style.Color.B)

	text := pre.Text
	if pre.MaxLineLen > 0 {
		text = wrapLines(text, pre.MaxLineLen)
	}

	lm, _, _, _ := pdf.GetMargins()
	pdf.SetX(lm + pre.Style.LeftIndent)
	w := contentWidth(pdf) - pre.Style.LeftIndent - pre.Style.RightIndent
	pdf.MultiCell(w, lineHeight(pre.Style), text, "", "L", false)

	if pre.Style.SpaceAfter > 0 {
		pdf.Ln(pre.Style.SpaceAfter)
	}
	pdf.SetTextColor(0, 0, 0)
}

// wrapLines hard-wraps lines longer than max runes.
func wrapLines(text string, max int) string {
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		runes := []rune(line)
		for len(runes) > max {
			out = append(out, string(runes[:max]))
			runes = runes[max:]
		}
		out = append(out, string(runes))
	}
	return strings.Join(out, "\n")
}

func drawTable(pdf *gofpdf.Fpdf, tbl compose.Table) {
	if len(tbl.Rows) == 0 {
		return
	}

	cols := 0
	for _, row := range tbl.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return
	}

	style := tbl.Style
	colW := contentWidth(pdf) / float64(cols)
	pad := 3.0

	pdf.SetDrawColor(style.GridColor.R, style.GridColor.G, style.GridColor.B)
	pdf.SetLineWidth(style.GridWidth)

	lm, _, _, bm := pdf.GetMargins()
	_, pageH := pdf.GetPageSize()

	for i, row := range tbl.Rows {
		family, face := fontFace(style.BodyFont)
		size := style.BodySize
		fill := style.BodyFill
		textColor := style.BodyText
		if i == 0 {
			family, face = fontFace(style.HeaderFont)
			size = style.HeaderSize
			fill = style.HeaderFill
			textColor = style.HeaderText
		}
		pdf.SetFont(family, face, size)
		pdf.SetFillColor(fill.R, fill.G, fill.B)
		pdf.SetTextColor(textColor.R, textColor.G, textColor.B)

		lineH := size * 1.5
		rowH := rowHeight(pdf, row, colW-2*pad, lineH) + 2*pad

		if pdf.GetY()+rowH > pageH-bm {
			pdf.AddPage()
		}

		x := lm
		y := pdf.GetY()
		for c := 0; c < cols; c++ {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			pdf.Rect(x, y, colW, rowH, "FD")
			pdf.SetXY(x+pad, y+pad)
			pdf.MultiCell(colW-2*pad, lineH, cell, "", "L", false)
			x += colW
		}
		pdf.SetXY(lm, y+rowH)
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
}

// rowHeight computes the tallest wrapped cell of a row.
func rowHeight(pdf *gofpdf.Fpdf, row []string, cellW, lineH float64) float64 {
	max := lineH
	for _, cell := range row {
		lines := pdf.SplitLines([]byte(cell), cellW)
		if h := float64(len(lines)) * lineH; h > max {
			max = h
		}
	}
	return max
}
