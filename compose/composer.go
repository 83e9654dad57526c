package compose

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog"

	"github.com/alexh-scrt/mcp-pdf/assets"
	"github.com/alexh-scrt/mcp-pdf/mermaid"
	"github.com/alexh-scrt/mcp-pdf/spec"
)

const bullet = "•"

// codeWrapHint is the maximum line length passed to the backend for
// preformatted blocks.
const codeWrapHint = 100

// mermaidFailure is the inline placeholder shown when diagram rendering
// fails; the run continues.
const mermaidFailure = "[Failed to render Mermaid diagram. Please ensure @mermaid-js/mermaid-cli is installed]"

// Composer turns typed pages into flowable sequences. One Composer serves
// one generation run: it shares the run's style table, asset tracker, and
// diagram renderer across pages.
type Composer struct {
	styles   *StyleTable
	assets   *assets.Tracker
	diagrams mermaid.Renderer
	log      zerolog.Logger
}

// New creates a Composer for one run.
func New(styles *StyleTable, tracker *assets.Tracker, diagrams mermaid.Renderer, log zerolog.Logger) *Composer {
	return &Composer{styles: styles, assets: tracker, diagrams: diagrams, log: log}
}

// Compose produces the primitive sequence for one page. The sequence always
// ends with a PageBreak. An unrecognized page variant is a fatal error; all
// asset and diagram failures degrade to inline placeholder paragraphs.
func (c *Composer) Compose(ctx context.Context, page spec.Page) ([]Flowable, error) {
	switch p := page.(type) {
	case spec.TitlePage:
		return c.titlePage(p), nil
	case spec.TOCPage:
		return c.tocPage(p), nil
	case spec.SectionPage:
		return c.sectionPage(p), nil
	case spec.ContentPage:
		return c.contentPage(ctx, p), nil
	case spec.CodePage:
		return c.codePage(p), nil
	case spec.DiagramPage:
		return c.diagramPage(ctx, p), nil
	case spec.ImagePage:
		return c.imagePage(ctx, p), nil
	case spec.MermaidPage:
		return c.mermaidPage(ctx, p), nil
	case spec.SummaryPage:
		return c.summaryPage(p), nil
	case spec.ReferencesPage:
		return c.referencesPage(p), nil
	default:
		return nil, fmt.Errorf("%w: %q", spec.ErrUnknownPageKind, page.Kind())
	}
}

func (c *Composer) titlePage(p spec.TitlePage) []Flowable {
	c.log.Debug().Str("title", p.Title).Msg("composing title page")

	flow := []Flowable{
		Spacer{Height: 2 * inch},
		Paragraph{Text: p.Title, Style: c.styles.Title},
	}
	if p.Subtitle != "" {
		flow = append(flow,
			Paragraph{Text: p.Subtitle, Style: c.styles.Subtitle},
			Spacer{Height: 0.3 * inch},
		)
	}
	if p.Author != "" {
		flow = append(flow, Paragraph{Text: p.Author, Style: c.styles.Body})
	}
	if p.Date != "" {
		flow = append(flow, Paragraph{Text: p.Date, Style: c.styles.Body})
	}
	if p.AdditionalInfo != "" {
		flow = append(flow,
			Spacer{Height: 0.5 * inch},
			Paragraph{Text: p.AdditionalInfo, Style: c.styles.Body},
		)
	}
	return append(flow, PageBreak{})
}

func (c *Composer) tocPage(p spec.TOCPage) []Flowable {
	c.log.Debug().Msg("composing toc page")

	title := p.Title
	if title == "" {
		title = "Table of Contents"
	}
	flow := []Flowable{
		Paragraph{Text: title, Style: c.styles.H1},
		Spacer{Height: 0.2 * inch},
	}
	for _, entry := range p.Entries {
		flow = append(flow, Paragraph{Text: entry, Style: c.styles.Bullet})
	}
	return append(flow, PageBreak{})
}

// sectionPage uses the title style, not a heading style: section dividers
// are visually mini title pages.
func (c *Composer) sectionPage(p spec.SectionPage) []Flowable {
	c.log.Debug().Str("title", p.Title).Msg("composing section page")

	flow := []Flowable{
		Spacer{Height: 2.5 * inch},
		Paragraph{Text: p.Title, Style: c.styles.Title},
	}
	if p.Subtitle != "" {
		flow = append(flow, Paragraph{Text: p.Subtitle, Style: c.styles.Subtitle})
	}
	return append(flow, PageBreak{})
}

func (c *Composer) contentPage(ctx context.Context, p spec.ContentPage) []Flowable {
	c.log.Debug().Str("title", p.Title).Msg("composing content page")

	flow := []Flowable{
		Paragraph{Text: p.Title, Style: c.styles.H1},
		Spacer{Height: 0.2 * inch},
	}
	for _, item := range p.Items {
		flow = append(flow, c.contentItem(ctx, item)...)
	}
	return append(flow, PageBreak{})
}

// contentItem composes one item. An unrecognized item type is ignored by
// policy, not an error.
func (c *Composer) contentItem(ctx context.Context, item spec.ContentItem) []Flowable {
	switch item.Type {
	case "text":
		if item.Text == "" {
			return nil
		}
		return []Flowable{Paragraph{Text: item.Text, Style: c.styles.Body}}
	case "bullet":
		var flow []Flowable
		for _, entry := range item.Items {
			flow = append(flow, Paragraph{Text: bullet + " " + entry, Style: c.styles.Bullet})
		}
		return flow
	case "image":
		ref := item.ImagePath
		if ref == "" {
			ref = item.ImageURL
		}
		if ref == "" {
			return nil
		}
		return c.image(ctx, ref, item.Caption)
	case "code":
		if item.Code == "" {
			return nil
		}
		return c.codeBlock(item.Code, false)
	case "table":
		if len(item.TableData) == 0 {
			return nil
		}
		return c.table(item.TableData, item.TableHeaders)
	default:
		c.log.Debug().Str("type", item.Type).Msg("ignoring unrecognized content item")
		return nil
	}
}

func (c *Composer) codePage(p spec.CodePage) []Flowable {
	c.log.Debug().Str("title", p.Title).Msg("composing code page")

	flow := []Flowable{
		Paragraph{Text: p.Title, Style: c.styles.H1},
		Spacer{Height: 0.2 * inch},
	}
	if p.Code != "" {
		flow = append(flow, c.codeBlock(p.Code, p.LineNumbers)...)
	}
	return append(flow, PageBreak{})
}

// codeBlock renders code as one preformatted block. With line numbering
// every source line is prefixed with a right-aligned 4-digit 1-based number.
func (c *Composer) codeBlock(code string, lineNumbers bool) []Flowable {
	if lineNumbers {
		lines := strings.Split(code, "\n")
		numbered := make([]string, len(lines))
		for i, line := range lines {
			numbered[i] = fmt.Sprintf("%4d  %s", i+1, line)
		}
		code = strings.Join(numbered, "\n")
	}
	return []Flowable{
		Preformatted{Text: code, Style: c.styles.Code, MaxLineLen: codeWrapHint},
		Spacer{Height: 0.2 * inch},
	}
}

// diagramPage embeds a diagram image; a path takes precedence over a URL
// when both are set. A list description renders as bullets, a string as one
// justified paragraph.
func (c *Composer) diagramPage(ctx context.Context, p spec.DiagramPage) []Flowable {
	c.log.Debug().Str("title", p.Title).Msg("composing diagram page")

	flow := []Flowable{
		Paragraph{Text: p.Title, Style: c.styles.H1},
		Spacer{Height: 0.2 * inch},
	}
	ref := p.Path
	if ref == "" {
		ref = p.URL
	}
	if ref != "" {
		flow = append(flow, c.image(ctx, ref, p.Caption)...)
	}
	if !p.Description.Empty() {
		flow = append(flow, Spacer{Height: 0.2 * inch})
		if p.Description.IsList() {
			for _, desc := range p.Description.Items {
				flow = append(flow, Paragraph{Text: bullet + " " + desc, Style: c.styles.Bullet})
			}
		} else {
			flow = append(flow, Paragraph{Text: p.Description.Text, Style: c.styles.Body})
		}
	}
	return append(flow, PageBreak{})
}

// imagePage mirrors diagramPage except a list description is joined with
// line breaks into one paragraph rather than rendered as bullets.
func (c *Composer) imagePage(ctx context.Context, p spec.ImagePage) []Flowable {
	c.log.Debug().Str("title", p.Title).Msg("composing image page")

	flow := []Flowable{
		Paragraph{Text: p.Title, Style: c.styles.H1},
		Spacer{Height: 0.2 * inch},
	}
	ref := p.Path
	if ref == "" {
		ref = p.URL
	}
	if ref != "" {
		flow = append(flow, c.image(ctx, ref, p.Caption)...)
	}
	if !p.Description.Empty() {
		text := p.Description.Text
		if p.Description.IsList() {
			text = strings.Join(p.Description.Items, "\n")
		}
		flow = append(flow,
			Spacer{Height: 0.2 * inch},
			Paragraph{Text: text, Style: c.styles.Body},
		)
	}
	return append(flow, PageBreak{})
}

func (c *Composer) mermaidPage(ctx context.Context, p spec.MermaidPage) []Flowable {
	c.log.Debug().Str("title", p.Title).Msg("composing mermaid page")

	flow := []Flowable{
		Paragraph{Text: p.Title, Style: c.styles.H1},
		Spacer{Height: 0.2 * inch},
	}
	if p.Source != "" {
		path, err := c.diagrams.Render(ctx, p.Source)
		if err != nil {
			c.log.Error().Err(err).Msg("mermaid render failed")
			flow = append(flow, Paragraph{Text: mermaidFailure, Style: c.styles.Body})
		} else {
			c.assets.Track(path)
			flow = append(flow, c.image(ctx, path, p.Caption)...)
		}
	}
	if !p.Description.Empty() {
		flow = append(flow, Spacer{Height: 0.2 * inch})
		if p.Description.IsList() {
			for _, desc := range p.Description.Items {
				flow = append(flow, Paragraph{Text: bullet + " " + desc, Style: c.styles.Bullet})
			}
		} else {
			flow = append(flow, Paragraph{Text: p.Description.Text, Style: c.styles.Body})
		}
	}
	return append(flow, PageBreak{})
}

func (c *Composer) summaryPage(p spec.SummaryPage) []Flowable {
	c.log.Debug().Msg("composing summary page")

	title := p.Title
	if title == "" {
		title = "Summary"
	}
	flow := []Flowable{
		Paragraph{Text: title, Style: c.styles.H1},
		Spacer{Height: 0.2 * inch},
	}
	for _, point := range p.KeyPoints {
		flow = append(flow, Paragraph{Text: bullet + " " + point, Style: c.styles.Bullet})
	}
	if p.Conclusion != "" {
		flow = append(flow,
			Spacer{Height: 0.3 * inch},
			Paragraph{Text: p.Conclusion, Style: c.styles.Body},
		)
	}
	return append(flow, PageBreak{})
}

func (c *Composer) referencesPage(p spec.ReferencesPage) []Flowable {
	c.log.Debug().Msg("composing references page")

	title := p.Title
	if title == "" {
		title = "References"
	}
	flow := []Flowable{
		Paragraph{Text: title, Style: c.styles.H1},
		Spacer{Height: 0.2 * inch},
	}
	for i, ref := range p.References {
		switch p.Style {
		case "numbered":
			flow = append(flow, Paragraph{Text: fmt.Sprintf("%d. %s", i+1, ref), Style: c.styles.Body})
		case "bulleted":
			flow = append(flow, Paragraph{Text: bullet + " " + ref, Style: c.styles.Bullet})
		default:
			flow = append(flow, Paragraph{Text: ref, Style: c.styles.Body})
		}
	}
	return append(flow, PageBreak{})
}

// image resolves a reference through the asset tracker and emits an image
// primitive with an optional caption. Failures degrade to inline placeholder
// paragraphs so the rest of the document is unaffected.
func (c *Composer) image(ctx context.Context, ref, caption string) []Flowable {
	local, err := c.assets.Acquire(ctx, ref)
	if err != nil {
		c.log.Warn().Str("ref", ref).Err(err).Msg("asset download failed")
		return []Flowable{Paragraph{
			Text:  fmt.Sprintf("[Failed to download image from: %s]", ref),
			Style: c.styles.Body,
		}}
	}
	if _, err := os.Stat(local); err != nil {
		c.log.Warn().Str("path", local).Msg("image not found")
		return []Flowable{Paragraph{
			Text:  fmt.Sprintf("[Image not found: %s]", ref),
			Style: c.styles.Body,
		}}
	}
	// A file the backend cannot decode would fail the whole run; degrade to
	// a placeholder here instead.
	if err := checkDecodable(local); err != nil {
		c.log.Error().Str("path", local).Err(err).Msg("image not decodable")
		return []Flowable{Paragraph{
			Text:  fmt.Sprintf("[Error loading image: %v]", err),
			Style: c.styles.Body,
		}}
	}
	flow := []Flowable{Image{Path: local, Width: 4 * inch, Height: 3 * inch}}
	if caption != "" {
		flow = append(flow,
			Spacer{Height: 0.1 * inch},
			Paragraph{Text: caption, Style: c.styles.Caption},
		)
	}
	return flow
}

// checkDecodable confirms the file holds an image in a format the backend
// can embed (PNG, JPEG, or GIF).
func checkDecodable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, _, err := image.DecodeConfig(f); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// table prepends the headers (if any) as the first row and applies the band
// styling: the first row always gets the header band, explicit header or not.
func (c *Composer) table(data [][]string, headers []string) []Flowable {
	rows := data
	if len(headers) > 0 {
		rows = append([][]string{headers}, data...)
	}
	return []Flowable{
		Table{Rows: rows, Style: c.styles.TableStyle()},
		Spacer{Height: 0.2 * inch},
	}
}
