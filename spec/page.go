package spec

import "fmt"

// Page is the validated, typed form of a PageSpec. Exactly one variant
// exists per page type; the composer dispatches on the concrete type.
type Page interface {
	Kind() PageType
}

// TitlePage is a document title page.
type TitlePage struct {
	Title          string
	Subtitle       string
	Author         string
	Date           string
	AdditionalInfo string
}

func (TitlePage) Kind() PageType { return PageTitle }

// TOCPage is a table of contents page.
type TOCPage struct {
	Title   string
	Entries []string
}

func (TOCPage) Kind() PageType { return PageTOC }

// SectionPage is a section divider page.
type SectionPage struct {
	Title    string
	Subtitle string
}

func (SectionPage) Kind() PageType { return PageSection }

// ContentPage is a page of mixed content items.
type ContentPage struct {
	Title string
	Items []ContentItem
}

func (ContentPage) Kind() PageType { return PageContent }

// CodePage is a page holding a single code listing.
type CodePage struct {
	Title       string
	Code        string
	Language    string
	LineNumbers bool
}

func (CodePage) Kind() PageType { return PageCode }

// DiagramPage embeds a pre-rendered diagram image.
type DiagramPage struct {
	Title       string
	Path        string
	URL         string
	Caption     string
	Description Description
}

func (DiagramPage) Kind() PageType { return PageDiagram }

// ImagePage embeds an image with an optional caption and description.
type ImagePage struct {
	Title       string
	Path        string
	URL         string
	Caption     string
	Description Description
}

func (ImagePage) Kind() PageType { return PageImage }

// MermaidPage carries Mermaid diagram source to be rendered externally.
type MermaidPage struct {
	Title       string
	Source      string
	Caption     string
	Description Description
}

func (MermaidPage) Kind() PageType { return PageMermaid }

// SummaryPage lists key points with an optional conclusion.
type SummaryPage struct {
	Title      string
	KeyPoints  []string
	Conclusion string
}

func (SummaryPage) Kind() PageType { return PageSummary }

// ReferencesPage lists references in a numbered, bulleted, or plain style.
// An omitted wire style means numbered.
type ReferencesPage struct {
	Title      string
	References []string
	Style      string
}

func (ReferencesPage) Kind() PageType { return PageReferences }

// Page converts the flat wire structure into its typed variant, reading only
// the fields relevant to the page's type.
func (p *PageSpec) Page() (Page, error) {
	switch p.Type {
	case PageTitle:
		return TitlePage{
			Title:          p.Title,
			Subtitle:       p.Subtitle,
			Author:         p.Author,
			Date:           p.Date,
			AdditionalInfo: p.AdditionalInfo,
		}, nil
	case PageTOC:
		return TOCPage{Title: p.Title, Entries: p.Entries}, nil
	case PageSection:
		return SectionPage{Title: p.Title, Subtitle: p.Subtitle}, nil
	case PageContent:
		return ContentPage{Title: p.Title, Items: p.Content}, nil
	case PageCode:
		return CodePage{
			Title:       p.Title,
			Code:        p.Code,
			Language:    p.Language,
			LineNumbers: p.LineNumbers,
		}, nil
	case PageDiagram:
		return DiagramPage{
			Title:       p.Title,
			Path:        p.DiagramPath,
			URL:         p.DiagramURL,
			Caption:     p.Caption,
			Description: p.Description,
		}, nil
	case PageImage:
		return ImagePage{
			Title:       p.Title,
			Path:        p.ImagePath,
			URL:         p.ImageURL,
			Caption:     p.Caption,
			Description: p.Description,
		}, nil
	case PageMermaid:
		return MermaidPage{
			Title:       p.Title,
			Source:      p.MermaidCode,
			Caption:     p.Caption,
			Description: p.Description,
		}, nil
	case PageSummary:
		return SummaryPage{Title: p.Title, KeyPoints: p.KeyPoints, Conclusion: p.Conclusion}, nil
	case PageReferences:
		style := p.Style
		if style == "" {
			style = "numbered"
		}
		return ReferencesPage{Title: p.Title, References: p.References, Style: style}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPageKind, p.Type)
	}
}
