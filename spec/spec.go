// Package spec defines the wire-level document specification consumed by the
// PDF generation pipeline.
//
// A document is described declaratively: a title, an optional theme, an
// ordered list of pages, and an output location. Every page carries a
// page_type tag that selects its composition rule. The wire format keeps all
// page fields on one flat structure so the JSON schema stays uniform;
// Validate converts it into the closed Page sum type before composition.
//
// Example JSON:
//
//	{
//	  "title": "Technical Report",
//	  "theme": {},
//	  "pages": [
//	    {"page_type": "title", "title": "Technical Report", "author": "Jane Doe"},
//	    {"page_type": "content", "title": "Overview", "content": [
//	      {"type": "text", "text": "The system consists of..."},
//	      {"type": "bullet", "items": ["Component A", "Component B"]}
//	    ]}
//	  ],
//	  "output": {"directory": "/tmp/reports"}
//	}
package spec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for specification validation failures.
var (
	ErrNoTitle         = errors.New("spec: document title is required")
	ErrNoPages         = errors.New("spec: document must have at least one page")
	ErrUnknownPageKind = errors.New("spec: unknown page type")
)

// PageType tags a PageSpec with the composition rule that applies to it.
type PageType string

// Available page types.
const (
	PageTitle      PageType = "title"
	PageTOC        PageType = "toc"
	PageSection    PageType = "section"
	PageContent    PageType = "content"
	PageCode       PageType = "code"
	PageDiagram    PageType = "diagram"
	PageImage      PageType = "image"
	PageMermaid    PageType = "mermaid"
	PageSummary    PageType = "summary"
	PageReferences PageType = "references"
)

// ContentItem is one entry on a content page. The Type field determines
// which other fields are relevant: text, bullet, image, code, or table.
type ContentItem struct {
	Type         string     `json:"type"`
	Text         string     `json:"text,omitempty"`
	Items        []string   `json:"items,omitempty"`
	Code         string     `json:"code,omitempty"`
	Language     string     `json:"language,omitempty"`
	ImagePath    string     `json:"image_path,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	Caption      string     `json:"caption,omitempty"`
	TableData    [][]string `json:"table_data,omitempty"`
	TableHeaders []string   `json:"table_headers,omitempty"`
}

// Description holds a page description that may arrive as a single string or
// as a list of strings. Diagram-style pages render a list as bullets while
// image pages join it into one paragraph; the distinction is the reason the
// union survives past parsing.
type Description struct {
	Text  string
	Items []string
}

// IsList reports whether the description arrived as a list of strings.
func (d Description) IsList() bool { return d.Items != nil }

// Empty reports whether no description was supplied.
func (d Description) Empty() bool { return d.Text == "" && d.Items == nil }

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (d *Description) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &d.Items)
	}
	return json.Unmarshal(data, &d.Text)
}

// MarshalJSON emits the form the description arrived in.
func (d Description) MarshalJSON() ([]byte, error) {
	if d.IsList() {
		return json.Marshal(d.Items)
	}
	if d.Text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(d.Text)
}

// PageSpec is the flat wire representation of one page. Only the fields
// relevant to the page's type are read; the rest are ignored.
type PageSpec struct {
	Type PageType `json:"page_type"`

	// Title page fields (title doubles as the heading on every other kind)
	Title          string `json:"title,omitempty"`
	Subtitle       string `json:"subtitle,omitempty"`
	Author         string `json:"author,omitempty"`
	Date           string `json:"date,omitempty"`
	AdditionalInfo string `json:"additional_info,omitempty"`

	// TOC fields
	Entries []string `json:"entries,omitempty"`

	// Content fields
	Content []ContentItem `json:"content,omitempty"`

	// Code fields
	Code        string `json:"code,omitempty"`
	Language    string `json:"language,omitempty"`
	LineNumbers bool   `json:"line_numbers,omitempty"`

	// Image/Diagram fields
	ImagePath   string      `json:"image_path,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	DiagramPath string      `json:"diagram_path,omitempty"`
	DiagramURL  string      `json:"diagram_url,omitempty"`
	Caption     string      `json:"caption,omitempty"`
	Description Description `json:"description,omitempty"`

	// Mermaid fields
	MermaidCode string `json:"mermaid_code,omitempty"`

	// Summary fields
	KeyPoints  []string `json:"key_points,omitempty"`
	Conclusion string   `json:"conclusion,omitempty"`

	// References fields
	References []string `json:"references,omitempty"`
	Style      string   `json:"style,omitempty"`
}

// UnmarshalJSON handles the "image" shorthand field: its value is rewritten
// into diagram_url/diagram_path when the page type is "diagram", otherwise
// into image_url/image_path, chosen by whether the value starts with an
// HTTP(S) scheme.
func (p *PageSpec) UnmarshalJSON(data []byte) error {
	type pageSpec PageSpec
	aux := struct {
		*pageSpec
		Image string `json:"image,omitempty"`
	}{pageSpec: (*pageSpec)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Image == "" {
		return nil
	}
	isURL := strings.HasPrefix(aux.Image, "http://") || strings.HasPrefix(aux.Image, "https://")
	if p.Type == PageDiagram {
		if isURL {
			p.DiagramURL = aux.Image
		} else {
			p.DiagramPath = aux.Image
		}
	} else {
		if isURL {
			p.ImageURL = aux.Image
		} else {
			p.ImagePath = aux.Image
		}
	}
	return nil
}

// OutputSpec selects where the generated file is written. An empty directory
// defers to the generator's configured fallback; an empty filename is derived
// from the document title plus a timestamp.
type OutputSpec struct {
	Filename  string `json:"filename,omitempty"`
	Directory string `json:"directory,omitempty"`
}

// DocumentSpec is the complete specification of one PDF document.
type DocumentSpec struct {
	Title  string     `json:"title"`
	Theme  ThemeSpec  `json:"theme,omitempty"`
	Pages  []PageSpec `json:"pages"`
	Output OutputSpec `json:"output,omitempty"`
}

// Validate checks the document's structural invariants and converts every
// page into its typed variant. It fails on a missing title, an empty page
// list, or an unrecognized page type.
func (d *DocumentSpec) Validate() ([]Page, error) {
	if d.Title == "" {
		return nil, ErrNoTitle
	}
	if len(d.Pages) == 0 {
		return nil, ErrNoPages
	}
	pages := make([]Page, len(d.Pages))
	for i := range d.Pages {
		p, err := d.Pages[i].Page()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		pages[i] = p
	}
	return pages, nil
}
