package compose

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alexh-scrt/mcp-pdf/assets"
	"github.com/alexh-scrt/mcp-pdf/spec"
)

type stubRenderer struct {
	path string
	err  error
}

func (s stubRenderer) Render(context.Context, string) (string, error) {
	return s.path, s.err
}

func newTestComposer(t *testing.T, diagrams stubRenderer) *Composer {
	t.Helper()
	styles := NewStyleTable(spec.DefaultTheme())
	tracker := assets.NewTracker(nil, zerolog.Nop())
	t.Cleanup(tracker.Cleanup)
	return New(styles, tracker, diagrams, zerolog.Nop())
}

func writeTempImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating temp image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("writing temp image: %v", err)
	}
	return path
}

func paragraphTexts(flow []Flowable) []string {
	var texts []string
	for _, f := range flow {
		if p, ok := f.(Paragraph); ok {
			texts = append(texts, p.Text)
		}
	}
	return texts
}

func TestComposeEndsWithPageBreak(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})
	pages := []spec.Page{
		spec.TitlePage{Title: "Report"},
		spec.TOCPage{Entries: []string{"One"}},
		spec.SectionPage{Title: "Part I"},
		spec.ContentPage{Title: "Details"},
		spec.CodePage{Title: "Listing", Code: "x = 1"},
		spec.SummaryPage{KeyPoints: []string{"done"}},
		spec.ReferencesPage{References: []string{"RFC 8259"}},
	}

	for _, page := range pages {
		flow, err := c.Compose(context.Background(), page)
		if err != nil {
			t.Fatalf("Compose(%s) failed: %v", page.Kind(), err)
		}
		if len(flow) == 0 {
			t.Fatalf("Compose(%s) returned empty flow", page.Kind())
		}
		if _, ok := flow[len(flow)-1].(PageBreak); !ok {
			t.Errorf("Compose(%s) does not end with a PageBreak, got %T", page.Kind(), flow[len(flow)-1])
		}
	}
}

func TestComposeMultiPageBreakCount(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})
	pages := []spec.Page{
		spec.TitlePage{Title: "Doc"},
		spec.ContentPage{Title: "A", Items: []spec.ContentItem{{Type: "text", Text: "a"}}},
		spec.ContentPage{Title: "B", Items: []spec.ContentItem{{Type: "text", Text: "b"}}},
		spec.SummaryPage{KeyPoints: []string{"x"}},
	}

	var flow []Flowable
	for _, page := range pages {
		pageFlow, err := c.Compose(context.Background(), page)
		if err != nil {
			t.Fatalf("Compose(%s) failed: %v", page.Kind(), err)
		}
		flow = append(flow, pageFlow...)
	}

	breaks := 0
	for _, f := range flow {
		if _, ok := f.(PageBreak); ok {
			breaks++
		}
	}
	if breaks != len(pages) {
		t.Errorf("page breaks = %d, want one per page (%d)", breaks, len(pages))
	}

	// Page headings appear in input order.
	got := paragraphTexts(flow)
	order := []string{"Doc", "A", "a", "B", "b", "Summary", "• x"}
	if len(got) != len(order) {
		t.Fatalf("paragraphs = %v, want %v", got, order)
	}
	for i := range order {
		if got[i] != order[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], order[i])
		}
	}
}

func TestComposeTitlePage(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})
	flow, err := c.Compose(context.Background(), spec.TitlePage{
		Title:          "Annual Report",
		Subtitle:       "FY 2026",
		Author:         "Jane Doe",
		Date:           "2026-08-28",
		AdditionalInfo: "Confidential",
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if _, ok := flow[0].(Spacer); !ok {
		t.Errorf("expected leading spacer, got %T", flow[0])
	}
	got := paragraphTexts(flow)
	want := []string{"Annual Report", "FY 2026", "Jane Doe", "2026-08-28", "Confidential"}
	if len(got) != len(want) {
		t.Fatalf("got paragraphs %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestComposeTOCDefaultTitle(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})
	flow, err := c.Compose(context.Background(), spec.TOCPage{Entries: []string{"Intro", "Usage"}})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	got := paragraphTexts(flow)
	if got[0] != "Table of Contents" {
		t.Errorf("default toc title = %q", got[0])
	}
	// TOC entries are indented but carry no bullet glyph.
	if got[1] != "Intro" || got[2] != "Usage" {
		t.Errorf("toc entries = %v", got[1:])
	}
}

func TestComposeCodeLineNumbers(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})
	flow, err := c.Compose(context.Background(), spec.CodePage{
		Title:       "Listing",
		Code:        "a\nb\nc",
		LineNumbers: true,
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	var pre *Preformatted
	for _, f := range flow {
		if p, ok := f.(Preformatted); ok {
			pre = &p
			break
		}
	}
	if pre == nil {
		t.Fatal("no preformatted block in flow")
	}
	want := "   1  a\n   2  b\n   3  c"
	if pre.Text != want {
		t.Errorf("numbered code = %q, want %q", pre.Text, want)
	}
}

func TestComposeCodeWithoutLineNumbers(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})
	flow, err := c.Compose(context.Background(), spec.CodePage{Title: "Listing", Code: "a\nb"})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	for _, f := range flow {
		if p, ok := f.(Preformatted); ok {
			if p.Text != "a\nb" {
				t.Errorf("code = %q, want unnumbered source", p.Text)
			}
			return
		}
	}
	t.Fatal("no preformatted block in flow")
}

func TestComposeContentItems(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})
	img := writeTempImage(t)
	flow, err := c.Compose(context.Background(), spec.ContentPage{
		Title: "Mixed",
		Items: []spec.ContentItem{
			{Type: "text", Text: "intro"},
			{Type: "bullet", Items: []string{"one", "two"}},
			{Type: "image", ImagePath: img, Caption: "Figure 1"},
			{Type: "code", Code: "x = 1"},
			{Type: "table", TableData: [][]string{{"a", "b"}}, TableHeaders: []string{"H1", "H2"}},
			{Type: "video", Text: "ignored"},
		},
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	got := paragraphTexts(flow)
	want := []string{"Mixed", "intro", "• one", "• two", "Figure 1"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("paragraphs = %v, want prefix %v", got, want)
		}
	}
	for _, text := range got {
		if text == "ignored" {
			t.Error("unrecognized content item was not ignored")
		}
	}

	var hasImage, hasPre, hasTable bool
	for _, f := range flow {
		switch f.(type) {
		case Image:
			hasImage = true
		case Preformatted:
			hasPre = true
		case Table:
			hasTable = true
		}
	}
	if !hasImage || !hasPre || !hasTable {
		t.Errorf("flow missing primitives: image=%v pre=%v table=%v", hasImage, hasPre, hasTable)
	}
}

func TestComposeDiagramDescriptionList(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})
	img := writeTempImage(t)
	flow, err := c.Compose(context.Background(), spec.DiagramPage{
		Title:       "Architecture",
		Path:        img,
		Description: spec.Description{Items: []string{"layer one", "layer two"}},
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	got := paragraphTexts(flow)
	var bullets []string
	for _, text := range got {
		if strings.HasPrefix(text, "• ") {
			bullets = append(bullets, text)
		}
	}
	if len(bullets) != 2 {
		t.Fatalf("diagram list description should render as bullets, got %v", got)
	}
}

func TestComposeImageDescriptionListJoined(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})
	img := writeTempImage(t)
	flow, err := c.Compose(context.Background(), spec.ImagePage{
		Title:       "Photo",
		Path:        img,
		Description: spec.Description{Items: []string{"line one", "line two"}},
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	got := paragraphTexts(flow)
	found := false
	for _, text := range got {
		if text == "line one\nline two" {
			found = true
		}
		if strings.HasPrefix(text, "• ") {
			t.Errorf("image list description must not render bullets, got %q", text)
		}
	}
	if !found {
		t.Fatalf("joined description paragraph missing, got %v", got)
	}
}

func TestComposeDiagramPathWinsOverURL(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})
	img := writeTempImage(t)
	flow, err := c.Compose(context.Background(), spec.DiagramPage{
		Title: "Arch",
		Path:  img,
		URL:   "https://example.invalid/unreachable.png",
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	for _, f := range flow {
		if im, ok := f.(Image); ok {
			if im.Path != img {
				t.Errorf("image path = %q, want local path %q", im.Path, img)
			}
			return
		}
	}
	t.Fatal("no image primitive; the URL must not have been attempted")
}

func TestComposeMissingImagePlaceholder(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})
	flow, err := c.Compose(context.Background(), spec.ImagePage{
		Title: "Photo",
		Path:  "/nonexistent/img.png",
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	got := paragraphTexts(flow)
	want := "[Image not found: /nonexistent/img.png]"
	for _, text := range got {
		if text == want {
			return
		}
	}
	t.Fatalf("placeholder %q missing, got %v", want, got)
}

func TestComposeCorruptImagePlaceholder(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})
	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, []byte("not a real png"), 0o644); err != nil {
		t.Fatal(err)
	}

	flow, err := c.Compose(context.Background(), spec.ImagePage{Title: "Photo", Path: bad})
	if err != nil {
		t.Fatalf("a corrupt image must not abort the page: %v", err)
	}

	for _, f := range flow {
		if _, ok := f.(Image); ok {
			t.Fatal("corrupt file must not be embedded")
		}
	}
	for _, text := range paragraphTexts(flow) {
		if strings.HasPrefix(text, "[Error loading image:") {
			return
		}
	}
	t.Fatalf("placeholder paragraph missing, got %v", paragraphTexts(flow))
}

func TestComposeMermaidSuccess(t *testing.T) {
	img := writeTempImage(t)
	c := newTestComposer(t, stubRenderer{path: img})
	flow, err := c.Compose(context.Background(), spec.MermaidPage{
		Title:  "Flow",
		Source: "graph TD; A-->B",
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	for _, f := range flow {
		if im, ok := f.(Image); ok {
			if im.Path != img {
				t.Errorf("image path = %q, want %q", im.Path, img)
			}
			return
		}
	}
	t.Fatal("no image primitive in flow")
}

func TestComposeMermaidFailurePlaceholder(t *testing.T) {
	c := newTestComposer(t, stubRenderer{err: errors.New("mmdc exploded")})
	flow, err := c.Compose(context.Background(), spec.MermaidPage{
		Title:  "Flow",
		Source: "graph TD; A-->B",
	})
	if err != nil {
		t.Fatalf("render failure must not abort the page: %v", err)
	}

	got := paragraphTexts(flow)
	for _, text := range got {
		if strings.Contains(text, "Failed to render Mermaid diagram") {
			return
		}
	}
	t.Fatalf("placeholder paragraph missing, got %v", got)
}

func TestComposeReferencesStyles(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})
	refs := []string{"Alpha", "Beta"}

	tests := []struct {
		style string
		want  []string
	}{
		{"numbered", []string{"1. Alpha", "2. Beta"}},
		{"bulleted", []string{"• Alpha", "• Beta"}},
		{"plain", []string{"Alpha", "Beta"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("style=%q", tt.style), func(t *testing.T) {
			flow, err := c.Compose(context.Background(), spec.ReferencesPage{
				References: refs,
				Style:      tt.style,
			})
			if err != nil {
				t.Fatalf("Compose failed: %v", err)
			}
			got := paragraphTexts(flow)
			// got[0] is the default "References" heading.
			if got[0] != "References" {
				t.Errorf("default title = %q", got[0])
			}
			for i, want := range tt.want {
				if got[i+1] != want {
					t.Errorf("reference %d = %q, want %q", i, got[i+1], want)
				}
			}
		})
	}
}

func TestComposeReferencesOmittedStyleIsNumbered(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})

	// An omitted wire style reaches the composer as "numbered" after
	// conversion.
	wire := spec.PageSpec{Type: spec.PageReferences, References: []string{"Alpha"}}
	page, err := wire.Page()
	if err != nil {
		t.Fatalf("Page conversion failed: %v", err)
	}

	flow, err := c.Compose(context.Background(), page)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	got := paragraphTexts(flow)
	if len(got) < 2 || got[1] != "1. Alpha" {
		t.Errorf("paragraphs = %v, want numbered entry \"1. Alpha\"", got)
	}
}

func TestComposeTableHeaderRow(t *testing.T) {
	c := newTestComposer(t, stubRenderer{})
	flow, err := c.Compose(context.Background(), spec.ContentPage{
		Title: "Data",
		Items: []spec.ContentItem{{
			Type:         "table",
			TableData:    [][]string{{"1", "2"}},
			TableHeaders: []string{"A", "B"},
		}},
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	for _, f := range flow {
		if tbl, ok := f.(Table); ok {
			if len(tbl.Rows) != 2 {
				t.Fatalf("rows = %d, want headers prepended as first row", len(tbl.Rows))
			}
			if tbl.Rows[0][0] != "A" {
				t.Errorf("first row = %v, want headers", tbl.Rows[0])
			}
			return
		}
	}
	t.Fatal("no table primitive in flow")
}
