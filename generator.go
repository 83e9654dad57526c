package mcppdf

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexh-scrt/mcp-pdf/assets"
	"github.com/alexh-scrt/mcp-pdf/compose"
	"github.com/alexh-scrt/mcp-pdf/mermaid"
	"github.com/alexh-scrt/mcp-pdf/render"
	"github.com/alexh-scrt/mcp-pdf/spec"
)

// Generator is the pipeline driver. A single Generator may serve many
// sequential runs; each run owns its own composer and asset tracker, so
// concurrent runs on separate Generators are independent.
type Generator struct {
	fallbackDir string
	client      *http.Client
	diagrams    mermaid.Renderer
	log         zerolog.Logger
	now         func() time.Time
}

// Result is the structured outcome of one generation run. On success Output
// holds the absolute path of the generated file; when the output directory
// fell back, Message carries a human-readable advisory.
type Result struct {
	OK             bool   `json:"ok"`
	Output         string `json:"output,omitempty"`
	PagesGenerated int    `json:"pages_generated"`
	Filename       string `json:"filename,omitempty"`
	Message        string `json:"message,omitempty"`
}

// New creates a Generator with default collaborators.
func New(opts ...Option) *Generator {
	g := &Generator{
		fallbackDir: DefaultFallbackDir(),
		log:         zerolog.Nop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.diagrams == nil {
		g.diagrams = mermaid.NewCLI(mermaid.WithLogger(g.log))
	}
	return g
}

// Generate runs the whole pipeline for one document specification: validate,
// resolve theme and output location, compose every page in order, render the
// file, and clean up temporary assets. On any fatal error no output file is
// left behind.
func (g *Generator) Generate(ctx context.Context, doc spec.DocumentSpec) (*Result, error) {
	g.log.Info().Str("title", doc.Title).Int("pages", len(doc.Pages)).Msg("starting generation")

	pages, err := doc.Validate()
	if err != nil {
		return nil, newGenerateError("Validate", err)
	}

	theme := doc.Theme.Resolve()
	styles := compose.NewStyleTable(theme)

	dir, advisory, err := g.resolveOutputDir(doc.Output.Directory)
	if err != nil {
		return nil, newGenerateError("ResolveOutput", err)
	}

	filename := doc.Output.Filename
	if filename == "" {
		filename = deriveFilename(doc.Title, g.now())
	}
	outPath, err := filepath.Abs(filepath.Join(dir, filename))
	if err != nil {
		return nil, newGenerateError("ResolveOutput", err)
	}

	tracker := assets.NewTracker(g.client, g.log)
	defer tracker.Cleanup()

	composer := compose.New(styles, tracker, g.diagrams, g.log)

	var flow []compose.Flowable
	composed := 0
	for i, page := range pages {
		pageFlow, err := composer.Compose(ctx, page)
		if err != nil {
			g.log.Error().Int("page", i+1).Err(err).Msg("page composition failed")
			return nil, newGenerateError("Compose", err)
		}
		flow = append(flow, pageFlow...)
		composed++
	}

	if err := render.WriteFile(outPath, theme, flow); err != nil {
		return nil, newGenerateError("Render", err)
	}
	g.log.Info().Str("output", outPath).Int("pages", composed).Msg("generation complete")

	return &Result{
		OK:             true,
		Output:         outPath,
		PagesGenerated: composed,
		Filename:       filename,
		Message:        advisory,
	}, nil
}
