package mcppdf

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexh-scrt/mcp-pdf/mermaid"
)

// Option is a functional option for configuring a Generator via New.
type Option func(*Generator)

// WithFallbackDir sets the directory used when the requested output
// directory is not writable. Defaults to $OUTPUT_DIR, or ~/pdf-output when
// unset.
func WithFallbackDir(dir string) Option {
	return func(g *Generator) {
		g.fallbackDir = dir
	}
}

// WithHTTPClient sets the client used to download remote image assets.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Generator) {
		g.client = client
	}
}

// WithDiagramRenderer sets the renderer used for mermaid pages. Defaults to
// the mermaid-cli subprocess renderer.
func WithDiagramRenderer(r mermaid.Renderer) Option {
	return func(g *Generator) {
		g.diagrams = r
	}
}

// WithLogger sets the generator's logger. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// WithClock overrides the time source used for derived filenames.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}
