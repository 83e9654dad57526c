// Package mermaid renders Mermaid diagram source to raster images by
// invoking the mermaid-cli (mmdc) tool.
package mermaid

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RenderTimeout is the hard ceiling on one render invocation.
const RenderTimeout = 30 * time.Second

// Sentinel errors distinguishing render failure modes.
var (
	// ErrRendererNotFound means the external tool is not installed. It is
	// reported distinctly so operators can tell a missing dependency from a
	// malformed diagram.
	ErrRendererNotFound = errors.New("mermaid: mmdc not found, install @mermaid-js/mermaid-cli")

	// ErrRenderTimeout means the tool ran past the render deadline.
	ErrRenderTimeout = errors.New("mermaid: render timed out")
)

// Renderer renders diagram source text to a local raster file. The returned
// path points at a temporary file the caller is responsible for tracking
// and removing.
type Renderer interface {
	Render(ctx context.Context, source string) (string, error)
}

// CLI renders diagrams by shelling out to mmdc through npx.
type CLI struct {
	command string
	args    []string
	timeout time.Duration
	log     zerolog.Logger
}

// CLIOption configures a CLI renderer.
type CLIOption func(*CLI)

// WithCommand overrides the renderer executable and its leading arguments.
func WithCommand(command string, args ...string) CLIOption {
	return func(c *CLI) {
		c.command = command
		c.args = args
	}
}

// WithTimeout overrides the render deadline.
func WithTimeout(d time.Duration) CLIOption {
	return func(c *CLI) {
		c.timeout = d
	}
}

// WithLogger sets the renderer's logger.
func WithLogger(log zerolog.Logger) CLIOption {
	return func(c *CLI) {
		c.log = log
	}
}

// NewCLI creates a renderer invoking "npx -p @mermaid-js/mermaid-cli mmdc"
// with the standard timeout.
func NewCLI(opts ...CLIOption) *CLI {
	c := &CLI{
		command: "npx",
		args:    []string{"-p", "@mermaid-js/mermaid-cli", "mmdc"},
		timeout: RenderTimeout,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render writes the source to a temporary .mmd file, invokes the tool with
// a transparent background, and returns the path of the rendered PNG. The
// input file is always removed; the output file is removed on every failure
// path, including timeout.
func (c *CLI) Render(ctx context.Context, source string) (string, error) {
	in, err := os.CreateTemp("", "mcp-pdf-*.mmd")
	if err != nil {
		return "", fmt.Errorf("mermaid: creating input file: %w", err)
	}
	if _, err := in.WriteString(source); err != nil {
		in.Close()
		os.Remove(in.Name())
		return "", fmt.Errorf("mermaid: writing input file: %w", err)
	}
	if err := in.Close(); err != nil {
		os.Remove(in.Name())
		return "", fmt.Errorf("mermaid: writing input file: %w", err)
	}
	defer os.Remove(in.Name())

	out := filepath.Join(os.TempDir(), "mcp-pdf-"+uuid.NewString()+".png")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := append(append([]string{}, c.args...), "-i", in.Name(), "-o", out, "-b", "transparent")
	c.log.Debug().Str("command", c.command).Strs("args", args).Msg("rendering mermaid diagram")

	cmd := exec.CommandContext(ctx, c.command, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(out)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.log.Error().Dur("timeout", c.timeout).Msg("mmdc timed out")
			return "", ErrRenderTimeout
		}
		if errors.Is(err, exec.ErrNotFound) {
			c.log.Error().Msg("mmdc not found on PATH")
			return "", ErrRendererNotFound
		}
		c.log.Error().Err(err).Str("output", string(output)).Msg("mmdc failed")
		return "", fmt.Errorf("mermaid: mmdc failed: %w: %s", err, output)
	}

	c.log.Info().Str("path", out).Msg("rendered mermaid diagram")
	return out, nil
}
