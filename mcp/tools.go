package mcp

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/alexh-scrt/mcp-pdf/spec"
)

const generateDescription = `Generate a themed PDF document with various page types.

SUPPORTED PAGE TYPES:
- title: Title page with title, subtitle, author, date, and additional info
- toc: Table of Contents page with entries
- section: Section divider page with title and optional subtitle
- content: Content page with title and content items (text, bullets, images, tables, code)
- code: Code page with optional line numbers
- diagram: Diagram page with image and optional description bullets
- image: Image page with caption and description
- mermaid: Mermaid diagram page - converts Mermaid code to an image in the PDF
- summary: Summary page with key points and conclusion
- references: References page (numbered, bulleted, or plain)

THEME CUSTOMIZATION:
The theme object allows you to customize:
- colors: primary, secondary, accent, background, text, code_bg (all hex colors)
- fonts: heading, body, code (font names like Helvetica-Bold, Courier)
- Typography: title_font_size, subtitle_font_size, h1/h2/h3_font_size, body_font_size, code_font_size
- Spacing: line_spacing, paragraph_spacing
- Page settings: page dimensions and margins

Leave theme empty {} for the default theme (primary #E3342F, secondary #1CCBD0).

OUTPUT:
Returns a JSON object with ok, output (full path), pages_generated, filename,
and an optional message when the requested output directory was not usable.`

// GenerateInput is the input of the generate_pdf tool.
type GenerateInput struct {
	DocumentSpec spec.DocumentSpec `json:"document_spec"`
}

// GenerateOutput is the complete result payload of the generate_pdf tool:
// either a full success payload or a full failure payload, never a partial
// state.
type GenerateOutput struct {
	OK             bool   `json:"ok"`
	Error          string `json:"error,omitempty"`
	Output         string `json:"output,omitempty"`
	PagesGenerated int    `json:"pages_generated"`
	Filename       string `json:"filename,omitempty"`
	Message        string `json:"message,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_pdf",
		Description: generateDescription,
		InputSchema: generateInputSchema(),
	}, s.handleGenerate)
}

// handleGenerate runs the generation pipeline. Generation failures are
// reported as a structured failure payload rather than a protocol error so
// the caller always receives a complete result object.
func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	s.log.Info().Str("title", input.DocumentSpec.Title).Msg("generate_pdf called")

	result, err := s.gen.Generate(ctx, input.DocumentSpec)
	if err != nil {
		s.log.Error().Err(err).Msg("generate_pdf failed")
		return nil, GenerateOutput{OK: false, Error: err.Error()}, nil
	}

	return nil, GenerateOutput{
		OK:             result.OK,
		Output:         result.Output,
		PagesGenerated: result.PagesGenerated,
		Filename:       result.Filename,
		Message:        result.Message,
	}, nil
}

// generateInputSchema is the hand-written input schema for generate_pdf.
// It is deliberately permissive about page fields: the page union is
// validated by the spec package, and description values may be either a
// string or a list of strings.
func generateInputSchema() *jsonschema.Schema {
	str := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string"} }
	strArray := func() *jsonschema.Schema {
		return &jsonschema.Schema{Type: "array", Items: str()}
	}

	pageTypes := []any{
		"title", "toc", "section", "content", "code",
		"diagram", "image", "mermaid", "summary", "references",
	}

	page := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"page_type": {Type: "string", Enum: pageTypes, Description: "Type of page"},
			"title":     str(),
			"subtitle":  str(),
			"author":    str(),
			"date":      str(),
			"additional_info": str(),
			"entries":         strArray(),
			"content": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "object"},
			},
			"code":         str(),
			"language":     str(),
			"line_numbers": {Type: "boolean"},
			"image":        str(),
			"image_path":   str(),
			"image_url":    str(),
			"diagram_path": str(),
			"diagram_url":  str(),
			"caption":      str(),
			"description": {
				AnyOf: []*jsonschema.Schema{str(), strArray()},
			},
			"mermaid_code": str(),
			"key_points":   strArray(),
			"conclusion":   str(),
			"references":   strArray(),
			"style":        str(),
		},
		Required: []string{"page_type"},
	}

	theme := &jsonschema.Schema{
		Type:        "object",
		Description: "Theme specification (colors, fonts, sizes). Leave empty {} for the default theme.",
		Properties: map[string]*jsonschema.Schema{
			"colors": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"primary":    str(),
					"secondary":  str(),
					"accent":     str(),
					"background": str(),
					"text":       str(),
					"code_bg":    str(),
				},
			},
			"fonts": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"heading": str(),
					"body":    str(),
					"code":    str(),
				},
			},
		},
	}

	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"document_spec": {
				Type:        "object",
				Description: "Complete PDF document specification",
				Properties: map[string]*jsonschema.Schema{
					"title": {Type: "string", Description: "Document title"},
					"theme": theme,
					"pages": {
						Type:        "array",
						Description: "Array of page specifications",
						Items:       page,
					},
					"output": {
						Type: "object",
						Properties: map[string]*jsonschema.Schema{
							"filename":  str(),
							"directory": str(),
						},
					},
				},
				Required: []string{"title", "pages"},
			},
		},
		Required: []string{"document_spec"},
	}
}
