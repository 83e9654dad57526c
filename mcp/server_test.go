package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcppdf "github.com/alexh-scrt/mcp-pdf"
	"github.com/alexh-scrt/mcp-pdf/spec"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gen := mcppdf.New(mcppdf.WithFallbackDir(t.TempDir()))
	return NewServer(gen, zerolog.Nop())
}

func TestHandleGenerateSuccess(t *testing.T) {
	s := newTestServer(t)
	outDir := t.TempDir()

	_, out, err := s.handleGenerate(context.Background(), nil, GenerateInput{
		DocumentSpec: spec.DocumentSpec{
			Title: "Report",
			Pages: []spec.PageSpec{
				{Type: spec.PageTitle, Title: "Report"},
				{Type: spec.PageSummary, KeyPoints: []string{"done"}},
			},
			Output: spec.OutputSpec{Directory: outDir},
		},
	})
	require.NoError(t, err)

	assert.True(t, out.OK)
	assert.Empty(t, out.Error)
	assert.Equal(t, 2, out.PagesGenerated)
	assert.NotEmpty(t, out.Filename)

	_, statErr := os.Stat(filepath.Join(outDir, out.Filename))
	assert.NoError(t, statErr)
}

func TestHandleGenerateFailurePayload(t *testing.T) {
	s := newTestServer(t)

	// Missing pages: the handler reports a failure payload, not a protocol
	// error, so the caller always gets a complete result object.
	_, out, err := s.handleGenerate(context.Background(), nil, GenerateInput{
		DocumentSpec: spec.DocumentSpec{Title: "Empty"},
	})
	require.NoError(t, err)

	assert.False(t, out.OK)
	assert.NotEmpty(t, out.Error)
	assert.Empty(t, out.Output)
	assert.Zero(t, out.PagesGenerated)
}

func TestGenerateInputSchemaShape(t *testing.T) {
	schema := generateInputSchema()

	require.Contains(t, schema.Properties, "document_spec")
	assert.Equal(t, []string{"document_spec"}, schema.Required)

	docSchema := schema.Properties["document_spec"]
	assert.ElementsMatch(t, []string{"title", "pages"}, docSchema.Required)

	page := docSchema.Properties["pages"].Items
	require.NotNil(t, page)
	assert.Equal(t, []string{"page_type"}, page.Required)
	assert.Len(t, page.Properties["page_type"].Enum, 10)

	// description accepts both a string and a list of strings.
	desc := page.Properties["description"]
	require.Len(t, desc.AnyOf, 2)
	assert.Equal(t, "string", desc.AnyOf[0].Type)
	assert.Equal(t, "array", desc.AnyOf[1].Type)
}

func TestNewServerRegistersTool(t *testing.T) {
	s := newTestServer(t)
	assert.NotNil(t, s.server)
}
