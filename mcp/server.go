// Package mcp exposes PDF generation as a Model Context Protocol server.
//
// The server communicates over stdio by default and can alternatively serve
// the streamable HTTP transport. It registers a single generate_pdf tool.
//
// # Usage with Claude Desktop
//
// Add to your claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "mcp-pdf": {
//	      "command": "mcp-pdf",
//	      "args": ["serve"]
//	    }
//	  }
//	}
package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	mcppdf "github.com/alexh-scrt/mcp-pdf"
)

// Version is the MCP server version.
const Version = "0.1.1"

// Server wraps an MCP server around a PDF generator.
type Server struct {
	gen    *mcppdf.Generator
	server *mcp.Server
	log    zerolog.Logger
}

// NewServer creates the MCP server and registers its tools.
func NewServer(gen *mcppdf.Generator, log zerolog.Logger) *Server {
	impl := &mcp.Implementation{
		Name:    "mcp-pdf",
		Version: Version,
	}

	s := &Server{
		gen:    gen,
		server: mcp.NewServer(impl, nil),
		log:    log,
	}
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the context is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info().Msg("mcp server starting on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over the streamable HTTP transport on addr.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	s.log.Info().Str("addr", addr).Msg("mcp server starting on http")
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
