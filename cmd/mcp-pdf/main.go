// Command mcp-pdf generates themed PDF documents from declarative document
// specifications, either directly from a spec file or as an MCP server for
// AI assistants.
//
// # Installation
//
//	go install github.com/alexh-scrt/mcp-pdf/cmd/mcp-pdf@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "mcp-pdf": {
//	      "command": "mcp-pdf",
//	      "args": ["serve"]
//	    }
//	  }
//	}
//
// The OUTPUT_DIR environment variable configures the fallback output
// directory (default ~/pdf-output). Set MCP_PDF_DEBUG=1 for debug logging.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	mcppdf "github.com/alexh-scrt/mcp-pdf"
	mcpserver "github.com/alexh-scrt/mcp-pdf/mcp"
	"github.com/alexh-scrt/mcp-pdf/spec"
)

var rootCmd = &cobra.Command{
	Use:   "mcp-pdf",
	Short: "Themed PDF document generator",
	Long: `mcp-pdf turns declarative document specifications (title, theme, pages)
into themed multi-page PDF documents. It runs either as a one-shot generator
reading a spec file, or as an MCP server for AI assistant integration.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server exposing the generate_pdf tool.

By default the server communicates over stdio, for use with Claude Desktop
and other MCP-compatible assistants. Use --http to serve the streamable
HTTP transport instead.

Examples:
  # Stdio mode (default, for Claude Desktop)
  mcp-pdf serve

  # HTTP mode (for MCP Inspector, remote access)
  mcp-pdf serve --http :8080`,
	RunE: runServe,
}

var generateCmd = &cobra.Command{
	Use:   "generate <spec-file>",
	Short: "Generate a PDF from a document spec file",
	Long: `Generate a PDF from a JSON or YAML document specification file and print
the generation result as JSON.

Examples:
  mcp-pdf generate report.json
  mcp-pdf generate report.yaml --output-dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	serveCmd.Flags().String("http", "", "HTTP listen address (empty = stdio)")
	generateCmd.Flags().String("output-dir", "", "override the spec's output directory")
	generateCmd.Flags().String("filename", "", "override the spec's output filename")
	rootCmd.AddCommand(serveCmd, generateCmd)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}
	setupLogger()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	switch strings.ToLower(os.Getenv("MCP_PDF_DEBUG")) {
	case "1", "true", "yes":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	// Logs go to stderr: stdout carries the MCP protocol in serve mode and
	// the result JSON in generate mode.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := mcppdf.New(mcppdf.WithLogger(log.Logger))
	server := mcpserver.NewServer(gen, log.Logger)

	if addr != "" {
		return server.RunHTTP(ctx, addr)
	}
	return server.Run(ctx)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	doc, err := loadSpec(args[0])
	if err != nil {
		return err
	}

	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		doc.Output.Directory = dir
	}
	if name, _ := cmd.Flags().GetString("filename"); name != "" {
		doc.Output.Filename = name
	}

	gen := mcppdf.New(mcppdf.WithLogger(log.Logger))
	result, err := gen.Generate(cmd.Context(), *doc)
	if err != nil {
		printResult(map[string]any{"ok": false, "error": err.Error(), "output": nil})
		return err
	}

	printResult(result)
	return nil
}

// loadSpec reads a JSON or YAML document spec. YAML is converted to JSON
// first so the wire-format normalization rules apply uniformly.
func loadSpec(path string) (*spec.DocumentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("converting YAML spec: %w", err)
		}
	}

	var doc spec.DocumentSpec
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing spec file: %w", err)
	}
	return &doc, nil
}

func printResult(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return
	}
	fmt.Println(string(out))
}
