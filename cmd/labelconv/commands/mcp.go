package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/terramap/labelconv/internal/mcp"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes label conversion as tools that AI agents can discover
and invoke:
  - label_convert: Convert one ArcGIS label expression to a QGIS expression
  - lyrx_convert:  Convert every label class in a .lyrx layer file`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			srv := mcp.NewServer(mcp.ServerDeps{Logger: mcpLogger(debug)})

			return srv.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")

	return cmd
}

// mcpLogger builds the server logger. Stdout carries the MCP protocol, so
// logs always go to stderr.
func mcpLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
