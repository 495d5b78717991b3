// Package main provides the entry point for the labelconv CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terramap/labelconv/cmd/labelconv/commands"
	"github.com/terramap/labelconv/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "labelconv",
		Short: "Convert ArcGIS label expressions to QGIS label expressions",
		Long: `labelconv converts ArcGIS label definitions (VBScript FindLabel programs,
expression fragments, bare field names) into QGIS label expressions.

Commands:
  convert   Convert an expression, a definitions manifest, or a .lyrx file
  verify    Convert a manifest and compare against expected expressions
  mcp       Start an MCP server exposing conversion as tools`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands.
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewVerifyCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "labelconv %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
