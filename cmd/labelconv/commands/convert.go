// Package commands implements CLI command handlers for labelconv.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terramap/labelconv/internal/config"
	"github.com/terramap/labelconv/internal/report"
	"github.com/terramap/labelconv/pkg/label"
	"github.com/terramap/labelconv/pkg/lyrx"
)

// lyrxExtensions are the file extensions read as CIM JSON layer files.
// Everything else is read as a YAML definitions manifest.
var lyrxExtensions = map[string]bool{
	".lyrx": true,
	".json": true,
}

// Sentinel errors for convert input handling.
var (
	// ErrNoInput is returned when neither an input file nor an inline
	// expression is given.
	ErrNoInput = errors.New("no input: pass a manifest or .lyrx file, or use --expression")

	// ErrConversionFailed is returned when at least one definition failed.
	ErrConversionFailed = errors.New("conversion failed")
)

// configLoader loads the effective configuration.
type configLoader func(path string) (*config.Config, error)

// ConvertCommand holds configuration and dependencies for the convert command.
type ConvertCommand struct {
	configPath string
	expression string
	engine     string
	format     string
	outputPath string
	noColor    bool
	failFast   bool
	validate   bool
	verbose    bool

	loadConfig configLoader
}

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	return newConvertCommandWithDeps(config.LoadConfig)
}

func newConvertCommandWithDeps(loadConfig configLoader) *cobra.Command {
	cc := &ConvertCommand{loadConfig: loadConfig}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert label definitions to QGIS expressions",
		Long: `Convert ArcGIS label definitions to QGIS label expressions.

The input is a YAML definitions manifest, an ArcGIS Pro layer file (.lyrx),
or a single inline expression:

  labelconv convert definitions.yaml
  labelconv convert wells.lyrx --format json
  labelconv convert -e '[Feet]+ " ft"'`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          cc.run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&cc.expression, "expression", "e", "", "Inline expression to convert")
	cmd.Flags().StringVar(&cc.engine, "engine", "", "Expression engine for inline input (default: VBScript)")
	cmd.Flags().StringVar(&cc.format, "format", "", "Output format: table, json, yaml")
	cmd.Flags().StringVarP(&cc.outputPath, "output", "o", "", "Write results to file instead of stdout")
	cmd.Flags().StringVar(&cc.configPath, "config", "", "Config file path (default: .labelconv.yaml)")
	cmd.Flags().BoolVar(&cc.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&cc.failFast, "fail-fast", false, "Stop at the first failed definition")
	cmd.Flags().BoolVar(&cc.validate, "validate", false, "Validate .lyrx input against the label schema first")
	cmd.Flags().BoolVarP(&cc.verbose, "verbose", "v", false, "Verbose progress output")

	return cmd
}

func (cc *ConvertCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := cc.effectiveConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cc.verbose)

	defs, err := cc.gatherDefinitions(args, cfg, logger)
	if err != nil {
		return err
	}

	logger.Debug("definitions gathered", "count", len(defs))

	results, err := cc.convert(defs, cfg)
	if err != nil {
		return err
	}

	writer, closeWriter, err := cc.resultWriter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeWriter()

	writeErr := report.Write(writer, results, cfg.Output.Format, cfg.Output.NoColor)
	if writeErr != nil {
		return writeErr
	}

	report.WriteSummary(cmd.ErrOrStderr(), results, cfg.Output.NoColor)

	failed := label.Failed(results)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d definitions", ErrConversionFailed, failed, len(results))
	}

	return nil
}

// effectiveConfig merges the config file with explicit flag overrides.
func (cc *ConvertCommand) effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := cc.loadConfig(cc.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("format") {
		cfg.Output.Format = cc.format
	}

	if cmd.Flags().Changed("no-color") {
		cfg.Output.NoColor = cc.noColor
	}

	if cmd.Flags().Changed("fail-fast") {
		cfg.Convert.FailFast = cc.failFast
	}

	if cmd.Flags().Changed("validate") {
		cfg.Lyrx.ValidateSchema = cc.validate
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

func (cc *ConvertCommand) gatherDefinitions(
	args []string,
	cfg *config.Config,
	logger *slog.Logger,
) ([]label.Definition, error) {
	if cc.expression != "" {
		return []label.Definition{{
			Name:       "inline",
			Expression: cc.expression,
			Engine:     cc.engine,
		}}, nil
	}

	if len(args) == 0 {
		return nil, ErrNoInput
	}

	path := args[0]

	if lyrxExtensions[strings.ToLower(filepath.Ext(path))] {
		return loadLayerFile(path, cfg, logger)
	}

	logger.Debug("reading manifest", "path", path)

	manifest, err := label.LoadManifest(path)
	if err != nil {
		return nil, err
	}

	return manifest.ToDefinitions(), nil
}

func loadLayerFile(path string, cfg *config.Config, logger *slog.Logger) ([]label.Definition, error) {
	logger.Debug("reading layer file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layer file %s: %w", path, err)
	}

	if cfg.Lyrx.ValidateSchema {
		schemaErr := lyrx.ValidateSchema(data)
		if schemaErr != nil {
			return nil, schemaErr
		}
	}

	doc, err := lyrx.Parse(data)
	if err != nil {
		return nil, err
	}

	refs := doc.LabelClasses()
	if !cfg.Convert.IncludeHidden {
		refs = visibleClasses(refs)
	}

	return label.FromClasses(refs), nil
}

func visibleClasses(refs []lyrx.ClassRef) []lyrx.ClassRef {
	var visible []lyrx.ClassRef

	for _, ref := range refs {
		if ref.Class.Visibility {
			visible = append(visible, ref)
		}
	}

	return visible
}

func (cc *ConvertCommand) convert(defs []label.Definition, cfg *config.Config) ([]label.Result, error) {
	if !cfg.Convert.FailFast {
		return label.ConvertAll(defs), nil
	}

	results := make([]label.Result, 0, len(defs))

	for _, def := range defs {
		res := label.Convert(def)
		if res.Err != nil {
			return nil, fmt.Errorf("convert %s: %w", def.Name, res.Err)
		}

		results = append(results, res)
	}

	return results, nil
}

// resultWriter returns the destination for rendered results: a file when
// --output is set, otherwise the given default writer.
func (cc *ConvertCommand) resultWriter(defaultWriter io.Writer) (io.Writer, func(), error) {
	if cc.outputPath == "" {
		return defaultWriter, func() {}, nil
	}

	file, err := os.Create(cc.outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("create output %s: %w", cc.outputPath, err)
	}

	return file, func() { _ = file.Close() }, nil
}

// newLogger builds the command logger. Verbose enables debug level.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
