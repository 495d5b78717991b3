// Package config loads labelconv configuration from file, environment, and
// defaults.
package config

import (
	"errors"
	"slices"
)

// Output format identifiers.
const (
	// FormatTable renders results as a text table.
	FormatTable = "table"

	// FormatJSON renders results as a JSON array.
	FormatJSON = "json"

	// FormatYAML renders results as a YAML sequence.
	FormatYAML = "yaml"
)

// Config is the top-level configuration struct for labelconv.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Convert ConvertConfig `mapstructure:"convert"`
	Lyrx    LyrxConfig    `mapstructure:"lyrx"`
}

// OutputConfig holds rendering settings.
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// ConvertConfig holds conversion behavior settings.
type ConvertConfig struct {
	FailFast      bool `mapstructure:"fail_fast"`
	IncludeHidden bool `mapstructure:"include_hidden"`
}

// LyrxConfig holds layer file handling settings.
type LyrxConfig struct {
	ValidateSchema bool `mapstructure:"validate_schema"`
}

// ErrInvalidFormat indicates the output format is not recognized.
var ErrInvalidFormat = errors.New("output.format must be one of: table, json, yaml")

// validFormats lists the accepted output format values.
var validFormats = []string{FormatTable, FormatJSON, FormatYAML}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if !slices.Contains(validFormats, c.Output.Format) {
		return ErrInvalidFormat
	}

	return nil
}
