package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terramap/labelconv/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	// An explicit path that does not exist is an error; defaults apply only
	// when no path is given.
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labelconv.yaml")

	content := `output:
  format: json
  no_color: true
convert:
  fail_fast: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, config.FormatJSON, cfg.Output.Format)
	assert.True(t, cfg.Output.NoColor)
	assert.True(t, cfg.Convert.FailFast)
	assert.True(t, cfg.Convert.IncludeHidden)
	assert.False(t, cfg.Lyrx.ValidateSchema)
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labelconv.yaml")

	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: xml\n"), 0o600))

	_, err := config.LoadConfig(path)

	require.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestValidate_AcceptsKnownFormats(t *testing.T) {
	t.Parallel()

	for _, format := range []string{config.FormatTable, config.FormatJSON, config.FormatYAML} {
		cfg := config.Config{Output: config.OutputConfig{Format: format}}

		assert.NoError(t, cfg.Validate())
	}
}
