package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
root: /archive/pdfs
database: survey.db
extractor: native
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/archive/pdfs", cfg.Root)
	assert.Equal(t, "survey.db", cfg.Database)
	assert.Equal(t, "native", cfg.Extractor)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultExiftool, cfg.Exiftool)
	assert.Equal(t, DefaultColor, cfg.Color)
}

func TestLoadRejectsUnknownExtractor(t *testing.T) {
	_, err := Load(writeConfig(t, "extractor: pdftk\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftk")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "root: [unterminated\n"))
	require.Error(t, err)
}

func TestValidateColor(t *testing.T) {
	cfg := Default()
	cfg.Color = "sometimes"
	require.Error(t, cfg.Validate())
	cfg.Color = "never"
	require.NoError(t, cfg.Validate())
}
