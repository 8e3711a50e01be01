// Package config loads the survey settings from a YAML file.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFilename  = "pdf-survey.yaml"
	DefaultDatabase  = "pdfs.db"
	DefaultExtractor = "exiftool"
	DefaultExiftool  = "exiftool"
	DefaultLogLevel  = "info"
	DefaultColor     = "auto"
)

// Extractor names accepted in the "extractor" setting.
var Extractors = []string{"exiftool", "stayopen", "native"}

// Colour modes accepted in the "color" setting.
var ColorModes = []string{"auto", "always", "never"}

// The Config struct mirrors pdf-survey.yaml.
type Config struct {
	Root      string `yaml:"root"`      // collection root; first-level directories are companies
	Database  string `yaml:"database"`  // SQLite file holding extracted records
	Cache     string `yaml:"cache"`     // optional YAML extraction cache, keyed by file MD5
	Extractor string `yaml:"extractor"` // exiftool | stayopen | native
	Exiftool  string `yaml:"exiftool"`  // path to the exiftool binary
	LogLevel  string `yaml:"log_level"`
	Color     string `yaml:"color"` // auto | always | never
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Root:      ".",
		Database:  DefaultDatabase,
		Extractor: DefaultExtractor,
		Exiftool:  DefaultExiftool,
		LogLevel:  DefaultLogLevel,
		Color:     DefaultColor,
	}
}

// Load reads the configuration at path on top of the defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if !contains(Extractors, c.Extractor) {
		return errors.Errorf("unknown extractor %q (want one of %v)", c.Extractor, Extractors)
	}
	if !contains(ColorModes, c.Color) {
		return errors.Errorf("unknown color mode %q (want one of %v)", c.Color, ColorModes)
	}
	if c.Database == "" {
		return errors.New("database path must not be empty")
	}
	return nil
}

func contains(list []string, value string) bool {
	for _, entry := range list {
		if entry == value {
			return true
		}
	}
	return false
}
