package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config carries the checker policy knobs. It is what the surrounding
// tooling (CLI, embedding applications) loads; the core packages never
// read files themselves.
type Config struct {
	Strict               bool   `yaml:"strict" json:"strict"`
	RejectUnknownEffects bool   `yaml:"rejectUnknownEffects" json:"rejectUnknownEffects"`
	LogLevel             string `yaml:"logLevel" json:"logLevel"`
}

func Default() *Config {
	return &Config{LogLevel: "warn"}
}

// LoadFile loads configuration from a YAML or JSON file based on extension.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			if err := json.Unmarshal(data, c); err != nil {
				return fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}
	return nil
}

func (c *Config) Level() zerolog.Level {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err == nil && c.LogLevel != "" {
		return lvl
	}
	return zerolog.WarnLevel
}
