// Package config loads tool configuration from a TOML file.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Output Output `toml:"output"`
	LSP    LSP    `toml:"lsp"`
}

type Output struct {
	// Indent is the indentation string used for JSON output.
	Indent string `toml:"indent"`
	// Compact disables indentation entirely.
	Compact bool `toml:"compact"`
}

type LSP struct {
	// Extensions lists the file extensions served as headers.
	Extensions []string `toml:"extensions"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Output: Output{Indent: "  "},
		LSP:    LSP{Extensions: []string{".h", ".hh", ".hpp", ".hxx", ".inl"}},
	}
}

// Load reads the configuration at path. A missing file is not an
// error; the defaults are returned instead.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}

	if cfg.Output.Indent == "" && !cfg.Output.Compact {
		cfg.Output.Indent = "  "
	}
	if len(cfg.LSP.Extensions) == 0 {
		cfg.LSP.Extensions = Default().LSP.Extensions
	}

	return cfg, nil
}
