package format

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/igolaizola/musicprompt/pkg/cmd/output"
	"github.com/igolaizola/musicprompt/pkg/prompt"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Debug  bool
	Input  string
	Strict bool
	Output string

	// Data is filled from flags and ignored when Input is set.
	Data prompt.Data
}

type result struct {
	Data   prompt.Data `json:"data" yaml:"data"`
	Prompt string      `json:"prompt" yaml:"prompt"`
}

// Run prints the prompt for the record given by flags or the input file.
func Run(ctx context.Context, cfg *Config) error {
	return run(cfg, os.Stdout)
}

func run(cfg *Config, w io.Writer) error {
	d := cfg.Data
	if cfg.Input != "" {
		var err error
		d, err = Load(cfg.Input)
		if err != nil {
			return fmt.Errorf("format: %w", err)
		}
	}
	if cfg.Strict {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("format: %w", err)
		}
	}
	p := prompt.Format(d)
	if cfg.Output == "" || cfg.Output == "text" {
		_, err := fmt.Fprintln(w, p)
		return err
	}
	return output.Write(w, cfg.Output, result{Data: d, Prompt: p})
}

// Load reads a single record from a json or yaml file.
func Load(path string) (prompt.Data, error) {
	var d prompt.Data
	b, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("couldn't read input file: %w", err)
	}
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(b, &d); err != nil {
			return d, fmt.Errorf("couldn't unmarshal json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &d); err != nil {
			return d, fmt.Errorf("couldn't unmarshal yaml: %w", err)
		}
	default:
		return d, fmt.Errorf("unsupported input format: %s", ext)
	}
	return d, nil
}
