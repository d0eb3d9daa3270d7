package suggest

import (
	"context"
	"io"
	"os"

	"github.com/igolaizola/musicprompt/pkg/cmd/output"
	"github.com/igolaizola/musicprompt/pkg/suggest"
)

type Config struct {
	Genres []string
	Moods  []string
	Output string
}

// Run prints the suggestions for the selected genres and moods.
func Run(ctx context.Context, cfg *Config) error {
	return run(cfg, os.Stdout)
}

func run(cfg *Config, w io.Writer) error {
	format := cfg.Output
	if format == "" {
		format = "json"
	}
	return output.Write(w, format, suggest.Get(cfg.Genres, cfg.Moods))
}
