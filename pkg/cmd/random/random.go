package random

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/igolaizola/musicprompt/pkg/cmd/output"
	"github.com/igolaizola/musicprompt/pkg/prompt"
	"github.com/igolaizola/musicprompt/pkg/random"
)

type Config struct {
	// Seed makes the output reproducible when it isn't zero.
	Seed   int64
	Count  int
	Ideas  bool
	Output string
}

type track struct {
	Data   prompt.Data `json:"data" yaml:"data"`
	Prompt string      `json:"prompt" yaml:"prompt"`
}

// Run prints random tracks, or track ideas when cfg.Ideas is set.
func Run(ctx context.Context, cfg *Config) error {
	return run(cfg, os.Stdout)
}

func run(cfg *Config, w io.Writer) error {
	var src random.Source
	if cfg.Seed != 0 {
		src = rand.New(rand.NewSource(cfg.Seed))
	}
	g := random.New(src)

	if cfg.Ideas {
		ideas := g.Ideas(cfg.Count)
		if cfg.Output == "" || cfg.Output == "text" {
			for _, idea := range ideas {
				if _, err := fmt.Fprintf(w, "%s: %s\n", idea.Subject, idea.Description); err != nil {
					return err
				}
			}
			return nil
		}
		return output.Write(w, cfg.Output, ideas)
	}

	n := cfg.Count
	if n < 1 {
		n = 1
	}
	tracks := make([]track, 0, n)
	for i := 0; i < n; i++ {
		d := g.Track()
		tracks = append(tracks, track{Data: d, Prompt: prompt.Format(d)})
	}
	if cfg.Output == "" || cfg.Output == "text" {
		for _, t := range tracks {
			if _, err := fmt.Fprintln(w, t.Prompt); err != nil {
				return err
			}
		}
		return nil
	}
	return output.Write(w, cfg.Output, tracks)
}
