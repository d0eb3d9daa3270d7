package options

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/igolaizola/musicprompt/pkg/catalog"
	"github.com/igolaizola/musicprompt/pkg/cmd/output"
)

type Config struct {
	// Field limits the output to one list, e.g. "mood".
	Field  string
	Output string
}

// Run prints the option catalog.
func Run(ctx context.Context, cfg *Config) error {
	return run(cfg, os.Stdout)
}

func run(cfg *Config, w io.Writer) error {
	c := catalog.All()
	if cfg.Field == "" {
		return output.Write(w, cfg.Output, c)
	}
	values, ok := field(c, cfg.Field)
	if !ok {
		return fmt.Errorf("options: unknown field %q", cfg.Field)
	}
	if cfg.Output == "" || cfg.Output == "text" {
		_, err := fmt.Fprintln(w, strings.Join(values, "\n"))
		return err
	}
	return output.Write(w, cfg.Output, values)
}

func field(c catalog.Catalog, name string) ([]string, bool) {
	values := func(opts []catalog.Option) []string {
		vs := make([]string, 0, len(opts))
		for _, o := range opts {
			vs = append(vs, o.Value)
		}
		return vs
	}
	switch strings.ReplaceAll(strings.ToLower(name), "-", "_") {
	case "genres_primary":
		return c.PrimaryGenres, true
	case "genres_electronic":
		return c.ElectronicGenres, true
	case "mood":
		return c.Moods, true
	case "energy":
		return values(c.Energies), true
	case "beat":
		return c.BeatStyles, true
	case "bass":
		return c.BassCharacteristics, true
	case "instruments":
		return c.Instruments, true
	case "groove_swing":
		return c.Grooves, true
	case "vocal_gender":
		return values(c.VocalGenders), true
	case "vocal_delivery":
		return c.VocalDeliveries, true
	case "key_scale":
		return c.Keys, true
	case "era":
		return c.Eras, true
	case "length":
		return values(c.Lengths), true
	case "weirdness_level":
		return values(c.WeirdnessLevels), true
	case "subject":
		return catalog.Subjects, true
	}
	return nil, false
}
