package maintenance

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/igolaizola/musicprompt/pkg/cmd/output"
	"github.com/igolaizola/musicprompt/pkg/maintenance"
	"github.com/igolaizola/musicprompt/pkg/storage"
)

type Config struct {
	Debug  bool
	DBType string
	DBConn string
	Output string

	Enable  bool
	Disable bool
	Message string
}

// Run turns maintenance mode on or off and prints the resulting state.
func Run(ctx context.Context, cfg *Config) error {
	return run(ctx, cfg, os.Stdout)
}

func run(ctx context.Context, cfg *Config, w io.Writer) error {
	if cfg.Enable && cfg.Disable {
		return fmt.Errorf("maintenance: enable and disable are exclusive")
	}
	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("maintenance: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("maintenance: couldn't start orm store: %w", err)
	}
	defer func() { _ = store.Stop() }()

	m := maintenance.New(store)
	if cfg.Enable || cfg.Disable {
		if err := m.Set(ctx, cfg.Enable, cfg.Message); err != nil {
			return err
		}
	}
	st, err := m.Get(ctx)
	if err != nil {
		return err
	}
	return output.Write(w, cfg.Output, st)
}
