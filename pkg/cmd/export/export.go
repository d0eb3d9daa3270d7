package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/igolaizola/musicprompt/pkg/export"
	"github.com/igolaizola/musicprompt/pkg/filestore"
	"github.com/igolaizola/musicprompt/pkg/storage"
)

type Config struct {
	Debug  bool
	DBType string
	DBConn string
	FSType string
	FSConn string

	Format string
	User   string
	// Output is the local file to write. It defaults to a timestamped name
	// in the working directory.
	Output string
	Upload bool
}

// Run exports the saved prompts and optionally uploads the file.
func Run(ctx context.Context, cfg *Config) error {
	log.Println("export: started")
	defer log.Println("export: ended")

	format := cfg.Format
	if format == "" {
		format = "csv"
	}
	out := cfg.Output
	if out == "" {
		out = fmt.Sprintf("prompts-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	}

	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("export: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("export: couldn't start orm store: %w", err)
	}
	defer func() { _ = store.Stop() }()

	prompts, err := export.Prompts(ctx, store, cfg.User)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("export: couldn't create %s: %w", out, err)
	}
	if err := export.Write(f, format, prompts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: couldn't close %s: %w", out, err)
	}
	log.Printf("export: %d prompts written to %s\n", len(prompts), out)

	if !cfg.Upload {
		return nil
	}
	fs, err := filestore.New(ctx, cfg.FSType, cfg.FSConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("export: couldn't create file storage: %w", err)
	}
	name := filepath.Base(out)
	if err := fs.Upload(ctx, out, name); err != nil {
		return fmt.Errorf("export: couldn't upload %s: %w", name, err)
	}
	u, err := fs.URL(ctx, name)
	if err != nil {
		return fmt.Errorf("export: couldn't get url of %s: %w", name, err)
	}
	fmt.Println(u)
	return nil
}
