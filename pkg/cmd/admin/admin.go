package admin

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/igolaizola/musicprompt/pkg/account"
	"github.com/igolaizola/musicprompt/pkg/cmd/output"
	"github.com/igolaizola/musicprompt/pkg/storage"
)

type Config struct {
	Debug  bool
	DBType string
	DBConn string
	Output string

	Page int
	Size int

	// User selects the user to update. Without it users are listed, filtered
	// by Role when set.
	User    string
	Role    string
	Disable bool
	Enable  bool
	Premium bool
}

type user struct {
	ID       string       `json:"id" yaml:"id"`
	Email    string       `json:"email" yaml:"email"`
	Role     storage.Role `json:"role" yaml:"role"`
	Premium  bool         `json:"premium" yaml:"premium"`
	Disabled bool         `json:"disabled" yaml:"disabled"`
}

// Run lists users or updates the selected one.
func Run(ctx context.Context, cfg *Config) error {
	return run(ctx, cfg, os.Stdout)
}

func run(ctx context.Context, cfg *Config, w io.Writer) error {
	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("admin: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("admin: couldn't start orm store: %w", err)
	}
	defer func() { _ = store.Stop() }()
	accounts := account.New(store, nil, cfg.Debug)

	if cfg.User == "" {
		size := cfg.Size
		if size <= 0 {
			size = 100
		}
		users, err := accounts.List(ctx, cfg.Page, size, cfg.Role)
		if err != nil {
			return fmt.Errorf("admin: %w", err)
		}
		out := make([]user, 0, len(users))
		for _, u := range users {
			out = append(out, toUser(u))
		}
		return output.Write(w, cfg.Output, out)
	}

	if cfg.Disable && cfg.Enable {
		return fmt.Errorf("admin: disable and enable are exclusive")
	}
	if cfg.Role != "" {
		role, ok := storage.ParseRole(cfg.Role)
		if !ok {
			return fmt.Errorf("admin: invalid role %q", cfg.Role)
		}
		if err := accounts.SetRole(ctx, cfg.User, role); err != nil {
			return fmt.Errorf("admin: %w", err)
		}
	}
	if cfg.Disable || cfg.Enable {
		if err := accounts.SetDisabled(ctx, cfg.User, cfg.Disable); err != nil {
			return fmt.Errorf("admin: %w", err)
		}
	}
	if cfg.Premium {
		if err := accounts.SetPremium(ctx, cfg.User, time.Now()); err != nil {
			return fmt.Errorf("admin: %w", err)
		}
		log.Printf("admin: user %s is now premium\n", cfg.User)
	}
	u, err := accounts.Get(ctx, cfg.User)
	if err != nil {
		return fmt.Errorf("admin: %w", err)
	}
	return output.Write(w, cfg.Output, toUser(u))
}

func toUser(u *storage.User) user {
	return user{
		ID:       u.ID,
		Email:    u.Email,
		Role:     u.Role,
		Premium:  u.Premium,
		Disabled: u.Disabled,
	}
}
