package token

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/igolaizola/musicprompt/pkg/auth"
)

type Config struct {
	Secret  string
	Issuer  string
	Subject string
	Email   string
	TTL     time.Duration
}

// Run prints a signed access token, for local development against the api.
func Run(ctx context.Context, cfg *Config) error {
	return run(cfg, os.Stdout)
}

func run(cfg *Config, w io.Writer) error {
	if cfg.Subject == "" {
		return fmt.Errorf("token: subject is empty")
	}
	if cfg.Secret == "" {
		return fmt.Errorf("token: secret is empty")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	t, err := auth.Issue(cfg.Secret, cfg.Issuer, cfg.Subject, cfg.Email, ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, t)
	return err
}
