package checkout

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/igolaizola/musicprompt/pkg/checkout"
	"github.com/igolaizola/musicprompt/pkg/cmd/output"
	"github.com/pkg/browser"
)

type Config struct {
	Debug       bool
	PaymentLink string
	Secret      string
	TTL         time.Duration
	Output      string

	User  string
	Email string
	// Open launches the payment page in the default browser.
	Open bool
}

// Run prints the payment url for a user, as the web api does when the upgrade
// button is clicked. The user is upgraded when the payment redirect reaches
// the web api.
func Run(ctx context.Context, cfg *Config) error {
	return run(cfg, os.Stdout, browser.OpenURL)
}

func run(cfg *Config, w io.Writer, open func(string) error) error {
	if cfg.User == "" {
		return fmt.Errorf("checkout: user is empty")
	}
	c, err := checkout.New(&checkout.Config{
		PaymentLink: cfg.PaymentLink,
		Secret:      cfg.Secret,
		TTL:         cfg.TTL,
		Debug:       cfg.Debug,
	})
	if err != nil {
		return err
	}
	sess, err := c.Start(cfg.User, cfg.Email)
	if err != nil {
		return err
	}
	if err := output.Write(w, cfg.Output, sess); err != nil {
		return err
	}
	if cfg.Open {
		if err := open(sess.URL); err != nil {
			log.Printf("checkout: couldn't open browser: %v\n", err)
		}
	}
	return nil
}
