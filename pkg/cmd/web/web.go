package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	iofs "io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/igolaizola/musicprompt/pkg/account"
	"github.com/igolaizola/musicprompt/pkg/auth"
	"github.com/igolaizola/musicprompt/pkg/checkout"
	"github.com/igolaizola/musicprompt/pkg/checkout/stripe"
	"github.com/igolaizola/musicprompt/pkg/maintenance"
	"github.com/igolaizola/musicprompt/pkg/notify"
	"github.com/igolaizola/musicprompt/pkg/quota"
	"github.com/igolaizola/musicprompt/pkg/storage"
)

type Config struct {
	Debug  bool
	DBType string
	DBConn string

	Addr        string
	Credentials map[string]string

	// JWT settings of the hosted auth provider.
	AuthSecret string
	AuthIssuer string
	Admins     []string

	FreeLimit int

	PaymentLink    string
	CheckoutSecret string
	CheckoutTTL    time.Duration
	// StripeKey is used to look up the checkout sessions of the payment link.
	StripeKey string

	SentryDSN   string
	Environment string
	Release     string
}

//go:embed static/*
var staticContent embed.FS

const sentryFlushTimeout = 2 * time.Second

// Serve starts the prompt api and the web page.
func Serve(ctx context.Context, cfg *Config) error {
	log.Println("web: server started")
	defer log.Println("web: server ended")

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Release:     "musicprompt@" + cfg.Release,
			Debug:       cfg.Debug,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterHeaders(event.Request.Headers)
					event.Request.Cookies = ""
				}
				return event
			},
		}); err != nil {
			log.Printf("web: couldn't initialize sentry: %v\n", err)
		} else {
			defer sentry.Flush(sentryFlushTimeout)
		}
	}

	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("web: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("web: couldn't start orm store: %w", err)
	}
	defer func() { _ = store.Stop() }()

	verifier, err := auth.NewVerifier(cfg.AuthSecret, cfg.AuthIssuer)
	if err != nil {
		return fmt.Errorf("web: %w", err)
	}

	var co *checkout.Checkout
	if cfg.PaymentLink != "" {
		provider, err := stripe.New(&stripe.Config{Key: cfg.StripeKey, Debug: cfg.Debug})
		if err != nil {
			return fmt.Errorf("web: %w", err)
		}
		co, err = checkout.New(&checkout.Config{
			PaymentLink: cfg.PaymentLink,
			Secret:      cfg.CheckoutSecret,
			TTL:         cfg.CheckoutTTL,
			Debug:       cfg.Debug,
			Provider:    provider,
			Ledger:      store,
		})
		if err != nil {
			return fmt.Errorf("web: %w", err)
		}
	}

	// Create static content
	staticFS, err := iofs.Sub(staticContent, "static")
	if err != nil {
		return fmt.Errorf("web: couldn't load static content: %w", err)
	}

	srv := &Server{
		Debug:       cfg.Debug,
		Store:       store,
		Verifier:    verifier,
		Accounts:    account.New(store, cfg.Admins, cfg.Debug),
		Quota:       quota.New(store, &quota.Config{FreeLimit: cfg.FreeLimit}),
		Maintenance: maintenance.New(store),
		Checkout:    co,
		Scheduler:   notify.NewScheduler(store),
		Credentials: cfg.Credentials,
		Static:      staticFS,
		Sentry:      cfg.SentryDSN != "",
	}

	// Create server
	split := strings.Split(cfg.Addr, ":")
	if len(split) != 2 {
		return fmt.Errorf("web: invalid address: %s", cfg.Addr)
	}
	host := split[0]
	port, err := strconv.Atoi(split[1])
	if err != nil {
		return fmt.Errorf("web: invalid port: %s", split[1])
	}
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errC := make(chan error, 1)
	go func() {
		note := fmt.Sprintf("http://%s:%d", host, port)
		if host == "" {
			note = fmt.Sprintf("all interfaces http://localhost:%d", port)
		}
		log.Printf("web: listening on %s\n", note)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sentry.CaptureException(err)
			errC <- fmt.Errorf("web: couldn't start server: %w", err)
		}
	}()
	return wait(ctx, server, errC)
}

// wait blocks until the context is done or the server fails and shuts the
// server down.
func wait(ctx context.Context, server *http.Server, errC <-chan error) error {
	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: couldn't shutdown server: %w", err)
	}
	return nil
}

func filterHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string, len(headers))
	for k, v := range headers {
		switch strings.ToLower(k) {
		case "authorization", "cookie", "x-api-key":
			filtered[k] = "[REDACTED]"
		default:
			filtered[k] = v
		}
	}
	return filtered
}
