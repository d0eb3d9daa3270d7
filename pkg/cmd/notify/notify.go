package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/igolaizola/musicprompt/pkg/notify"
	"github.com/igolaizola/musicprompt/pkg/storage"
)

type Config struct {
	Debug  bool
	DBType string
	DBConn string
	Proxy  string

	Sender      string
	SenderConn  string
	Interval    time.Duration
	MaxAttempts int
	// Once dispatches the due notifications a single time and returns.
	Once bool
}

// Run launches the notification dispatcher.
func Run(ctx context.Context, cfg *Config) error {
	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("notify: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("notify: couldn't start orm store: %w", err)
	}
	defer func() { _ = store.Stop() }()

	sender, err := notify.NewSender(cfg.Sender, cfg.SenderConn, cfg.Proxy, cfg.Debug)
	if err != nil {
		return err
	}
	d := notify.NewDispatcher(store, sender, &notify.Config{
		Debug:       cfg.Debug,
		Interval:    cfg.Interval,
		MaxAttempts: cfg.MaxAttempts,
	})
	if cfg.Once {
		n, err := d.Dispatch(ctx)
		if err != nil {
			return err
		}
		log.Printf("notify: %d notifications sent\n", n)
		return nil
	}
	return d.Run(ctx)
}

type ScheduleConfig struct {
	Debug  bool
	DBType string
	DBConn string

	User  string
	Title string
	Body  string
	At    string
	After time.Duration
	Every time.Duration

	// Cancel cancels the notification with this id instead.
	Cancel string
}

// Schedule stores a notification for a user, or cancels one.
func Schedule(ctx context.Context, cfg *ScheduleConfig) error {
	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("schedule: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("schedule: couldn't start orm store: %w", err)
	}
	defer func() { _ = store.Stop() }()
	s := notify.NewScheduler(store)

	if cfg.Cancel != "" {
		if err := s.Cancel(ctx, "", cfg.Cancel); err != nil {
			return fmt.Errorf("schedule: %w", err)
		}
		log.Printf("schedule: notification %s cancelled\n", cfg.Cancel)
		return nil
	}

	if cfg.User == "" {
		return fmt.Errorf("schedule: user is empty")
	}
	if _, err := store.GetUser(ctx, cfg.User); err != nil {
		return fmt.Errorf("schedule: couldn't get user %s: %w", cfg.User, err)
	}
	msg := notify.Message{
		Title: cfg.Title,
		Body:  cfg.Body,
		Trigger: notify.Trigger{
			After: cfg.After,
			Every: cfg.Every,
		},
	}
	if cfg.At != "" {
		at, err := time.Parse(time.RFC3339, cfg.At)
		if err != nil {
			return fmt.Errorf("schedule: invalid time %q: %w", cfg.At, err)
		}
		msg.Trigger.At = at
	}
	n, err := s.Schedule(ctx, cfg.User, msg)
	if err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	log.Printf("schedule: notification %s scheduled at %s\n", n.ID, n.SendAt.Format(time.RFC3339))
	return nil
}
