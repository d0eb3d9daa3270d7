package notify

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/igolaizola/musicprompt/pkg/storage"
)

// Sender delivers a notification.
type Sender interface {
	Send(ctx context.Context, n *storage.Notification) error
}

var backoff = []time.Duration{
	30 * time.Second,
	2 * time.Minute,
	10 * time.Minute,
}

type Config struct {
	Debug       bool
	Interval    time.Duration
	MaxAttempts int
	BatchSize   int
}

type Dispatcher struct {
	store       *storage.Store
	sender      Sender
	interval    time.Duration
	maxAttempts int
	batchSize   int
	debug       func(format string, args ...interface{})
	now         func() time.Time
}

func NewDispatcher(store *storage.Store, sender Sender, cfg *Config) *Dispatcher {
	d := &Dispatcher{
		store:       store,
		sender:      sender,
		interval:    cfg.Interval,
		maxAttempts: cfg.MaxAttempts,
		batchSize:   cfg.BatchSize,
		now:         time.Now,
	}
	if d.interval <= 0 {
		d.interval = 30 * time.Second
	}
	if d.maxAttempts <= 0 {
		d.maxAttempts = 3
	}
	if d.batchSize <= 0 {
		d.batchSize = 100
	}
	debug := cfg.Debug
	d.debug = func(format string, args ...interface{}) {
		if !debug {
			return
		}
		format += "\n"
		log.Printf(format, args...)
	}
	return d
}

// Run delivers due notifications every interval until the context is done.
func (d *Dispatcher) Run(ctx context.Context) error {
	log.Println("notify: dispatcher started")
	defer log.Println("notify: dispatcher ended")

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		if _, err := d.Dispatch(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Println(err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Dispatch sends the notifications due now and returns how many were sent.
func (d *Dispatcher) Dispatch(ctx context.Context) (int, error) {
	now := d.now().UTC()
	due, err := d.store.DueNotifications(ctx, now, d.batchSize)
	if err != nil {
		return 0, fmt.Errorf("notify: couldn't get due notifications: %w", err)
	}
	var sent int
	for _, n := range due {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		ok, err := d.deliver(ctx, n, now)
		if err != nil {
			return sent, err
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}

func (d *Dispatcher) deliver(ctx context.Context, n *storage.Notification, now time.Time) (bool, error) {
	if err := d.sender.Send(ctx, n); err != nil {
		attempts := n.Attempts + 1
		fields := map[string]any{"attempts": attempts, "error": err.Error()}
		if attempts >= d.maxAttempts {
			fields["state"] = storage.NotificationFailed
			log.Printf("notify: %s failed after %d attempts: %v\n", n.ID, attempts, err)
		} else {
			idx := attempts - 1
			if idx >= len(backoff) {
				idx = len(backoff) - 1
			}
			wait := backoff[idx]
			fields["send_at"] = now.Add(wait)
			d.debug("notify: %s: %v (retrying in %s)", n.ID, err, wait)
		}
		if err := d.store.UpdateNotification(ctx, n.ID, fields); err != nil {
			return false, fmt.Errorf("notify: couldn't update %s: %w", n.ID, err)
		}
		return false, nil
	}

	fields := map[string]any{"sent_at": &now, "attempts": 0, "error": ""}
	if n.Every > 0 {
		// Repeating notifications stay pending for the next occurrence.
		fields["send_at"] = nextOccurrence(n.SendAt, n.Every, now)
	} else {
		fields["state"] = storage.NotificationSent
	}
	if err := d.store.UpdateNotification(ctx, n.ID, fields); err != nil {
		return true, fmt.Errorf("notify: couldn't update %s: %w", n.ID, err)
	}
	d.debug("notify: %s sent to %s", n.ID, n.UserID)
	return true, nil
}

// nextOccurrence returns the first time after now in the series at, at+every,
// at+2*every... Series too old to measure restart from now.
func nextOccurrence(at time.Time, every time.Duration, now time.Time) time.Time {
	next := at.Add(every)
	if next.After(now) {
		return next
	}
	elapsed := now.Sub(at)
	if elapsed > math.MaxInt64-every {
		return now.Add(every)
	}
	next = at.Add((elapsed/every + 1) * every)
	if !next.After(now) {
		next = next.Add(every)
	}
	return next
}
