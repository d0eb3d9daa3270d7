// Package notify schedules notifications for users and delivers them when
// they are due.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/igolaizola/musicprompt/pkg/storage"
)

var ErrInvalid = errors.New("notify: invalid notification")

// Trigger sets when a notification is sent. At has priority over After. A
// positive Every repeats the notification after each delivery.
type Trigger struct {
	At    time.Time     `json:"at,omitempty"`
	After time.Duration `json:"after,omitempty"`
	Every time.Duration `json:"every,omitempty"`
}

type Message struct {
	Title   string  `json:"title"`
	Body    string  `json:"body"`
	Trigger Trigger `json:"trigger"`
}

type Scheduler struct {
	store *storage.Store
	now   func() time.Time
}

func NewScheduler(store *storage.Store) *Scheduler {
	return &Scheduler{store: store, now: time.Now}
}

// Schedule stores the message for the user and returns the pending
// notification.
func (s *Scheduler) Schedule(ctx context.Context, userID string, msg Message) (*storage.Notification, error) {
	msg.Title = strings.TrimSpace(msg.Title)
	msg.Body = strings.TrimSpace(msg.Body)
	if msg.Title == "" && msg.Body == "" {
		return nil, fmt.Errorf("%w: title and body are empty", ErrInvalid)
	}
	if msg.Trigger.After < 0 || msg.Trigger.Every < 0 {
		return nil, fmt.Errorf("%w: negative duration", ErrInvalid)
	}
	if msg.Trigger.Every > 0 && msg.Trigger.Every < time.Minute {
		return nil, fmt.Errorf("%w: repeat interval must be at least a minute", ErrInvalid)
	}
	now := s.now().UTC()
	sendAt := now.Add(msg.Trigger.After)
	if !msg.Trigger.At.IsZero() {
		sendAt = msg.Trigger.At.UTC()
	}
	n := &storage.Notification{
		ID:     storage.NewID(),
		UserID: userID,
		Title:  msg.Title,
		Body:   msg.Body,
		SendAt: sendAt,
		Every:  msg.Trigger.Every,
		State:  storage.NotificationPending,
	}
	if err := s.store.SetNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("notify: couldn't schedule: %w", err)
	}
	return n, nil
}

// Send schedules the message to be delivered right away.
func (s *Scheduler) Send(ctx context.Context, userID, title, body string) (*storage.Notification, error) {
	return s.Schedule(ctx, userID, Message{Title: title, Body: body})
}

// Cancel cancels a pending notification. An empty userID skips the owner
// check.
func (s *Scheduler) Cancel(ctx context.Context, userID, id string) error {
	n, err := s.store.GetNotification(ctx, id)
	if err != nil {
		return fmt.Errorf("notify: couldn't get %s: %w", id, err)
	}
	if userID != "" && n.UserID != userID {
		return fmt.Errorf("notify: couldn't get %s: %w", id, storage.ErrNotFound)
	}
	if n.State != storage.NotificationPending {
		return fmt.Errorf("%w: %s is %s", ErrInvalid, id, n.State)
	}
	if err := s.store.UpdateNotification(ctx, id, map[string]any{"state": storage.NotificationCancelled}); err != nil {
		return fmt.Errorf("notify: couldn't cancel %s: %w", id, err)
	}
	return nil
}

// Pending returns the pending notifications of a user, or of everyone when
// userID is empty, soonest first.
func (s *Scheduler) Pending(ctx context.Context, userID string, page, size int) ([]*storage.Notification, error) {
	filters := []storage.Filter{storage.Where("state = ?", storage.NotificationPending)}
	if userID != "" {
		filters = append(filters, storage.Where("user_id = ?", userID))
	}
	vs, err := s.store.ListNotifications(ctx, page, size, "send_at asc", filters...)
	if err != nil {
		return nil, fmt.Errorf("notify: couldn't list pending: %w", err)
	}
	return vs, nil
}
