package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type NotificationState string

const (
	NotificationPending   NotificationState = "pending"
	NotificationSent      NotificationState = "sent"
	NotificationCancelled NotificationState = "cancelled"
	NotificationFailed    NotificationState = "failed"
)

type Notification struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID string `gorm:"index;not null;default:''"`
	Title  string `gorm:"not null;default:''"`
	Body   string `gorm:"not null;default:''"`

	SendAt time.Time     `gorm:"index"`
	Every  time.Duration `gorm:"not null;default:0"`

	State    NotificationState `gorm:"index;not null;default:'pending'"`
	Attempts int               `gorm:"not null;default:0"`
	Error    string            `gorm:"not null;default:''"`
	SentAt   *time.Time
}

func (s *Store) GetNotification(ctx context.Context, id string) (*Notification, error) {
	var v Notification
	if err := s.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: failed to get notification %s: %w", id, err)
	}
	return &v, nil
}

func (s *Store) SetNotification(ctx context.Context, v *Notification) error {
	if v.ID == "" {
		v.ID = NewID()
	}
	if err := s.db.WithContext(ctx).Save(v).Error; err != nil {
		return fmt.Errorf("storage: failed to set notification %s: %w", v.ID, err)
	}
	return nil
}

func (s *Store) UpdateNotification(ctx context.Context, id string, fields map[string]any) error {
	return update(ctx, s.db, &Notification{}, "notification", id, fields)
}

func (s *Store) DeleteNotification(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&Notification{ID: id}, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("storage: failed to delete notification %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListNotifications(ctx context.Context, page, size int, orderBy string, filter ...Filter) ([]*Notification, error) {
	vs := []*Notification{}
	q := paginate(s.db.WithContext(ctx), page, size, orderBy, filter)
	if err := q.Find(&vs).Error; err != nil {
		return nil, fmt.Errorf("storage: failed to list notifications: %w", err)
	}
	return vs, nil
}

// DueNotifications returns pending notifications scheduled at or before now,
// oldest first.
func (s *Store) DueNotifications(ctx context.Context, now time.Time, size int) ([]*Notification, error) {
	return s.ListNotifications(ctx, 1, size, "send_at asc",
		Where("state = ?", NotificationPending),
		Where("send_at <= ?", now),
	)
}
