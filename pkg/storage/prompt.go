package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Prompt is a formatted prompt saved by a user. Data holds the form record as
// a JSON blob.
type Prompt struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID   string `gorm:"index;not null;default:''"`
	Title    string `gorm:"not null;default:''"`
	Data     string `gorm:"not null;default:''"`
	Text     string `gorm:"not null;default:''"`
	Favorite bool   `gorm:"not null;default:false"`
}

func (s *Store) GetPrompt(ctx context.Context, id string) (*Prompt, error) {
	var v Prompt
	if err := s.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: failed to get prompt %s: %w", id, err)
	}
	return &v, nil
}

func (s *Store) SetPrompt(ctx context.Context, v *Prompt) error {
	if v.ID == "" {
		v.ID = NewID()
	}
	if err := s.db.WithContext(ctx).Save(v).Error; err != nil {
		return fmt.Errorf("storage: failed to set prompt %s: %w", v.ID, err)
	}
	return nil
}

func (s *Store) UpdatePrompt(ctx context.Context, id string, fields map[string]any) error {
	return update(ctx, s.db, &Prompt{}, "prompt", id, fields)
}

func (s *Store) DeletePrompt(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&Prompt{ID: id}, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("storage: failed to delete prompt %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListPrompts(ctx context.Context, page, size int, orderBy string, filter ...Filter) ([]*Prompt, error) {
	vs := []*Prompt{}
	q := paginate(s.db.WithContext(ctx), page, size, orderBy, filter)
	if err := q.Find(&vs).Error; err != nil {
		return nil, fmt.Errorf("storage: failed to list prompts: %w", err)
	}
	return vs, nil
}
