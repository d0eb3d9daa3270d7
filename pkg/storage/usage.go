package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrLimitReached is returned by IncrementUsage when the counter is already
// at the limit.
var ErrLimitReached = errors.New("storage: usage limit reached")

// Usage counts the prompts a user formatted during a period.
type Usage struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID string `gorm:"index;not null"`
	Period string `gorm:"not null"`
	Count  int    `gorm:"not null;default:0"`
}

func UsageID(userID, period string) string {
	return userID + "/" + period
}

func (s *Store) GetUsage(ctx context.Context, userID, period string) (*Usage, error) {
	var v Usage
	id := UsageID(userID, period)
	if err := s.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: failed to get usage %s: %w", id, err)
	}
	return &v, nil
}

// IncrementUsage bumps the counter for the user and period and returns the
// new count. A limit greater than zero is checked by the update itself, so
// concurrent calls can't push the counter past it.
func (s *Store) IncrementUsage(ctx context.Context, userID, period string, limit int) (int, error) {
	id := UsageID(userID, period)
	var count int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Create the row for the period if it doesn't exist yet
		first := &Usage{ID: id, UserID: userID, Period: period}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(first).Error; err != nil {
			return err
		}

		q := tx.Model(&Usage{}).Where("id = ?", id)
		if limit > 0 {
			q = q.Where("count < ?", limit)
		}
		res := q.Updates(map[string]any{
			"count":      gorm.Expr("count + ?", 1),
			"updated_at": time.Now().UTC(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrLimitReached
		}

		var v Usage
		if err := tx.First(&v, "id = ?", id).Error; err != nil {
			return err
		}
		count = v.Count
		return nil
	})
	if errors.Is(err, ErrLimitReached) {
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("storage: failed to increment usage %s: %w", id, err)
	}
	return count, nil
}

func (s *Store) DeleteUsage(ctx context.Context, userID, period string) error {
	id := UsageID(userID, period)
	if err := s.db.WithContext(ctx).Delete(&Usage{ID: id}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("storage: failed to delete usage %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListUsages(ctx context.Context, page, size int, orderBy string, filter ...Filter) ([]*Usage, error) {
	vs := []*Usage{}
	q := paginate(s.db.WithContext(ctx), page, size, orderBy, filter)
	if err := q.Find(&vs).Error; err != nil {
		return nil, fmt.Errorf("storage: failed to list usages: %w", err)
	}
	return vs, nil
}
