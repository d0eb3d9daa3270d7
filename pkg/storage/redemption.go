package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"
)

// Redemption is a paid checkout session that has already upgraded a user.
type Redemption struct {
	// ID is the checkout session id of the payment provider.
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time

	StateID string `gorm:"uniqueIndex;not null"`
	UserID  string `gorm:"index;not null"`
}

// Redeem records the checkout session and state. It returns false when
// either of them was redeemed before.
func (s *Store) Redeem(ctx context.Context, sessionID, stateID, userID string) (bool, error) {
	r := &Redemption{ID: sessionID, StateID: stateID, UserID: userID}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(r)
	if res.Error != nil {
		return false, fmt.Errorf("storage: failed to redeem checkout %s: %w", sessionID, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) ListRedemptions(ctx context.Context, page, size int, orderBy string, filter ...Filter) ([]*Redemption, error) {
	vs := []*Redemption{}
	q := paginate(s.db.WithContext(ctx), page, size, orderBy, filter)
	if err := q.Find(&vs).Error; err != nil {
		return nil, fmt.Errorf("storage: failed to list redemptions: %w", err)
	}
	return vs, nil
}
