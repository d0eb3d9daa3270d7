package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleBeta  Role = "beta"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleUser, RoleBeta, RoleAdmin:
		return r, true
	}
	return "", false
}

// User is a profile linked to the subject of the hosted auth provider.
type User struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Email     string `gorm:"uniqueIndex;not null"`
	Role      Role   `gorm:"not null;default:'user'"`
	Premium   bool   `gorm:"not null;default:false"`
	PremiumAt *time.Time
	Disabled  bool `gorm:"index;not null;default:false"`
}

func (s *Store) GetUser(ctx context.Context, id string) (*User, error) {
	var v User
	if err := s.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: failed to get user %s: %w", id, err)
	}
	return &v, nil
}

func (s *Store) SetUser(ctx context.Context, v *User) error {
	if err := s.db.WithContext(ctx).Save(v).Error; err != nil {
		return fmt.Errorf("storage: failed to set user %s: %w", v.ID, err)
	}
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, fields map[string]any) error {
	return update(ctx, s.db, &User{}, "user", id, fields)
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&User{ID: id}, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("storage: failed to delete user %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context, page, size int, orderBy string, filter ...Filter) ([]*User, error) {
	vs := []*User{}
	q := paginate(s.db.WithContext(ctx), page, size, orderBy, filter)
	if err := q.Find(&vs).Error; err != nil {
		return nil, fmt.Errorf("storage: failed to list users: %w", err)
	}
	return vs, nil
}
