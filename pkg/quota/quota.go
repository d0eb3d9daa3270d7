// Package quota limits how many prompts free users can format per day.
package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/igolaizola/musicprompt/pkg/storage"
)

const DefaultFreeLimit = 5

var ErrExceeded = errors.New("quota: daily limit exceeded")

type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

type Status struct {
	Plan      Plan   `json:"plan"`
	Period    string `json:"period"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Unlimited bool   `json:"unlimited"`
}

type Config struct {
	// FreeLimit is the number of prompts per UTC day on the free plan.
	FreeLimit int
	// Now defaults to time.Now.
	Now func() time.Time
}

type Service struct {
	store     *storage.Store
	freeLimit int
	now       func() time.Time
}

func New(store *storage.Store, cfg *Config) *Service {
	s := &Service{store: store, freeLimit: DefaultFreeLimit, now: time.Now}
	if cfg != nil {
		if cfg.FreeLimit > 0 {
			s.freeLimit = cfg.FreeLimit
		}
		if cfg.Now != nil {
			s.now = cfg.Now
		}
	}
	return s
}

// Unlimited reports whether the user has no daily limit: premium users and
// the admin and beta roles.
func Unlimited(u *storage.User) bool {
	if u.Premium {
		return true
	}
	switch u.Role {
	case storage.RoleAdmin, storage.RoleBeta:
		return true
	}
	return false
}

func (s *Service) period() string {
	return s.now().UTC().Format("2006-01-02")
}

func (s *Service) Status(ctx context.Context, u *storage.User) (*Status, error) {
	period := s.period()
	used := 0
	v, err := s.store.GetUsage(ctx, u.ID, period)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("quota: couldn't get usage: %w", err)
	default:
		used = v.Count
	}
	return s.status(u, period, used), nil
}

func (s *Service) status(u *storage.User, period string, used int) *Status {
	st := &Status{Plan: PlanFree, Period: period, Used: used}
	if u.Premium {
		st.Plan = PlanPremium
	}
	if Unlimited(u) {
		st.Unlimited = true
		return st
	}
	st.Limit = s.freeLimit
	st.Remaining = s.freeLimit - used
	if st.Remaining < 0 {
		st.Remaining = 0
	}
	return st
}

// Consume records one formatted prompt for the user. It returns ErrExceeded
// when a free user has reached the daily limit.
func (s *Service) Consume(ctx context.Context, u *storage.User) (*Status, error) {
	period := s.period()
	limit := s.freeLimit
	if Unlimited(u) {
		limit = 0
	}
	used, err := s.store.IncrementUsage(ctx, u.ID, period, limit)
	if errors.Is(err, storage.ErrLimitReached) {
		return s.status(u, period, limit), ErrExceeded
	}
	if err != nil {
		return nil, fmt.Errorf("quota: couldn't consume: %w", err)
	}
	return s.status(u, period, used), nil
}
