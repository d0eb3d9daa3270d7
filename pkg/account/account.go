// Package account keeps the user profiles linked to provider identities.
package account

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/igolaizola/musicprompt/pkg/auth"
	"github.com/igolaizola/musicprompt/pkg/storage"
)

type Service struct {
	store  *storage.Store
	admins map[string]struct{}
	debug  bool
}

// New returns an account service. Users whose email is in admins get the
// admin role.
func New(store *storage.Store, admins []string, debug bool) *Service {
	m := map[string]struct{}{}
	for _, a := range admins {
		if a = normalizeEmail(a); a != "" {
			m[a] = struct{}{}
		}
	}
	return &Service{store: store, admins: m, debug: debug}
}

func (s *Service) debugf(format string, args ...interface{}) {
	if !s.debug {
		return
	}
	format += "\n"
	log.Printf(format, args...)
}

// IsAdminEmail reports whether the email is in the admin allow-list.
func (s *Service) IsAdminEmail(email string) bool {
	_, ok := s.admins[normalizeEmail(email)]
	return ok
}

// Ensure returns the profile for the claims, creating it on first sight.
// Allow-listed emails are promoted to admin.
func (s *Service) Ensure(ctx context.Context, claims *auth.Claims) (*storage.User, error) {
	email := normalizeEmail(claims.Email)
	u, err := s.store.GetUser(ctx, claims.Subject)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		if email == "" {
			// Emails are unique, fall back to the subject for tokens without one.
			email = claims.Subject
		}
		u = &storage.User{
			ID:    claims.Subject,
			Email: email,
			Role:  storage.RoleUser,
		}
		if s.IsAdminEmail(email) {
			u.Role = storage.RoleAdmin
		}
		if err := s.store.SetUser(ctx, u); err != nil {
			return nil, fmt.Errorf("account: couldn't create user: %w", err)
		}
		s.debugf("account: created user %s (%s)", u.ID, u.Role)
		return u, nil
	case err != nil:
		return nil, fmt.Errorf("account: couldn't get user: %w", err)
	}

	fields := map[string]any{}
	if email != "" && email != u.Email {
		fields["email"] = email
		u.Email = email
	}
	if u.Role != storage.RoleAdmin && s.IsAdminEmail(u.Email) {
		fields["role"] = storage.RoleAdmin
		u.Role = storage.RoleAdmin
	}
	if len(fields) > 0 {
		if err := s.store.UpdateUser(ctx, u.ID, fields); err != nil {
			return nil, fmt.Errorf("account: couldn't update user: %w", err)
		}
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (*storage.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("account: couldn't get user %s: %w", id, err)
	}
	return u, nil
}

// SetRole changes the role of a user, e.g. to upgrade a beta tester.
func (s *Service) SetRole(ctx context.Context, id string, role storage.Role) error {
	if _, ok := storage.ParseRole(string(role)); !ok {
		return fmt.Errorf("account: invalid role %q", role)
	}
	if err := s.store.UpdateUser(ctx, id, map[string]any{"role": role}); err != nil {
		return fmt.Errorf("account: couldn't set role of %s: %w", id, err)
	}
	log.Printf("account: user %s role set to %s\n", id, role)
	return nil
}

func (s *Service) SetDisabled(ctx context.Context, id string, disabled bool) error {
	if err := s.store.UpdateUser(ctx, id, map[string]any{"disabled": disabled}); err != nil {
		return fmt.Errorf("account: couldn't update user %s: %w", id, err)
	}
	return nil
}

// SetPremium marks the user as a paying customer.
func (s *Service) SetPremium(ctx context.Context, id string, now time.Time) error {
	now = now.UTC()
	if err := s.store.UpdateUser(ctx, id, map[string]any{"premium": true, "premium_at": &now}); err != nil {
		return fmt.Errorf("account: couldn't set premium for %s: %w", id, err)
	}
	return nil
}

func (s *Service) IsAdmin(u *storage.User) bool {
	return u != nil && u.Role == storage.RoleAdmin
}

func (s *Service) List(ctx context.Context, page, size int, role string) ([]*storage.User, error) {
	var filters []storage.Filter
	if role != "" {
		filters = append(filters, storage.Where("role = ?", role))
	}
	users, err := s.store.ListUsers(ctx, page, size, "created_at asc", filters...)
	if err != nil {
		return nil, fmt.Errorf("account: couldn't list users: %w", err)
	}
	return users, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
