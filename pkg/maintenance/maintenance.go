// Package maintenance stores the maintenance flag and blocks the API while
// it's on.
package maintenance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/igolaizola/musicprompt/pkg/auth"
	"github.com/igolaizola/musicprompt/pkg/storage"
)

const (
	enabledKey = "maintenance/enabled"
	messageKey = "maintenance/message"

	DefaultMessage = "We're doing some maintenance. Please come back in a few minutes."
)

type State struct {
	Enabled bool   `json:"maintenance" yaml:"maintenance"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

type Service struct {
	store *storage.Store
}

func New(store *storage.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context) (*State, error) {
	st := &State{}
	v, err := s.store.GetSetting(ctx, enabledKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return st, nil
	case err != nil:
		return nil, fmt.Errorf("maintenance: couldn't get state: %w", err)
	}
	st.Enabled, _ = strconv.ParseBool(v.Value)
	if !st.Enabled {
		return st, nil
	}
	st.Message = DefaultMessage
	m, err := s.store.GetSetting(ctx, messageKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("maintenance: couldn't get message: %w", err)
	case m.Value != "":
		st.Message = m.Value
	}
	return st, nil
}

func (s *Service) Set(ctx context.Context, enabled bool, message string) error {
	if err := s.store.SetSettings(ctx,
		&storage.Setting{ID: enabledKey, Value: strconv.FormatBool(enabled)},
		&storage.Setting{ID: messageKey, Value: message},
	); err != nil {
		return fmt.Errorf("maintenance: couldn't set state: %w", err)
	}
	return nil
}

// Middleware answers 503 while maintenance is on. Admins go through, so it
// must run after the auth middleware to see them.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := auth.UserFrom(r.Context()); ok && u.Role == storage.RoleAdmin {
			next.ServeHTTP(w, r)
			return
		}
		st, err := s.Get(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if !st.Enabled {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "300")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(st)
	})
}
