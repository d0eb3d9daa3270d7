package maintenance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/igolaizola/musicprompt/pkg/auth"
	"github.com/igolaizola/musicprompt/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	ctx := context.Background()
	s, err := storage.New("sqlite", filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Migrate(ctx))
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func TestState(t *testing.T) {
	ctx := context.Background()
	svc := New(newStore(t))

	st, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.False(t, st.Enabled)

	require.NoError(t, svc.Set(ctx, true, ""))
	st, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, &State{Enabled: true, Message: DefaultMessage}, st)

	require.NoError(t, svc.Set(ctx, true, "Back at 10:00 UTC"))
	st, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Back at 10:00 UTC", st.Message)

	require.NoError(t, svc.Set(ctx, false, ""))
	st, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, &State{}, st)

	// Both keys are written together so the old message never resurfaces.
	require.NoError(t, svc.Set(ctx, true, ""))
	st, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultMessage, st.Message)
}

func TestMiddleware(t *testing.T) {
	ctx := context.Background()
	svc := New(newStore(t))
	h := svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	do := func(u *storage.User) int {
		r := httptest.NewRequest(http.MethodGet, "/api/prompts", nil)
		if u != nil {
			r = r.WithContext(auth.WithUser(r.Context(), u))
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, do(nil))
	require.NoError(t, svc.Set(ctx, true, ""))
	assert.Equal(t, http.StatusServiceUnavailable, do(nil))
	assert.Equal(t, http.StatusServiceUnavailable, do(&storage.User{ID: "u1", Role: storage.RoleBeta}))
	assert.Equal(t, http.StatusNoContent, do(&storage.User{ID: "u2", Role: storage.RoleAdmin}))
}
