package account

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
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

func claims(sub, email string) *auth.Claims {
	return &auth.Claims{Email: email, RegisteredClaims: jwt.RegisteredClaims{Subject: sub}}
}

func TestEnsure(t *testing.T) {
	ctx := context.Background()
	svc := New(newStore(t), []string{" Boss@Example.com "}, false)

	u, err := svc.Ensure(ctx, claims("u1", "user@example.com"))
	require.NoError(t, err)
	assert.Equal(t, storage.RoleUser, u.Role)
	assert.False(t, svc.IsAdmin(u))

	a, err := svc.Ensure(ctx, claims("u2", "boss@example.com"))
	require.NoError(t, err)
	assert.Equal(t, storage.RoleAdmin, a.Role)
	assert.True(t, svc.IsAdmin(a))

	// Second sight returns the same profile.
	again, err := svc.Ensure(ctx, claims("u1", "user@example.com"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, u.CreatedAt.Unix(), again.CreatedAt.Unix())
}

func TestRoles(t *testing.T) {
	ctx := context.Background()
	svc := New(newStore(t), nil, false)

	_, err := svc.Ensure(ctx, claims("u1", "a@example.com"))
	require.NoError(t, err)
	_, err = svc.Ensure(ctx, claims("u2", "b@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.SetRole(ctx, "u1", storage.RoleBeta))
	require.Error(t, svc.SetRole(ctx, "u1", "owner"))
	require.Error(t, svc.SetRole(ctx, "missing", storage.RoleBeta))

	beta, err := svc.List(ctx, 1, 10, string(storage.RoleBeta))
	require.NoError(t, err)
	require.Len(t, beta, 1)
	assert.Equal(t, "u1", beta[0].ID)

	all, err := svc.List(ctx, 1, 10, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.SetPremium(ctx, "u2", time.Now()))
	u, err := svc.Get(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, u.Premium)
	require.NotNil(t, u.PremiumAt)
}
