package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/igolaizola/musicprompt/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	db := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.New("sqlite", db, false)
	require.NoError(t, err)
	require.NoError(t, store.Start(ctx))
	t.Cleanup(func() { _ = store.Stop() })
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SetUser(ctx, &storage.User{ID: "u1", Email: "u1@example.com", Role: storage.RoleUser}))
	require.NoError(t, store.SetUser(ctx, &storage.User{ID: "u2", Email: "u2@example.com", Role: storage.RoleUser}))

	var buf bytes.Buffer
	cfg := &Config{DBType: "sqlite", DBConn: db, Output: "json", User: "u1", Role: "beta", Premium: true}
	require.NoError(t, run(ctx, cfg, &buf))
	var u user
	require.NoError(t, json.Unmarshal(buf.Bytes(), &u))
	assert.Equal(t, storage.RoleBeta, u.Role)
	assert.True(t, u.Premium)

	buf.Reset()
	require.NoError(t, run(ctx, &Config{DBType: "sqlite", DBConn: db, Output: "json", Role: "user"}, &buf))
	var users []user
	require.NoError(t, json.Unmarshal(buf.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "u2", users[0].ID)

	err = run(ctx, &Config{DBType: "sqlite", DBConn: db, User: "u2", Role: "root"}, &buf)
	assert.ErrorContains(t, err, "invalid role")

	err = run(ctx, &Config{DBType: "sqlite", DBConn: db, User: "missing", Disable: true}, &buf)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	require.NoError(t, run(ctx, &Config{DBType: "sqlite", DBConn: db, User: "u2", Disable: true}, &bytes.Buffer{}))
	got, err := store.GetUser(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, got.Disabled)
}
