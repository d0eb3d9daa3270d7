package maintenance

import (
	"bytes"
	"context"
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
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Stop())

	var buf bytes.Buffer
	require.NoError(t, run(ctx, &Config{DBType: "sqlite", DBConn: db, Enable: true, Message: "upgrading"}, &buf))
	assert.Equal(t, "maintenance: true\nmessage: upgrading\n", buf.String())

	buf.Reset()
	require.NoError(t, run(ctx, &Config{DBType: "sqlite", DBConn: db}, &buf))
	assert.Contains(t, buf.String(), "maintenance: true")

	buf.Reset()
	require.NoError(t, run(ctx, &Config{DBType: "sqlite", DBConn: db, Disable: true}, &buf))
	assert.Contains(t, buf.String(), "maintenance: false")

	assert.Error(t, run(ctx, &Config{DBType: "sqlite", DBConn: db, Enable: true, Disable: true}, &buf))
}
