package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/igolaizola/musicprompt/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	db := filepath.Join(dir, "test.db")
	store, err := storage.New("sqlite", db, false)
	require.NoError(t, err)
	require.NoError(t, store.Start(ctx))
	t.Cleanup(func() { _ = store.Stop() })
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SetPrompt(ctx, &storage.Prompt{UserID: "u1", Title: "rain", Text: "Create a track about rain."}))
	require.NoError(t, store.SetPrompt(ctx, &storage.Prompt{UserID: "u2", Title: "snow", Text: "Create a track about snow."}))

	out := filepath.Join(dir, "prompts.csv")
	bucket := filepath.Join(dir, "bucket")
	cfg := &Config{
		DBType: "sqlite",
		DBConn: db,
		FSType: "local",
		FSConn: bucket,
		User:   "u1",
		Output: out,
		Upload: true,
	}
	require.NoError(t, Run(ctx, cfg))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Create a track about rain.")

	uploaded, err := os.ReadFile(filepath.Join(bucket, "prompts.csv"))
	require.NoError(t, err)
	assert.Equal(t, b, uploaded)

	cfg.Format = "xml"
	cfg.Upload = false
	assert.Error(t, Run(ctx, cfg))
}
