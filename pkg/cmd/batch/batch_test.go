package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/igolaizola/musicprompt/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	csvInput = `title,subject,genres_primary,mood,tempo_bpm
Night,midnight drive,Synthwave,Nostalgic,110
Rain,,Jazz;Blues,Sad;Calm,
`
	jsonInput = `[{"title":"Night","subject":"midnight drive","genres_primary":["Synthwave"],"mood":["Nostalgic"],"tempo_bpm":"110"},{"genres_primary":["Jazz","Blues"]}]`
	yamlInput = `- title: Night
  subject: midnight drive
  genres_primary: [Synthwave]
  mood: [Nostalgic]
  tempo_bpm: "110"
- genres_primary: [Jazz, Blues]
`
	first = "Create a track about midnight drive in the style of Synthwave with a Nostalgic mood at 110 BPM."
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunFormats(t *testing.T) {
	ctx := context.Background()
	for name, content := range map[string]string{
		"in.csv":  csvInput,
		"in.json": jsonInput,
		"in.yaml": yamlInput,
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, run(ctx, &Config{Input: write(t, name, content)}, &buf))
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, 2)
			assert.Equal(t, first, lines[0])
			assert.Contains(t, lines[1], "in the style of Jazz, Blues")
		})
	}
}

func TestRunLimit(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Input: write(t, "in.json", jsonInput), Limit: 1, Output: "json"}
	require.NoError(t, run(context.Background(), cfg, &buf))
	var results []result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Night", results[0].Title)
}

func TestRunStrict(t *testing.T) {
	path := write(t, "in.json", `[{"mood":["Grumpy"]}]`)
	err := run(context.Background(), &Config{Input: path, Strict: true}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "record 1")
}

func TestRunUnsupported(t *testing.T) {
	err := run(context.Background(), &Config{Input: write(t, "in.txt", "x")}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunSave(t *testing.T) {
	ctx := context.Background()
	db := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.New("sqlite", db, false)
	require.NoError(t, err)
	require.NoError(t, store.Start(ctx))
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SetUser(ctx, &storage.User{ID: "u1", Email: "u1@example.com", Role: storage.RoleUser}))

	input := write(t, "in.csv", csvInput)
	err = run(ctx, &Config{Input: input, Save: true, DBType: "sqlite", DBConn: db}, &bytes.Buffer{})
	assert.Error(t, err, "user is required")

	var buf bytes.Buffer
	cfg := &Config{Input: input, Save: true, User: "u1", DBType: "sqlite", DBConn: db, Output: "json"}
	require.NoError(t, run(ctx, cfg, &buf))

	ps, err := store.ListPrompts(ctx, 1, 10, "id asc")
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "Night", ps[0].Title)
	assert.Equal(t, first, ps[0].Text)
	assert.Equal(t, "u1", ps[1].UserID)
	require.NoError(t, store.Stop())
}
