// Package export writes saved prompts as csv or json.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/igolaizola/musicprompt/pkg/storage"
)

const pageSize = 500

type Row struct {
	ID        string          `json:"id" csv:"id"`
	CreatedAt string          `json:"created_at" csv:"created_at"`
	UserID    string          `json:"user_id" csv:"user_id"`
	Title     string          `json:"title" csv:"title"`
	Favorite  bool            `json:"favorite" csv:"favorite"`
	Prompt    string          `json:"prompt" csv:"prompt"`
	Data      json.RawMessage `json:"data,omitempty" csv:"-"`
	RawData   string          `json:"-" csv:"data"`
}

// Formats lists the supported output formats.
var Formats = []string{"csv", "json"}

// ContentType returns the mime type of the format.
func ContentType(format string) string {
	if format == "json" {
		return "application/json"
	}
	return "text/csv"
}

// Rows converts stored prompts into export rows.
func Rows(prompts []*storage.Prompt) []*Row {
	rows := make([]*Row, 0, len(prompts))
	for _, p := range prompts {
		r := &Row{
			ID:        p.ID,
			CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
			UserID:    p.UserID,
			Title:     p.Title,
			Favorite:  p.Favorite,
			Prompt:    p.Text,
			RawData:   p.Data,
		}
		if json.Valid([]byte(p.Data)) {
			r.Data = json.RawMessage(p.Data)
		}
		rows = append(rows, r)
	}
	return rows
}

// Write encodes the prompts to w in the given format.
func Write(w io.Writer, format string, prompts []*storage.Prompt) error {
	rows := Rows(prompts)
	switch strings.ToLower(format) {
	case "csv", "":
		if err := gocsv.Marshal(rows, w); err != nil {
			return fmt.Errorf("export: couldn't marshal csv: %w", err)
		}
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("export: couldn't marshal json: %w", err)
		}
	default:
		return fmt.Errorf("export: unsupported format %q", format)
	}
	return nil
}

// Prompts returns every stored prompt, oldest first. An empty user id returns
// the prompts of all users.
func Prompts(ctx context.Context, store *storage.Store, userID string) ([]*storage.Prompt, error) {
	var filters []storage.Filter
	if userID != "" {
		filters = append(filters, storage.Where("user_id = ?", userID))
	}
	var all []*storage.Prompt
	for page := 1; ; page++ {
		ps, err := store.ListPrompts(ctx, page, pageSize, "id asc", filters...)
		if err != nil {
			return nil, fmt.Errorf("export: couldn't list prompts: %w", err)
		}
		all = append(all, ps...)
		if len(ps) < pageSize {
			return all, nil
		}
	}
}
