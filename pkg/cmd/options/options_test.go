package options

import (
	"bytes"
	"strings"
	"testing"

	"github.com/igolaizola/musicprompt/pkg/catalog"
)

func TestRunField(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&Config{Field: "mood"}, &buf); err != nil {
		t.Fatal(err)
	}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(got) != len(catalog.Moods) || got[0] != catalog.Moods[0] {
		t.Fatalf("run() = %v; want %v", got, catalog.Moods)
	}
	if err := run(&Config{Field: "colour"}, &buf); err == nil {
		t.Fatal("run(colour) = nil; want error")
	}
}

func TestRunAll(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&Config{Output: "json"}, &buf); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{`"genres_primary"`, `"weirdness_level"`, `"value"`} {
		if !strings.Contains(buf.String(), k) {
			t.Errorf("run() is missing %s", k)
		}
	}
}
