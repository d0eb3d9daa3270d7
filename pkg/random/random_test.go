package random

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/igolaizola/musicprompt/pkg/catalog"
	"github.com/igolaizola/musicprompt/pkg/prompt"
)

// zero always returns the first candidate.
type zero struct{}

func (zero) Intn(int) int { return 0 }

func seeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

func TestTrackValid(t *testing.T) {
	g := seeded(42)
	for i := 0; i < 500; i++ {
		d := g.Track()
		if err := d.Validate(); err != nil {
			t.Fatalf("Track() = %+v; %v", d, err)
		}
		bpm, err := strconv.Atoi(d.TempoBPM)
		if err != nil || bpm < MinBPM || bpm > MaxBPM {
			t.Fatalf("Track().TempoBPM = %q; want [%d, %d]", d.TempoBPM, MinBPM, MaxBPM)
		}
		checkLen(t, "GenresPrimary", d.GenresPrimary, 1, 2)
		checkLen(t, "GenresElectronic", d.GenresElectronic, 1, 3)
		checkLen(t, "Mood", d.Mood, 1, 3)
		checkLen(t, "Beat", d.Beat, 1, 2)
		checkLen(t, "Bass", d.Bass, 1, 2)
		checkLen(t, "Instruments", d.Instruments, 1, 3)
		if !catalog.Contains(catalog.Keys, d.KeyScale) {
			t.Fatalf("Track().KeyScale = %q; not in catalog", d.KeyScale)
		}
		if !catalog.Contains(catalog.Eras, d.Era) {
			t.Fatalf("Track().Era = %q; not in catalog", d.Era)
		}
		if !catalog.Contains(catalog.Subjects, d.Subject) {
			t.Fatalf("Track().Subject = %q; not in catalog", d.Subject)
		}
		none := d.VocalGender == string(catalog.VocalNone)
		if none && d.VocalDelivery != "" {
			t.Fatalf("Track() = %+v; want no delivery for instrumental", d)
		}
		if !none && d.VocalDelivery == "" {
			t.Fatalf("Track() = %+v; want a delivery", d)
		}
		got := prompt.Format(d)
		if got == prompt.Fallback {
			t.Fatalf("Format(Track()) = fallback for %+v", d)
		}
		if none && strings.Contains(got, "vocals") {
			t.Fatalf("Format(Track()) = %q; want no vocals", got)
		}
	}
}

func checkLen(t *testing.T, field string, vs []string, lo, hi int) {
	t.Helper()
	if len(vs) < lo || len(vs) > hi {
		t.Fatalf("Track().%s = %v; want %d..%d values", field, vs, lo, hi)
	}
	seen := map[string]bool{}
	for _, v := range vs {
		if seen[v] {
			t.Fatalf("Track().%s = %v; duplicate %q", field, vs, v)
		}
		seen[v] = true
	}
}

func TestReproducible(t *testing.T) {
	a := seeded(7).Track()
	b := seeded(7).Track()
	if prompt.Format(a) != prompt.Format(b) {
		t.Fatalf("Track() differs for the same seed: %+v != %+v", a, b)
	}
}

func TestFirstChoices(t *testing.T) {
	d := New(zero{}).Track()
	if d.Subject != catalog.Subjects[0] {
		t.Errorf("Subject = %q; want %q", d.Subject, catalog.Subjects[0])
	}
	if len(d.GenresPrimary) != 1 || d.GenresPrimary[0] != catalog.PrimaryGenres[0] {
		t.Errorf("GenresPrimary = %v; want [%s]", d.GenresPrimary, catalog.PrimaryGenres[0])
	}
	if d.TempoBPM != strconv.Itoa(MinBPM) {
		t.Errorf("TempoBPM = %q; want %d", d.TempoBPM, MinBPM)
	}
	if d.VocalGender != string(catalog.VocalNone) || d.VocalDelivery != "" {
		t.Errorf("VocalGender = %q, VocalDelivery = %q; want instrumental", d.VocalGender, d.VocalDelivery)
	}
}

func TestIdeas(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{5, 5},
		{20, 20},
		{100, 20},
	}
	g := seeded(1)
	for _, tt := range tests {
		ideas := g.Ideas(tt.n)
		if len(ideas) != tt.want {
			t.Fatalf("Ideas(%d) = %d ideas; want %d", tt.n, len(ideas), tt.want)
		}
		for _, idea := range ideas {
			if idea.Subject == "" || !strings.HasSuffix(idea.Description, " sound.") {
				t.Fatalf("Ideas(%d) = %+v; want subject and description", tt.n, idea)
			}
		}
	}
}

func TestFlavorDefault(t *testing.T) {
	if got := flavor("Sea Shanty"); got != "with its own distinctive sound" {
		t.Fatalf("flavor() = %q", got)
	}
	for _, g := range catalog.PrimaryGenres {
		if flavor(g) == "with its own distinctive sound" {
			t.Errorf("flavor(%q) uses the default", g)
		}
	}
}

func TestPackageConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if prompt.Format(Track()) == prompt.Fallback {
					t.Error("Format(Track()) = fallback")
				}
				_ = Subject()
				_ = Idea()
			}
		}()
	}
	wg.Wait()
}
