package suggest

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/igolaizola/musicprompt/pkg/catalog"
)

func TestDrumAndBass(t *testing.T) {
	s := Get([]string{"Drum & Bass"}, nil)
	if len(s.BPM) == 0 || len(s.BPM) > Max {
		t.Fatalf("Get().BPM = %v; want 1..%d values", s.BPM, Max)
	}
	for _, v := range s.BPM {
		n, err := strconv.Atoi(v)
		if err != nil || n < 170 || n > 179 {
			t.Errorf("Get().BPM = %v; want values in the 170s", s.BPM)
		}
	}
}

func TestDeterministic(t *testing.T) {
	first := Get([]string{"House"}, nil)
	for i := 0; i < 5; i++ {
		if got := Get([]string{"House"}, nil); !reflect.DeepEqual(got, first) {
			t.Fatalf("Get() = %v; want %v", got, first)
		}
	}
	if want := []string{"120", "124", "128"}; !reflect.DeepEqual(first.BPM, want) {
		t.Fatalf("Get().BPM = %v; want %v", first.BPM, want)
	}
}

func TestEmpty(t *testing.T) {
	tests := []struct {
		name   string
		genres []string
		moods  []string
	}{
		{"nil", nil, nil},
		{"unknown", []string{"Polka Step", ""}, []string{"Sleepy"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Get(tt.genres, tt.moods)
			for name, l := range lists(s) {
				if l == nil {
					t.Errorf("Get().%s = nil; want empty list", name)
				}
				if len(l) != 0 {
					t.Errorf("Get().%s = %v; want empty", name, l)
				}
			}
		})
	}
}

func TestOrder(t *testing.T) {
	s := Get([]string{"polka step", " jazz ", "HOUSE"}, []string{"Happy"})
	if want := []string{"90", "120", "160"}; !reflect.DeepEqual(s.BPM, want) {
		t.Errorf("Get().BPM = %v; want %v", s.BPM, want)
	}
	if want := []string{"Bb Major", "Eb Major", "F Major"}; !reflect.DeepEqual(s.Keys, want) {
		t.Errorf("Get().Keys = %v; want %v", s.Keys, want)
	}
	if want := []string{"Shuffle", "Syncopated", "Four-on-the-Floor"}; !reflect.DeepEqual(s.Beats, want) {
		t.Errorf("Get().Beats = %v; want %v", s.Beats, want)
	}
}

func TestMoodKeys(t *testing.T) {
	s := Get(nil, []string{"Sad", "Happy"})
	if want := []string{"A Minor", "D Minor", "E Minor"}; !reflect.DeepEqual(s.Keys, want) {
		t.Fatalf("Get().Keys = %v; want %v", s.Keys, want)
	}
	if len(s.BPM) != 0 {
		t.Fatalf("Get().BPM = %v; want empty", s.BPM)
	}
}

func TestBounded(t *testing.T) {
	all := append(append([]string{}, catalog.PrimaryGenres...), catalog.ElectronicGenres...)
	s := Get(all, catalog.Moods)
	for name, l := range lists(s) {
		if len(l) > Max {
			t.Errorf("Get().%s = %v; want at most %d", name, l, Max)
		}
		seen := map[string]bool{}
		for _, v := range l {
			if seen[v] {
				t.Errorf("Get().%s = %v; duplicate %q", name, l, v)
			}
			seen[v] = true
		}
	}
}

func TestTableCoverage(t *testing.T) {
	for _, list := range [][]string{catalog.PrimaryGenres, catalog.ElectronicGenres} {
		for _, g := range list {
			if !Known(g) {
				t.Errorf("genre %q has no suggestions", g)
			}
		}
	}
	for _, m := range catalog.Moods {
		if len(moods[key(m)]) == 0 {
			t.Errorf("mood %q has no keys", m)
		}
	}
	check := func(genre, field string, list, vs []string) {
		t.Helper()
		for _, v := range vs {
			if !catalog.Contains(list, v) {
				t.Errorf("%s: %s %q isn't in the catalog", genre, field, v)
			}
		}
	}
	for g, h := range genres {
		check(g, "key", catalog.Keys, h.keys)
		check(g, "beat", catalog.BeatStyles, h.beats)
		check(g, "bass", catalog.BassCharacteristics, h.bass)
		check(g, "era", catalog.Eras, h.era)
		for _, v := range h.bpm {
			if n, err := strconv.Atoi(v); err != nil || n <= 0 {
				t.Errorf("%s: invalid bpm %q", g, v)
			}
		}
	}
	for m, ks := range moods {
		check(m, "key", catalog.Keys, ks)
	}
}

func lists(s Suggestions) map[string][]string {
	return map[string][]string{
		"BPM":   s.BPM,
		"Keys":  s.Keys,
		"Beats": s.Beats,
		"Bass":  s.Bass,
		"Era":   s.Era,
	}
}
