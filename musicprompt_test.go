package musicprompt

import (
	"strings"
	"testing"
)

func TestFormatPrompt(t *testing.T) {
	got := FormatPrompt(Data{
		Subject:        "midnight drive",
		GenresPrimary:  []string{"Synthwave"},
		Mood:           []string{"Nostalgic"},
		TempoBPM:       "110",
		VocalGender:    "none",
		WeirdnessLevel: "conventional",
	})
	for _, want := range []string{"midnight drive", "Synthwave", "Nostalgic", "110 BPM"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatPrompt() = %q; want %q", got, want)
		}
	}
	if FormatPrompt(Data{}) != FormatPrompt(Data{}) {
		t.Fatal("FormatPrompt() isn't deterministic")
	}
}

func TestSuggestionsUseGenreSelection(t *testing.T) {
	d := GenerateRandomTrack()
	s := GetSmartSuggestions(d.Genres(), d.Mood)
	if len(s.Keys) == 0 {
		t.Fatalf("GetSmartSuggestions(%v, %v).Keys is empty", d.Genres(), d.Mood)
	}
	if len(GenerateRandomTrackIdeas(3)) != 3 {
		t.Fatal("GenerateRandomTrackIdeas(3) didn't return 3 ideas")
	}
	if GenerateRandomTrackIdea().Subject == "" {
		t.Fatal("GenerateRandomTrackIdea() has no subject")
	}
	if len(Options().PrimaryGenres) == 0 {
		t.Fatal("Options() has no genres")
	}
}
