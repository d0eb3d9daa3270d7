// Package musicprompt turns structured music picks into a prompt for music
// generation tools, suggests values for the fields still empty and comes up
// with random ideas.
package musicprompt

import (
	"github.com/igolaizola/musicprompt/pkg/catalog"
	"github.com/igolaizola/musicprompt/pkg/prompt"
	"github.com/igolaizola/musicprompt/pkg/random"
	"github.com/igolaizola/musicprompt/pkg/suggest"
)

type (
	Data        = prompt.Data
	Suggestions = suggest.Suggestions
	TrackIdea   = random.TrackIdea
	Catalog     = catalog.Catalog
)

// FormatPrompt renders the data as a single paragraph.
func FormatPrompt(d Data) string {
	return prompt.Format(d)
}

// GetSmartSuggestions returns advisory values for the selected genres and
// moods.
func GetSmartSuggestions(genres, moods []string) Suggestions {
	return suggest.Get(genres, moods)
}

func GenerateRandomTrack() Data {
	return random.Track()
}

func GenerateRandomTrackIdea() TrackIdea {
	return random.Idea()
}

func GenerateRandomTrackIdeas(n int) []TrackIdea {
	return random.Ideas(n)
}

// Options returns the option catalog for pickers.
func Options() Catalog {
	return catalog.All()
}
