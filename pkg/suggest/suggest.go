// Package suggest derives advisory values for the fields a user hasn't picked
// yet from the genres and moods already selected.
package suggest

import "strings"

// Max is the maximum number of values returned per list.
const Max = 3

type Suggestions struct {
	BPM   []string `json:"bpm" yaml:"bpm"`
	Keys  []string `json:"keys" yaml:"keys"`
	Beats []string `json:"beats" yaml:"beats"`
	Bass  []string `json:"bass" yaml:"bass"`
	Era   []string `json:"era" yaml:"era"`
}

// Get returns the suggestions for the selected genres and moods. Lists follow
// selection order, have no duplicates and hold at most Max values. Genres or
// moods without a table entry contribute nothing.
func Get(genreList, moodList []string) Suggestions {
	var bpm, keys, beats, bass, era []string
	for _, g := range genreList {
		h, ok := genres[key(g)]
		if !ok {
			continue
		}
		bpm = append(bpm, h.bpm...)
		keys = append(keys, h.keys...)
		beats = append(beats, h.beats...)
		bass = append(bass, h.bass...)
		era = append(era, h.era...)
	}
	for _, m := range moodList {
		keys = append(keys, moods[key(m)]...)
	}
	return Suggestions{
		BPM:   top(bpm),
		Keys:  top(keys),
		Beats: top(beats),
		Bass:  top(bass),
		Era:   top(era),
	}
}

// Known reports whether the genre has suggestions.
func Known(genre string) bool {
	_, ok := genres[key(genre)]
	return ok
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// top dedups vs keeping the first occurrence and truncates to Max.
func top(vs []string) []string {
	out := make([]string, 0, Max)
	seen := map[string]struct{}{}
	for _, v := range vs {
		if len(out) == Max {
			break
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
