package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/igolaizola/musicprompt/pkg/catalog"
)

// Data is the form record collected from the user.
type Data struct {
	Subject          string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	GenresPrimary    []string `json:"genres_primary,omitempty" yaml:"genres_primary,omitempty"`
	GenresElectronic []string `json:"genres_electronic,omitempty" yaml:"genres_electronic,omitempty"`
	Mood             []string `json:"mood,omitempty" yaml:"mood,omitempty"`
	TempoBPM         string   `json:"tempo_bpm,omitempty" yaml:"tempo_bpm,omitempty"`
	KeyScale         string   `json:"key_scale,omitempty" yaml:"key_scale,omitempty"`
	Energy           string   `json:"energy,omitempty" yaml:"energy,omitempty"`
	Beat             []string `json:"beat,omitempty" yaml:"beat,omitempty"`
	Bass             []string `json:"bass,omitempty" yaml:"bass,omitempty"`
	Instruments      []string `json:"instruments,omitempty" yaml:"instruments,omitempty"`
	GrooveSwing      string   `json:"groove_swing,omitempty" yaml:"groove_swing,omitempty"`
	VocalGender      string   `json:"vocal_gender,omitempty" yaml:"vocal_gender,omitempty"`
	VocalDelivery    string   `json:"vocal_delivery,omitempty" yaml:"vocal_delivery,omitempty"`
	Era              string   `json:"era,omitempty" yaml:"era,omitempty"`
	MasterNotes      string   `json:"master_notes,omitempty" yaml:"master_notes,omitempty"`
	GeneralFreeform  string   `json:"general_freeform,omitempty" yaml:"general_freeform,omitempty"`
	Length           string   `json:"length,omitempty" yaml:"length,omitempty"`
	WeirdnessLevel   string   `json:"weirdness_level,omitempty" yaml:"weirdness_level,omitempty"`
}

// Genres returns primary and electronic genres, primary first, without
// case-insensitive duplicates.
func (d Data) Genres() []string {
	return dedup(append(append([]string{}, d.GenresPrimary...), d.GenresElectronic...))
}

// Tempo returns the tempo as text and whether it is a usable positive number.
// Only plain decimal digits are accepted; a trailing "bpm" is tolerated.
func (d Data) Tempo() (string, bool) {
	s := strings.TrimSpace(d.TempoBPM)
	s = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(s), "bpm"))
	if s == "" || strings.Trim(s, "0123456789.") != "" {
		return "", false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 || f > 999 {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// Validate reports the values that aren't part of the option catalog. The
// formatter never needs it; it's meant for strict imports.
func (d Data) Validate() error {
	var errs []string
	check := func(field string, list []string, vs ...string) {
		for _, v := range vs {
			if strings.TrimSpace(v) == "" {
				continue
			}
			if !catalog.Contains(list, v) {
				errs = append(errs, fmt.Sprintf("%s: unknown value %q", field, v))
			}
		}
	}
	check("genres_primary", catalog.PrimaryGenres, d.GenresPrimary...)
	check("genres_electronic", catalog.ElectronicGenres, d.GenresElectronic...)
	check("mood", catalog.Moods, d.Mood...)
	check("beat", catalog.BeatStyles, d.Beat...)
	check("bass", catalog.BassCharacteristics, d.Bass...)
	check("instruments", catalog.Instruments, d.Instruments...)
	check("groove_swing", catalog.Grooves, d.GrooveSwing)
	check("vocal_delivery", catalog.VocalDeliveries, d.VocalDelivery)
	if d.TempoBPM != "" {
		if _, ok := d.Tempo(); !ok {
			errs = append(errs, fmt.Sprintf("tempo_bpm: invalid value %q", d.TempoBPM))
		}
	}
	if v := d.Energy; v != "" {
		if _, ok := catalog.ParseEnergy(v); !ok {
			errs = append(errs, fmt.Sprintf("energy: unknown value %q", v))
		}
	}
	if v := d.VocalGender; v != "" {
		if _, ok := catalog.ParseVocalGender(v); !ok {
			errs = append(errs, fmt.Sprintf("vocal_gender: unknown value %q", v))
		}
	}
	if v := d.Length; v != "" {
		if _, ok := catalog.ParseLength(v); !ok {
			errs = append(errs, fmt.Sprintf("length: unknown value %q", v))
		}
	}
	if v := d.WeirdnessLevel; v != "" {
		if _, ok := catalog.ParseWeirdness(v); !ok {
			errs = append(errs, fmt.Sprintf("weirdness_level: unknown value %q", v))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("prompt: invalid data: %s", strings.Join(errs, "; "))
	}
	return nil
}

func dedup(vs []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, v := range vs {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		k := strings.ToLower(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}
