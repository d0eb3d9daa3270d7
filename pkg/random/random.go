// Package random builds random records and track ideas from the option
// catalog. Fields are sampled independently so combinations are not always
// coherent, which is fine for inspiration.
package random

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/igolaizola/musicprompt/pkg/catalog"
	"github.com/igolaizola/musicprompt/pkg/prompt"
)

const (
	MinBPM   = 80
	MaxBPM   = 180
	MaxIdeas = 20
)

// Source is the randomness used by a Generator.
type Source interface {
	// Intn returns a number in [0, n).
	Intn(n int) int
}

type globalSource struct{}

func (globalSource) Intn(n int) int { return rand.Intn(n) }

type TrackIdea struct {
	Subject     string `json:"subject" yaml:"subject"`
	Description string `json:"description" yaml:"description"`
}

type Generator struct {
	src Source
}

// New returns a generator using src. A nil src uses the global math/rand
// source, which is safe for concurrent use.
func New(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{src: src}
}

var std = New(nil)

func Track() prompt.Data { return std.Track() }

func Idea() TrackIdea { return std.Idea() }

func Ideas(n int) []TrackIdea { return std.Ideas(n) }

func Subject() string { return std.Subject() }

// Track returns a fully populated record.
func (g *Generator) Track() prompt.Data {
	gender := g.pick(optionValues(catalog.VocalGenders()))
	d := prompt.Data{
		Subject:          g.Subject(),
		GenresPrimary:    g.sample(catalog.PrimaryGenres, 1, 2),
		GenresElectronic: g.sample(catalog.ElectronicGenres, 1, 3),
		Mood:             g.sample(catalog.Moods, 1, 3),
		TempoBPM:         strconv.Itoa(MinBPM + g.src.Intn(MaxBPM-MinBPM+1)),
		KeyScale:         g.pick(catalog.Keys),
		Energy:           g.pick(optionValues(catalog.Energies())),
		Beat:             g.sample(catalog.BeatStyles, 1, 2),
		Bass:             g.sample(catalog.BassCharacteristics, 1, 2),
		Instruments:      g.sample(catalog.Instruments, 1, 3),
		GrooveSwing:      g.pick(catalog.Grooves),
		VocalGender:      gender,
		Era:              g.pick(catalog.Eras),
		Length:           g.pick(optionValues(catalog.Lengths())),
		WeirdnessLevel:   g.pick(optionValues(catalog.WeirdnessLevels())),
	}
	if gender != string(catalog.VocalNone) {
		d.VocalDelivery = g.pick(catalog.VocalDeliveries)
	}
	return d
}

// Subject returns one of the catalog subject seeds.
func (g *Generator) Subject() string {
	return g.pick(catalog.Subjects)
}

// Idea returns a subject with a one sentence description of the track.
func (g *Generator) Idea() TrackIdea {
	genre := g.pick(catalog.PrimaryGenres)
	mood := g.pick(catalog.Moods)
	era := g.pick(catalog.Eras)
	bpm := MinBPM + g.src.Intn(MaxBPM-MinBPM+1)
	return TrackIdea{
		Subject:     g.Subject(),
		Description: describe(genre, mood, era, bpm),
	}
}

// Ideas returns n ideas, with n clamped to [1, MaxIdeas].
func (g *Generator) Ideas(n int) []TrackIdea {
	if n < 1 {
		n = 1
	}
	if n > MaxIdeas {
		n = MaxIdeas
	}
	ideas := make([]TrackIdea, 0, n)
	for i := 0; i < n; i++ {
		ideas = append(ideas, g.Idea())
	}
	return ideas
}

func (g *Generator) pick(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return vs[g.src.Intn(len(vs))]
}

// sample returns between lo and hi distinct values of vs in random order.
func (g *Generator) sample(vs []string, lo, hi int) []string {
	if hi > len(vs) {
		hi = len(vs)
	}
	if lo > hi {
		lo = hi
	}
	n := lo + g.src.Intn(hi-lo+1)
	pool := append([]string{}, vs...)
	// Partial Fisher-Yates: the first n items end up shuffled.
	for i := 0; i < n; i++ {
		j := i + g.src.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

func optionValues(opts []catalog.Option) []string {
	vs := make([]string, 0, len(opts))
	for _, o := range opts {
		vs = append(vs, o.Value)
	}
	return vs
}

func describe(genre, mood, era string, bpm int) string {
	return "A " + strings.ToLower(mood) + " " + genre + " track at " + strconv.Itoa(bpm) +
		" BPM " + flavor(genre) + ", with a nod to the " + era + " sound."
}

// flavor returns a short description of a genre's character.
func flavor(genre string) string {
	switch strings.ToLower(genre) {
	case "house", "disco", "garage":
		return "built for the dance floor"
	case "techno", "trance", "electronic":
		return "driven by hypnotic synths"
	case "drum & bass", "dubstep", "trap":
		return "with heavy, rolling low end"
	case "ambient", "lo-fi", "classical", "cinematic":
		return "that breathes and takes its time"
	case "synthwave":
		return "soaked in retro neon"
	case "jazz", "blues", "soul", "funk", "r&b":
		return "full of warm, live grooves"
	case "rock", "metal", "punk", "indie":
		return "with guitars front and center"
	case "hip hop":
		return "riding a head-nodding beat"
	case "reggae", "latin", "afrobeat":
		return "with an irresistible rhythm"
	case "country", "folk":
		return "with a storyteller's heart"
	case "pop":
		return "with a hook you can't shake"
	default:
		return "with its own distinctive sound"
	}
}
