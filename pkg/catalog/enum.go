package catalog

import "strings"

type labeled interface {
	~string
	Label() string
}

func options[T labeled](vs []T) []Option {
	opts := make([]Option, 0, len(vs))
	for _, v := range vs {
		opts = append(opts, Option{Value: string(v), Label: v.Label()})
	}
	return opts
}

// parse matches s against the value or the label of vs.
func parse[T labeled](vs []T, s string) (T, bool) {
	k := normalize(s)
	if k == "" {
		var zero T
		return zero, false
	}
	for _, v := range vs {
		if k == normalize(string(v)) || k == normalize(v.Label()) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

type Energy string

const (
	EnergyVeryLow  Energy = "very_low"
	EnergyLow      Energy = "low"
	EnergyMedium   Energy = "medium"
	EnergyHigh     Energy = "high"
	EnergyVeryHigh Energy = "very_high"
)

var energies = []Energy{EnergyVeryLow, EnergyLow, EnergyMedium, EnergyHigh, EnergyVeryHigh}

func Energies() []Option { return options(energies) }

// ParseEnergy accepts a value ("very_high") or a label ("Very High").
func ParseEnergy(s string) (Energy, bool) { return parse(energies, s) }

func (e Energy) Label() string {
	switch e {
	case EnergyVeryLow:
		return "Very Low"
	case EnergyLow:
		return "Low"
	case EnergyMedium:
		return "Medium"
	case EnergyHigh:
		return "High"
	case EnergyVeryHigh:
		return "Very High"
	default:
		return string(e)
	}
}

// Phrase is the energy as it reads inside a sentence.
func (e Energy) Phrase() string {
	return strings.ToLower(e.Label()) + " energy"
}

type VocalGender string

const (
	VocalNone        VocalGender = "none"
	VocalMale        VocalGender = "male"
	VocalFemale      VocalGender = "female"
	VocalDuet        VocalGender = "duet"
	VocalChoir       VocalGender = "choir"
	VocalAndrogynous VocalGender = "androgynous"
)

var vocalGenders = []VocalGender{VocalNone, VocalMale, VocalFemale, VocalDuet, VocalChoir, VocalAndrogynous}

func VocalGenders() []Option { return options(vocalGenders) }

func ParseVocalGender(s string) (VocalGender, bool) {
	if normalize(s) == "instrumental" {
		return VocalNone, true
	}
	return parse(vocalGenders, s)
}

func (v VocalGender) Label() string {
	switch v {
	case VocalNone:
		return "None (Instrumental)"
	case VocalMale:
		return "Male"
	case VocalFemale:
		return "Female"
	case VocalDuet:
		return "Duet"
	case VocalChoir:
		return "Choir"
	case VocalAndrogynous:
		return "Androgynous"
	default:
		return string(v)
	}
}

// Phrase is the singer description placed before the word "vocals".
func (v VocalGender) Phrase() string {
	switch v {
	case VocalDuet:
		return "male and female duet"
	case VocalNone:
		return ""
	default:
		return strings.ToLower(v.Label())
	}
}

type Weirdness string

const (
	WeirdnessConventional Weirdness = "conventional"
	WeirdnessSubtle       Weirdness = "subtle"
	WeirdnessQuirky       Weirdness = "quirky"
	WeirdnessExperimental Weirdness = "experimental"
	WeirdnessAvantGarde   Weirdness = "avant-garde"
)

// weirdnessLevels is ordered from conventional to most experimental.
var weirdnessLevels = []Weirdness{WeirdnessConventional, WeirdnessSubtle, WeirdnessQuirky, WeirdnessExperimental, WeirdnessAvantGarde}

func WeirdnessLevels() []Option { return options(weirdnessLevels) }

func ParseWeirdness(s string) (Weirdness, bool) { return parse(weirdnessLevels, s) }

func (w Weirdness) Label() string {
	switch w {
	case WeirdnessConventional:
		return "Conventional"
	case WeirdnessSubtle:
		return "Slightly Unusual"
	case WeirdnessQuirky:
		return "Quirky"
	case WeirdnessExperimental:
		return "Experimental"
	case WeirdnessAvantGarde:
		return "Avant-Garde"
	default:
		return string(w)
	}
}

// Phrase returns the sentence for the level. The conventional level is the
// neutral default and has no phrase.
func (w Weirdness) Phrase() string {
	switch w {
	case WeirdnessSubtle:
		return "Add a few subtle, unexpected touches."
	case WeirdnessQuirky:
		return "Give it a quirky, playful twist."
	case WeirdnessExperimental:
		return "Push it with an experimental, unconventional edge."
	case WeirdnessAvantGarde:
		return "Go fully avant-garde and break the usual song conventions."
	default:
		return ""
	}
}

type Length string

const (
	LengthShort    Length = "short"
	LengthRadio    Length = "radio"
	LengthExtended Length = "extended"
	LengthLong     Length = "long"
)

var lengths = []Length{LengthShort, LengthRadio, LengthExtended, LengthLong}

func Lengths() []Option { return options(lengths) }

func ParseLength(s string) (Length, bool) { return parse(lengths, s) }

func (l Length) Label() string {
	switch l {
	case LengthShort:
		return "Short (under 2 min)"
	case LengthRadio:
		return "Radio Edit (2-4 min)"
	case LengthExtended:
		return "Extended (4-7 min)"
	case LengthLong:
		return "Long Form (7+ min)"
	default:
		return string(l)
	}
}
