package catalog

import "strings"

// Option is an enumerated value with the label shown in pickers.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

var PrimaryGenres = []string{
	"Pop",
	"Rock",
	"Hip Hop",
	"R&B",
	"Electronic",
	"House",
	"Techno",
	"Trance",
	"Drum & Bass",
	"Dubstep",
	"Ambient",
	"Synthwave",
	"Lo-Fi",
	"Jazz",
	"Blues",
	"Funk",
	"Soul",
	"Disco",
	"Reggae",
	"Country",
	"Folk",
	"Classical",
	"Cinematic",
	"Metal",
	"Punk",
	"Indie",
	"Latin",
	"Afrobeat",
	"Trap",
	"Garage",
}

var ElectronicGenres = []string{
	"Deep House",
	"Tech House",
	"Progressive House",
	"Acid House",
	"Melodic Techno",
	"Minimal Techno",
	"Industrial Techno",
	"Big Room",
	"Future Bass",
	"Liquid Drum & Bass",
	"Neurofunk",
	"Jungle",
	"UK Garage",
	"Breakbeat",
	"Trip Hop",
	"Downtempo",
	"Chillwave",
	"Vaporwave",
	"Hardstyle",
	"Psytrance",
	"IDM",
	"Electro",
	"Synthpop",
	"Darkwave",
}

var Moods = []string{
	"Happy",
	"Sad",
	"Energetic",
	"Calm",
	"Dark",
	"Uplifting",
	"Melancholic",
	"Nostalgic",
	"Dreamy",
	"Aggressive",
	"Romantic",
	"Mysterious",
	"Euphoric",
	"Chill",
	"Epic",
	"Playful",
	"Hypnotic",
	"Tense",
}

var VocalDeliveries = []string{
	"Smooth",
	"Breathy",
	"Raspy",
	"Powerful",
	"Falsetto",
	"Rap",
	"Spoken Word",
	"Whispered",
	"Auto-Tuned",
	"Operatic",
}

var BeatStyles = []string{
	"Four-on-the-Floor",
	"Breakbeat",
	"Boom Bap",
	"Trap Hi-Hats",
	"Half-Time",
	"Shuffle",
	"Syncopated",
	"Rolling Breaks",
	"Minimal Percussion",
	"Polyrhythmic",
}

var BassCharacteristics = []string{
	"Sub Bass",
	"808 Bass",
	"Reese Bass",
	"Acid Bassline",
	"Wobble Bass",
	"Rolling Bassline",
	"Slap Bass",
	"Upright Bass",
	"Analog Synth Bass",
	"Distorted Bass",
}

var Instruments = []string{
	"Piano",
	"Electric Piano",
	"Acoustic Guitar",
	"Electric Guitar",
	"Strings",
	"Brass",
	"Saxophone",
	"Synth Pads",
	"Arpeggiated Synths",
	"Organ",
	"Flute",
	"Violin",
	"Choir Pads",
	"Vinyl Crackle",
	"Field Recordings",
}

var Grooves = []string{
	"Straight",
	"Light Swing",
	"Heavy Swing",
	"Shuffled",
	"Laid-Back",
	"Pushed",
}

var Keys = []string{
	"C Major",
	"A Minor",
	"G Major",
	"E Minor",
	"D Major",
	"B Minor",
	"F Major",
	"D Minor",
	"A Major",
	"F# Minor",
	"E Major",
	"C# Minor",
	"Bb Major",
	"G Minor",
	"Eb Major",
	"C Minor",
}

var Eras = []string{
	"1950s",
	"1960s",
	"1970s",
	"1980s",
	"1990s",
	"2000s",
	"2010s",
	"Modern",
	"Futuristic",
}

// Subjects are narrative seeds for random ideas.
var Subjects = []string{
	"a midnight drive through neon rain",
	"the last train out of a sleeping city",
	"sunrise over an empty beach",
	"a robot learning to dance",
	"dancing alone in a warehouse at 4am",
	"an old photograph found in a library book",
	"floating through a quiet space station",
	"a summer road trip with the windows down",
	"the first snow of winter",
	"a secret garden behind a brick wall",
	"city lights seen from a rooftop",
	"a storm rolling over the mountains",
	"heartbreak on a crowded dance floor",
	"a lighthouse keeper's lonely night",
	"chasing the horizon on a motorcycle",
	"a festival crowd waiting for the drop",
}

// Contains reports whether v is in list, ignoring case and surrounding space.
func Contains(list []string, v string) bool {
	return indexOf(list, v) >= 0
}

// Canonical returns the catalog spelling of v, or false if v is not listed.
func Canonical(list []string, v string) (string, bool) {
	i := indexOf(list, v)
	if i < 0 {
		return "", false
	}
	return list[i], true
}

func indexOf(list []string, v string) int {
	k := normalize(v)
	if k == "" {
		return -1
	}
	for i, s := range list {
		if normalize(s) == k {
			return i
		}
	}
	return -1
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Catalog is the whole option catalog as served to pickers.
type Catalog struct {
	PrimaryGenres       []string `json:"genres_primary" yaml:"genres_primary"`
	ElectronicGenres    []string `json:"genres_electronic" yaml:"genres_electronic"`
	Moods               []string `json:"mood" yaml:"mood"`
	Energies            []Option `json:"energy" yaml:"energy"`
	BeatStyles          []string `json:"beat" yaml:"beat"`
	BassCharacteristics []string `json:"bass" yaml:"bass"`
	Instruments         []string `json:"instruments" yaml:"instruments"`
	Grooves             []string `json:"groove_swing" yaml:"groove_swing"`
	VocalGenders        []Option `json:"vocal_gender" yaml:"vocal_gender"`
	VocalDeliveries     []string `json:"vocal_delivery" yaml:"vocal_delivery"`
	Keys                []string `json:"key_scale" yaml:"key_scale"`
	Eras                []string `json:"era" yaml:"era"`
	Lengths             []Option `json:"length" yaml:"length"`
	WeirdnessLevels     []Option `json:"weirdness_level" yaml:"weirdness_level"`
}

// All returns a copy of the catalog. Callers may modify the result freely.
func All() Catalog {
	return Catalog{
		PrimaryGenres:       clone(PrimaryGenres),
		ElectronicGenres:    clone(ElectronicGenres),
		Moods:               clone(Moods),
		Energies:            options(energies),
		BeatStyles:          clone(BeatStyles),
		BassCharacteristics: clone(BassCharacteristics),
		Instruments:         clone(Instruments),
		Grooves:             clone(Grooves),
		VocalGenders:        options(vocalGenders),
		VocalDeliveries:     clone(VocalDeliveries),
		Keys:                clone(Keys),
		Eras:                clone(Eras),
		Lengths:             options(lengths),
		WeirdnessLevels:     options(weirdnessLevels),
	}
}

func clone(vs []string) []string {
	return append([]string{}, vs...)
}
