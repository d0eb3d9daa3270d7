package suggest

type hints struct {
	bpm   []string
	keys  []string
	beats []string
	bass  []string
	era   []string
}

// genres is keyed by the lowercased catalog genre.
var genres = map[string]hints{
	"pop": {
		bpm:   []string{"100", "110", "120"},
		keys:  []string{"C Major", "G Major", "A Minor"},
		beats: []string{"Four-on-the-Floor", "Syncopated"},
		bass:  []string{"Analog Synth Bass", "Sub Bass"},
		era:   []string{"2010s", "Modern", "1980s"},
	},
	"rock": {
		bpm:   []string{"110", "120", "140"},
		keys:  []string{"E Minor", "A Major", "D Major"},
		beats: []string{"Syncopated", "Half-Time"},
		bass:  []string{"Distorted Bass", "Rolling Bassline"},
		era:   []string{"1970s", "1990s", "1960s"},
	},
	"hip hop": {
		bpm:   []string{"85", "90", "95"},
		keys:  []string{"C Minor", "G Minor", "F# Minor"},
		beats: []string{"Boom Bap", "Trap Hi-Hats"},
		bass:  []string{"808 Bass", "Sub Bass"},
		era:   []string{"1990s", "2000s", "Modern"},
	},
	"r&b": {
		bpm:   []string{"70", "80", "95"},
		keys:  []string{"Eb Major", "Bb Major", "C Minor"},
		beats: []string{"Syncopated", "Half-Time"},
		bass:  []string{"Sub Bass", "Slap Bass"},
		era:   []string{"1990s", "2000s", "Modern"},
	},
	"electronic": {
		bpm:   []string{"120", "124", "128"},
		keys:  []string{"A Minor", "F# Minor", "D Minor"},
		beats: []string{"Four-on-the-Floor", "Breakbeat"},
		bass:  []string{"Analog Synth Bass", "Sub Bass"},
		era:   []string{"Modern", "2010s", "Futuristic"},
	},
	"house": {
		bpm:   []string{"120", "124", "128"},
		keys:  []string{"A Minor", "F Major", "C Minor"},
		beats: []string{"Four-on-the-Floor", "Shuffle"},
		bass:  []string{"Rolling Bassline", "Analog Synth Bass"},
		era:   []string{"1990s", "1980s", "Modern"},
	},
	"techno": {
		bpm:   []string{"125", "130", "135"},
		keys:  []string{"A Minor", "D Minor", "F# Minor"},
		beats: []string{"Four-on-the-Floor", "Minimal Percussion"},
		bass:  []string{"Rolling Bassline", "Acid Bassline"},
		era:   []string{"1990s", "Modern", "Futuristic"},
	},
	"trance": {
		bpm:   []string{"132", "136", "140"},
		keys:  []string{"A Minor", "F# Minor", "B Minor"},
		beats: []string{"Four-on-the-Floor", "Rolling Breaks"},
		bass:  []string{"Rolling Bassline", "Analog Synth Bass"},
		era:   []string{"1990s", "2000s", "Modern"},
	},
	"drum & bass": {
		bpm:   []string{"174", "176", "178"},
		keys:  []string{"F# Minor", "A Minor", "D Minor"},
		beats: []string{"Breakbeat", "Rolling Breaks"},
		bass:  []string{"Reese Bass", "Sub Bass"},
		era:   []string{"1990s", "2000s", "Modern"},
	},
	"dubstep": {
		bpm:   []string{"140", "142", "145"},
		keys:  []string{"F# Minor", "E Minor", "G Minor"},
		beats: []string{"Half-Time", "Syncopated"},
		bass:  []string{"Wobble Bass", "Sub Bass"},
		era:   []string{"2010s", "2000s", "Modern"},
	},
	"ambient": {
		bpm:   []string{"60", "70", "80"},
		keys:  []string{"C Major", "D Major", "E Minor"},
		beats: []string{"Minimal Percussion"},
		bass:  []string{"Sub Bass"},
		era:   []string{"1970s", "1990s", "Futuristic"},
	},
	"synthwave": {
		bpm:   []string{"100", "110", "118"},
		keys:  []string{"A Minor", "E Minor", "F# Minor"},
		beats: []string{"Four-on-the-Floor", "Syncopated"},
		bass:  []string{"Analog Synth Bass", "Rolling Bassline"},
		era:   []string{"1980s", "Futuristic", "Modern"},
	},
	"lo-fi": {
		bpm:   []string{"70", "80", "90"},
		keys:  []string{"F Major", "D Minor", "Bb Major"},
		beats: []string{"Boom Bap", "Shuffle"},
		bass:  []string{"Upright Bass", "Sub Bass"},
		era:   []string{"1990s", "2010s", "1970s"},
	},
	"jazz": {
		bpm:   []string{"90", "120", "160"},
		keys:  []string{"Bb Major", "Eb Major", "F Major"},
		beats: []string{"Shuffle", "Syncopated"},
		bass:  []string{"Upright Bass"},
		era:   []string{"1950s", "1960s", "1970s"},
	},
	"blues": {
		bpm:   []string{"70", "90", "110"},
		keys:  []string{"E Major", "A Major", "G Major"},
		beats: []string{"Shuffle", "Half-Time"},
		bass:  []string{"Upright Bass", "Rolling Bassline"},
		era:   []string{"1950s", "1960s", "1970s"},
	},
	"funk": {
		bpm:   []string{"100", "105", "115"},
		keys:  []string{"E Minor", "D Minor", "G Minor"},
		beats: []string{"Syncopated", "Breakbeat"},
		bass:  []string{"Slap Bass", "Analog Synth Bass"},
		era:   []string{"1970s", "1980s", "1960s"},
	},
	"soul": {
		bpm:   []string{"70", "90", "100"},
		keys:  []string{"Eb Major", "Bb Major", "G Minor"},
		beats: []string{"Syncopated", "Shuffle"},
		bass:  []string{"Upright Bass", "Slap Bass"},
		era:   []string{"1960s", "1970s", "Modern"},
	},
	"disco": {
		bpm:   []string{"115", "120", "125"},
		keys:  []string{"A Minor", "D Minor", "F Major"},
		beats: []string{"Four-on-the-Floor"},
		bass:  []string{"Slap Bass", "Rolling Bassline"},
		era:   []string{"1970s", "1980s"},
	},
	"reggae": {
		bpm:   []string{"70", "75", "90"},
		keys:  []string{"G Major", "A Minor", "D Major"},
		beats: []string{"Half-Time", "Syncopated"},
		bass:  []string{"Sub Bass", "Rolling Bassline"},
		era:   []string{"1970s", "1980s"},
	},
	"country": {
		bpm:   []string{"90", "110", "120"},
		keys:  []string{"G Major", "D Major", "A Major"},
		beats: []string{"Shuffle", "Syncopated"},
		bass:  []string{"Upright Bass"},
		era:   []string{"1960s", "1990s", "Modern"},
	},
	"folk": {
		bpm:   []string{"80", "95", "110"},
		keys:  []string{"G Major", "D Major", "E Minor"},
		beats: []string{"Minimal Percussion", "Shuffle"},
		bass:  []string{"Upright Bass"},
		era:   []string{"1960s", "1970s", "2010s"},
	},
	"classical": {
		bpm:   []string{"60", "90", "120"},
		keys:  []string{"D Major", "C Minor", "G Major"},
		beats: []string{"Minimal Percussion"},
		bass:  []string{"Upright Bass"},
		era:   []string{"1950s", "Modern"},
	},
	"cinematic": {
		bpm:   []string{"70", "90", "120"},
		keys:  []string{"D Minor", "C Minor", "E Minor"},
		beats: []string{"Polyrhythmic", "Half-Time"},
		bass:  []string{"Sub Bass", "Distorted Bass"},
		era:   []string{"Modern", "Futuristic"},
	},
	"metal": {
		bpm:   []string{"120", "140", "180"},
		keys:  []string{"E Minor", "D Minor", "C# Minor"},
		beats: []string{"Polyrhythmic", "Half-Time"},
		bass:  []string{"Distorted Bass"},
		era:   []string{"1980s", "1990s", "2000s"},
	},
	"punk": {
		bpm:   []string{"160", "170", "180"},
		keys:  []string{"E Major", "A Major", "D Major"},
		beats: []string{"Syncopated"},
		bass:  []string{"Distorted Bass", "Rolling Bassline"},
		era:   []string{"1970s", "1990s"},
	},
	"indie": {
		bpm:   []string{"100", "115", "125"},
		keys:  []string{"D Major", "G Major", "B Minor"},
		beats: []string{"Syncopated", "Four-on-the-Floor"},
		bass:  []string{"Rolling Bassline", "Analog Synth Bass"},
		era:   []string{"2000s", "2010s", "1980s"},
	},
	"latin": {
		bpm:   []string{"95", "100", "105"},
		keys:  []string{"A Minor", "D Minor", "G Minor"},
		beats: []string{"Syncopated", "Polyrhythmic"},
		bass:  []string{"808 Bass", "Rolling Bassline"},
		era:   []string{"Modern", "2010s", "1970s"},
	},
	"afrobeat": {
		bpm:   []string{"100", "110", "115"},
		keys:  []string{"G Minor", "A Minor", "F Major"},
		beats: []string{"Polyrhythmic", "Syncopated"},
		bass:  []string{"Slap Bass", "Sub Bass"},
		era:   []string{"1970s", "Modern"},
	},
	"trap": {
		bpm:   []string{"130", "140", "150"},
		keys:  []string{"C# Minor", "F# Minor", "G Minor"},
		beats: []string{"Trap Hi-Hats", "Half-Time"},
		bass:  []string{"808 Bass", "Distorted Bass"},
		era:   []string{"2010s", "Modern"},
	},
	"garage": {
		bpm:   []string{"130", "132", "135"},
		keys:  []string{"C Minor", "G Minor", "F# Minor"},
		beats: []string{"Shuffle", "Syncopated"},
		bass:  []string{"Sub Bass", "Reese Bass"},
		era:   []string{"1990s", "2000s"},
	},

	// Electronic subgenres.
	"deep house": {
		bpm:   []string{"118", "120", "122"},
		keys:  []string{"A Minor", "D Minor", "F Major"},
		beats: []string{"Four-on-the-Floor", "Shuffle"},
		bass:  []string{"Sub Bass", "Rolling Bassline"},
		era:   []string{"1990s", "2010s", "Modern"},
	},
	"tech house": {
		bpm:   []string{"124", "126", "128"},
		keys:  []string{"A Minor", "G Minor", "C Minor"},
		beats: []string{"Four-on-the-Floor", "Minimal Percussion"},
		bass:  []string{"Rolling Bassline", "Analog Synth Bass"},
		era:   []string{"2010s", "Modern"},
	},
	"progressive house": {
		bpm:   []string{"122", "126", "128"},
		keys:  []string{"F# Minor", "B Minor", "A Minor"},
		beats: []string{"Four-on-the-Floor"},
		bass:  []string{"Rolling Bassline", "Sub Bass"},
		era:   []string{"1990s", "2010s", "Modern"},
	},
	"acid house": {
		bpm:   []string{"120", "125", "128"},
		keys:  []string{"A Minor", "E Minor"},
		beats: []string{"Four-on-the-Floor"},
		bass:  []string{"Acid Bassline"},
		era:   []string{"1980s", "1990s"},
	},
	"melodic techno": {
		bpm:   []string{"120", "122", "125"},
		keys:  []string{"A Minor", "F# Minor", "D Minor"},
		beats: []string{"Four-on-the-Floor", "Minimal Percussion"},
		bass:  []string{"Rolling Bassline", "Analog Synth Bass"},
		era:   []string{"2010s", "Modern", "Futuristic"},
	},
	"minimal techno": {
		bpm:   []string{"125", "128", "130"},
		keys:  []string{"A Minor", "D Minor"},
		beats: []string{"Minimal Percussion", "Four-on-the-Floor"},
		bass:  []string{"Sub Bass", "Rolling Bassline"},
		era:   []string{"2000s", "Modern"},
	},
	"industrial techno": {
		bpm:   []string{"135", "140", "145"},
		keys:  []string{"C Minor", "D Minor", "C# Minor"},
		beats: []string{"Four-on-the-Floor", "Polyrhythmic"},
		bass:  []string{"Distorted Bass", "Rolling Bassline"},
		era:   []string{"1990s", "Modern", "Futuristic"},
	},
	"big room": {
		bpm:   []string{"126", "128", "130"},
		keys:  []string{"F Major", "A Minor", "G Minor"},
		beats: []string{"Four-on-the-Floor"},
		bass:  []string{"Distorted Bass", "Sub Bass"},
		era:   []string{"2010s"},
	},
	"future bass": {
		bpm:   []string{"140", "150", "160"},
		keys:  []string{"F Major", "Bb Major", "D Minor"},
		beats: []string{"Half-Time", "Trap Hi-Hats"},
		bass:  []string{"Wobble Bass", "Sub Bass"},
		era:   []string{"2010s", "Modern", "Futuristic"},
	},
	"liquid drum & bass": {
		bpm:   []string{"172", "174", "175"},
		keys:  []string{"F Major", "D Minor", "Eb Major"},
		beats: []string{"Rolling Breaks", "Breakbeat"},
		bass:  []string{"Sub Bass", "Rolling Bassline"},
		era:   []string{"2000s", "2010s", "Modern"},
	},
	"neurofunk": {
		bpm:   []string{"172", "174", "176"},
		keys:  []string{"F# Minor", "C# Minor", "E Minor"},
		beats: []string{"Breakbeat", "Syncopated"},
		bass:  []string{"Reese Bass", "Distorted Bass"},
		era:   []string{"2000s", "Futuristic"},
	},
	"jungle": {
		bpm:   []string{"160", "165", "170"},
		keys:  []string{"A Minor", "G Minor", "E Minor"},
		beats: []string{"Rolling Breaks", "Breakbeat"},
		bass:  []string{"Sub Bass", "Reese Bass"},
		era:   []string{"1990s"},
	},
	"uk garage": {
		bpm:   []string{"130", "132", "134"},
		keys:  []string{"C Minor", "G Minor", "F Major"},
		beats: []string{"Shuffle", "Syncopated"},
		bass:  []string{"Sub Bass", "Reese Bass"},
		era:   []string{"1990s", "2000s", "Modern"},
	},
	"breakbeat": {
		bpm:   []string{"125", "130", "135"},
		keys:  []string{"E Minor", "A Minor", "D Minor"},
		beats: []string{"Breakbeat", "Syncopated"},
		bass:  []string{"Acid Bassline", "Analog Synth Bass"},
		era:   []string{"1990s", "2000s"},
	},
	"trip hop": {
		bpm:   []string{"75", "85", "95"},
		keys:  []string{"D Minor", "C Minor", "B Minor"},
		beats: []string{"Boom Bap", "Half-Time"},
		bass:  []string{"Sub Bass", "Upright Bass"},
		era:   []string{"1990s"},
	},
	"downtempo": {
		bpm:   []string{"80", "90", "100"},
		keys:  []string{"D Minor", "A Minor", "F Major"},
		beats: []string{"Half-Time", "Minimal Percussion"},
		bass:  []string{"Sub Bass", "Analog Synth Bass"},
		era:   []string{"1990s", "2000s", "Modern"},
	},
	"chillwave": {
		bpm:   []string{"85", "95", "105"},
		keys:  []string{"C Major", "F Major", "A Minor"},
		beats: []string{"Syncopated", "Minimal Percussion"},
		bass:  []string{"Analog Synth Bass"},
		era:   []string{"2010s", "1980s"},
	},
	"vaporwave": {
		bpm:   []string{"70", "80", "90"},
		keys:  []string{"Eb Major", "Bb Major", "F Major"},
		beats: []string{"Half-Time", "Shuffle"},
		bass:  []string{"Analog Synth Bass", "Slap Bass"},
		era:   []string{"1980s", "1990s", "2010s"},
	},
	"hardstyle": {
		bpm:   []string{"150", "155", "160"},
		keys:  []string{"C# Minor", "A Minor", "G Minor"},
		beats: []string{"Four-on-the-Floor"},
		bass:  []string{"Distorted Bass"},
		era:   []string{"2000s", "2010s", "Modern"},
	},
	"psytrance": {
		bpm:   []string{"140", "143", "145"},
		keys:  []string{"E Minor", "F# Minor", "D Minor"},
		beats: []string{"Four-on-the-Floor", "Polyrhythmic"},
		bass:  []string{"Rolling Bassline", "Acid Bassline"},
		era:   []string{"1990s", "Modern", "Futuristic"},
	},
	"idm": {
		bpm:   []string{"100", "120", "140"},
		keys:  []string{"C# Minor", "B Minor", "E Minor"},
		beats: []string{"Polyrhythmic", "Breakbeat"},
		bass:  []string{"Analog Synth Bass", "Sub Bass"},
		era:   []string{"1990s", "Futuristic"},
	},
	"electro": {
		bpm:   []string{"120", "125", "130"},
		keys:  []string{"A Minor", "E Minor"},
		beats: []string{"Breakbeat", "Syncopated"},
		bass:  []string{"Analog Synth Bass", "808 Bass"},
		era:   []string{"1980s", "2000s", "Futuristic"},
	},
	"synthpop": {
		bpm:   []string{"110", "118", "124"},
		keys:  []string{"C Major", "A Minor", "G Major"},
		beats: []string{"Four-on-the-Floor", "Syncopated"},
		bass:  []string{"Analog Synth Bass"},
		era:   []string{"1980s", "2010s"},
	},
	"darkwave": {
		bpm:   []string{"110", "120", "130"},
		keys:  []string{"E Minor", "B Minor", "C# Minor"},
		beats: []string{"Four-on-the-Floor", "Minimal Percussion"},
		bass:  []string{"Analog Synth Bass", "Distorted Bass"},
		era:   []string{"1980s", "Modern"},
	},
}

// moods maps a lowercased mood to the keys that tend to carry it.
var moods = map[string][]string{
	"happy":       {"C Major", "G Major", "D Major"},
	"sad":         {"A Minor", "D Minor", "E Minor"},
	"energetic":   {"E Major", "A Major", "F# Minor"},
	"calm":        {"F Major", "C Major", "Bb Major"},
	"dark":        {"C Minor", "C# Minor", "G Minor"},
	"uplifting":   {"D Major", "G Major", "E Major"},
	"melancholic": {"B Minor", "F# Minor", "D Minor"},
	"nostalgic":   {"F Major", "A Minor", "Bb Major"},
	"dreamy":      {"Eb Major", "F Major", "C Major"},
	"aggressive":  {"E Minor", "C# Minor", "D Minor"},
	"romantic":    {"Eb Major", "Bb Major", "F Major"},
	"mysterious":  {"C# Minor", "G Minor", "B Minor"},
	"euphoric":    {"A Major", "D Major", "E Major"},
	"chill":       {"F Major", "D Minor", "C Major"},
	"epic":        {"D Minor", "C Minor", "Eb Major"},
	"playful":     {"G Major", "C Major", "A Major"},
	"hypnotic":    {"A Minor", "F# Minor", "E Minor"},
	"tense":       {"C# Minor", "C Minor", "B Minor"},
}
