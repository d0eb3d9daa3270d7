package prompt

import (
	"strings"

	"github.com/igolaizola/musicprompt/pkg/catalog"
)

// Fallback is returned when the record has nothing to describe.
const Fallback = "Pick at least a genre, a mood or a subject to build your music prompt."

// Format renders the record as a single paragraph ready to paste into a music
// generation tool. It has no side effects and never fails: empty or
// malformed fields are left out of the text.
func Format(d Data) string {
	var clauses []string
	var content bool
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			clauses = append(clauses, s)
			content = true
		}
	}

	// Lead sentence: subject, genres, mood, energy, tempo and key.
	lead := []string{"Create a track"}
	if subject := trimSentence(d.Subject); subject != "" {
		lead = append(lead, "about "+subject)
		content = true
	}
	if genres := d.Genres(); len(genres) > 0 {
		lead = append(lead, "in the style of "+strings.Join(genres, ", "))
		content = true
	}
	if mood := moodClause(d.Mood, d.Energy); mood != "" {
		lead = append(lead, mood)
		content = true
	}
	if tempo, ok := d.Tempo(); ok {
		lead = append(lead, "at "+tempo+" BPM")
		content = true
	}
	if key := strings.TrimSpace(d.KeyScale); key != "" {
		lead = append(lead, "in "+key)
		content = true
	}
	clauses = append(clauses, strings.Join(lead, " ")+".")

	add(instrumentationClause(d.Beat, d.Bass, d.Instruments))
	if groove := strings.TrimSpace(d.GrooveSwing); groove != "" {
		add("The groove is " + strings.ToLower(trimSentence(groove)) + ".")
	}
	add(vocalClause(d.VocalGender, d.VocalDelivery))
	if era := trimSentence(d.Era); era != "" {
		add("Draw inspiration from the " + era + " sound.")
	}
	if w, ok := catalog.ParseWeirdness(d.WeirdnessLevel); ok {
		add(w.Phrase())
	}
	add(sentence(d.GeneralFreeform))
	add(sentence(d.MasterNotes))
	add(lengthClause(d.Length))

	if !content {
		return Fallback
	}
	return normalize(strings.Join(clauses, " "))
}

func moodClause(moods []string, energy string) string {
	moods = dedup(moods)
	phrase, terms := energyPhrase(energy)
	for _, m := range moods {
		for _, t := range terms {
			if strings.EqualFold(m, t) {
				phrase = ""
			}
		}
	}
	switch {
	case len(moods) > 0 && phrase != "":
		list := strings.Join(moods, ", ")
		return "with " + article(list) + " " + list + " mood and " + phrase
	case len(moods) > 0:
		list := strings.Join(moods, ", ")
		return "with " + article(list) + " " + list + " mood"
	case phrase != "":
		return "with " + phrase
	default:
		return ""
	}
}

// energyPhrase returns the phrase for the energy level and the terms a mood
// could already be using for it.
func energyPhrase(energy string) (string, []string) {
	energy = strings.TrimSpace(energy)
	if energy == "" {
		return "", nil
	}
	if e, ok := catalog.ParseEnergy(energy); ok {
		return e.Phrase(), []string{e.Label(), string(e), e.Phrase()}
	}
	phrase := strings.ToLower(energy)
	if !strings.Contains(phrase, "energy") {
		phrase += " energy"
	}
	return phrase, []string{energy, phrase}
}

func instrumentationClause(beats, bass, instruments []string) string {
	var parts []string
	if vs := dedup(beats); len(vs) > 0 {
		parts = append(parts, "The beat features "+strings.Join(vs, ", ")+".")
	}
	if vs := dedup(bass); len(vs) > 0 {
		parts = append(parts, "The low end features "+strings.Join(vs, ", ")+".")
	}
	if vs := dedup(instruments); len(vs) > 0 {
		parts = append(parts, "Instruments include "+strings.Join(vs, ", ")+".")
	}
	return strings.Join(parts, " ")
}

func vocalClause(gender, delivery string) string {
	gender = strings.TrimSpace(gender)
	if gender == "" || instrumental(gender) {
		return ""
	}
	singer := strings.ToLower(gender)
	if g, ok := catalog.ParseVocalGender(gender); ok {
		singer = g.Phrase()
	}
	s := "Feature " + singer + " vocals"
	if delivery = strings.ToLower(trimSentence(delivery)); delivery != "" {
		s += " with " + article(delivery) + " " + delivery + " delivery"
	}
	return s + "."
}

func instrumental(gender string) bool {
	if g, ok := catalog.ParseVocalGender(gender); ok {
		return g == catalog.VocalNone
	}
	g := strings.ToLower(gender)
	return strings.Contains(g, "instrumental") || g == "no vocals" || g == "n/a"
}

func lengthClause(length string) string {
	length = trimSentence(length)
	if length == "" {
		return ""
	}
	if l, ok := catalog.ParseLength(length); ok {
		length = l.Label()
	}
	return "Target length: " + length + "."
}

// sentence trims free text and makes sure it ends with punctuation.
func sentence(s string) string {
	s = normalize(s)
	if s == "" {
		return ""
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}

func trimSentence(s string) string {
	return strings.TrimRight(normalize(s), ".!?,; ")
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func article(s string) string {
	if s == "" {
		return "a"
	}
	switch s[0] {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return "an"
	}
	return "a"
}
