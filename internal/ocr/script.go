package ocr

import "github.com/joseph-ayodele/linguabridge/internal/language"

// Script is the writing system a piece of text is expected to be in.
type Script int

const (
	ScriptOther Script = iota
	ScriptDevanagari
	ScriptSinhala
	ScriptLatin
)

func (s Script) String() string {
	switch s {
	case ScriptDevanagari:
		return "devanagari"
	case ScriptSinhala:
		return "sinhala"
	case ScriptLatin:
		return "latin"
	default:
		return "other"
	}
}

// LowResource reports whether the script gets the word filter and the script presence check.
func (s Script) LowResource() bool {
	return s == ScriptDevanagari || s == ScriptSinhala
}

// Contains reports whether r belongs to the script.
func (s Script) Contains(r rune) bool {
	switch s {
	case ScriptDevanagari:
		return isDevanagari(r)
	case ScriptSinhala:
		return isSinhala(r)
	case ScriptLatin:
		return isLatin(r)
	}
	return false
}

// ScriptFor derives the target script of a language code.
func ScriptFor(code language.Code) Script {
	switch code {
	case language.Nepali:
		return ScriptDevanagari
	case language.Sinhala:
		return ScriptSinhala
	case language.English:
		return ScriptLatin
	}
	return ScriptOther
}

// ScriptOf classifies a single rune.
func ScriptOf(r rune) Script {
	switch {
	case isDevanagari(r):
		return ScriptDevanagari
	case isSinhala(r):
		return ScriptSinhala
	case isLatin(r):
		return ScriptLatin
	}
	return ScriptOther
}

func isDevanagari(r rune) bool { return r >= 0x0900 && r <= 0x097F }
func isSinhala(r rune) bool    { return r >= 0x0D80 && r <= 0x0DFF }
func isLatin(r rune) bool      { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

// ScriptCounts is the per-script character tally of a text.
type ScriptCounts struct {
	Devanagari int
	Sinhala    int
	Latin      int
}

// Of returns the count for one script; Other is always zero.
func (c ScriptCounts) Of(s Script) int {
	switch s {
	case ScriptDevanagari:
		return c.Devanagari
	case ScriptSinhala:
		return c.Sinhala
	case ScriptLatin:
		return c.Latin
	}
	return 0
}

// Dominant returns the script with the highest count, or ScriptOther for text with none.
// Ties resolve in the order Devanagari, Sinhala, Latin.
func (c ScriptCounts) Dominant() Script {
	best, n := ScriptOther, 0
	for _, s := range []Script{ScriptDevanagari, ScriptSinhala, ScriptLatin} {
		if v := c.Of(s); v > n {
			best, n = s, v
		}
	}
	return best
}

// Classify tallies Devanagari, Sinhala and ASCII Latin letters in text.
func Classify(text string) ScriptCounts {
	var c ScriptCounts
	for _, r := range text {
		switch {
		case isDevanagari(r):
			c.Devanagari++
		case isSinhala(r):
			c.Sinhala++
		case isLatin(r):
			c.Latin++
		}
	}
	return c
}
