package ocr

import (
	"strings"
	"unicode"
)

// Score is the plausibility verdict for one cleaned candidate.
type Score struct {
	Reasonable bool
	Quality    int
}

// Better orders scores by quality only; equal quality is not better.
func (s Score) Better(than Score) bool { return s.Quality > than.Quality }

// Evaluate scores cleaned text against the target script.
// Low-resource targets need at least one character of their script; other targets are always reasonable.
func Evaluate(cleaned string, target Script) Score {
	reasonable := true
	if target.LowResource() {
		reasonable = Classify(cleaned).Of(target) > 0
	}
	return Score{Reasonable: reasonable, Quality: MeaningfulChars(cleaned)}
}

// MeaningfulChars counts letters and inner whitespace.
func MeaningfulChars(text string) int {
	n := 0
	for _, r := range strings.TrimSpace(text) {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
