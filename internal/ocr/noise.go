package ocr

import "strings"

// NoiseTokens is a set of lowercase Latin tokens that tesseract emits when it
// misreads Devanagari or Sinhala glyphs.
type NoiseTokens map[string]struct{}

// DefaultNoiseTokens covers the common misreads plus short English function words.
var DefaultNoiseTokens = NewNoiseTokens(
	"jey", "jeyy", "jeyyy", "jeyyyy", "jeyyyyy", "jeyjey", "jeyjeyjey",
	"ve", "vey", "veyy", "veyyy",
	"je", "jeje", "jejeje",
	"ye", "yeye", "yeyeye",
	"ey", "eyey", "eyeyey",
	"y", "yy", "yyy", "yyyy", "yyyyy",
	"e", "ee", "eee", "eeee", "eeeee",
	"j", "jj", "jjj", "jjjj", "jjjjj",
	"v", "vv", "vvv", "vvvv", "vvvvv",
	"the", "and", "or", "is", "be",
)

func NewNoiseTokens(tokens ...string) NoiseTokens {
	n := make(NoiseTokens, len(tokens))
	for _, t := range tokens {
		n[strings.ToLower(t)] = struct{}{}
	}
	return n
}

// Contains matches case-insensitively.
func (n NoiseTokens) Contains(word string) bool {
	_, ok := n[strings.ToLower(word)]
	return ok
}

// With returns a copy extended by extra tokens.
func (n NoiseTokens) With(extra ...string) NoiseTokens {
	out := make(NoiseTokens, len(n)+len(extra))
	for k := range n {
		out[k] = struct{}{}
	}
	for _, t := range extra {
		out[strings.ToLower(t)] = struct{}{}
	}
	return out
}
