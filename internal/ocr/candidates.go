package ocr

import (
	"strings"

	"github.com/joseph-ayodele/linguabridge/internal/language"
)

// Mode is a tesseract engine configuration string such as "--oem 3 --psm 6".
type Mode string

const (
	// ModeBlock treats the page as a uniform block of text.
	ModeBlock Mode = "--oem 3 --psm 6"
	// ModeLine treats the image as a single text line.
	ModeLine Mode = "--oem 3 --psm 7"
	// ModeDetect is the cheap configuration used for language detection.
	ModeDetect Mode = "--psm 6"
)

// SearchModes are tried for every language set, in this order.
var SearchModes = []Mode{ModeBlock, ModeLine}

// Args splits the mode into command line arguments.
func (m Mode) Args() []string { return strings.Fields(string(m)) }

// flag returns the integer value following name, e.g. flag("--psm").
func (m Mode) flag(name string) (int, bool) {
	args := m.Args()
	for i := 0; i+1 < len(args); i++ {
		if args[i] != name {
			continue
		}
		n := 0
		for _, ch := range args[i+1] {
			if ch < '0' || ch > '9' {
				return 0, false
			}
			n = n*10 + int(ch-'0')
		}
		return n, true
	}
	return 0, false
}

// PSM returns the page segmentation mode, if set.
func (m Mode) PSM() (int, bool) { return m.flag("--psm") }

// OEM returns the engine mode, if set.
func (m Mode) OEM() (int, bool) { return m.flag("--oem") }

// Candidate is one OCR attempt configuration.
type Candidate struct {
	Languages string // "+"-joined tesseract codes, e.g. "nep+eng"
	Mode      Mode
}

const devanagariScriptModel = "script/Devanagari"

// LanguageSets returns the ordered language sets tried for requested. The last set is always "eng".
func LanguageSets(requested language.Code) []string {
	r := string(requested.OrDefault())
	eng := string(language.English)

	raw := [][]string{
		{r, eng},
		{r},
	}
	if sec, ok := requested.OrDefault().Secondary(); ok {
		raw = append(raw, []string{r, string(sec), eng})
	}
	raw = append(raw,
		[]string{devanagariScriptModel, eng},
		[]string{string(language.Nepali), eng},
		[]string{string(language.Sinhala), eng},
	)

	seen := make(map[string]struct{}, len(raw)+1)
	sets := make([]string, 0, len(raw)+1)
	for _, codes := range raw {
		set := joinUnique(codes)
		if set == eng {
			continue
		}
		if _, dup := seen[set]; dup {
			continue
		}
		seen[set] = struct{}{}
		sets = append(sets, set)
	}
	return append(sets, eng)
}

func joinUnique(codes []string) string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		dup := false
		for _, o := range out {
			if o == c {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return strings.Join(out, "+")
}

// GenerateCandidates pairs every language set with every search mode, language-major.
func GenerateCandidates(requested language.Code) []Candidate {
	sets := LanguageSets(requested)
	out := make([]Candidate, 0, len(sets)*len(SearchModes))
	for _, set := range sets {
		for _, m := range SearchModes {
			out = append(out, Candidate{Languages: set, Mode: m})
		}
	}
	return out
}
