package ocr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// maxRun is the longest run of one character, spaces included, a line may contain.
	maxRun = 3
	// maxWordRun is the longest run of one letter a Latin word may contain.
	maxWordRun = 2
	// dominanceRatio is the share of non-space characters one character may take.
	dominanceRatio = 0.6
	// dominanceMinLen is the trimmed length above which dominance is checked.
	dominanceMinLen = 5
	// shortLatinWord is the length at or below which Latin-only words are dropped.
	shortLatinWord = 3
)

const allowedPunct = "।॥.,!?;:()"

// Cleaner removes OCR artifacts. It only drops characters, words and lines.
type Cleaner struct {
	Noise NoiseTokens
}

// NewCleaner uses DefaultNoiseTokens when noise is nil.
func NewCleaner(noise NoiseTokens) Cleaner {
	if noise == nil {
		noise = DefaultNoiseTokens
	}
	return Cleaner{Noise: noise}
}

// Clean drops lines with long runs, then runs the allowlist, the word filter for
// low-resource scripts, and a final repetition filter over what is left.
// Clean(Clean(x)) == Clean(x).
func (c Cleaner) Clean(raw string, target Script) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, ln := range lines {
		if longestRun(ln) > maxRun {
			continue
		}
		kept = append(kept, ln)
	}

	lines = strings.Split(allowlist(strings.Join(kept, "\n")), "\n")
	if target.LowResource() {
		lines = c.filterWords(lines, target)
	}
	kept = lines[:0]
	for _, ln := range lines {
		if isRepetitive(ln) {
			continue
		}
		kept = append(kept, ln)
	}
	return strings.Join(kept, "\n")
}

// Clean is a convenience for NewCleaner(nil).Clean.
func Clean(raw string, target Script) string {
	return NewCleaner(nil).Clean(raw, target)
}

func allowed(r rune) bool {
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', unicode.IsSpace(r):
		return true
	case isDevanagari(r), isSinhala(r):
		return true
	}
	return strings.ContainsRune(allowedPunct, r)
}

func allowlist(s string) string {
	return strings.Map(func(r rune) rune {
		if r == utf8.RuneError || !allowed(r) {
			return -1
		}
		return r
	}, strings.ReplaceAll(s, "\r\n", "\n"))
}

// filterWords drops noise words and then lines that keep no target characters and at most one word.
// Words are counted after filtering so a second pass finds nothing to drop.
func (c Cleaner) filterWords(lines []string, target Script) []string {
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		words := strings.Fields(ln)
		keep := words[:0]
		hasTarget := false
		for _, w := range words {
			if c.isNoiseWord(w, target) {
				continue
			}
			keep = append(keep, w)
			if !hasTarget && containsScript(w, target) {
				hasTarget = true
			}
		}
		if len(keep) == 0 || (!hasTarget && len(keep) <= 1) {
			continue
		}
		out = append(out, strings.Join(keep, " "))
	}
	return out
}

// isNoiseWord applies only to Latin-only words: Latin letters present and no target characters.
func (c Cleaner) isNoiseWord(w string, target Script) bool {
	if containsScript(w, target) || !containsScript(w, ScriptLatin) {
		return false
	}
	if c.Noise.Contains(w) {
		return true
	}
	if utf8.RuneCountInString(w) <= shortLatinWord {
		return true
	}
	return longestRun(strings.ToLower(w)) > maxWordRun
}

func containsScript(s string, sc Script) bool {
	for _, r := range s {
		if sc.Contains(r) {
			return true
		}
	}
	return false
}

// longestRun returns the longest run of one repeated rune.
func longestRun(s string) int {
	best, run := 0, 0
	var prev rune = -1
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

func isRepetitive(line string) bool {
	if longestRun(line) > maxRun {
		return true
	}
	trimmed := strings.TrimSpace(line)
	if utf8.RuneCountInString(trimmed) <= dominanceMinLen {
		return false
	}
	counts := make(map[rune]int)
	total, top := 0, 0
	for _, r := range trimmed {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		counts[r]++
		if counts[r] > top {
			top = counts[r]
		}
	}
	return total > 0 && float64(top)/float64(total) > dominanceRatio
}
