package ocr

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/joseph-ayodele/linguabridge/internal/language"
)

// Selection is the outcome of a full candidate scan for one image.
type Selection struct {
	Text      string
	Candidate Candidate // zero when Fallback or empty
	Score     Score
	Fallback  bool // no candidate was reasonable; Text is the longest output seen
	Attempts  int
	Failures  int
}

// Selector runs every candidate against an image and keeps the best cleaned text.
type Selector struct {
	exec    *Executor
	cleaner Cleaner
	prep    Preprocessor
	logger  zerolog.Logger
}

// NewSelector builds a selector. prep may be nil to skip preprocessing.
func NewSelector(exec *Executor, cleaner Cleaner, prep Preprocessor, logger zerolog.Logger) *Selector {
	return &Selector{exec: exec, cleaner: cleaner, prep: prep, logger: logger}
}

type attempt struct {
	cand    Candidate
	cleaned string
	score   Score
}

// Select scans the whole candidate sequence for requested. It never fails:
// engine errors are skipped and an image with no output yields an empty Selection.
func (s *Selector) Select(ctx context.Context, imagePath string, requested language.Code) Selection {
	start := time.Now()
	requested = requested.OrDefault()
	target := ScriptFor(requested)

	img := imagePath
	if s.prep != nil {
		out, cleanup, err := s.prep.Prepare(ctx, imagePath)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", imagePath).Msg("ocr.preprocess.failed")
		} else {
			defer cleanup()
			img = out
		}
	}

	var (
		sel                        Selection
		longestClean, longestRaw   string
		longestCleanN, longestRawN int
	)
	best, found := Search(GenerateCandidates(requested),
		func(c Candidate) (attempt, bool) {
			sel.Attempts++
			raw, err := s.exec.Run(ctx, img, c.Languages, c.Mode)
			if err != nil {
				sel.Failures++
				return attempt{}, false
			}
			a := attempt{cand: c, cleaned: strings.TrimSpace(s.cleaner.Clean(raw, target))}
			a.score = Evaluate(a.cleaned, target)

			if n := utf8.RuneCountInString(a.cleaned); n > longestCleanN {
				longestClean, longestCleanN = a.cleaned, n
			}
			if r := strings.TrimSpace(raw); utf8.RuneCountInString(r) > longestRawN {
				longestRaw, longestRawN = r, utf8.RuneCountInString(r)
			}
			return a, a.score.Reasonable && a.cleaned != ""
		},
		func(a, b attempt) bool { return a.score.Better(b.score) },
	)

	switch {
	case found:
		sel.Text, sel.Candidate, sel.Score = best.cleaned, best.cand, best.score
	case longestClean != "":
		sel.Text, sel.Fallback = longestClean, true
	case longestRaw != "":
		sel.Text, sel.Fallback = longestRaw, true
	}

	s.logger.Debug().
		Str("path", imagePath).
		Str("requested", requested.String()).
		Str("languages", sel.Candidate.Languages).
		Str("mode", string(sel.Candidate.Mode)).
		Int("quality", sel.Score.Quality).
		Bool("fallback", sel.Fallback).
		Int("attempts", sel.Attempts).
		Int("failures", sel.Failures).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("ocr.select.done")
	return sel
}
