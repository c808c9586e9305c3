package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/linguabridge/internal/language"
)

func TestSelectorPicksHighestQualityReasonable(t *testing.T) {
	t.Parallel()

	eng := &scriptedEngine{out: map[Candidate]string{
		{Languages: "nep+eng", Mode: ModeBlock}: "नमस्ते",
		{Languages: "nep", Mode: ModeBlock}:     "नमस्ते संसार\n",
		{Languages: "eng", Mode: ModeBlock}:     "Hello wonderful and very long english text",
	}}
	sel := newTestSelector(eng).Select(context.Background(), "page.png", language.Nepali)

	require.Equal(t, "नमस्ते संसार", sel.Text)
	require.Equal(t, Candidate{Languages: "nep", Mode: ModeBlock}, sel.Candidate)
	require.False(t, sel.Fallback)
	require.True(t, sel.Score.Reasonable)
}

func TestSelectorScansEveryCandidate(t *testing.T) {
	t.Parallel()

	eng := &scriptedEngine{out: map[Candidate]string{
		{Languages: "nep+eng", Mode: ModeBlock}: "नमस्ते संसार",
	}}
	sel := newTestSelector(eng).Select(context.Background(), "page.png", language.Nepali)

	want := GenerateCandidates(language.Nepali)
	require.Equal(t, want, eng.calls)
	require.Equal(t, len(want), sel.Attempts)
}

func TestSelectorTieKeepsFirst(t *testing.T) {
	t.Parallel()

	eng := &scriptedEngine{out: map[Candidate]string{
		{Languages: "sin", Mode: ModeLine}:     "ලංකාව",
		{Languages: "sin+eng", Mode: ModeLine}: "ලංකාව",
	}}
	sel := newTestSelector(eng).Select(context.Background(), "page.png", language.Sinhala)
	require.Equal(t, Candidate{Languages: "sin+eng", Mode: ModeLine}, sel.Candidate)
}

func TestSelectorFallsBackToLongestText(t *testing.T) {
	t.Parallel()

	t.Run("cleaned", func(t *testing.T) {
		t.Parallel()
		eng := &scriptedEngine{out: map[Candidate]string{
			{Languages: "eng", Mode: ModeBlock}:     "Hello wonderful world",
			{Languages: "nep+eng", Mode: ModeLine}: "Hello world",
		}}
		sel := newTestSelector(eng).Select(context.Background(), "page.png", language.Nepali)
		require.True(t, sel.Fallback)
		require.Equal(t, "Hello wonderful world", sel.Text)
	})

	t.Run("raw", func(t *testing.T) {
		t.Parallel()
		eng := &scriptedEngine{out: map[Candidate]string{
			{Languages: "nep", Mode: ModeLine}: "  @@ ## \n",
		}}
		sel := newTestSelector(eng).Select(context.Background(), "page.png", language.Nepali)
		require.True(t, sel.Fallback)
		require.Equal(t, "@@ ##", sel.Text)
	})
}

func TestSelectorEngineFailuresAreAbsorbed(t *testing.T) {
	t.Parallel()

	eng := &scriptedEngine{
		out: map[Candidate]string{{Languages: "eng", Mode: ModeLine}: "नमस्ते संसार"},
		fail: map[Candidate]bool{
			{Languages: "nep+eng", Mode: ModeBlock}: true,
			{Languages: "nep", Mode: ModeBlock}:     true,
		},
	}
	sel := newTestSelector(eng).Select(context.Background(), "page.png", language.Nepali)
	require.Equal(t, "नमस्ते संसार", sel.Text)
	require.Equal(t, 2, sel.Failures)

	all := &scriptedEngine{failAll: true}
	sel = newTestSelector(all).Select(context.Background(), "page.png", language.Nepali)
	require.Empty(t, sel.Text)
	require.Equal(t, sel.Attempts, sel.Failures)
}

func TestSelectorIsDeterministic(t *testing.T) {
	t.Parallel()

	eng := &scriptedEngine{out: map[Candidate]string{
		{Languages: "nep+eng", Mode: ModeBlock}:             "नमस्ते jey संसार",
		{Languages: "nep+sin+eng", Mode: ModeLine}:          "नमस्ते संसार the",
		{Languages: "script/Devanagari+eng", Mode: ModeLine}: "नेपाल अअअअ",
	}}
	s := newTestSelector(eng)
	first := s.Select(context.Background(), "page.png", language.Nepali)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, s.Select(context.Background(), "page.png", language.Nepali))
	}
	require.Equal(t, "नमस्ते संसार", first.Text)
	require.Equal(t, Candidate{Languages: "nep+eng", Mode: ModeBlock}, first.Candidate)
}

type failingPrep struct{ calls int }

func (p *failingPrep) Prepare(context.Context, string) (string, func(), error) {
	p.calls++
	return "", nil, errors.New("decode failed")
}

func TestSelectorPreprocessFailureUsesOriginal(t *testing.T) {
	t.Parallel()

	var seen []string
	eng := EngineFunc(func(_ context.Context, img, _ string, _ Mode) (string, error) {
		seen = append(seen, img)
		return "", nil
	})
	prep := &failingPrep{}
	s := NewSelector(NewExecutor(eng, zerolog.Nop()), NewCleaner(nil), prep, zerolog.Nop())
	_ = s.Select(context.Background(), "scan.png", language.Nepali)

	require.Equal(t, 1, prep.calls)
	require.NotEmpty(t, seen)
	for _, img := range seen {
		require.Equal(t, "scan.png", img)
	}
}
