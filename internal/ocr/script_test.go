package ocr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/linguabridge/internal/language"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want ScriptCounts
		dom  Script
	}{
		{name: "empty", in: "", want: ScriptCounts{}, dom: ScriptOther},
		{name: "nepali", in: "नमस्ते", want: ScriptCounts{Devanagari: 6}, dom: ScriptDevanagari},
		{name: "sinhala", in: "ආයුබෝවන්", want: ScriptCounts{Sinhala: 8}, dom: ScriptSinhala},
		{name: "mixed", in: "नेपाल Nepal 2024", want: ScriptCounts{Devanagari: 5, Latin: 5}, dom: ScriptDevanagari},
		{name: "latin only", in: "Hello, world!", want: ScriptCounts{Latin: 10}, dom: ScriptLatin},
		{name: "accented latin not counted", in: "café", want: ScriptCounts{Latin: 3}, dom: ScriptLatin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(tt.in)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.dom, got.Dominant())
		})
	}
}

func TestScriptFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, ScriptDevanagari, ScriptFor(language.Nepali))
	require.Equal(t, ScriptSinhala, ScriptFor(language.Sinhala))
	require.Equal(t, ScriptLatin, ScriptFor(language.English))
	require.Equal(t, ScriptOther, ScriptFor(language.Code("tam")))
	require.True(t, ScriptDevanagari.LowResource())
	require.False(t, ScriptLatin.LowResource())
	require.Equal(t, ScriptSinhala, ScriptOf('ක'))
}
