package language

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Code
	}{
		{"ne", Nepali},
		{"nep", Nepali},
		{"Nepali", Nepali},
		{"hi", Nepali},
		{"si", Sinhala},
		{"sinhala", Sinhala},
		{"en", English},
		{"eng", English},
		{"", Unknown},
		{"not a language", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestSecondary(t *testing.T) {
	t.Parallel()

	s, ok := Nepali.Secondary()
	require.True(t, ok)
	require.Equal(t, Sinhala, s)

	s, ok = Sinhala.Secondary()
	require.True(t, ok)
	require.Equal(t, Nepali, s)

	_, ok = English.Secondary()
	require.False(t, ok)
}

func TestNameAndDefault(t *testing.T) {
	t.Parallel()

	require.Equal(t, "sinhala", Sinhala.Name())
	require.Equal(t, "tam", Code("tam").Name())
	require.Equal(t, Nepali, Unknown.OrDefault())
	require.Equal(t, English, English.OrDefault())
}
