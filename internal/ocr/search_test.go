package ocr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type scored struct {
	id    string
	score int
}

func TestSearch(t *testing.T) {
	t.Parallel()

	higher := func(a, b scored) bool { return a.score > b.score }
	eligible := func(s scored) (scored, bool) { return s, s.score > 0 }

	t.Run("highest wins", func(t *testing.T) {
		best, ok := Search([]scored{{"a", 1}, {"b", 5}, {"c", 3}}, eligible, higher)
		require.True(t, ok)
		require.Equal(t, "b", best.id)
	})
	t.Run("ties keep first", func(t *testing.T) {
		best, ok := Search([]scored{{"a", 2}, {"b", 4}, {"c", 4}}, eligible, higher)
		require.True(t, ok)
		require.Equal(t, "b", best.id)
	})
	t.Run("nothing eligible", func(t *testing.T) {
		_, ok := Search([]scored{{"a", 0}, {"b", 0}}, eligible, higher)
		require.False(t, ok)
	})
	t.Run("evaluates every candidate", func(t *testing.T) {
		n := 0
		_, _ = Search([]scored{{"a", 9}, {"b", 1}, {"c", 1}}, func(s scored) (scored, bool) {
			n++
			return s, true
		}, higher)
		require.Equal(t, 3, n)
	})
}
