package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.pdf", "a.JPG", "notes.txt", ".hidden/c.png", "sub/d.wav", "sub/.e.png"} {
		touch(t, filepath.Join(root, name))
	}

	tests := []struct {
		name  string
		opts  ScanOptions
		want  []string
		stats DirStats
	}{
		{
			name:  "all upload kinds",
			opts:  ScanOptions{},
			want:  []string{".hidden/c.png", "a.JPG", "b.pdf", "sub/.e.png", "sub/d.wav"},
			stats: DirStats{Scanned: 6, Matched: 5},
		},
		{
			name:  "skip hidden",
			opts:  ScanOptions{SkipHidden: true},
			want:  []string{"a.JPG", "b.pdf", "sub/d.wav"},
			stats: DirStats{Scanned: 4, Matched: 3},
		},
		{
			name:  "only pdf",
			opts:  ScanOptions{Exts: []string{".PDF"}, SkipHidden: true},
			want:  []string{"b.pdf"},
			stats: DirStats{Scanned: 4, Matched: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, stats, err := Scan(root, tt.opts)
			require.NoError(t, err)
			want := make([]string, len(tt.want))
			for i, w := range tt.want {
				want[i] = filepath.Join(root, filepath.FromSlash(w))
			}
			require.Equal(t, want, files)
			require.Equal(t, tt.stats, stats)
		})
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, _, err := Scan(filepath.Join(t.TempDir(), "missing"), ScanOptions{})
	require.Error(t, err)

	_, _, err = Scan(" ", ScanOptions{})
	require.Error(t, err)
}

func TestWatchEmitsNewFiles(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := Watch(ctx, WatchConfig{Roots: []string{root}, Debounce: 20 * time.Millisecond}, zerolog.Nop())
	require.NoError(t, err)

	touch(t, filepath.Join(root, "ignored.txt"))
	target := filepath.Join(root, "scan.png")
	touch(t, target)

	select {
	case got := <-events:
		require.Equal(t, target, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for new file")
	}

	cancel()
	for range events {
	}
}

func TestWatchRequiresRoots(t *testing.T) {
	_, _, err := Watch(context.Background(), WatchConfig{}, zerolog.Nop())
	require.Error(t, err)
}
