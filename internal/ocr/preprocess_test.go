package ocr

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(30 * x), G: 200, B: uint8(20 * y), A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestImagePreprocessorProducesGrayscale(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "scan.png")
	writePNG(t, src)

	p := ImagePreprocessor{TempDir: dir}
	out, cleanup, err := p.Prepare(context.Background(), src)
	require.NoError(t, err)
	require.NotEqual(t, src, out)

	img, err := imaging.Open(out)
	require.NoError(t, err)
	r, g, b, _ := img.At(3, 5).RGBA()
	require.Equal(t, r, g)
	require.Equal(t, g, b)

	again, cleanup2, err := p.Prepare(context.Background(), src)
	require.NoError(t, err)
	defer cleanup2()
	a, err := os.ReadFile(out)
	require.NoError(t, err)
	c, err := os.ReadFile(again)
	require.NoError(t, err)
	require.Equal(t, a, c)

	cleanup()
	_, err = os.Stat(out)
	require.True(t, os.IsNotExist(err))
}

func TestImagePreprocessorRejectsGarbage(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(src, []byte("not an image"), 0o644))
	_, _, err := ImagePreprocessor{}.Prepare(context.Background(), src)
	require.Error(t, err)
}
