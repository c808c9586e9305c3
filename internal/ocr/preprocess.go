package ocr

import (
	"context"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultContrast is the fixed contrast boost, in percent, applied before OCR.
const DefaultContrast = 10.0

// Preprocessor prepares an image for OCR. cleanup is never nil when err is nil.
type Preprocessor interface {
	Prepare(ctx context.Context, path string) (out string, cleanup func(), err error)
}

// ImagePreprocessor converts to grayscale and applies a fixed contrast boost.
// The output depends only on the input file.
type ImagePreprocessor struct {
	Contrast float64 // percent; 0 -> DefaultContrast
	TempDir  string  // "" -> os.TempDir()
}

func (p ImagePreprocessor) Prepare(ctx context.Context, path string) (string, func(), error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", nil, fmt.Errorf("open image: %w", err)
	}
	contrast := p.Contrast
	if contrast == 0 {
		contrast = DefaultContrast
	}
	out := imaging.AdjustContrast(imaging.Grayscale(img), contrast)

	f, err := os.CreateTemp(p.TempDir, "lb-prep-*.png")
	if err != nil {
		return "", nil, err
	}
	name := f.Name()
	_ = f.Close()
	cleanup := func() { _ = os.Remove(name) }

	if err := imaging.Save(out, name); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("save preprocessed image: %w", err)
	}
	return name, cleanup, nil
}
