//go:build gosseract

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractLib runs recognition in-process through libtesseract. The engine mode
// stays at the library default, OEM 3; tessedit_ocr_engine_mode is init-only.
type TesseractLib struct {
	TessdataDir string
}

// LibAvailable reports whether the in-process engine was compiled in.
const LibAvailable = true

func (t TesseractLib) Recognize(ctx context.Context, imagePath, languages string, mode Mode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	client := gosseract.NewClient()
	defer client.Close()

	if t.TessdataDir != "" {
		if err := client.SetTessdataPrefix(t.TessdataDir); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(strings.Split(languages, "+")...); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if psm, ok := mode.PSM(); ok {
		if err := client.SetPageSegMode(gosseract.PageSegMode(psm)); err != nil {
			return "", fmt.Errorf("set psm: %w", err)
		}
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	return client.Text()
}
