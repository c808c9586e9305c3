package ocr

import (
	"context"
	"fmt"
	"strings"
)

// TesseractCLI shells out to the tesseract binary.
type TesseractCLI struct {
	Bin         string // binary name or absolute path; if empty -> "tesseract"
	TessdataDir string
	Runner      Runner
}

func (t TesseractCLI) Recognize(ctx context.Context, imagePath, languages string, mode Mode) (string, error) {
	bin := t.Bin
	if bin == "" {
		bin = "tesseract"
	}
	// tesseract <file> stdout -l <langs> --oem 3 --psm 6 [--tessdata-dir dir]
	args := []string{imagePath, "stdout", "-l", languages}
	args = append(args, mode.Args()...)
	if t.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.TessdataDir)
	}

	out, errb, err := t.Runner.Run(ctx, bin, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			return "", fmt.Errorf("tesseract: %w: %s", err, truncate(msg, 512))
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return strings.TrimRight(string(out), "\f"), nil
}
