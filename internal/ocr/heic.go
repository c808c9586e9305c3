package ocr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// HEICConverter turns HEIC/HEIF photos into PNG with an external tool.
// Converter is one of "heif-convert", "magick" or "sips".
type HEICConverter struct {
	Converter string
	CacheDir  string // when set, outputs are kept as {CacheDir}/{sha256}.png and reused
	Runner    Runner
	Logger    zerolog.Logger
}

// Convert returns the PNG path and a cleanup func. cleanup is a no-op for cached outputs.
func (h HEICConverter) Convert(ctx context.Context, in string) (string, func(), error) {
	noop := func() {}

	var cached string
	if h.CacheDir != "" {
		sum, err := fileSHA256(in)
		if err != nil {
			return "", nil, err
		}
		cached = filepath.Join(h.CacheDir, sum+".png")
		if st, err := os.Stat(cached); err == nil && !st.IsDir() {
			h.Logger.Debug().Str("cache", cached).Msg("using cached heic->png")
			return cached, noop, nil
		}
		if err := os.MkdirAll(h.CacheDir, 0o755); err != nil {
			return "", nil, err
		}
	}

	tmpDir, err := os.MkdirTemp("", "lb-heic-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }
	out := filepath.Join(tmpDir, "page.png")

	var errb []byte
	switch h.Converter {
	case "heif-convert":
		_, errb, err = h.Runner.Run(ctx, "heif-convert", in, out)
	case "magick":
		_, errb, err = h.Runner.Run(ctx, "magick", in, out)
	case "sips":
		_, errb, err = h.Runner.Run(ctx, "sips", "-s", "format", "png", in, "--out", out)
	default:
		cleanup()
		return "", nil, fmt.Errorf("HEIC not supported: set HEIC_CONVERTER to one of: heif-convert | magick | sips")
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("%s failed: %w: %s", h.Converter, err, truncate(string(errb), 512))
	}
	if _, statErr := os.Stat(out); statErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("HEIC conversion produced no output: %w", statErr)
	}
	if cached == "" {
		return out, cleanup, nil
	}

	defer cleanup()
	if err := os.Rename(out, cached); err != nil {
		// another worker may have won the race
		if st, statErr := os.Stat(cached); statErr == nil && !st.IsDir() {
			return cached, noop, nil
		}
		if err := copyFile(out, cached); err != nil {
			return "", nil, err
		}
	}
	h.Logger.Debug().Str("cache", cached).Msg("cached heic->png")
	return cached, noop, nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	hsh := sha256.New()
	if _, err := io.Copy(hsh, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hsh.Sum(nil)), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
