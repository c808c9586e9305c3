package ocr

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/joseph-ayodele/linguabridge/internal/language"
)

// Hypothesis pairs a language with the language set used to test it.
type Hypothesis struct {
	Code      language.Code
	Languages string
}

// DetectionHypotheses are tried in priority order; the first is the default.
var DetectionHypotheses = []Hypothesis{
	{Code: language.Nepali, Languages: "nep+eng"},
	{Code: language.Sinhala, Languages: "sin+eng"},
	{Code: language.English, Languages: "eng"},
}

// Detector guesses a document language from its first image with one cheap pass per hypothesis.
type Detector struct {
	exec   *Executor
	raster Rasterizer
	dpi    int
	logger zerolog.Logger
}

func NewDetector(exec *Executor, raster Rasterizer, dpi int, logger zerolog.Logger) *Detector {
	if dpi <= 0 {
		dpi = 150
	}
	return &Detector{exec: exec, raster: raster, dpi: dpi, logger: logger}
}

type detection struct {
	code  language.Code
	score int
}

// Detect returns the hypothesis with the most meaningful characters in raw output.
// Any failure, including an unreadable PDF, yields the first hypothesis.
func (d *Detector) Detect(ctx context.Context, path string) language.Code {
	start := time.Now()
	def := DetectionHypotheses[0].Code

	img := path
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		first, cleanup, err := d.firstPage(ctx, path)
		if err != nil {
			d.logger.Warn().Err(err).Str("path", path).Str("language", def.String()).Msg("ocr.detect.raster_failed")
			return def
		}
		defer cleanup()
		img = first
	}

	best, found := Search(DetectionHypotheses,
		func(h Hypothesis) (detection, bool) {
			raw, err := d.exec.Run(ctx, img, h.Languages, ModeDetect)
			if err != nil {
				return detection{}, false
			}
			n := MeaningfulChars(raw)
			return detection{code: h.Code, score: n}, n > 0
		},
		func(a, b detection) bool { return a.score > b.score },
	)
	code := def
	if found {
		code = best.code
	}
	d.logger.Info().
		Str("path", path).
		Str("language", code.String()).
		Int("score", best.score).
		Bool("defaulted", !found).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("ocr.detect.done")
	return code
}

func (d *Detector) firstPage(ctx context.Context, pdfPath string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "lb-detect-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }
	pages, err := d.raster.Rasterize(ctx, pdfPath, dir, RasterOptions{DPI: d.dpi, FirstPage: 1, LastPage: 1})
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return pages[0], cleanup, nil
}
