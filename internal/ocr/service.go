// Package ocr extracts text in low-resource scripts from images and PDFs by
// running many tesseract configurations and keeping the most plausible output.
package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/joseph-ayodele/linguabridge/constants"
	"github.com/joseph-ayodele/linguabridge/internal/language"
)

type Config struct {
	Engine    string // "cli" | "lib"; if empty -> "cli"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"

	TessdataDir string
	PageDPI     int           // rasterization DPI for pages, default 300
	DetectDPI   int           // rasterization DPI for language detection, default 150
	MaxPages    int           // 0 = no limit
	ExecTimeout time.Duration // per external tool run, default 2m

	HeicConverter    string
	ArtifactCacheDir string
}

func (c Config) withDefaults() Config {
	if c.Engine == "" {
		c.Engine = "cli"
	}
	if c.Tesseract == "" {
		c.Tesseract = "tesseract"
	}
	if c.Pdftoppm == "" {
		c.Pdftoppm = "pdftoppm"
	}
	if c.PageDPI <= 0 {
		c.PageDPI = 300
	}
	if c.DetectDPI <= 0 {
		c.DetectDPI = 150
	}
	if c.ExecTimeout <= 0 {
		c.ExecTimeout = 2 * time.Minute
	}
	return c
}

// Service is the entry point used by the document pipeline. It keeps no per-document state.
type Service struct {
	cfg      Config
	selector *Selector
	detector *Detector
	raster   Rasterizer
	heic     HEICConverter
	logger   zerolog.Logger
}

// Deps overrides the external collaborators; zero fields get the real implementations.
type Deps struct {
	Runner       Runner
	Engine       Engine
	Rasterizer   Rasterizer
	Preprocessor Preprocessor
	Noise        NoiseTokens
}

func NewService(cfg Config, deps Deps, logger zerolog.Logger) (*Service, error) {
	cfg = cfg.withDefaults()
	if deps.Runner == nil {
		deps.Runner = ExecRunner{Timeout: cfg.ExecTimeout, Logger: logger}
	}
	if deps.Engine == nil {
		switch cfg.Engine {
		case "cli":
			deps.Engine = TesseractCLI{Bin: cfg.Tesseract, TessdataDir: cfg.TessdataDir, Runner: deps.Runner}
		case "lib":
			if !LibAvailable {
				return nil, fmt.Errorf("%w: build with -tags gosseract to use OCR_ENGINE=lib", ErrEngineUnavailable)
			}
			deps.Engine = TesseractLib{TessdataDir: cfg.TessdataDir}
		default:
			return nil, fmt.Errorf("unknown ocr engine %q", cfg.Engine)
		}
	}
	if deps.Rasterizer == nil {
		deps.Rasterizer = Pdftoppm{Bin: cfg.Pdftoppm, MaxPages: cfg.MaxPages, Runner: deps.Runner}
	}
	if deps.Preprocessor == nil {
		deps.Preprocessor = ImagePreprocessor{}
	}

	exec := NewExecutor(deps.Engine, logger)
	return &Service{
		cfg:      cfg,
		selector: NewSelector(exec, NewCleaner(deps.Noise), deps.Preprocessor, logger),
		detector: NewDetector(exec, deps.Rasterizer, cfg.DetectDPI, logger),
		raster:   deps.Rasterizer,
		heic: HEICConverter{
			Converter: cfg.HeicConverter,
			CacheDir:  cfg.ArtifactCacheDir,
			Runner:    deps.Runner,
			Logger:    logger,
		},
		logger: logger,
	}, nil
}

// DetectDocumentLanguage guesses the language of an image or PDF from its first page.
func (s *Service) DetectDocumentLanguage(ctx context.Context, path string) language.Code {
	img, cleanup, err := s.decodable(ctx, path)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("ocr.detect.convert_failed")
		return language.Default
	}
	defer cleanup()
	return s.detector.Detect(ctx, img)
}

// ExtractText returns the best cleaned transcription of one image. An image
// without usable text yields "". The error is non-nil only when ctx ends or the
// image needs a converter that fails.
func (s *Service) ExtractText(ctx context.Context, imagePath string, requested language.Code) (string, error) {
	sel, err := s.Extract(ctx, imagePath, requested)
	return sel.Text, err
}

// Extract is ExtractText with the selection details.
func (s *Service) Extract(ctx context.Context, imagePath string, requested language.Code) (Selection, error) {
	img, cleanup, err := s.decodable(ctx, imagePath)
	if err != nil {
		return Selection{}, err
	}
	defer cleanup()
	sel := s.selector.Select(ctx, img, requested)
	if err := ctx.Err(); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// RenderPages rasterizes a PDF at page resolution into outDir.
func (s *Service) RenderPages(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	start := time.Now()
	pages, err := s.raster.Rasterize(ctx, pdfPath, outDir, RasterOptions{DPI: s.cfg.PageDPI})
	if err != nil {
		s.logger.Error().Err(err).Str("path", pdfPath).Msg("ocr.raster.failed")
		return nil, err
	}
	s.logger.Info().
		Str("path", pdfPath).
		Int("pages", len(pages)).
		Int("dpi", s.cfg.PageDPI).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("ocr.raster.ok")
	return pages, nil
}

// decodable converts HEIC inputs; everything else passes through untouched.
func (s *Service) decodable(ctx context.Context, path string) (string, func(), error) {
	if !constants.IsHEICExt(filepath.Ext(path)) {
		return path, func() {}, nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", nil, err
	}
	return s.heic.Convert(ctx, path)
}
