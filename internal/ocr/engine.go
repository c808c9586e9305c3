package ocr

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Engine recognizes text in an image file for a language set and mode.
type Engine interface {
	Recognize(ctx context.Context, imagePath, languages string, mode Mode) (string, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, imagePath, languages string, mode Mode) (string, error)

func (f EngineFunc) Recognize(ctx context.Context, imagePath, languages string, mode Mode) (string, error) {
	return f(ctx, imagePath, languages, mode)
}

// Executor runs single OCR attempts. It holds no per-image state.
type Executor struct {
	engine Engine
	logger zerolog.Logger
}

func NewExecutor(engine Engine, logger zerolog.Logger) *Executor {
	return &Executor{engine: engine, logger: logger}
}

// Run performs one attempt. Every failure, panics included, comes back as *EngineError.
func (x *Executor) Run(ctx context.Context, imagePath, languages string, mode Mode) (text string, err error) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			text, err = "", &EngineError{Languages: languages, Mode: mode, Err: panicError(p)}
		}
		ev := x.logger.Debug()
		if err != nil {
			ev = x.logger.Warn().Err(err)
		}
		ev.Str("languages", languages).
			Str("mode", string(mode)).
			Int("chars", len(text)).
			Int64("elapsed_ms", time.Since(start).Milliseconds()).
			Msg("ocr.attempt")
	}()

	if err := ctx.Err(); err != nil {
		return "", &EngineError{Languages: languages, Mode: mode, Err: err}
	}
	out, rerr := x.engine.Recognize(ctx, imagePath, languages, mode)
	if rerr != nil {
		return "", &EngineError{Languages: languages, Mode: mode, Err: rerr}
	}
	return out, nil
}

func panicError(p any) error {
	if e, ok := p.(error); ok {
		return fmt.Errorf("engine panic: %w", e)
	}
	return fmt.Errorf("engine panic: %v", p)
}
