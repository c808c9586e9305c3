package ocr

import (
	"errors"
	"fmt"
)

// ErrEngineUnavailable is returned by engines that were not compiled in or cannot start.
var ErrEngineUnavailable = errors.New("ocr engine unavailable")

// EngineError reports a failed recognition for one language set and mode.
// The search absorbs it and moves on to the next candidate.
type EngineError struct {
	Languages string
	Mode      Mode
	Err       error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("ocr %s [%s]: %v", e.Languages, e.Mode, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// RasterError reports that a PDF could not be turned into page images.
type RasterError struct {
	Path   string
	Stderr string
	Err    error
}

func (e *RasterError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("rasterize %s: %v: %s", e.Path, e.Err, e.Stderr)
	}
	return fmt.Sprintf("rasterize %s: %v", e.Path, e.Err)
}

func (e *RasterError) Unwrap() error { return e.Err }
