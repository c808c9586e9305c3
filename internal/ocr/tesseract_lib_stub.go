//go:build !gosseract

package ocr

import "context"

// TesseractLib is only functional in builds tagged gosseract.
type TesseractLib struct {
	TessdataDir string
}

// LibAvailable reports whether the in-process engine was compiled in.
const LibAvailable = false

func (TesseractLib) Recognize(context.Context, string, string, Mode) (string, error) {
	return "", ErrEngineUnavailable
}
