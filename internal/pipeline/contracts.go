package pipeline

import (
	"context"

	"github.com/joseph-ayodele/linguabridge/internal/language"
)

// TextSource is the OCR surface the processor needs; *ocr.Service satisfies it.
type TextSource interface {
	DetectDocumentLanguage(ctx context.Context, path string) language.Code
	ExtractText(ctx context.Context, imagePath string, requested language.Code) (string, error)
	RenderPages(ctx context.Context, pdfPath, outDir string) ([]string, error)
}

// PDFRenderer writes text into a PDF file; *render.Renderer satisfies it.
type PDFRenderer interface {
	RenderFile(text, path string) error
}
