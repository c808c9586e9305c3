package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/entity"
	"github.com/joseph-ayodele/linguabridge/internal/pipeline"
	"github.com/joseph-ayodele/linguabridge/internal/repository"
)

const (
	pagesSheet    = "Pages"
	documentSheet = "Document"
	// excelize rejects longer cell values
	maxCellChars = excelize.TotalCellChars
)

// PDFWriter renders text as a PDF stream; *render.Renderer satisfies it.
type PDFWriter interface {
	Render(text string, w io.Writer) error
}

// Service produces downloadable artifacts for processed documents.
type Service struct {
	docs         repository.DocumentRepository
	translations repository.TranslationRepository
	pdf          PDFWriter
	logger       zerolog.Logger
}

func NewService(docs repository.DocumentRepository, translations repository.TranslationRepository, pdf PDFWriter, logger zerolog.Logger) *Service {
	return &Service{docs: docs, translations: translations, pdf: pdf, logger: logger}
}

// DocumentXLSX returns a workbook with one row per page (Page, Native Text, English
// Translation) and a sheet of document metadata.
func (s *Service) DocumentXLSX(ctx context.Context, documentID uuid.UUID) ([]byte, error) {
	start := time.Now()
	doc, err := s.docs.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	pages, err := s.translations.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), pagesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(documentSheet); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(pagesSheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Page", "Native Text", "English Translation"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(pagesSheet, cell, h)
	}

	row := 2
	for _, p := range pages {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(pagesSheet, cell, v)
		}
		write(1, p.PageNumber)
		write(2, truncate(p.OriginalText, maxCellChars))
		write(3, truncate(p.TranslatedText, maxCellChars))
		row++
	}
	_ = f.SetColWidth(pagesSheet, "A", "A", 8)
	_ = f.SetColWidth(pagesSheet, "B", "C", 80)

	writeMetadata(f, doc)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	s.logger.Info().
		Str("document_id", documentID.String()).
		Int("rows", len(pages)).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("export.xlsx.ok")
	return buf.Bytes(), nil
}

func writeMetadata(f *excelize.File, doc *entity.Document) {
	rows := [][2]any{
		{"Document ID", doc.ID.String()},
		{"Filename", doc.Filename},
		{"Kind", string(doc.Kind)},
		{"Language", doc.Language.Name()},
		{"Pages", doc.PageCount},
		{"Status", string(doc.Status)},
		{"Uploaded", doc.CreatedAt.Format(time.RFC3339)},
	}
	for i, r := range rows {
		_ = f.SetCellValue(documentSheet, fmt.Sprintf("A%d", i+1), r[0])
		_ = f.SetCellValue(documentSheet, fmt.Sprintf("B%d", i+1), r[1])
	}
	_ = f.SetColWidth(documentSheet, "A", "A", 14)
	_ = f.SetColWidth(documentSheet, "B", "B", 40)
}

// TranslationPDF renders the document's non-empty page translations, separated by
// blank lines, as a PDF.
func (s *Service) TranslationPDF(ctx context.Context, documentID uuid.UUID) ([]byte, error) {
	if _, err := s.docs.Get(ctx, documentID); err != nil {
		return nil, err
	}
	pages, err := s.translations.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}
	text := pipeline.JoinEnglish(pages)
	if text == "" {
		return nil, fmt.Errorf("no translated content for %s: %w", documentID, common.ErrNotFound)
	}

	var buf bytes.Buffer
	if err := s.pdf.Render(text, &buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	s.logger.Info().Str("document_id", documentID.String()).Int("bytes", buf.Len()).Msg("export.pdf.ok")
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
