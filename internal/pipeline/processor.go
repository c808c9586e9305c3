// Package pipeline turns an uploaded file into per-page native and English text.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/joseph-ayodele/linguabridge/constants"
	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/entity"
	"github.com/joseph-ayodele/linguabridge/internal/llm"
	"github.com/joseph-ayodele/linguabridge/internal/repository"
)

// Upload is a file already saved to disk, waiting to be processed.
type Upload struct {
	ID       uuid.UUID // optional; generated when Nil
	UserID   string
	Filename string
	Path     string
}

// Result is the stored document with its pages in ascending order.
type Result struct {
	Document *entity.Document
	Pages    []*entity.Translation
}

// Deps are the collaborators of a Processor. Native may be nil, in which case
// English is used for native text too.
type Deps struct {
	Documents    repository.DocumentRepository
	Translations repository.TranslationRepository
	OCR          TextSource
	Translator   llm.Translator
	Transcriber  llm.Transcriber
	English      PDFRenderer
	Native       PDFRenderer
}

// Processor runs one document at a time: detect, extract per page, translate per page, persist.
type Processor struct {
	deps      Deps
	artifacts Artifacts
	logger    zerolog.Logger
}

func NewProcessor(deps Deps, dataDir string, logger zerolog.Logger) *Processor {
	if deps.Native == nil {
		deps.Native = deps.English
	}
	if dataDir == "" {
		dataDir = "data"
	}
	return &Processor{deps: deps, artifacts: Artifacts{DataDir: dataDir}, logger: logger}
}

func (p *Processor) Artifacts() Artifacts { return p.artifacts }

// Ingest records the upload as a PROCESSING document, processes it, and stores the
// outcome. The returned Result carries the document even when err is non-nil, as
// long as the document row was created.
func (p *Processor) Ingest(ctx context.Context, up Upload) (*Result, error) {
	start := time.Now()
	kind, ok := constants.KindForExt(filepath.Ext(up.Filename))
	if !ok {
		return nil, fmt.Errorf("file %q: %w", up.Filename, common.ErrUnsupported)
	}
	if up.ID == uuid.Nil {
		up.ID = uuid.New()
	}
	hash, err := fileSHA256(up.Path)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	doc, err := p.deps.Documents.Create(ctx, &entity.Document{
		ID:          up.ID,
		UserID:      up.UserID,
		Filename:    up.Filename,
		StoredPath:  up.Path,
		Kind:        kind,
		Status:      constants.DocumentStatusProcessing,
		ContentHash: hash,
	})
	if err != nil {
		return nil, err
	}
	log := p.logger.With().Str("document_id", doc.ID.String()).Str("kind", string(kind)).Logger()
	log.Info().Str("filename", up.Filename).Msg("pipeline.ingest.start")

	pages, procErr := p.Process(ctx, doc)
	doc.PageCount = len(pages)
	doc.Status = constants.DocumentStatusReady
	if procErr != nil {
		doc.Status = constants.DocumentStatusFailed
	}

	// keep whatever pages we have, even when no page produced text
	if len(pages) > 0 {
		stored, err := p.storePages(ctx, doc.ID, pages)
		if err != nil {
			doc.Status = constants.DocumentStatusFailed
			procErr = errors.Join(procErr, err)
		}
		pages = stored
	}
	if err := p.deps.Documents.UpdateResult(context.WithoutCancel(ctx), doc); err != nil {
		procErr = errors.Join(procErr, err)
	}

	if procErr != nil {
		log.Error().Err(procErr).Int64("elapsed_ms", time.Since(start).Milliseconds()).Msg("pipeline.ingest.failed")
		return &Result{Document: doc, Pages: pages}, procErr
	}
	log.Info().
		Str("language", string(doc.Language)).
		Int("pages", doc.PageCount).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("pipeline.ingest.ok")
	return &Result{Document: doc, Pages: pages}, nil
}

// Process fills doc.Language and the PDF paths and returns the page texts. It does
// not persist anything.
func (p *Processor) Process(ctx context.Context, doc *entity.Document) ([]*entity.Translation, error) {
	switch doc.Kind {
	case constants.AUDIO:
		return p.processAudio(ctx, doc)
	case constants.IMAGE, constants.PDF:
		return p.processScan(ctx, doc)
	default:
		return nil, fmt.Errorf("kind %q: %w", doc.Kind, common.ErrUnsupported)
	}
}

func (p *Processor) processScan(ctx context.Context, doc *entity.Document) ([]*entity.Translation, error) {
	log := p.logger.With().Str("document_id", doc.ID.String()).Logger()

	// one detection per document, reused for every page
	doc.Language = p.deps.OCR.DetectDocumentLanguage(ctx, doc.StoredPath)
	log.Info().Str("language", string(doc.Language)).Msg("pipeline.detect.ok")

	images := []string{doc.StoredPath}
	if doc.Kind == constants.PDF {
		original := p.artifacts.OriginalPDF(doc.ID)
		if err := copyFile(doc.StoredPath, original); err != nil {
			log.Warn().Err(err).Msg("pipeline.original.copy_failed")
		}

		tmp, err := os.MkdirTemp("", "linguabridge-pages-*")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(tmp)

		images, err = p.deps.OCR.RenderPages(ctx, doc.StoredPath, tmp)
		if err != nil {
			return nil, fmt.Errorf("rasterize %s: %w", doc.Filename, err)
		}
	}

	pages := make([]*entity.Translation, 0, len(images))
	for i, img := range images {
		text, err := p.deps.OCR.ExtractText(ctx, img, doc.Language)
		if err != nil {
			return pages, fmt.Errorf("page %d: %w", i+1, err)
		}
		if text == "" {
			log.Warn().Int("page", i+1).Msg("pipeline.page.no_text")
		}
		pages = append(pages, &entity.Translation{
			DocumentID:     doc.ID,
			PageNumber:     i + 1,
			OriginalText:   text,
			TranslatedText: p.translatePage(ctx, doc, i+1, text),
		})
	}

	if !anyText(pages) {
		return pages, fmt.Errorf("%s: %w", doc.Filename, common.ErrNoTextDetected)
	}

	if doc.Kind == constants.PDF {
		if english := JoinEnglish(pages); english != "" {
			doc.EnglishPDFPath = p.renderPDF(p.deps.English, english, p.artifacts.EnglishPDF(doc.ID), log)
		}
	}
	return pages, nil
}

// translatePage never fails: a page whose translation fails is stored untranslated.
func (p *Processor) translatePage(ctx context.Context, doc *entity.Document, page int, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	out, err := p.deps.Translator.Translate(ctx, llm.TranslateRequest{Text: text, Source: doc.Language})
	if err != nil {
		p.logger.Warn().Err(err).
			Str("document_id", doc.ID.String()).
			Int("page", page).
			Msg("pipeline.translate.failed")
		return ""
	}
	return out
}

func (p *Processor) processAudio(ctx context.Context, doc *entity.Document) ([]*entity.Translation, error) {
	log := p.logger.With().Str("document_id", doc.ID.String()).Logger()
	if p.deps.Transcriber == nil {
		return nil, fmt.Errorf("audio transcription: %w", common.ErrUnsupported)
	}

	tr, err := p.deps.Transcriber.Transcribe(ctx, doc.StoredPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe %s: %w", doc.Filename, err)
	}
	native := strings.TrimSpace(tr.Text)
	if native == "" {
		return nil, fmt.Errorf("no speech detected in %s: %w", doc.Filename, common.ErrNoTextDetected)
	}
	doc.Language = tr.Language
	log.Info().Str("language", string(doc.Language)).Str("reported", tr.RawLanguage).Msg("pipeline.transcribe.ok")

	// a single unit: a translation failure fails the upload
	english, err := p.deps.Translator.Translate(ctx, llm.TranslateRequest{Text: native, Source: doc.Language})
	if err != nil {
		return nil, fmt.Errorf("translate %s: %w", doc.Filename, err)
	}

	nativeRenderer := p.deps.English
	if doc.Language.IsLowResource() {
		nativeRenderer = p.deps.Native
	}
	doc.NativePDFPath = p.renderPDF(nativeRenderer, native, p.artifacts.NativePDF(doc.ID), log)
	if strings.TrimSpace(english) != "" {
		doc.EnglishPDFPath = p.renderPDF(p.deps.English, english, p.artifacts.EnglishPDF(doc.ID), log)
	}

	return []*entity.Translation{{
		DocumentID:     doc.ID,
		PageNumber:     1,
		OriginalText:   native,
		TranslatedText: english,
	}}, nil
}

// renderPDF returns path on success and "" when rendering failed or is disabled.
func (p *Processor) renderPDF(r PDFRenderer, text, path string, log zerolog.Logger) string {
	if r == nil {
		return ""
	}
	if err := r.RenderFile(text, path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("pipeline.pdf.failed")
		return ""
	}
	return path
}

func (p *Processor) storePages(ctx context.Context, docID uuid.UUID, pages []*entity.Translation) ([]*entity.Translation, error) {
	ctx = context.WithoutCancel(ctx)
	stored := make([]*entity.Translation, 0, len(pages))
	for _, page := range pages {
		page.DocumentID = docID
		row, err := p.deps.Translations.Insert(ctx, page)
		if err != nil {
			return stored, fmt.Errorf("store page %d: %w", page.PageNumber, err)
		}
		stored = append(stored, row)
	}
	return stored, nil
}

func anyText(pages []*entity.Translation) bool {
	for _, p := range pages {
		if strings.TrimSpace(p.OriginalText) != "" {
			return true
		}
	}
	return false
}
