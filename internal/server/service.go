package server

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/joseph-ayodele/linguabridge/constants"
	"github.com/joseph-ayodele/linguabridge/internal/chat"
	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/entity"
	"github.com/joseph-ayodele/linguabridge/internal/export"
	"github.com/joseph-ayodele/linguabridge/internal/logger"
	"github.com/joseph-ayodele/linguabridge/internal/pipeline"
	"github.com/joseph-ayodele/linguabridge/internal/repository"
)

const (
	// MaxUploadBytes bounds UploadDocument content.
	MaxUploadBytes = 50 << 20

	minFeedbackChars = 10
)

// Ingester is the part of *pipeline.Processor the service needs.
type Ingester interface {
	Ingest(ctx context.Context, up pipeline.Upload) (*pipeline.Result, error)
}

type Deps struct {
	Processor    Ingester
	Documents    repository.DocumentRepository
	Translations repository.TranslationRepository
	Feedback     repository.FeedbackRepository
	Chat         *chat.Service
	Export       *export.Service
	Artifacts    pipeline.Artifacts
	UploadDir    string
}

// DocumentService implements DocumentServer.
type DocumentService struct {
	deps   Deps
	logger zerolog.Logger
}

func NewDocumentService(deps Deps, logger zerolog.Logger) *DocumentService {
	if deps.UploadDir == "" {
		deps.UploadDir = "tmp_uploads"
	}
	return &DocumentService{deps: deps, logger: logger}
}

func (s *DocumentService) UploadDocument(ctx context.Context, req *UploadDocumentRequest) (*UploadDocumentResponse, error) {
	filename := filepath.Base(strings.TrimSpace(req.Filename))
	v := common.NewValidator().
		Field("user_id", req.UserID, common.Required).
		Field("filename", filename, common.Required, common.MaxLength(255))
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}
	if len(req.Content) == 0 {
		return nil, common.InvalidArgumentError("content is required")
	}
	if len(req.Content) > MaxUploadBytes {
		return nil, common.InvalidArgumentErrorf("file exceeds %d bytes", MaxUploadBytes)
	}
	ext := constants.NormalizeExt(filepath.Ext(filename))
	if _, ok := constants.KindForExt(ext); !ok {
		return nil, common.InvalidArgumentErrorf("file type %q is not supported", ext)
	}

	id := uuid.New()
	path := filepath.Join(s.deps.UploadDir, id.String()+"."+ext)
	if err := os.MkdirAll(s.deps.UploadDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, req.Content, 0o644); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}
	s.logger.Info().
		Str("request_id", common.RequestIDFromContext(ctx)).
		Str("document_id", id.String()).
		Str("filename", filename).
		Int("bytes", len(req.Content)).
		Msg("upload.saved")

	res, err := s.deps.Processor.Ingest(ctx, pipeline.Upload{ID: id, UserID: req.UserID, Filename: filename, Path: path})
	if err != nil {
		return nil, err
	}
	doc := res.Document
	out := &UploadDocumentResponse{
		DocumentID:     doc.ID.String(),
		Filename:       doc.Filename,
		NumPages:       doc.PageCount,
		Language:       string(doc.Language),
		FileExt:        ext,
		Status:         string(doc.Status),
		EnglishPDFPath: doc.EnglishPDFPath,
	}
	if doc.Kind == constants.PDF {
		out.OriginalPDFPath = s.deps.Artifacts.OriginalPDF(doc.ID)
	}
	return out, nil
}

func (s *DocumentService) GetMetadata(ctx context.Context, req *DocumentRequest) (*GetMetadataResponse, error) {
	id, err := parseID("document_id", req.DocumentID)
	if err != nil {
		return nil, err
	}
	doc, err := s.deps.Documents.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	pages, err := s.deps.Translations.ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GetMetadataResponse{
		Filename:       doc.Filename,
		FileExt:        constants.NormalizeExt(filepath.Ext(doc.Filename)),
		Language:       string(doc.Language),
		Status:         string(doc.Status),
		PageCount:      doc.PageCount,
		NativeText:     pipeline.JoinNative(pages),
		TranslatedText: pipeline.JoinEnglish(pages),
	}, nil
}

// GetFile serves the upload for images and the original or English PDF otherwise.
func (s *DocumentService) GetFile(ctx context.Context, req *GetFileRequest) (*FileResponse, error) {
	id, err := parseID("document_id", req.DocumentID)
	if err != nil {
		return nil, err
	}
	doc, err := s.deps.Documents.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	english := strings.EqualFold(req.Lang, "english")
	var candidates []string
	switch doc.Kind {
	case constants.IMAGE:
		candidates = []string{doc.StoredPath}
	case constants.AUDIO:
		if english {
			candidates = append(candidates, doc.EnglishPDFPath)
		}
		candidates = append(candidates, doc.NativePDFPath)
	default:
		if english {
			candidates = append(candidates, doc.EnglishPDFPath)
		}
		candidates = append(candidates, s.deps.Artifacts.OriginalPDF(doc.ID), doc.StoredPath)
	}

	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		mt := mime.TypeByExtension(filepath.Ext(path))
		if mt == "" {
			mt = "application/octet-stream"
		}
		return &FileResponse{Filename: filepath.Base(path), MimeType: mt, Content: data}, nil
	}
	return nil, common.NotFoundError("file not found")
}

func (s *DocumentService) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	v := common.NewValidator().
		Field("document_id", req.DocumentID, common.Required, common.UUID).
		Field("user_id", req.UserID, common.Required).
		Field("message", req.Message, common.Required)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}
	reply, err := s.deps.Chat.Ask(ctx, uuid.MustParse(req.DocumentID), req.UserID, req.Message)
	if err != nil {
		return nil, err
	}
	out := &ChatResponse{Reply: reply.Text}
	if reply.ChatID != uuid.Nil {
		out.ChatID = reply.ChatID.String()
	}
	return out, nil
}

func (s *DocumentService) ListDocuments(ctx context.Context, req *UserRequest) (*ListDocumentsResponse, error) {
	if err := common.ValidateAndReturnError(common.NewValidator().Field("user_id", req.UserID, common.Required)); err != nil {
		return nil, err
	}
	docs, err := s.deps.Documents.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	out := &ListDocumentsResponse{Documents: make([]DocumentSummary, 0, len(docs))}
	for _, d := range docs {
		out.Documents = append(out.Documents, summarize(d))
	}
	return out, nil
}

func (s *DocumentService) GetChat(ctx context.Context, req *UserDocumentRequest) (*GetChatResponse, error) {
	id, err := s.userDocument(req.DocumentID, req.UserID)
	if err != nil {
		return nil, err
	}
	c, msgs, err := s.deps.Chat.History(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}
	out := &GetChatResponse{Messages: make([]MessageView, 0, len(msgs))}
	if c != nil {
		out.ChatID = c.ID.String()
	}
	for _, m := range msgs {
		out.Messages = append(out.Messages, MessageView{
			ID:        m.ID.String(),
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt.Format(time.RFC3339Nano),
		})
	}
	return out, nil
}

func (s *DocumentService) SaveMessage(ctx context.Context, req *SaveMessageRequest) (*SaveMessageResponse, error) {
	id, err := s.userDocument(req.DocumentID, req.UserID)
	if err != nil {
		return nil, err
	}
	v := common.NewValidator().
		Field("role", req.Role, common.Required).
		Field("content", req.Content, common.Required)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}
	m, err := s.deps.Chat.SaveMessage(ctx, id, req.UserID, constants.MessageRole(req.Role), req.Content)
	if err != nil {
		return nil, err
	}
	return &SaveMessageResponse{MessageID: m.ID.String()}, nil
}

// DeleteDocument removes the rows first, then the upload and generated files. File
// removal failures are logged only.
func (s *DocumentService) DeleteDocument(ctx context.Context, req *UserDocumentRequest) (*DeleteDocumentResponse, error) {
	id, err := s.userDocument(req.DocumentID, req.UserID)
	if err != nil {
		return nil, err
	}
	doc, err := s.deps.Documents.DeleteForUser(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}

	paths := append([]string{doc.StoredPath}, s.deps.Artifacts.All(id)...)
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Ctx(ctx).Warn().Err(err).Str("path", p).Msg("delete.file_failed")
		}
	}
	s.logger.Info().
		Str("request_id", common.RequestIDFromContext(ctx)).
		Str("document_id", id.String()).
		Str("user_id", req.UserID).
		Msg("document.deleted")
	return &DeleteDocumentResponse{Success: true}, nil
}

func (s *DocumentService) SubmitFeedback(ctx context.Context, req *SubmitFeedbackRequest) (*SubmitFeedbackResponse, error) {
	v := common.NewValidator().
		Field("user_id", req.UserID, common.Required).
		Field("feedback_text", req.FeedbackText, common.Required, common.MinLength(minFeedbackChars), common.MaxLength(5000))
	if req.Rating != 0 {
		v.Field("rating", req.Rating, common.IntRange(1, 5))
	}
	if req.DocumentID != "" {
		v.Field("document_id", req.DocumentID, common.UUID)
	}
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}

	fb := &entity.Feedback{
		UserID: req.UserID,
		Text:   strings.TrimSpace(req.FeedbackText),
		Type:   strings.TrimSpace(req.FeedbackType),
		Rating: req.Rating,
	}
	if req.DocumentID != "" {
		id := uuid.MustParse(req.DocumentID)
		fb.DocumentID = &id
	}
	row, err := s.deps.Feedback.Create(ctx, fb)
	if err != nil {
		return nil, err
	}
	return &SubmitFeedbackResponse{FeedbackID: row.ID.String()}, nil
}

func (s *DocumentService) ListFeedback(ctx context.Context, req *UserRequest) (*ListFeedbackResponse, error) {
	if err := common.ValidateAndReturnError(common.NewValidator().Field("user_id", req.UserID, common.Required)); err != nil {
		return nil, err
	}
	rows, err := s.deps.Feedback.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	out := &ListFeedbackResponse{Feedback: make([]FeedbackView, 0, len(rows))}
	for _, f := range rows {
		view := FeedbackView{
			ID:           f.ID.String(),
			FeedbackText: f.Text,
			FeedbackType: f.Type,
			Rating:       f.Rating,
			CreatedAt:    f.CreatedAt.Format(time.RFC3339Nano),
		}
		if f.DocumentID != nil {
			view.DocumentID = f.DocumentID.String()
		}
		out.Feedback = append(out.Feedback, view)
	}
	return out, nil
}

func (s *DocumentService) ExportDocument(ctx context.Context, req *DocumentRequest) (*ExportDocumentResponse, error) {
	id, err := parseID("document_id", req.DocumentID)
	if err != nil {
		return nil, err
	}
	xlsx, err := s.deps.Export.DocumentXLSX(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("document_id", req.DocumentID).Msg("export.xlsx.failed")
		return nil, err
	}
	return &ExportDocumentResponse{Xlsx: xlsx}, nil
}

func (s *DocumentService) DownloadTranslation(ctx context.Context, req *DocumentRequest) (*FileResponse, error) {
	id, err := parseID("document_id", req.DocumentID)
	if err != nil {
		return nil, err
	}
	pdf, err := s.deps.Export.TranslationPDF(ctx, id)
	if err != nil {
		return nil, err
	}
	return &FileResponse{
		Filename: "translation_" + id.String() + ".pdf",
		MimeType: "application/pdf",
		Content:  pdf,
	}, nil
}

func (s *DocumentService) userDocument(documentID, userID string) (uuid.UUID, error) {
	v := common.NewValidator().
		Field("document_id", documentID, common.Required, common.UUID).
		Field("user_id", userID, common.Required)
	if err := common.ValidateAndReturnError(v); err != nil {
		return uuid.Nil, err
	}
	return uuid.MustParse(documentID), nil
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, common.InvalidArgumentErrorf("%s must be a UUID", field)
	}
	return id, nil
}

func summarize(d *entity.Document) DocumentSummary {
	return DocumentSummary{
		ID:        d.ID.String(),
		Filename:  d.Filename,
		Kind:      string(d.Kind),
		Language:  string(d.Language),
		PageCount: d.PageCount,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt.Format(time.RFC3339Nano),
	}
}
