// Package app builds the object graph shared by the server and the CLI.
package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/joseph-ayodele/linguabridge/internal/chat"
	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/export"
	"github.com/joseph-ayodele/linguabridge/internal/llm/openai"
	"github.com/joseph-ayodele/linguabridge/internal/logger"
	"github.com/joseph-ayodele/linguabridge/internal/ocr"
	"github.com/joseph-ayodele/linguabridge/internal/pipeline"
	"github.com/joseph-ayodele/linguabridge/internal/render"
	"github.com/joseph-ayodele/linguabridge/internal/repository"
)

// App holds every long-lived component. Close releases the database.
type App struct {
	Config *common.Config

	DB           *repository.DB
	Documents    repository.DocumentRepository
	Translations repository.TranslationRepository
	Chats        repository.ChatRepository
	Feedback     repository.FeedbackRepository

	OCR       *ocr.Service
	LLM       *openai.Client
	Processor *pipeline.Processor
	Chat      *chat.Service
	Export    *export.Service
}

// LoggerConfig converts the env log settings.
func LoggerConfig(cfg *common.Config) logger.LogConfig {
	return logger.LogConfig{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		TimeFormat: cfg.Log.TimeFormat,
		Output:     cfg.Log.Output,
	}
}

// NewOCR builds the OCR service alone; it needs no database or API key.
func NewOCR(cfg *common.Config, log zerolog.Logger) (*ocr.Service, error) {
	return ocr.NewService(ocr.Config{
		Engine:           cfg.OCR.Engine,
		Tesseract:        cfg.OCR.TesseractBin,
		Pdftoppm:         cfg.OCR.PdftoppmBin,
		TessdataDir:      cfg.OCR.TessdataDir,
		PageDPI:          cfg.OCR.PageDPI,
		DetectDPI:        cfg.OCR.DetectDPI,
		MaxPages:         cfg.OCR.MaxPages,
		ExecTimeout:      cfg.OCR.ExecTimeout,
		HeicConverter:    cfg.OCR.HeicConverter,
		ArtifactCacheDir: cfg.OCR.ArtifactCacheDir,
	}, ocr.Deps{}, log.With().Str("component", "ocr").Logger())
}

// NewLLM builds the OpenAI client used for translation, chat and transcription.
func NewLLM(cfg *common.Config, log zerolog.Logger) *openai.Client {
	return openai.NewClient(openai.Config{
		APIKey:          cfg.LLM.APIKey,
		BaseURL:         cfg.LLM.BaseURL,
		Model:           cfg.LLM.Model,
		Temperature:     cfg.LLM.Temperature,
		MaxTokens:       cfg.LLM.MaxTokens,
		Timeout:         cfg.LLM.Timeout,
		TranscribeModel: cfg.LLM.TranscribeModel,
	}, log.With().Str("component", "llm").Logger())
}

// OpenDB connects, pings and migrates.
func OpenDB(ctx context.Context, cfg *common.Config, log zerolog.Logger) (*repository.DB, error) {
	db, err := repository.Open(ctx, repository.Config{
		Driver:           cfg.Database.Driver,
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, log.With().Str("component", "repository").Logger())
	if err != nil {
		return nil, err
	}
	if err := db.HealthCheck(ctx, cfg.Database.DialTimeout); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	if err := db.Migrate(ctx); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return db, nil
}

// New wires the full stack on top of an open database.
func New(ctx context.Context, cfg *common.Config, log zerolog.Logger) (*App, error) {
	db, err := OpenDB(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	ocrSvc, err := NewOCR(cfg, log)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	client := NewLLM(cfg, log)

	a := &App{
		Config:       cfg,
		DB:           db,
		Documents:    repository.NewDocumentRepository(db, log),
		Translations: repository.NewTranslationRepository(db, log),
		Chats:        repository.NewChatRepository(db, log),
		Feedback:     repository.NewFeedbackRepository(db, log),
		OCR:          ocrSvc,
		LLM:          client,
	}

	english := render.New("")
	a.Processor = pipeline.NewProcessor(pipeline.Deps{
		Documents:    a.Documents,
		Translations: a.Translations,
		OCR:          ocrSvc,
		Translator:   client,
		Transcriber:  client,
		English:      english,
		Native:       render.New(cfg.Storage.NativeFontPath),
	}, cfg.Storage.DataDir, log.With().Str("component", "pipeline").Logger())
	a.Chat = chat.NewService(a.Documents, a.Translations, a.Chats, client, log.With().Str("component", "chat").Logger())
	a.Export = export.NewService(a.Documents, a.Translations, english, log.With().Str("component", "export").Logger())
	return a, nil
}

func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
