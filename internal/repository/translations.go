package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/joseph-ayodele/linguabridge/internal/entity"
)

type TranslationRepository interface {
	Insert(ctx context.Context, t *entity.Translation) (*entity.Translation, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*entity.Translation, error)
}

type translationRepo struct {
	db     *DB
	logger zerolog.Logger
}

func NewTranslationRepository(db *DB, logger zerolog.Logger) TranslationRepository {
	return &translationRepo{db: db, logger: logger}
}

func (r *translationRepo) Insert(ctx context.Context, t *entity.Translation) (*entity.Translation, error) {
	row := *t
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO translations
		(id, document_id, page_number, original_text, translated_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`),
		row.ID.String(), row.DocumentID.String(), row.PageNumber, row.OriginalText, row.TranslatedText, millis(row.CreatedAt))
	if err != nil {
		r.logger.Error().Err(err).Str("document_id", row.DocumentID.String()).Int("page", row.PageNumber).Msg("failed to insert translation")
		return nil, fmt.Errorf("insert translation: %w", err)
	}
	return &row, nil
}

// ListByDocument returns the document's pages in ascending page order.
func (r *translationRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*entity.Translation, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`SELECT id, document_id, page_number, original_text, translated_text, created_at
		FROM translations WHERE document_id = ? ORDER BY page_number`), documentID.String())
	if err != nil {
		r.logger.Error().Err(err).Str("document_id", documentID.String()).Msg("failed to list translations")
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()

	var out []*entity.Translation
	for rows.Next() {
		var (
			t         entity.Translation
			id, docID string
			created   int64
		)
		if err := rows.Scan(&id, &docID, &t.PageNumber, &t.OriginalText, &t.TranslatedText, &created); err != nil {
			return nil, err
		}
		if t.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if t.DocumentID, err = uuid.Parse(docID); err != nil {
			return nil, err
		}
		t.CreatedAt = fromMillis(created)
		out = append(out, &t)
	}
	return out, rows.Err()
}
