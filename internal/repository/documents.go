package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/joseph-ayodele/linguabridge/constants"
	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/entity"
	"github.com/joseph-ayodele/linguabridge/internal/language"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) (*entity.Document, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Document, error)
	UpdateResult(ctx context.Context, doc *entity.Document) error
	DeleteForUser(ctx context.Context, id uuid.UUID, userID string) (*entity.Document, error)
}

type documentRepo struct {
	db     *DB
	logger zerolog.Logger
}

func NewDocumentRepository(db *DB, logger zerolog.Logger) DocumentRepository {
	return &documentRepo{db: db, logger: logger}
}

const documentColumns = `id, user_id, filename, stored_path, kind, language, page_count, status,
	native_pdf_path, english_pdf_path, content_hash, created_at`

// Create inserts doc, filling ID and CreatedAt when unset.
func (r *documentRepo) Create(ctx context.Context, doc *entity.Document) (*entity.Document, error) {
	row := *doc
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.Status == "" {
		row.Status = constants.DocumentStatusProcessing
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		row.ID.String(), row.UserID, row.Filename, row.StoredPath, string(row.Kind), string(row.Language),
		row.PageCount, string(row.Status), row.NativePDFPath, row.EnglishPDFPath, row.ContentHash,
		millis(row.CreatedAt))
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", row.UserID).Str("filename", row.Filename).Msg("failed to create document")
		return nil, fmt.Errorf("create document: %w", err)
	}
	return &row, nil
}

func (r *documentRepo) Get(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT `+documentColumns+` FROM documents WHERE id = ?`), id.String())
	doc, err := scanDocument(row)
	if err != nil {
		return nil, notFound(err, "document "+id.String())
	}
	return doc, nil
}

// ListByUser returns the user's documents, newest first.
func (r *documentRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Document, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`SELECT `+documentColumns+` FROM documents
		WHERE user_id = ? ORDER BY created_at DESC, id`), userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list documents")
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpdateResult stores the outcome of processing: language, pages, status and PDF paths.
func (r *documentRepo) UpdateResult(ctx context.Context, doc *entity.Document) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE documents
		SET language = ?, page_count = ?, status = ?, native_pdf_path = ?, english_pdf_path = ?
		WHERE id = ?`),
		string(doc.Language), doc.PageCount, string(doc.Status), doc.NativePDFPath, doc.EnglishPDFPath, doc.ID.String())
	if err != nil {
		r.logger.Error().Err(err).Str("document_id", doc.ID.String()).Msg("failed to update document")
		return fmt.Errorf("update document: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("document %s: %w", doc.ID, common.ErrNotFound)
	}
	return nil
}

// DeleteForUser removes the document and everything hanging off it. Documents owned by
// another user are reported as not found.
func (r *documentRepo) DeleteForUser(ctx context.Context, id uuid.UUID, userID string) (*entity.Document, error) {
	var deleted *entity.Document
	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, r.db.Rebind(`SELECT `+documentColumns+` FROM documents
			WHERE id = ? AND user_id = ?`), id.String(), userID)
		doc, err := scanDocument(row)
		if err != nil {
			return notFound(err, "document "+id.String())
		}
		stmts := []string{
			`DELETE FROM messages WHERE chat_id IN (SELECT id FROM chats WHERE document_id = ?)`,
			`DELETE FROM chats WHERE document_id = ?`,
			`DELETE FROM translations WHERE document_id = ?`,
			`UPDATE feedback SET document_id = NULL WHERE document_id = ?`,
			`DELETE FROM documents WHERE id = ?`,
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, r.db.Rebind(stmt), id.String()); err != nil {
				return err
			}
		}
		deleted = doc
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Str("document_id", id.String()).Str("user_id", userID).Msg("failed to delete document")
		return nil, err
	}
	return deleted, nil
}

func scanDocument(s rowScanner) (*entity.Document, error) {
	var (
		doc                  entity.Document
		id, kind, lang, stat string
		created              int64
	)
	if err := s.Scan(&id, &doc.UserID, &doc.Filename, &doc.StoredPath, &kind, &lang, &doc.PageCount, &stat,
		&doc.NativePDFPath, &doc.EnglishPDFPath, &doc.ContentHash, &created); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("document id %q: %w", id, err)
	}
	doc.ID = parsed
	doc.Kind = constants.FileKind(kind)
	doc.Language = language.Code(lang)
	doc.Status = constants.DocumentStatus(stat)
	doc.CreatedAt = fromMillis(created)
	return &doc, nil
}
