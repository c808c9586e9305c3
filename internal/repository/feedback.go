package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/joseph-ayodele/linguabridge/internal/entity"
)

const DefaultFeedbackType = "general"

type FeedbackRepository interface {
	Create(ctx context.Context, fb *entity.Feedback) (*entity.Feedback, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Feedback, error)
}

type feedbackRepo struct {
	db     *DB
	logger zerolog.Logger
}

func NewFeedbackRepository(db *DB, logger zerolog.Logger) FeedbackRepository {
	return &feedbackRepo{db: db, logger: logger}
}

func (r *feedbackRepo) Create(ctx context.Context, fb *entity.Feedback) (*entity.Feedback, error) {
	row := *fb
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.Type == "" {
		row.Type = DefaultFeedbackType
	}
	var (
		docID  sql.NullString
		rating sql.NullInt64
	)
	if row.DocumentID != nil {
		docID = sql.NullString{String: row.DocumentID.String(), Valid: true}
	}
	if row.Rating > 0 {
		rating = sql.NullInt64{Int64: int64(row.Rating), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO feedback (id, user_id, document_id, feedback_text, feedback_type, rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		row.ID.String(), row.UserID, docID, row.Text, row.Type, rating, millis(row.CreatedAt))
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", row.UserID).Msg("failed to create feedback")
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return &row, nil
}

// ListByUser returns the user's feedback, newest first.
func (r *feedbackRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`SELECT id, document_id, feedback_text, feedback_type, rating, created_at
		FROM feedback WHERE user_id = ? ORDER BY created_at DESC, id`), userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list feedback")
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var out []*entity.Feedback
	for rows.Next() {
		var (
			fb      entity.Feedback
			id      string
			docID   sql.NullString
			rating  sql.NullInt64
			created int64
		)
		if err := rows.Scan(&id, &docID, &fb.Text, &fb.Type, &rating, &created); err != nil {
			return nil, err
		}
		if fb.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if docID.Valid {
			d, err := uuid.Parse(docID.String)
			if err != nil {
				return nil, err
			}
			fb.DocumentID = &d
		}
		fb.Rating = int(rating.Int64)
		fb.UserID = userID
		fb.CreatedAt = fromMillis(created)
		out = append(out, &fb)
	}
	return out, rows.Err()
}
