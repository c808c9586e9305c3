package repository

import (
	"context"
	"fmt"
)

// schema is portable between SQLite and Postgres. Timestamps are unix milliseconds.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		filename TEXT NOT NULL,
		stored_path TEXT NOT NULL,
		kind TEXT NOT NULL,
		language TEXT NOT NULL DEFAULT '',
		page_count INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		native_pdf_path TEXT NOT NULL DEFAULT '',
		english_pdf_path TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL DEFAULT '',
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS documents_user_idx ON documents (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS translations (
		id TEXT PRIMARY KEY,
		document_id TEXT NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
		page_number INTEGER NOT NULL,
		original_text TEXT NOT NULL,
		translated_text TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		UNIQUE (document_id, page_number)
	)`,
	`CREATE TABLE IF NOT EXISTS chats (
		id TEXT PRIMARY KEY,
		document_id TEXT NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		UNIQUE (document_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		chat_id TEXT NOT NULL REFERENCES chats (id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS messages_chat_idx ON messages (chat_id, position)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		document_id TEXT REFERENCES documents (id) ON DELETE SET NULL,
		feedback_text TEXT NOT NULL,
		feedback_type TEXT NOT NULL DEFAULT 'general',
		rating INTEGER,
		created_at BIGINT NOT NULL
	)`,
}

// Migrate creates missing tables. Safe to run repeatedly.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.logger.Error().Err(err).Int("statement", i).Msg("migration failed")
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	db.logger.Info().Int("statements", len(schema)).Msg("schema up to date")
	return nil
}
