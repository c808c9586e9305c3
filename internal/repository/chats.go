package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/joseph-ayodele/linguabridge/constants"
	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/entity"
)

type ChatRepository interface {
	GetOrCreate(ctx context.Context, documentID uuid.UUID, userID string) (*entity.Chat, error)
	FindForUser(ctx context.Context, documentID uuid.UUID, userID string) (*entity.Chat, error)
	InsertMessage(ctx context.Context, chatID uuid.UUID, role constants.MessageRole, content string) (*entity.Message, error)
	ListMessages(ctx context.Context, chatID uuid.UUID) ([]*entity.Message, error)
}

type chatRepo struct {
	db     *DB
	logger zerolog.Logger
}

func NewChatRepository(db *DB, logger zerolog.Logger) ChatRepository {
	return &chatRepo{db: db, logger: logger}
}

// GetOrCreate returns the single chat for (document, user), creating it on first use.
func (r *chatRepo) GetOrCreate(ctx context.Context, documentID uuid.UUID, userID string) (*entity.Chat, error) {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO chats (id, document_id, user_id, created_at)
		VALUES (?, ?, ?, ?) ON CONFLICT (document_id, user_id) DO NOTHING`),
		uuid.NewString(), documentID.String(), userID, millis(time.Now()))
	if err != nil {
		r.logger.Error().Err(err).Str("document_id", documentID.String()).Str("user_id", userID).Msg("failed to create chat")
		return nil, fmt.Errorf("create chat: %w", err)
	}
	return r.FindForUser(ctx, documentID, userID)
}

func (r *chatRepo) FindForUser(ctx context.Context, documentID uuid.UUID, userID string) (*entity.Chat, error) {
	var (
		id      string
		created int64
	)
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT id, created_at FROM chats WHERE document_id = ? AND user_id = ?`),
		documentID.String(), userID).Scan(&id, &created)
	if err != nil {
		return nil, notFound(err, "chat")
	}
	chatID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return &entity.Chat{ID: chatID, DocumentID: documentID, UserID: userID, CreatedAt: fromMillis(created)}, nil
}

// InsertMessage appends a message; position is one past the chat's last message.
func (r *chatRepo) InsertMessage(ctx context.Context, chatID uuid.UUID, role constants.MessageRole, content string) (*entity.Message, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("message role %q: %w", role, common.ErrInvalidInput)
	}
	msg := &entity.Message{ID: uuid.New(), ChatID: chatID, Role: role, Content: content, CreatedAt: time.Now().UTC()}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO messages (id, chat_id, role, content, position, created_at)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM messages WHERE chat_id = ?), ?)`),
		msg.ID.String(), chatID.String(), string(role), content, chatID.String(), millis(msg.CreatedAt))
	if err != nil {
		r.logger.Error().Err(err).Str("chat_id", chatID.String()).Msg("failed to insert message")
		return nil, fmt.Errorf("insert message: %w", err)
	}
	err = r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT position FROM messages WHERE id = ?`), msg.ID.String()).Scan(&msg.Position)
	if err != nil {
		return nil, fmt.Errorf("read message position: %w", err)
	}
	return msg, nil
}

// ListMessages returns the chat's messages in insertion order.
func (r *chatRepo) ListMessages(ctx context.Context, chatID uuid.UUID) ([]*entity.Message, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`SELECT id, role, content, position, created_at
		FROM messages WHERE chat_id = ? ORDER BY position`), chatID.String())
	if err != nil {
		r.logger.Error().Err(err).Str("chat_id", chatID.String()).Msg("failed to list messages")
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []*entity.Message
	for rows.Next() {
		var (
			m        entity.Message
			id, role string
			created  int64
		)
		if err := rows.Scan(&id, &role, &m.Content, &m.Position, &created); err != nil {
			return nil, err
		}
		if m.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		m.ChatID = chatID
		m.Role = constants.MessageRole(role)
		m.CreatedAt = fromMillis(created)
		out = append(out, &m)
	}
	return out, rows.Err()
}
