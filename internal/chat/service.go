// Package chat answers questions about one document and keeps the conversation.
package chat

import (
	"context"
	"errors"
	"fmt"
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

// Reply is the assistant's answer and the chat it was recorded in.
type Reply struct {
	Text     string
	ChatID   uuid.UUID // Nil when the exchange could not be stored
	Grounded bool      // false when the apology was returned instead of a model reply
}

type Service struct {
	docs         repository.DocumentRepository
	translations repository.TranslationRepository
	chats        repository.ChatRepository
	responder    llm.ChatResponder
	logger       zerolog.Logger
}

func NewService(
	docs repository.DocumentRepository,
	translations repository.TranslationRepository,
	chats repository.ChatRepository,
	responder llm.ChatResponder,
	logger zerolog.Logger,
) *Service {
	return &Service{docs: docs, translations: translations, chats: chats, responder: responder, logger: logger}
}

// ContextFor builds the grounding text from a document's pages, skipping empty ones.
func ContextFor(pages []*entity.Translation) llm.DocumentContext {
	var native, english []string
	for _, p := range pages {
		if p.OriginalText != "" {
			native = append(native, p.OriginalText)
		}
		if p.TranslatedText != "" {
			english = append(english, p.TranslatedText)
		}
	}
	return llm.DocumentContext{
		NativeText:     strings.Join(native, " "),
		TranslatedText: strings.Join(english, " "),
	}
}

// Ask answers message using the document's text. The model being unavailable is not
// an error: the user gets an apology instead. Both sides of the exchange are stored;
// a storage failure is logged and the reply still returned.
func (s *Service) Ask(ctx context.Context, documentID uuid.UUID, userID, message string) (Reply, error) {
	start := time.Now()
	message = strings.TrimSpace(message)
	if message == "" || userID == "" {
		return Reply{}, fmt.Errorf("user and message are required: %w", common.ErrInvalidInput)
	}
	if _, err := s.docs.Get(ctx, documentID); err != nil {
		return Reply{}, err
	}
	pages, err := s.translations.ListByDocument(ctx, documentID)
	if err != nil {
		return Reply{}, err
	}

	log := s.logger.With().Str("document_id", documentID.String()).Str("user_id", userID).Logger()
	reply := Reply{Text: llm.NoContextReply}
	doc := ContextFor(pages)
	switch {
	case len(pages) == 0 || doc.Empty():
		log.Info().Msg("chat.ask.no_context")
	case s.responder == nil:
		reply.Text = llm.FailureReply
	default:
		text, err := s.responder.Reply(ctx, message, doc)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return Reply{}, err
			}
			log.Warn().Err(err).Msg("chat.ask.llm_failed")
			reply.Text = llm.FailureReply
			break
		}
		reply.Text = text
		reply.Grounded = true
	}

	reply.ChatID = s.record(context.WithoutCancel(ctx), documentID, userID, message, reply.Text, log)
	log.Info().
		Bool("grounded", reply.Grounded).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("chat.ask.ok")
	return reply, nil
}

func (s *Service) record(ctx context.Context, documentID uuid.UUID, userID, question, answer string, log zerolog.Logger) uuid.UUID {
	c, err := s.chats.GetOrCreate(ctx, documentID, userID)
	if err != nil {
		log.Error().Err(err).Msg("chat.save.failed")
		return uuid.Nil
	}
	if _, err := s.chats.InsertMessage(ctx, c.ID, constants.RoleUser, question); err != nil {
		log.Error().Err(err).Msg("chat.save.failed")
		return c.ID
	}
	if _, err := s.chats.InsertMessage(ctx, c.ID, constants.RoleAssistant, answer); err != nil {
		log.Error().Err(err).Msg("chat.save.failed")
	}
	return c.ID
}

// History returns the user's chat about the document. A user who never asked
// anything gets a nil chat and no messages.
func (s *Service) History(ctx context.Context, documentID uuid.UUID, userID string) (*entity.Chat, []*entity.Message, error) {
	c, err := s.chats.FindForUser(ctx, documentID, userID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	msgs, err := s.chats.ListMessages(ctx, c.ID)
	if err != nil {
		return nil, nil, err
	}
	return c, msgs, nil
}

// SaveMessage appends one message to the user's chat about the document.
func (s *Service) SaveMessage(ctx context.Context, documentID uuid.UUID, userID string, role constants.MessageRole, content string) (*entity.Message, error) {
	if userID == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("user and content are required: %w", common.ErrInvalidInput)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("role %q: %w", role, common.ErrInvalidInput)
	}
	if _, err := s.docs.Get(ctx, documentID); err != nil {
		return nil, err
	}
	c, err := s.chats.GetOrCreate(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}
	return s.chats.InsertMessage(ctx, c.ID, role, content)
}
