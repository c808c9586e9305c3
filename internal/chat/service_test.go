package chat

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/linguabridge/constants"
	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/entity"
	"github.com/joseph-ayodele/linguabridge/internal/llm"
	"github.com/joseph-ayodele/linguabridge/internal/repository"
)

type fakeResponder struct {
	reply string
	err   error
	got   llm.DocumentContext
	calls int
}

func (f *fakeResponder) Reply(_ context.Context, _ string, doc llm.DocumentContext) (string, error) {
	f.calls++
	f.got = doc
	return f.reply, f.err
}

type fixture struct {
	svc   *Service
	docs  repository.DocumentRepository
	pages repository.TranslationRepository
	chats repository.ChatRepository
}

func newFixture(t *testing.T, responder llm.ChatResponder) *fixture {
	t.Helper()
	ctx := context.Background()
	db, err := repository.Open(ctx, repository.Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "chat.db")}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))

	f := &fixture{
		docs:  repository.NewDocumentRepository(db, zerolog.Nop()),
		pages: repository.NewTranslationRepository(db, zerolog.Nop()),
		chats: repository.NewChatRepository(db, zerolog.Nop()),
	}
	f.svc = NewService(f.docs, f.pages, f.chats, responder, zerolog.Nop())
	return f
}

func (f *fixture) document(t *testing.T, pages ...[2]string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	doc, err := f.docs.Create(ctx, &entity.Document{UserID: "u1", Filename: "a.pdf", StoredPath: "a.pdf", Kind: constants.PDF})
	require.NoError(t, err)
	for i, p := range pages {
		_, err := f.pages.Insert(ctx, &entity.Translation{DocumentID: doc.ID, PageNumber: i + 1, OriginalText: p[0], TranslatedText: p[1]})
		require.NoError(t, err)
	}
	return doc.ID
}

func TestContextForSkipsEmptyPages(t *testing.T) {
	got := ContextFor([]*entity.Translation{
		{OriginalText: "क", TranslatedText: "ka"},
		{},
		{OriginalText: "ख", TranslatedText: "kha"},
	})
	require.Equal(t, "क ख", got.NativeText)
	require.Equal(t, "ka kha", got.TranslatedText)
}

func TestAsk_Grounded(t *testing.T) {
	responder := &fakeResponder{reply: "It is a greeting."}
	f := newFixture(t, responder)
	docID := f.document(t, [2]string{"नमस्ते", "Hello"}, [2]string{"", ""})

	reply, err := f.svc.Ask(context.Background(), docID, "u1", "  what is this?  ")
	require.NoError(t, err)
	require.True(t, reply.Grounded)
	require.Equal(t, "It is a greeting.", reply.Text)
	require.Equal(t, "Hello", responder.got.TranslatedText)

	c, msgs, err := f.svc.History(context.Background(), docID, "u1")
	require.NoError(t, err)
	require.Equal(t, reply.ChatID, c.ID)
	require.Len(t, msgs, 2)
	require.Equal(t, constants.RoleUser, msgs[0].Role)
	require.Equal(t, "what is this?", msgs[0].Content)
	require.Equal(t, constants.RoleAssistant, msgs[1].Role)
}

func TestAsk_NoTranslationsApologizes(t *testing.T) {
	responder := &fakeResponder{reply: "unused"}
	f := newFixture(t, responder)
	docID := f.document(t)

	reply, err := f.svc.Ask(context.Background(), docID, "u1", "hello?")
	require.NoError(t, err)
	require.False(t, reply.Grounded)
	require.Equal(t, llm.NoContextReply, reply.Text)
	require.Zero(t, responder.calls)
}

func TestAsk_ModelFailureApologizes(t *testing.T) {
	f := newFixture(t, &fakeResponder{err: &llm.UpstreamError{Op: "chat", Err: errors.New("timeout")}})
	docID := f.document(t, [2]string{"ආයුබෝවන්", "Welcome"})

	reply, err := f.svc.Ask(context.Background(), docID, "u1", "translate again")
	require.NoError(t, err)
	require.Equal(t, llm.FailureReply, reply.Text)

	_, msgs, err := f.svc.History(context.Background(), docID, "u1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, llm.FailureReply, msgs[1].Content)
}

func TestAsk_Validation(t *testing.T) {
	f := newFixture(t, &fakeResponder{})
	_, err := f.svc.Ask(context.Background(), uuid.New(), "u1", "   ")
	require.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = f.svc.Ask(context.Background(), uuid.New(), "u1", "question")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestHistory_NoChat(t *testing.T) {
	f := newFixture(t, nil)
	docID := f.document(t)
	c, msgs, err := f.svc.History(context.Background(), docID, "u1")
	require.NoError(t, err)
	require.Nil(t, c)
	require.Empty(t, msgs)
}

func TestSaveMessage(t *testing.T) {
	f := newFixture(t, nil)
	docID := f.document(t)
	ctx := context.Background()

	m, err := f.svc.SaveMessage(ctx, docID, "u2", constants.RoleAssistant, "saved by client")
	require.NoError(t, err)
	require.Equal(t, 1, m.Position)

	_, err = f.svc.SaveMessage(ctx, docID, "u2", constants.MessageRole("bot"), "x")
	require.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = f.svc.SaveMessage(ctx, docID, "u2", constants.RoleUser, " ")
	require.ErrorIs(t, err, common.ErrInvalidInput)

	_, msgs, err := f.svc.History(ctx, docID, "u2")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
}
