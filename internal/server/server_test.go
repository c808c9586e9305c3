package server

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/joseph-ayodele/linguabridge/internal/chat"
	"github.com/joseph-ayodele/linguabridge/internal/export"
	"github.com/joseph-ayodele/linguabridge/internal/llm"
	"github.com/joseph-ayodele/linguabridge/internal/ocr"
	"github.com/joseph-ayodele/linguabridge/internal/pipeline"
	"github.com/joseph-ayodele/linguabridge/internal/render"
	"github.com/joseph-ayodele/linguabridge/internal/repository"
)

type fixedTranslator struct{}

func (fixedTranslator) Translate(context.Context, llm.TranslateRequest) (string, error) {
	return "Hello world", nil
}

type echoResponder struct{}

func (echoResponder) Reply(_ context.Context, _ string, doc llm.DocumentContext) (string, error) {
	return "About: " + doc.TranslatedText, nil
}

func startServer(t *testing.T) (*Client, *grpc.ClientConn) {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	db, err := repository.Open(ctx, repository.Config{Driver: "sqlite", DSN: filepath.Join(dir, "srv.db")}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))

	engine := ocr.EngineFunc(func(context.Context, string, string, ocr.Mode) (string, error) {
		return "नमस्ते संसार", nil
	})
	ocrSvc, err := ocr.NewService(ocr.Config{}, ocr.Deps{Engine: engine}, zerolog.Nop())
	require.NoError(t, err)

	docs := repository.NewDocumentRepository(db, zerolog.Nop())
	trs := repository.NewTranslationRepository(db, zerolog.Nop())
	chats := repository.NewChatRepository(db, zerolog.Nop())
	fbs := repository.NewFeedbackRepository(db, zerolog.Nop())
	renderer := render.New("")

	proc := pipeline.NewProcessor(pipeline.Deps{
		Documents:    docs,
		Translations: trs,
		OCR:          ocrSvc,
		Translator:   fixedTranslator{},
		English:      renderer,
	}, filepath.Join(dir, "data"), zerolog.Nop())

	svc := NewDocumentService(Deps{
		Processor:    proc,
		Documents:    docs,
		Translations: trs,
		Feedback:     fbs,
		Chat:         chat.NewService(docs, trs, chats, echoResponder{}, zerolog.Nop()),
		Export:       export.NewService(docs, trs, renderer, zerolog.Nop()),
		Artifacts:    proc.Artifacts(),
		UploadDir:    filepath.Join(dir, "uploads"),
	}, zerolog.Nop())

	lis := bufconn.Listen(1 << 20)
	srv, _ := New(svc, zerolog.Nop())
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewClient(conn), conn
}

func TestDocumentLifecycle(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	var header metadata.MD
	up, err := client.UploadDocument(ctx, &UploadDocumentRequest{
		UserID:   "u1",
		Filename: "letter.png",
		Content:  []byte("not really a png"),
	}, grpc.Header(&header))
	require.NoError(t, err)
	require.Equal(t, "nep", up.Language)
	require.Equal(t, 1, up.NumPages)
	require.Equal(t, "png", up.FileExt)
	require.NotEmpty(t, header.Get(requestIDHeader))

	meta, err := client.GetMetadata(ctx, &DocumentRequest{DocumentID: up.DocumentID})
	require.NoError(t, err)
	require.Equal(t, "नमस्ते संसार", meta.NativeText)
	require.Equal(t, "Hello world", meta.TranslatedText)

	file, err := client.GetFile(ctx, &GetFileRequest{DocumentID: up.DocumentID})
	require.NoError(t, err)
	require.Equal(t, []byte("not really a png"), file.Content)
	require.Equal(t, "image/png", file.MimeType)

	reply, err := client.Chat(ctx, &ChatRequest{DocumentID: up.DocumentID, UserID: "u1", Message: "what does it say?"})
	require.NoError(t, err)
	require.Equal(t, "About: Hello world", reply.Reply)

	history, err := client.GetChat(ctx, &UserDocumentRequest{DocumentID: up.DocumentID, UserID: "u1"})
	require.NoError(t, err)
	require.Equal(t, reply.ChatID, history.ChatID)
	require.Len(t, history.Messages, 2)

	_, err = client.SaveMessage(ctx, &SaveMessageRequest{DocumentID: up.DocumentID, UserID: "u1", Role: "assistant", Content: "note"})
	require.NoError(t, err)

	list, err := client.ListDocuments(ctx, &UserRequest{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, list.Documents, 1)
	require.Equal(t, "READY", list.Documents[0].Status)

	xlsx, err := client.ExportDocument(ctx, &DocumentRequest{DocumentID: up.DocumentID})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(xlsx.Xlsx, []byte("PK")))

	pdf, err := client.DownloadTranslation(ctx, &DocumentRequest{DocumentID: up.DocumentID})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf.Content, []byte("%PDF-")))

	del, err := client.DeleteDocument(ctx, &UserDocumentRequest{DocumentID: up.DocumentID, UserID: "u1"})
	require.NoError(t, err)
	require.True(t, del.Success)

	_, err = client.GetMetadata(ctx, &DocumentRequest{DocumentID: up.DocumentID})
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestUploadValidation(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *UploadDocumentRequest
	}{
		{"missing user", &UploadDocumentRequest{Filename: "a.png", Content: []byte("x")}},
		{"missing content", &UploadDocumentRequest{UserID: "u1", Filename: "a.png"}},
		{"bad extension", &UploadDocumentRequest{UserID: "u1", Filename: "a.exe", Content: []byte("x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.UploadDocument(ctx, tt.req)
			require.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestFeedback(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	_, err := client.SubmitFeedback(ctx, &SubmitFeedbackRequest{UserID: "u1", FeedbackText: "too short"})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.SubmitFeedback(ctx, &SubmitFeedbackRequest{UserID: "u1", FeedbackText: "long enough feedback", Rating: 6})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	resp, err := client.SubmitFeedback(ctx, &SubmitFeedbackRequest{UserID: "u1", FeedbackText: "  the translation was great  ", Rating: 5})
	require.NoError(t, err)
	require.NotEmpty(t, resp.FeedbackID)

	list, err := client.ListFeedback(ctx, &UserRequest{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, list.Feedback, 1)
	require.Equal(t, "the translation was great", list.Feedback[0].FeedbackText)
	require.Equal(t, "general", list.Feedback[0].FeedbackType)
}

func TestErrorCodes(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	_, err := client.GetMetadata(ctx, &DocumentRequest{DocumentID: "nope"})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.GetMetadata(ctx, &DocumentRequest{DocumentID: "7a0c5a4e-3a53-4d1b-9f1e-2f4f0d1b8e11"})
	require.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.DeleteDocument(ctx, &UserDocumentRequest{DocumentID: "7a0c5a4e-3a53-4d1b-9f1e-2f4f0d1b8e11", UserID: "u1"})
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestHealth(t *testing.T) {
	_, conn := startServer(t)
	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}
