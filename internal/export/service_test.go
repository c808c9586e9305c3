package export

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/linguabridge/constants"
	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/entity"
	"github.com/joseph-ayodele/linguabridge/internal/language"
	"github.com/joseph-ayodele/linguabridge/internal/render"
	"github.com/joseph-ayodele/linguabridge/internal/repository"
)

func setup(t *testing.T) (*Service, repository.DocumentRepository, repository.TranslationRepository) {
	t.Helper()
	ctx := context.Background()
	db, err := repository.Open(ctx, repository.Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "x.db")}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))

	docs := repository.NewDocumentRepository(db, zerolog.Nop())
	trs := repository.NewTranslationRepository(db, zerolog.Nop())
	return NewService(docs, trs, render.New(""), zerolog.Nop()), docs, trs
}

func seed(t *testing.T, docs repository.DocumentRepository, trs repository.TranslationRepository, pages ...[2]string) *entity.Document {
	t.Helper()
	ctx := context.Background()
	doc, err := docs.Create(ctx, &entity.Document{
		UserID: "u1", Filename: "letter.pdf", StoredPath: "letter.pdf",
		Kind: constants.PDF, Language: language.Nepali, PageCount: len(pages),
	})
	require.NoError(t, err)
	for i, p := range pages {
		_, err := trs.Insert(ctx, &entity.Translation{DocumentID: doc.ID, PageNumber: i + 1, OriginalText: p[0], TranslatedText: p[1]})
		require.NoError(t, err)
	}
	return doc
}

func TestDocumentXLSX(t *testing.T) {
	svc, docs, trs := setup(t)
	doc := seed(t, docs, trs, [2]string{"नमस्ते", "Hello"}, [2]string{"", ""}, [2]string{"धन्यवाद", "Thank you"})

	data, err := svc.DocumentXLSX(context.Background(), doc.ID)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(pagesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, []string{"Page", "Native Text", "English Translation"}, rows[0])
	require.Equal(t, []string{"1", "नमस्ते", "Hello"}, rows[1])
	require.Equal(t, "2", rows[2][0])
	require.Equal(t, []string{"3", "धन्यवाद", "Thank you"}, rows[3])

	lang, err := f.GetCellValue(documentSheet, "B4")
	require.NoError(t, err)
	require.Equal(t, "nepali", lang)
}

func TestDocumentXLSX_NotFound(t *testing.T) {
	svc, _, _ := setup(t)
	_, err := svc.DocumentXLSX(context.Background(), uuid.New())
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestTranslationPDF(t *testing.T) {
	svc, docs, trs := setup(t)
	doc := seed(t, docs, trs, [2]string{"a", "First page"}, [2]string{"b", "Second page"})

	data, err := svc.TranslationPDF(context.Background(), doc.ID)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	empty := seed(t, docs, trs, [2]string{"", ""})
	_, err = svc.TranslationPDF(context.Background(), empty.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 5))
	got := truncate(strings.Repeat("क", 10), 4)
	require.Equal(t, "ककक…", got)
}
