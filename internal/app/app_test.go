package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/linguabridge/internal/common"
)

func testConfig(t *testing.T) *common.Config {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_URL", filepath.Join(dir, "app.db"))
	t.Setenv("DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("OPENAI_API_KEY", "test-key")
	return common.LoadConfig()
}

func TestNewWiresFullStack(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, cfg.Validate())

	a, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, a.Close()) })

	require.NotNil(t, a.Processor)
	require.NotNil(t, a.Chat)
	require.NotNil(t, a.Export)
	require.Equal(t, cfg.Storage.DataDir, a.Processor.Artifacts().DataDir)

	docs, err := a.Documents.ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestOpenDBRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "mysql"
	_, err := OpenDB(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
}

func TestNewOCRRejectsUnknownEngine(t *testing.T) {
	cfg := testConfig(t)
	cfg.OCR.Engine = "cloud"
	_, err := NewOCR(cfg, zerolog.Nop())
	require.Error(t, err)
}

func TestLoggerConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"
	lc := LoggerConfig(cfg)
	require.Equal(t, "debug", lc.Level)
	require.Equal(t, "json", lc.Format)
}
