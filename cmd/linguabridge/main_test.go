package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/linguabridge/internal/common"
)

func TestStageUpload(t *testing.T) {
	dir := t.TempDir()
	cfg = &common.Config{Storage: common.StorageConfig{UploadDir: filepath.Join(dir, "uploads")}}

	src := filepath.Join(dir, "Letter.PDF")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4"), 0o644))

	up, err := stageUpload("alice", src)
	require.NoError(t, err)
	require.Equal(t, "alice", up.UserID)
	require.Equal(t, "Letter.PDF", up.Filename)
	require.Equal(t, filepath.Join(dir, "uploads", up.ID.String()+".pdf"), up.Path)

	data, err := os.ReadFile(up.Path)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4", string(data))

	_, err = stageUpload("alice", filepath.Join(dir, "notes.txt"))
	require.ErrorIs(t, err, common.ErrUnsupported)
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, processOutput{File: "a.png", Error: "boom"}, false))
	require.Equal(t, "FAILED\ta.png\tboom\n", buf.String())

	buf.Reset()
	require.NoError(t, printResult(&buf, processOutput{File: "a.png", Pages: 1, Status: "READY"}, true))
	require.Contains(t, buf.String(), `"status": "READY"`)
}
