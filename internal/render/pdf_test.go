package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_ProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New("").Render("Hello\n\nSecond paragraph\r\nwith a “quote”", &buf))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRender_NonLatinWithoutFont(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New("/does/not/exist.ttf").Render("नमस्ते संसार", &buf))
	require.NotZero(t, buf.Len())
}

func TestRenderFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.pdf")
	require.NoError(t, New("").RenderFile("", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
