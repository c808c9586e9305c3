package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/linguabridge/internal/entity"
)

// Artifacts names the files generated for a document under the data dir.
type Artifacts struct {
	DataDir string
}

func (a Artifacts) OriginalPDF(id uuid.UUID) string {
	return filepath.Join(a.DataDir, id.String()+"_original.pdf")
}

func (a Artifacts) NativePDF(id uuid.UUID) string {
	return filepath.Join(a.DataDir, id.String()+"_native.pdf")
}

func (a Artifacts) EnglishPDF(id uuid.UUID) string {
	return filepath.Join(a.DataDir, id.String()+"_english.pdf")
}

// All lists every generated path for id, existing or not.
func (a Artifacts) All(id uuid.UUID) []string {
	return []string{a.OriginalPDF(id), a.NativePDF(id), a.EnglishPDF(id)}
}

// JoinNative joins non-empty native page texts with blank lines.
func JoinNative(pages []*entity.Translation) string {
	return joinPages(pages, "\n\n", func(t *entity.Translation) string { return t.OriginalText })
}

// JoinEnglish joins non-empty translated page texts with blank lines.
func JoinEnglish(pages []*entity.Translation) string {
	return joinPages(pages, "\n\n", func(t *entity.Translation) string { return t.TranslatedText })
}

func joinPages(pages []*entity.Translation, sep string, field func(*entity.Translation) string) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if s := field(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
