// Package render turns plain text into simple paginated PDFs.
package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const (
	fontSize   = 14
	lineHeight = 10
	nativeFont = "native"
)

// Renderer writes A4 text PDFs. With FontPath set, a UTF-8 TrueType font is embedded so
// Devanagari and Sinhala survive; otherwise the core Helvetica font is used and characters
// outside Windows-1252 are replaced.
type Renderer struct {
	FontPath string
}

func New(fontPath string) *Renderer {
	return &Renderer{FontPath: fontPath}
}

// Render writes text to w, one MultiCell per line. Blank lines are kept as spacing.
func (r *Renderer) Render(text string, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	utf8 := r.useUTF8Font()
	if utf8 {
		pdf.AddUTF8Font(nativeFont, "", r.FontPath)
		pdf.SetFont(nativeFont, "", fontSize)
	} else {
		pdf.SetFont("Helvetica", "", fontSize)
	}
	if pdf.Err() {
		return fmt.Errorf("load font: %w", pdf.Error())
	}

	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	usable := pageW - left - right

	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	for _, line := range strings.Split(normalizeNewlines(text), "\n") {
		if strings.TrimSpace(line) == "" {
			line = " "
		}
		if !utf8 {
			encoded, err := enc.String(line)
			if err != nil {
				return fmt.Errorf("encode line: %w", err)
			}
			line = encoded
		}
		pdf.MultiCell(usable, lineHeight, line, "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	return nil
}

// RenderFile renders text into path, creating parent directories.
func (r *Renderer) RenderFile(text, path string) error {
	var buf bytes.Buffer
	if err := r.Render(text, &buf); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func (r *Renderer) useUTF8Font() bool {
	if r.FontPath == "" {
		return false
	}
	st, err := os.Stat(r.FontPath)
	return err == nil && !st.IsDir()
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
