package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/linguabridge/constants"
	"github.com/joseph-ayodele/linguabridge/internal/app"
	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/language"
	"github.com/joseph-ayodele/linguabridge/internal/logger"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract native text from an image or PDF without translating it",
	Long: `Run the multi-configuration OCR search on an image, or on every page of a
PDF, and print the best cleaned text. Nothing is stored and no model is called.`,
	Example: `  # detect the language, then extract
  linguabridge extract letter.pdf

  # force Sinhala and write JSON with the winning configuration per page
  linguabridge extract notice.png --lang sin --json -o out.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

type extractPage struct {
	Page      int    `json:"page"`
	Text      string `json:"text"`
	Languages string `json:"languages,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Quality   int    `json:"quality"`
	Fallback  bool   `json:"fallback"`
	Attempts  int    `json:"attempts"`
	Failures  int    `json:"failures"`
}

type extractOutput struct {
	File     string        `json:"file"`
	Language string        `json:"language"`
	Pages    []extractPage `json:"pages"`
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().String("lang", "", "language code or name (nep, sin, nepali, ...); detected when empty")
	extractCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().Bool("json", false, "Output as JSON")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")
	ctx, cancel := commandContext(cmd)
	defer cancel()

	path := args[0]
	if err := requireFile(path); err != nil {
		return err
	}
	kind, ok := constants.KindForExt(filepath.Ext(path))
	if !ok || kind == constants.AUDIO {
		return fmt.Errorf("%s: %w", path, common.ErrUnsupported)
	}

	svc, err := app.NewOCR(cfg, logger.Get())
	if err != nil {
		return err
	}

	lang := language.Unknown
	if raw, _ := cmd.Flags().GetString("lang"); raw != "" {
		if lang = language.Normalize(raw); lang == language.Unknown {
			return fmt.Errorf("unknown language %q: %w", raw, common.ErrInvalidInput)
		}
	} else {
		lang = svc.DetectDocumentLanguage(ctx, path)
	}

	images := []string{path}
	if kind == constants.PDF {
		tmp, err := os.MkdirTemp("", "linguabridge-extract-*")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmp)
		if images, err = svc.RenderPages(ctx, path, tmp); err != nil {
			return err
		}
	}

	out := extractOutput{File: path, Language: lang.String()}
	for i, img := range images {
		sel, err := svc.Extract(ctx, img, lang)
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		out.Pages = append(out.Pages, extractPage{
			Page:      i + 1,
			Text:      sel.Text,
			Languages: sel.Candidate.Languages,
			Mode:      string(sel.Candidate.Mode),
			Quality:   sel.Score.Quality,
			Fallback:  sel.Fallback,
			Attempts:  sel.Attempts,
			Failures:  sel.Failures,
		})
	}
	log.Info().Str("file", path).Str("language", lang.String()).Int("pages", len(out.Pages)).Msg("extract.ok")

	w, closeOut, err := output(cmd)
	if err != nil {
		return err
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		err = writeJSON(w, out)
	} else {
		texts := make([]string, 0, len(out.Pages))
		for _, p := range out.Pages {
			texts = append(texts, p.Text)
		}
		_, err = fmt.Fprintln(w, strings.Join(texts, "\n\n"))
	}
	return errors.Join(err, closeOut())
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
