package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/linguabridge/constants"
	"github.com/joseph-ayodele/linguabridge/internal/app"
	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/logger"
	"github.com/joseph-ayodele/linguabridge/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process [file...]",
	Short: "OCR or transcribe, translate and store documents one after another",
	Long: `Run the full document pipeline on each file: the upload is copied into
UPLOAD_DIR, text is extracted page by page (or transcribed for audio),
translated to English and stored. Requires OPENAI_API_KEY.`,
	Example: `  linguabridge process letter.pdf voice.m4a --user alice`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runProcess,
}

type processOutput struct {
	File       string `json:"file"`
	DocumentID string `json:"document_id,omitempty"`
	Language   string `json:"language,omitempty"`
	Pages      int    `json:"pages"`
	Status     string `json:"status,omitempty"`
	EnglishPDF string `json:"english_pdf,omitempty"`
	Error      string `json:"error,omitempty"`
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().String("user", "cli", "user id the documents belong to")
	processCmd.Flags().Bool("json", false, "Output as JSON lines")
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("process")
	if err := cfg.RequireLLM(); err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	a, err := app.New(ctx, cfg, logger.Get())
	if err != nil {
		return err
	}
	defer a.Close()

	user, _ := cmd.Flags().GetString("user")
	asJSON, _ := cmd.Flags().GetBool("json")

	var failed int
	for _, path := range args {
		res, err := ingestFile(ctx, a.Processor, user, path)
		out := summarizeResult(path, res, err)
		if err != nil {
			failed++
			log.Error().Err(err).Str("file", path).Msg("process.failed")
		}
		if werr := printResult(cmd.OutOrStdout(), out, asJSON); werr != nil {
			return werr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

// stageUpload copies path into the upload directory under a fresh id, the way the
// server stores uploads.
func stageUpload(user, path string) (pipeline.Upload, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	if _, ok := constants.KindForExt(ext); !ok {
		return pipeline.Upload{}, fmt.Errorf("%s: %w", path, common.ErrUnsupported)
	}
	id := uuid.New()
	dst := filepath.Join(cfg.Storage.UploadDir, id.String()+"."+ext)
	if err := os.MkdirAll(cfg.Storage.UploadDir, 0o755); err != nil {
		return pipeline.Upload{}, err
	}
	if err := copyInto(path, dst); err != nil {
		return pipeline.Upload{}, fmt.Errorf("stage %s: %w", path, err)
	}
	return pipeline.Upload{ID: id, UserID: user, Filename: filepath.Base(path), Path: dst}, nil
}

func ingestFile(ctx context.Context, proc *pipeline.Processor, user, path string) (*pipeline.Result, error) {
	up, err := stageUpload(user, path)
	if err != nil {
		return nil, err
	}
	return proc.Ingest(ctx, up)
}

func copyInto(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, out.Close()) }()
	_, err = io.Copy(out, in)
	return err
}

func summarizeResult(path string, res *pipeline.Result, err error) processOutput {
	out := processOutput{File: path}
	if res != nil && res.Document != nil {
		doc := res.Document
		out.DocumentID = doc.ID.String()
		out.Language = doc.Language.String()
		out.Pages = doc.PageCount
		out.Status = string(doc.Status)
		out.EnglishPDF = doc.EnglishPDFPath
	}
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

func printResult(w io.Writer, out processOutput, asJSON bool) error {
	if asJSON {
		return writeJSON(w, out)
	}
	if out.Error != "" {
		_, err := fmt.Fprintf(w, "FAILED\t%s\t%s\n", out.File, out.Error)
		return err
	}
	_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d page(s)\t%s\n", out.Status, out.File, out.Language, out.Pages, out.DocumentID)
	return err
}
