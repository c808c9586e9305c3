package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/linguabridge/internal/app"
	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/logger"
)

var exportCmd = &cobra.Command{
	Use:   "export [document-id]",
	Short: "Write a stored document as an XLSX workbook or an English PDF",
	Example: `  linguabridge export 7a0c5a4e-3a53-4d1b-9f1e-2f4f0d1b8e11 -o letter.xlsx
  linguabridge export 7a0c5a4e-3a53-4d1b-9f1e-2f4f0d1b8e11 --format pdf -o letter.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("format", "xlsx", "xlsx or pdf")
	exportCmd.Flags().StringP("output", "o", "", "Output file path (default: <document-id>.<format>)")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")
	id, err := uuid.Parse(strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("document id must be a UUID: %w", common.ErrInvalidInput)
	}
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	if format != "xlsx" && format != "pdf" {
		return fmt.Errorf("format %q: %w", format, common.ErrInvalidInput)
	}
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		path = id.String() + "." + format
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	a, err := app.New(ctx, cfg, logger.Get())
	if err != nil {
		return err
	}
	defer a.Close()

	var data []byte
	if format == "pdf" {
		data, err = a.Export.TranslationPDF(ctx, id)
	} else {
		data, err = a.Export.DocumentXLSX(ctx, id)
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("document %s has nothing to export: %w", id, err)
		}
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Info().Str("document_id", id.String()).Str("format", format).Str("path", path).Int("bytes", len(data)).Msg("export.ok")
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}
