package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/logger"
)

var version = "0.1.0"

// cfg is loaded by main before any command runs.
var cfg *common.Config

var rootCmd = &cobra.Command{
	Use:   "linguabridge",
	Short: "OCR, translate and export Nepali and Sinhala documents",
	Long: `linguabridge reads scanned documents, photos and voice recordings in
Nepali or Sinhala, extracts the native text, translates it to English and
stores the result.

Configuration comes from the environment (or a .env file): DB_DRIVER, DB_URL,
OPENAI_API_KEY, TESSERACT_BIN, PDFTOPPM_BIN, TESSDATA_PREFIX and friends.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Validate()
	},
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	log := logger.WithComponent("cmd")
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Minute, "overall command timeout")
}

// commandContext is cancelled on SIGINT/SIGTERM or when --timeout elapses.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// output returns the writer selected by --output, defaulting to stdout.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, f.Close, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
