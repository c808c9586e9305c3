package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/linguabridge/internal/app"
	"github.com/joseph-ayodele/linguabridge/internal/logger"
)

var detectCmd = &cobra.Command{
	Use:   "detect [file]",
	Short: "Guess whether an image or PDF is Nepali or Sinhala",
	Long: `Run the language detection pass on the first page of an image or PDF.
Detection never fails: files without recognizable text report nep.`,
	Example: `  linguabridge detect scan.pdf
  linguabridge detect photo.jpg --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

type detectOutput struct {
	File     string `json:"file"`
	Language string `json:"language"`
	Name     string `json:"name"`
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().Bool("json", false, "Output as JSON")
}

func runDetect(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("detect")
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err := requireFile(args[0]); err != nil {
		return err
	}
	svc, err := app.NewOCR(cfg, logger.Get())
	if err != nil {
		return err
	}

	code := svc.DetectDocumentLanguage(ctx, args[0])
	log.Info().Str("file", args[0]).Str("language", code.String()).Msg("detect.ok")

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), detectOutput{File: args[0], Language: code.String(), Name: code.Name()})
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, code.Name())
	return err
}
