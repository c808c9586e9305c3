package openai

import (
	"context"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/joseph-ayodele/linguabridge/internal/llm"
)

// Transcribe implements llm.Transcriber. The verbose JSON format carries the detected language.
// Silent audio yields an empty Text and no error.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (llm.Transcript, error) {
	start := time.Now()
	resp, err := c.api.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    c.cfg.TranscribeModel,
		FilePath: audioPath,
		Format:   goopenai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		c.logger.Error().Str("path", audioPath).Err(err).Msg("llm.transcribe.failed")
		return llm.Transcript{}, &llm.UpstreamError{Op: "transcribe", Err: err}
	}
	text := strings.TrimSpace(resp.Text)
	out := llm.Transcript{
		Text:        text,
		Language:    llm.LanguageFromTranscript(resp.Language),
		RawLanguage: resp.Language,
	}
	c.logger.Info().
		Str("path", audioPath).
		Str("language", out.Language.String()).
		Str("raw_language", resp.Language).
		Int("text_len", len(text)).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("llm.transcribe.ok")
	return out, nil
}
