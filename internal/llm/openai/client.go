package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/joseph-ayodele/linguabridge/internal/llm"
)

var (
	_ llm.Translator    = (*Client)(nil)
	_ llm.ChatResponder = (*Client)(nil)
	_ llm.Transcriber   = (*Client)(nil)
)

var errEmptyReply = errors.New("empty reply")

// Translate implements llm.Translator. Models are tried in order until one returns non-empty text.
func (c *Client) Translate(ctx context.Context, req llm.TranslateRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", nil
	}
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info().
		Str("req_id", rid).
		Str("model", c.cfg.Model).
		Str("source", req.Source.String()).
		Int("text_len", len(req.Text)).
		Msg("llm.translate.start")

	messages := []goopenai.ChatCompletionMessage{
		{Role: goopenai.ChatMessageRoleSystem, Content: llm.BuildTranslateSystemPrompt()},
		{Role: goopenai.ChatMessageRoleUser, Content: llm.BuildTranslateUserPrompt(req)},
	}

	var lastErr error
	for _, model := range c.models() {
		content, err := c.complete(ctx, model, messages, true)
		if err != nil {
			lastErr = err
			c.logger.Warn().Str("req_id", rid).Str("model", model).Err(err).Msg("llm.translate.model_failed")
			if !retryable(err) {
				break
			}
			continue
		}
		text, lenient := llm.ParseTranslation(content)
		if text == "" {
			lastErr = fmt.Errorf("model %s: %w", model, errEmptyReply)
			continue
		}
		if lenient {
			c.logger.Warn().Str("req_id", rid).Str("model", model).Msg("llm.translate.lenient_parse_applied")
		}
		c.logger.Info().
			Str("req_id", rid).
			Str("model", model).
			Int("translation_len", len(text)).
			Int64("elapsed_ms", time.Since(start).Milliseconds()).
			Msg("llm.translate.ok")
		return text, nil
	}

	c.logger.Error().Str("req_id", rid).Err(lastErr).Int64("elapsed_ms", time.Since(start).Milliseconds()).Msg("llm.translate.failed")
	return "", &llm.UpstreamError{Op: "translate", Err: lastErr}
}

// Reply implements llm.ChatResponder.
func (c *Client) Reply(ctx context.Context, message string, doc llm.DocumentContext) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	messages := []goopenai.ChatCompletionMessage{
		{Role: goopenai.ChatMessageRoleSystem, Content: llm.BuildChatSystemPrompt(doc)},
		{Role: goopenai.ChatMessageRoleUser, Content: strings.TrimSpace(message)},
	}
	content, err := c.complete(ctx, c.cfg.Model, messages, false)
	if err == nil && strings.TrimSpace(content) == "" {
		err = errEmptyReply
	}
	if err != nil {
		c.logger.Error().Str("req_id", rid).Err(err).Int64("elapsed_ms", time.Since(start).Milliseconds()).Msg("llm.chat.failed")
		return "", &llm.UpstreamError{Op: "chat", Err: err}
	}
	c.logger.Info().
		Str("req_id", rid).
		Int("reply_len", len(content)).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("llm.chat.ok")
	return strings.TrimSpace(content), nil
}

func (c *Client) complete(ctx context.Context, model string, messages []goopenai.ChatCompletionMessage, jsonReply bool) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}
	if jsonReply {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{Type: goopenai.ChatCompletionResponseFormatTypeJSONObject}
	}
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in openai response")
	}
	return resp.Choices[0].Message.Content, nil
}

// retryable is false for failures another model cannot fix.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusUnauthorized {
		return false
	}
	return true
}
