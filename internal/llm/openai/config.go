package openai

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	goopenai "github.com/sashabaranov/go-openai"
)

// DefaultFallbackModels are tried in order after the configured model fails.
var DefaultFallbackModels = []string{"gpt-4o", "gpt-4o-mini", "gpt-4o-2024-08-06", "gpt-3.5-turbo-0125"}

// Config for the OpenAI client.
type Config struct {
	APIKey          string        // if empty, falls back to env OPENAI_API_KEY
	BaseURL         string        // default https://api.openai.com/v1
	Model           string        // e.g., "gpt-4o-mini"
	FallbackModels  []string      // nil -> DefaultFallbackModels
	Temperature     float32       // 0..2
	MaxTokens       int           // default 1200
	Timeout         time.Duration // http client timeout
	TranscribeModel string        // default whisper-1
}

type Client struct {
	cfg    Config
	api    *goopenai.Client
	logger zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.FallbackModels == nil {
		cfg.FallbackModels = DefaultFallbackModels
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1200
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = goopenai.Whisper1
	}

	oc := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		cfg:    cfg,
		api:    goopenai.NewClientWithConfig(oc),
		logger: logger,
	}
}

// models returns the configured model followed by unique fallbacks.
func (c *Client) models() []string {
	out := []string{c.cfg.Model}
	for _, m := range c.cfg.FallbackModels {
		dup := false
		for _, o := range out {
			if o == m {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, m)
		}
	}
	return out
}
