package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/language"
	"github.com/joseph-ayodele/linguabridge/internal/llm"
)

type fakeAPI struct {
	mu     sync.Mutex
	models []string
	bodies []map[string]any
	reply  func(model string) (int, string)
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		model, _ := body["model"].(string)

		f.mu.Lock()
		f.models = append(f.models, model)
		f.bodies = append(f.bodies, body)
		f.mu.Unlock()

		code, content := f.reply(model)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if code != http.StatusOK {
			_, _ = io.WriteString(w, `{"error":{"message":"`+content+`","type":"invalid_request_error"}}`)
			return
		}
		resp := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})
	mux.HandleFunc("/v1/audio/transcriptions", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "verbose_json", r.FormValue("response_format"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"task":"transcribe","language":"nepali","duration":1.5,"text":" नमस्ते संसार "}`)
	})
	return mux
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "test", BaseURL: srv.URL + "/v1", Model: "gpt-4o-mini"}, zerolog.Nop())
}

func TestTranslateParsesJSONReply(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{reply: func(string) (int, string) {
		return http.StatusOK, `{"translation":"Hello world"}`
	}}
	c := newTestClient(t, api)

	out, err := c.Translate(context.Background(), llm.TranslateRequest{Text: "नमस्ते संसार", Source: language.Nepali})
	require.NoError(t, err)
	require.Equal(t, "Hello world", out)
	require.Equal(t, []string{"gpt-4o-mini"}, api.models)

	body := api.bodies[0]
	require.EqualValues(t, 1200, body["max_tokens"])
	format, _ := body["response_format"].(map[string]any)
	require.Equal(t, "json_object", format["type"])
}

func TestTranslateFallsBackAcrossModels(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{reply: func(model string) (int, string) {
		switch model {
		case "gpt-4o-mini":
			return http.StatusNotFound, "model not found"
		case "gpt-4o":
			return http.StatusOK, ""
		default:
			return http.StatusOK, "```\nGood morning\n```"
		}
	}}
	c := newTestClient(t, api)

	out, err := c.Translate(context.Background(), llm.TranslateRequest{Text: "शुभ प्रभात"})
	require.NoError(t, err)
	require.Equal(t, "Good morning", out)
	require.Equal(t, []string{"gpt-4o-mini", "gpt-4o", "gpt-4o-2024-08-06"}, api.models)
}

func TestTranslateUpstreamFailure(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{reply: func(string) (int, string) { return http.StatusInternalServerError, "boom" }}
	c := newTestClient(t, api)

	_, err := c.Translate(context.Background(), llm.TranslateRequest{Text: "नमस्ते"})
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrUpstream))
	var up *llm.UpstreamError
	require.True(t, errors.As(err, &up))
	require.Equal(t, "translate", up.Op)
	require.Len(t, api.models, 4)
}

func TestTranslateUnauthorizedStopsEarly(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{reply: func(string) (int, string) { return http.StatusUnauthorized, "bad key" }}
	c := newTestClient(t, api)

	_, err := c.Translate(context.Background(), llm.TranslateRequest{Text: "नमस्ते"})
	require.Error(t, err)
	require.Len(t, api.models, 1)
}

func TestTranslateEmptyInputSkipsCall(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{reply: func(string) (int, string) { return http.StatusOK, "x" }}
	c := newTestClient(t, api)

	out, err := c.Translate(context.Background(), llm.TranslateRequest{Text: "  \n"})
	require.NoError(t, err)
	require.Empty(t, out)
	require.Empty(t, api.models)
}

func TestReplyUsesDocumentContext(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{reply: func(string) (int, string) { return http.StatusOK, " The notice is about a holiday. " }}
	c := newTestClient(t, api)

	out, err := c.Reply(context.Background(), "What is this about?", llm.DocumentContext{
		NativeText:     "बिदा सूचना",
		TranslatedText: "Holiday notice",
	})
	require.NoError(t, err)
	require.Equal(t, "The notice is about a holiday.", out)

	msgs := api.bodies[0]["messages"].([]any)
	system := msgs[0].(map[string]any)["content"].(string)
	require.Contains(t, system, "Original text: बिदा सूचना")
	require.Contains(t, system, "English translation: Holiday notice")
	require.Nil(t, api.bodies[0]["response_format"])
}

func TestTranscribe(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	c := newTestClient(t, api)

	path := filepath.Join(t.TempDir(), "clip.mp3")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("\x00", 64)), 0o644))

	tr, err := c.Transcribe(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "नमस्ते संसार", tr.Text)
	require.Equal(t, language.Nepali, tr.Language)
	require.Equal(t, "nepali", tr.RawLanguage)
}
