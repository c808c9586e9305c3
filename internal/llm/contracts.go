package llm

import (
	"context"

	"github.com/joseph-ayodele/linguabridge/internal/language"
)

// TranslateRequest is one unit of native text to render into English.
type TranslateRequest struct {
	Text   string
	Source language.Code // may be Unknown
}

// Translator is what the document pipeline depends on.
type Translator interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// DocumentContext is the text a chat reply is grounded on.
type DocumentContext struct {
	NativeText     string
	TranslatedText string
}

// Empty reports whether there is nothing to ground a reply on.
func (d DocumentContext) Empty() bool {
	return d.NativeText == "" && d.TranslatedText == ""
}

// ChatResponder answers a user question about one document.
type ChatResponder interface {
	Reply(ctx context.Context, message string, doc DocumentContext) (string, error)
}

// Transcript is the output of speech recognition.
type Transcript struct {
	Text        string
	Language    language.Code // Unknown when the service did not report a supported language
	RawLanguage string
}

// Transcriber turns an audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (Transcript, error)
}
