package llm

import (
	"strings"
	"unicode/utf8"

	"github.com/joseph-ayodele/linguabridge/internal/language"
)

const (
	// MaxTranslateChars bounds the text sent for translation.
	MaxTranslateChars = 16000
	// MaxContextChars bounds each part of the chat document context.
	MaxContextChars = 2000
)

// NoContextReply is returned when a document has no translations to ground a reply.
const NoContextReply = "Sorry, I don't have access to the document content. Please make sure the document was processed successfully."

// FailureReply is returned when the model could not be reached.
const FailureReply = "Sorry, I couldn't generate a response right now. Please try again in a moment."

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for j := range s {
		if i == n {
			return s[:j]
		}
		i++
	}
	return s
}

func BuildTranslateSystemPrompt() string {
	return "You are a translation assistant. Respond with a JSON object of the form " +
		`{"translation": "<english text>"} and nothing else.`
}

// BuildTranslateUserPrompt frames OCR output for translation. The source hint is optional.
func BuildTranslateUserPrompt(req TranslateRequest) string {
	from := "Nepali or Sinhala or both"
	if req.Source.IsLowResource() {
		from = strings.ToUpper(req.Source.Name()[:1]) + req.Source.Name()[1:]
	}
	var b strings.Builder
	b.WriteString("You are an expert translator. Input is text extracted from a scanned document in ")
	b.WriteString(from)
	b.WriteString(". The text may contain OCR noise. Produce a clean English translation preserving meaning. ")
	b.WriteString("Keep paragraph breaks.\n\n---\n\n")
	b.WriteString(Truncate(strings.TrimSpace(req.Text), MaxTranslateChars))
	b.WriteString("\n\n---\n\nTranslate above to English.")
	return b.String()
}

// BuildChatSystemPrompt grounds the assistant on the document, each part capped at MaxContextChars.
func BuildChatSystemPrompt(doc DocumentContext) string {
	parts := []string{
		"You are a helpful assistant answering questions about a document the user uploaded. " +
			"Answer in English using only the document below. If the answer is not in the document, say so briefly.",
	}
	if t := strings.TrimSpace(doc.NativeText); t != "" {
		parts = append(parts, "Original text: "+Truncate(t, MaxContextChars))
	}
	if t := strings.TrimSpace(doc.TranslatedText); t != "" {
		parts = append(parts, "English translation: "+Truncate(t, MaxContextChars))
	}
	return strings.Join(parts, "\n\n")
}

// LanguageFromTranscript maps the speech model's language field onto our codes.
func LanguageFromTranscript(raw string) language.Code {
	return language.Normalize(raw)
}
