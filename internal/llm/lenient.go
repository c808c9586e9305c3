package llm

import "strings"

// ParseTranslation extracts the translation from a model reply. Replies that
// match the schema are decoded; anything else is treated as the plain
// translation after stripping code fences. lenient reports the fallback path.
func ParseTranslation(content string) (text string, lenient bool) {
	content = strings.TrimSpace(content)
	body := stripFences(content)

	if tr, err := decodeTranslation([]byte(body)); err == nil {
		return strings.TrimSpace(tr), false
	}
	return body, true
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// drop an info string such as "json"
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
