package llm

// BuildTranslationJSONSchema returns the JSON-Schema the translation reply must satisfy.
// Models in json_object mode often add keys such as source_language; those are allowed.
func BuildTranslationJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"translation": map[string]any{"type": "string"},
		},
		"required": []string{"translation"},
	}
}
