package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const translationSchemaURL = "translation.json"

var translationSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(BuildTranslationJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(translationSchemaURL, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile(translationSchemaURL)
})

// decodeTranslation returns the translation field of a reply that satisfies the
// translation schema.
func decodeTranslation(body []byte) (string, error) {
	schema, err := translationSchema()
	if err != nil {
		return "", fmt.Errorf("compile translation schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return "", fmt.Errorf("unmarshal reply: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return "", fmt.Errorf("reply does not match schema: %w", err)
	}
	obj, _ := v.(map[string]any)
	text, _ := obj["translation"].(string)
	return text, nil
}
