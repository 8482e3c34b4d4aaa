package wordbank

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/wizquest/internal/llm"
)

// MaxHints is the maximum number of hints a catalog entry may carry.
const MaxHints = 5

// EntrySchema returns the JSON Schema for a single catalog entry. It is
// also used as the item schema for LLM drafting, so every property is
// required and no extras are allowed.
func EntrySchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"word": map[string]any{
				"type":        "string",
				"description": "A single lower-case English word, letters only",
				"pattern":     "^[a-z]+$",
				"minLength":   2,
			},
			"definition": map[string]any{
				"type":        "string",
				"description": "A short child-friendly definition that does not contain the word",
				"minLength":   1,
			},
			"category": map[string]any{
				"type":        "string",
				"description": "A one-word topic such as animals, food or space",
				"minLength":   1,
			},
			"hints": map[string]any{
				"type":        "array",
				"description": "Short hints ordered from vague to specific",
				"items":       map[string]any{"type": "string", "minLength": 1},
				"minItems":    1,
				"maxItems":    MaxHints,
			},
		},
		"required":             []any{"word", "definition", "category", "hints"},
		"additionalProperties": false,
	}
}

// CatalogSchema returns the JSON Schema for a catalog document.
func CatalogSchema() map[string]any {
	tiers := map[string]any{}
	for _, name := range tierNames() {
		tiers[name] = map[string]any{
			"type":  "array",
			"items": EntrySchema(),
		}
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"version": map[string]any{"type": "integer", "minimum": 1},
			"tiers": map[string]any{
				"type":                 "object",
				"properties":           tiers,
				"additionalProperties": false,
			},
		},
		"required": []any{"version", "tiers"},
	}
}

var compiledCatalogSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return llm.CompileSchema("wordbank-catalog", CatalogSchema())
})

// validateCatalogJSON checks raw against the catalog schema.
func validateCatalogJSON(raw []byte) error {
	schema, err := compiledCatalogSchema()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
