package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordSchema() *Schema {
	return &Schema{
		Name:        "validate-word",
		Description: "One vocabulary word",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"word":  map[string]any{"type": "string", "pattern": "^[a-z]+$"},
				"tier":  map[string]any{"type": "string", "enum": []any{"easy", "medium"}},
				"hints": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "maxItems": 2},
			},
			"required":             []any{"word"},
			"additionalProperties": false,
		},
	}
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"complete", `{"word":"cat","tier":"easy","hints":["purrs"]}`, ""},
		{"optional fields omitted", `{"word":"dog"}`, ""},
		{"missing required", `{"tier":"easy"}`, "does not match schema"},
		{"pattern", `{"word":"Cat"}`, "does not match schema"},
		{"enum", `{"word":"cat","tier":"hard"}`, "does not match schema"},
		{"too many hints", `{"word":"cat","hints":["a","b","c"]}`, "does not match schema"},
		{"extra property", `{"word":"cat","emoji":"🐱"}`, "does not match schema"},
		{"not JSON", `{"word":`, "invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wordSchema().Validate(json.RawMessage(tt.raw))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var invalid *Error
			require.ErrorAs(t, err, &invalid)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, tt.raw, string(invalid.Content))
		})
	}
}

func TestSchemaValidate_NilAcceptsAnything(t *testing.T) {
	var s *Schema
	assert.NoError(t, s.Validate(json.RawMessage(`not json at all`)))
}

func TestSchemaValidate_CachedByName(t *testing.T) {
	s := wordSchema()
	s.Name = "validate-cache"
	require.NoError(t, s.Validate(json.RawMessage(`{"word":"sun"}`)))

	cached, ok := compiledSchemas.Load("validate-cache")
	require.True(t, ok)

	require.NoError(t, s.Validate(json.RawMessage(`{"word":"hat"}`)))
	again, _ := compiledSchemas.Load("validate-cache")
	assert.Same(t, cached, again)
}

func TestCompileSchema_Invalid(t *testing.T) {
	_, err := CompileSchema("broken", map[string]any{"type": 42})
	assert.Error(t, err)
}
