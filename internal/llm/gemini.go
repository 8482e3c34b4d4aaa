package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-lite":  "gemini-2.5-flash-lite",
	"gemini-pro":   "gemini-2.5-pro",
}

type geminiAPI struct {
	client *genai.Client
	model  string
}

// NewGemini returns a Client for the Gemini API.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	model := resolveModel(cfg.Model, geminiModels)
	return &Client{
		name:  ProviderGemini,
		model: model,
		api:   &geminiAPI{client: client, model: model},
	}, nil
}

func (g *geminiAPI) complete(ctx context.Context, req Request) (completion, error) {
	conf := &genai.GenerateContentConfig{MaxOutputTokens: int32(req.MaxTokens)}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		conf.Temperature = &temp
	}
	if req.System != "" {
		conf.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.Schema != nil {
		conf.ResponseMIMEType = "application/json"
		conf.ResponseSchema = geminiSchema(req.Schema.Definition)
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []*genai.Part{{Text: m.Content}}})
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, conf)
	if err != nil {
		var apiErr *genai.APIError
		if errors.As(err, &apiErr) {
			return completion{}, statusError(ProviderGemini, apiErr.Code, nil, err)
		}
		return completion{}, unavailable(ProviderGemini, err)
	}

	out := completion{content: json.RawMessage(result.Text()), model: result.ModelVersion}
	if m := result.UsageMetadata; m != nil {
		out.usage = Usage{
			InputTokens:  int(m.PromptTokenCount),
			OutputTokens: int(m.CandidatesTokenCount),
			TotalTokens:  int(m.TotalTokenCount),
		}
	}
	if len(result.Candidates) > 0 {
		out.truncated = result.Candidates[0].FinishReason == genai.FinishReasonMaxTokens
	}
	return out, nil
}

var geminiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// geminiSchema converts a JSON Schema map into the subset genai accepts.
// Keywords without a genai field, such as additionalProperties, are
// dropped; the reply is still validated against the full definition.
func geminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{}
	for key, v := range def {
		switch key {
		case "type":
			s.Type = genai.TypeString
			if t, ok := geminiTypes[fmt.Sprint(v)]; ok {
				s.Type = t
			}
		case "description":
			s.Description, _ = v.(string)
		case "pattern":
			s.Pattern, _ = v.(string)
		case "minItems":
			s.MinItems = schemaInt(v)
		case "maxItems":
			s.MaxItems = schemaInt(v)
		case "minLength":
			s.MinLength = schemaInt(v)
		case "required":
			s.Required = stringList(v)
		case "enum":
			s.Enum = stringList(v)
		case "items":
			if items, ok := v.(map[string]any); ok {
				s.Items = geminiSchema(items)
			}
		case "properties":
			props, _ := v.(map[string]any)
			s.Properties = make(map[string]*genai.Schema, len(props))
			for name, p := range props {
				if pm, ok := p.(map[string]any); ok {
					s.Properties[name] = geminiSchema(pm)
				}
			}
		}
	}
	return s
}

// stringList accepts both []any (decoded JSON) and []string (Go literals).
func stringList(v any) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func schemaInt(v any) *int64 {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case float64:
		n = int64(x)
	default:
		return nil
	}
	return &n
}
