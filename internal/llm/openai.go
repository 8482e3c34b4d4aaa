package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"gpt-mini": "gpt-4.1-mini",
	"gpt-nano": "gpt-4.1-nano",
}

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// chatAPI speaks the OpenAI chat completions protocol, which OpenRouter
// also serves.
type chatAPI struct {
	client *openai.Client
	name   string
	model  string
}

// NewOpenAI returns a Client for OpenAI or any compatible endpoint set
// through BaseURL. Friendly model names are resolved.
func NewOpenAI(cfg OpenAIConfig) (*Client, error) {
	return newChatClient(ProviderOpenAI, cfg.APIKey, resolveModel(cfg.Model, openaiModels), cfg.BaseURL)
}

// NewOpenRouter returns a Client for OpenRouter. Model IDs such as
// "google/gemini-2.5-flash" are passed through unchanged.
func NewOpenRouter(cfg OpenRouterConfig) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return newChatClient(ProviderOpenRouter, cfg.APIKey, cfg.Model, baseURL)
}

func newChatClient(name, apiKey, model, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: API key is required", name)
	}
	conf := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		conf.BaseURL = baseURL
	}
	return &Client{
		name:  name,
		model: model,
		api:   &chatAPI{client: openai.NewClientWithConfig(conf), name: name, model: model},
	}, nil
}

func (c *chatAPI) complete(ctx context.Context, req Request) (completion, error) {
	chat := openai.ChatCompletionRequest{
		Model:               c.model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.System != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return completion{}, fmt.Errorf("marshal schema %q: %w", req.Schema.Name, err)
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(def),
				Strict: true,
			},
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return completion{}, c.classify(err)
	}
	if len(resp.Choices) == 0 {
		return completion{}, invalidOutput(c.name, nil, errors.New("reply has no choices"))
	}

	choice := resp.Choices[0]
	return completion{
		content:   json.RawMessage(choice.Message.Content),
		model:     resp.Model,
		truncated: choice.FinishReason == openai.FinishReasonLength,
		usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (c *chatAPI) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(c.name, apiErr.HTTPStatusCode, nil, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(c.name, reqErr.HTTPStatusCode, nil, err)
	}
	return unavailable(c.name, err)
}
