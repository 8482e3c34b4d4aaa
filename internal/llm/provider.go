// Package llm drafts structured content with hosted language models. A
// Provider answers one Request with JSON that, when the request names a
// Schema, has already been validated.
package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider generates one structured reply per request.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, e.g. "claude-haiku-4-5".
	ModelID() string

	// Name is the vendor, e.g. "openrouter".
	Name() string
}

// Request is a single prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema switches the vendor to structured output and validates the
	// reply. Without it Content is whatever text came back.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Ask builds a request holding one user message.
func Ask(system, prompt string) Request {
	return Request{System: system, Messages: []Message{{Role: RoleUser, Content: prompt}}}
}

// Role says who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Schema is a named JSON Schema.
type Schema struct {
	// Name is sent to vendors that want one and keys the compiled-schema
	// cache. Use kebab-case, e.g. "word-entries".
	Name        string
	Description string
	Definition  map[string]any
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func (u Usage) withTotal() Usage {
	if u.TotalTokens == 0 {
		u.TotalTokens = u.InputTokens + u.OutputTokens
	}
	return u
}

// completion is one vendor reply before validation.
type completion struct {
	content   json.RawMessage
	usage     Usage
	model     string
	truncated bool
}

// backend sends a single request to a vendor API.
type backend interface {
	complete(ctx context.Context, req Request) (completion, error)
}

// Client is a Provider talking to one vendor API.
type Client struct {
	name  string
	model string
	api   backend
}

var _ Provider = (*Client)(nil)

func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	out, err := c.api.complete(ctx, req)
	if err != nil {
		return nil, err
	}
	if out.model == "" {
		out.model = c.model
	}
	return settle(c.name, req, out)
}

func (c *Client) ModelID() string { return c.model }

func (c *Client) Name() string { return c.name }

// settle turns a completion into a Response. Truncated output fails with
// KindTruncated; with a schema the content must validate.
func settle(provider string, req Request, out completion) (*Response, error) {
	if out.truncated {
		return nil, &Error{Kind: KindTruncated, Provider: provider, Content: out.content}
	}
	if err := req.Schema.Validate(out.content); err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Provider = provider
		}
		return nil, err
	}
	return &Response{
		Content:    out.content,
		Usage:      out.usage.withTotal(),
		Model:      out.model,
		StopReason: StopEnd,
	}, nil
}

// resolveModel maps a friendly model name to a provider model ID.
// Unknown names are used as-is, so direct model IDs work too.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
