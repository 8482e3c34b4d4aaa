package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// NewProvider builds the configured vendor client and wraps it as
// timeout → retry → recorder → client. A nil recorder skips recording.
// The mock provider is returned bare with an empty script.
func NewProvider(ctx context.Context, cfg Config, rec Recorder, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base *Client
		err  error
	)
	switch cfg.Provider {
	case ProviderMock:
		return NewScripted(), nil
	case ProviderAnthropic:
		base, err = NewAnthropic(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAI(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGemini(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouter(cfg.OpenRouter)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	return Chain(base,
		WithTimeout(cfg.Timeout),
		WithRetry(cfg.Retry, logger),
		WithRecorder(rec, logger),
	), nil
}

// NewProviderFromEnv reads WIZQUEST_* variables and falls back to the
// vendors' own API key variables when none is configured.
func NewProviderFromEnv(ctx context.Context, rec Recorder, logger *slog.Logger) (Provider, error) {
	cfg := ConfigFromEnv()
	if cfg.Validate() != nil {
		if found, ok := DiscoverConfig(); ok {
			found.Timeout = cfg.Timeout
			cfg = found
		}
	}
	return NewProvider(ctx, cfg, rec, logger)
}
