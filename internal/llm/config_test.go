package llm

import (
	"testing"
	"time"
)

func envMap(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestConfigFromEnv(t *testing.T) {
	cfg := configFromLookup(envMap(map[string]string{
		"WIZQUEST_LLM_PROVIDER":       "openrouter",
		"WIZQUEST_OPENROUTER_API_KEY": "sk-or-test",
		"WIZQUEST_OPENROUTER_MODEL":   "openai/gpt-4.1-nano",
		"WIZQUEST_ANTHROPIC_MODEL":    "claude-sonnet",
		"WIZQUEST_LLM_TIMEOUT":        "5s",
		"OPENAI_API_KEY":              "ignored",
	}))

	if cfg.Provider != ProviderOpenRouter {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	if cfg.OpenRouter.APIKey != "sk-or-test" || cfg.OpenRouter.Model != "openai/gpt-4.1-nano" {
		t.Fatalf("openrouter config = %+v", cfg.OpenRouter)
	}
	if cfg.Anthropic.Model != "claude-sonnet" {
		t.Fatalf("anthropic model = %q", cfg.Anthropic.Model)
	}
	if cfg.OpenAI.APIKey != "" {
		t.Fatalf("unprefixed key must not be read, got %q", cfg.OpenAI.APIKey)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg := configFromLookup(envMap(map[string]string{"WIZQUEST_LLM_TIMEOUT": "soon"}))
	def := DefaultConfig()
	if cfg.Provider != def.Provider || cfg.Timeout != def.Timeout {
		t.Fatalf("expected defaults, got provider %q timeout %v", cfg.Provider, cfg.Timeout)
	}
}

func TestDiscoverConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		provider string
		found    bool
	}{
		{"none", map[string]string{}, "", false},
		{"gemini only", map[string]string{"GEMINI_API_KEY": "g"}, ProviderGemini, true},
		{"openrouter only", map[string]string{"OPENROUTER_API_KEY": "o"}, ProviderOpenRouter, true},
		{"anthropic wins", map[string]string{"ANTHROPIC_API_KEY": "a", "OPENAI_API_KEY": "o"}, ProviderAnthropic, true},
		{"openai before gemini", map[string]string{"GEMINI_API_KEY": "g", "OPENAI_API_KEY": "o"}, ProviderOpenAI, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, ok := discoverFromLookup(envMap(tt.env))
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if !ok {
				return
			}
			if cfg.Provider != tt.provider {
				t.Fatalf("provider = %q, want %q", cfg.Provider, tt.provider)
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("discovered config must validate: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: ProviderGemini}, true},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, false},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
