package wordbank

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/wizquest/internal/difficulty"
	"github.com/abhisek/wizquest/internal/llm"
)

// MaxDraftCount bounds the number of entries requested in one call.
const MaxDraftCount = 20

// DraftConfig tunes LLM drafting.
type DraftConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultDraftConfig returns drafting settings that fit MaxDraftCount
// entries in one response.
func DefaultDraftConfig() DraftConfig {
	return DraftConfig{MaxTokens: 4096, Temperature: 0.8}
}

// Rejected is a drafted entry that did not make it into the result.
type Rejected struct {
	Entry  Entry
	Reason string
}

// DraftResult holds the accepted entries and the ones filtered out.
type DraftResult struct {
	Tier     difficulty.Tier
	Accepted []Entry
	Rejected []Rejected
}

// Drafter asks an LLM for new catalog entries and filters them against
// the tier rules and an existing catalog.
type Drafter struct {
	provider llm.Provider
	catalog  *Catalog
	config   DraftConfig
	log      *slog.Logger
}

// NewDrafter creates a Drafter that avoids words already in catalog.
func NewDrafter(provider llm.Provider, catalog *Catalog, cfg DraftConfig, logger *slog.Logger) *Drafter {
	if catalog == nil {
		catalog = &Catalog{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultDraftConfig().MaxTokens
	}
	return &Drafter{provider: provider, catalog: catalog, config: cfg, log: logger}
}

// DraftSchema is the structured output requested from the provider. The
// name carries count because compiled schemas are cached by name.
func DraftSchema(count int) *llm.Schema {
	return &llm.Schema{
		Name:        fmt.Sprintf("word-entries-%d", count),
		Description: "Spelling words for a children's practice game",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"words": map[string]any{
					"type":     "array",
					"items":    EntrySchema(),
					"minItems": 1,
					"maxItems": count,
				},
			},
			"required":             []any{"words"},
			"additionalProperties": false,
		},
	}
}

type draftOutput struct {
	Words []Entry `json:"words"`
}

const draftSystemPrompt = `You write vocabulary for a spelling game played by children aged 6 to 12.
Each entry is a common English word a child would know, with a short definition
that never contains the word itself, a one-word category and a few hints that go
from vague to specific. Hints must not spell the word or contain it.`

// Draft requests count entries for tier t. Entries that break the tier
// rules, repeat a catalog word or repeat each other are rejected.
func (d *Drafter) Draft(ctx context.Context, t difficulty.Tier, count int) (*DraftResult, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tier %d", t)
	}
	if count < 1 || count > MaxDraftCount {
		return nil, fmt.Errorf("count must be between 1 and %d, got %d", MaxDraftCount, count)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeWordDraft)
	req := llm.Ask(draftSystemPrompt, d.userMessage(t, count))
	req.Schema = DraftSchema(count)
	req.MaxTokens = d.config.MaxTokens
	req.Temperature = d.config.Temperature
	resp, err := d.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("draft %s words: %w", t, err)
	}

	var out draftOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse drafted words: %w", err)
	}

	result := &DraftResult{Tier: t}
	seen := make(map[string]bool)
	for _, e := range out.Words {
		e.Word = strings.TrimSpace(e.Word)
		reason := ""
		switch {
		case seen[e.Word]:
			reason = "repeated in response"
		case d.catalog.Contains(e.Word):
			reason = "already in catalog"
		default:
			if err := CheckEntry(t, e); err != nil {
				reason = err.Error()
			}
		}
		seen[e.Word] = true

		if reason != "" {
			result.Rejected = append(result.Rejected, Rejected{Entry: e, Reason: reason})
			continue
		}
		result.Accepted = append(result.Accepted, e)
	}

	d.log.Info("drafted words",
		"tier", t.String(),
		"requested", count,
		"accepted", len(result.Accepted),
		"rejected", len(result.Rejected),
		"model", resp.Model)

	return result, nil
}

func (d *Drafter) userMessage(t difficulty.Tier, count int) string {
	lengths := difficulty.ForTier(t, 1).WordLength

	var b strings.Builder
	fmt.Fprintf(&b, "Write %d new words for the %s tier.\n", count, t.DisplayName())
	fmt.Fprintf(&b, "Every word must have between %d and %d letters, lower-case a-z only.\n", lengths.Min, lengths.Max)

	if existing := d.catalog.Entries(t); len(existing) > 0 {
		b.WriteString("Do not use any of these words: ")
		for i, e := range existing {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.Word)
		}
		b.WriteString(".\n")
	}
	return b.String()
}
