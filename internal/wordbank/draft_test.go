package wordbank

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wizquest/internal/difficulty"
	"github.com/abhisek/wizquest/internal/llm"
)

func draftResponse(t *testing.T, entries ...Entry) llm.Reply {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"words": entries})
	require.NoError(t, err)
	return llm.Reply{Content: raw}
}

func entry(word string) Entry {
	return Entry{
		Word:       word,
		Definition: "A thing you can find outside.",
		Category:   "things",
		Hints:      []string{"You see it often."},
	}
}

func TestDraft_FiltersEntries(t *testing.T) {
	mock := llm.NewScripted(draftResponse(t,
		entry("kite"),
		entry("cat"),      // already in the catalog
		entry("kite"),     // repeated
		entry("elephant"), // too long for easy
		Entry{Word: "jam", Definition: "jam on toast", Category: "food", Hints: []string{"sticky"}},
		entry("owl"),
	))
	d := NewDrafter(mock, Default(), DefaultDraftConfig(), nil)

	res, err := d.Draft(context.Background(), difficulty.TierEasy, 6)
	require.NoError(t, err)

	var accepted []string
	for _, e := range res.Accepted {
		accepted = append(accepted, e.Word)
	}
	assert.Equal(t, []string{"kite", "owl"}, accepted)

	reasons := map[string]string{}
	for _, r := range res.Rejected {
		reasons[r.Entry.Word] = r.Reason
	}
	assert.Equal(t, "already in catalog", reasons["cat"])
	assert.Equal(t, "repeated in response", reasons["kite"])
	assert.Contains(t, reasons["elephant"], "length 8")
	assert.Equal(t, "definition gives the word away", reasons["jam"])
}

func TestDraft_Request(t *testing.T) {
	mock := llm.NewScripted(draftResponse(t, entry("kite")))
	d := NewDrafter(mock, Default(), DraftConfig{Temperature: 0.5}, nil)

	_, err := d.Draft(context.Background(), difficulty.TierEasy, 3)
	require.NoError(t, err)
	reqs := mock.Requests()
	require.Len(t, reqs, 1)

	req := reqs[0]
	assert.Equal(t, "word-entries-3", req.Schema.Name)
	assert.Equal(t, DefaultDraftConfig().MaxTokens, req.MaxTokens)
	assert.Equal(t, 0.5, req.Temperature)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "Write 3 new words for the Easy tier.")
	assert.Contains(t, req.Messages[0].Content, "between 3 and 4 letters")
	assert.Contains(t, req.Messages[0].Content, "cat, dog, sun")
}

func TestDraft_SchemaViolationIsError(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{
		Content: json.RawMessage(`{"words":[{"word":"Kite","definition":"x","category":"toys","hints":["a"]}]}`),
	})
	d := NewDrafter(mock, nil, DefaultDraftConfig(), nil)

	_, err := d.Draft(context.Background(), difficulty.TierEasy, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestDraft_ProviderError(t *testing.T) {
	d := NewDrafter(llm.NewScripted(), nil, DefaultDraftConfig(), nil)
	_, err := d.Draft(context.Background(), difficulty.TierMedium, 2)
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}

func TestDraft_ArgumentChecks(t *testing.T) {
	mock := llm.NewScripted()
	d := NewDrafter(mock, nil, DefaultDraftConfig(), nil)

	_, err := d.Draft(context.Background(), difficulty.Tier(42), 1)
	assert.Error(t, err)
	_, err = d.Draft(context.Background(), difficulty.TierEasy, 0)
	assert.Error(t, err)
	_, err = d.Draft(context.Background(), difficulty.TierEasy, MaxDraftCount+1)
	assert.Error(t, err)
	assert.Empty(t, mock.Requests())
}

func TestDraft_MergeIntoCatalog(t *testing.T) {
	mock := llm.NewScripted(draftResponse(t, entry("kite"), entry("owl")))
	base := Default()
	d := NewDrafter(mock, base, DefaultDraftConfig(), nil)

	res, err := d.Draft(context.Background(), difficulty.TierEasy, 2)
	require.NoError(t, err)

	merged := base.Add(res.Tier, res.Accepted...)
	assert.Equal(t, base.Len(difficulty.TierEasy)+2, merged.Len(difficulty.TierEasy))
	assert.Empty(t, merged.Check())
}
