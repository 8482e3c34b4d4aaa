package wordbank

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wizquest/internal/difficulty"
)

func TestDefault_EveryTierPopulated(t *testing.T) {
	c := Default()
	for _, tier := range difficulty.AllTiers() {
		assert.GreaterOrEqual(t, c.Len(tier), 10, "tier %s", tier)
	}
	assert.Equal(t, 75, c.Total())
}

func TestDefault_PassesCheck(t *testing.T) {
	problems := Default().Check()
	for _, p := range problems {
		t.Errorf("embedded catalog problem: %s", p)
	}
}

func TestParse_RejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"version": 1,`},
		{"missing tiers", `{"version": 1}`},
		{"unknown tier", `{"version": 1, "tiers": {"legendary": []}}`},
		{"upper-case word", `{"version": 1, "tiers": {"easy": [
			{"word": "Cat", "definition": "a pet", "category": "animals", "hints": ["meow"]}]}}`},
		{"missing hints", `{"version": 1, "tiers": {"easy": [
			{"word": "cat", "definition": "a pet", "category": "animals"}]}}`},
		{"extra field", `{"version": 1, "tiers": {"easy": [
			{"word": "cat", "definition": "a pet", "category": "animals", "hints": ["meow"], "emoji": "x"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	c := Default()
	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	for _, tier := range difficulty.AllTiers() {
		assert.Equal(t, c.Entries(tier), loaded.Entries(tier))
	}
}

func TestMerge_SkipsDuplicates(t *testing.T) {
	c := Default()
	extra, err := Load(strings.NewReader(`{"version": 1, "tiers": {"easy": [
		{"word": "cat", "definition": "dup", "category": "animals", "hints": ["x"]},
		{"word": "owl", "definition": "A night bird that hoots", "category": "animals", "hints": ["hoot"]},
		{"word": "owl", "definition": "again", "category": "animals", "hints": ["hoot"]}
	]}}`))
	require.NoError(t, err)

	merged := c.Merge(extra)
	assert.Equal(t, c.Len(difficulty.TierEasy)+1, merged.Len(difficulty.TierEasy))
	assert.True(t, merged.Contains("OWL"))
	assert.False(t, c.Contains("owl"), "receiver must not change")
}

func TestEntry_EmptyTier(t *testing.T) {
	c := &Catalog{tiers: nil}
	_, err := c.Entry(difficulty.TierEasy, 0)
	assert.True(t, errors.Is(err, ErrEmptyTier))
}

func TestCheckEntry(t *testing.T) {
	good := Entry{Word: "owl", Definition: "A night bird that hoots", Category: "animals", Hints: []string{"hoot"}}
	require.NoError(t, CheckEntry(difficulty.TierEasy, good))

	tooLong := good
	tooLong.Word = "elephant"
	assert.Error(t, CheckEntry(difficulty.TierEasy, tooLong))

	giveaway := good
	giveaway.Definition = "An owl is a bird"
	assert.Error(t, CheckEntry(difficulty.TierEasy, giveaway))

	digits := good
	digits.Word = "ow1"
	assert.Error(t, CheckEntry(difficulty.TierEasy, digits))

	noHints := good
	noHints.Hints = nil
	assert.Error(t, CheckEntry(difficulty.TierEasy, noHints))
}
