package wordbank

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/abhisek/wizquest/internal/difficulty"
	"github.com/abhisek/wizquest/internal/exercise"
)

// Problem describes a catalog entry that does not fit its tier.
type Problem struct {
	Tier   difficulty.Tier
	Word   string
	Reason string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s/%s: %s", p.Tier, p.Word, p.Reason)
}

// CheckEntry validates a single entry against the rules of tier t.
func CheckEntry(t difficulty.Tier, e Entry) error {
	word := e.Word
	if word == "" {
		return fmt.Errorf("empty word")
	}
	for _, r := range word {
		if r > unicode.MaxASCII || !unicode.IsLower(r) {
			return fmt.Errorf("word must be lower-case letters only")
		}
	}
	lengths := difficulty.ForTier(t, 1).WordLength
	if n := len([]rune(word)); !lengths.Contains(n) {
		return fmt.Errorf("length %d outside %d-%d", n, lengths.Min, lengths.Max)
	}
	if strings.TrimSpace(e.Definition) == "" {
		return fmt.Errorf("missing definition")
	}
	if strings.Contains(strings.ToLower(e.Definition), word) {
		return fmt.Errorf("definition gives the word away")
	}
	if len(e.Hints) == 0 {
		return fmt.Errorf("no hints")
	}
	if len(e.Hints) > MaxHints {
		return fmt.Errorf("more than %d hints", MaxHints)
	}
	return nil
}

// Check returns every entry that breaks the tier rules, plus words that
// appear more than once across the catalog.
func (c *Catalog) Check() []Problem {
	var problems []Problem
	seen := make(map[exercise.Key]difficulty.Tier)
	for _, t := range difficulty.AllTiers() {
		for _, e := range c.tiers[t] {
			if err := CheckEntry(t, e); err != nil {
				problems = append(problems, Problem{Tier: t, Word: e.Word, Reason: err.Error()})
			}
			if prev, dup := seen[e.Key()]; dup {
				problems = append(problems, Problem{
					Tier:   t,
					Word:   e.Word,
					Reason: fmt.Sprintf("duplicate of %s entry", prev),
				})
				continue
			}
			seen[e.Key()] = t
		}
	}
	return problems
}
