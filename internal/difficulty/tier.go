package difficulty

import (
	"fmt"
	"strings"
)

// Tier represents a difficulty band derived from the player's level.
type Tier int

const (
	TierEasy         Tier = iota // Levels 1-5
	TierMedium                   // Levels 6-10
	TierIntermediate             // Levels 11-15
	TierDifficult                // Levels 16-20
	TierExtreme                  // Levels 21+
)

// Upper level bound (inclusive) for every tier below Extreme.
var tierThresholds = []struct {
	maxLevel int
	tier     Tier
}{
	{5, TierEasy},
	{10, TierMedium},
	{15, TierIntermediate},
	{20, TierDifficult},
}

// AllTiers returns all tiers from easiest to hardest.
func AllTiers() []Tier {
	return []Tier{TierEasy, TierMedium, TierIntermediate, TierDifficult, TierExtreme}
}

// TierFor maps a level to its tier. Levels below 1 are treated as level 1.
func TierFor(level int) Tier {
	for _, th := range tierThresholds {
		if level <= th.maxLevel {
			return th.tier
		}
	}
	return TierExtreme
}

// String returns the lower-case tier name used in catalogs and events.
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierIntermediate:
		return "intermediate"
	case TierDifficult:
		return "difficult"
	case TierExtreme:
		return "extreme"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	s := t.String()
	if !t.Valid() {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Valid reports whether t is one of the five known tiers.
func (t Tier) Valid() bool {
	return t >= TierEasy && t <= TierExtreme
}

// ParseTier parses a tier name (case-insensitive).
func ParseTier(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range AllTiers() {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}
