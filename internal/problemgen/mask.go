package problemgen

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/abhisek/wizquest/internal/exercise"
)

// BlankCount returns how many letters of an n-letter word are hidden:
// max(2, floor(0.4·n)), never more than the n-1 interior letters.
func BlankCount(n int) int {
	if n < 2 {
		return 0
	}
	return min(max(2, 2*n/5), n-1)
}

// Mask hides BlankCount interior letters of word, chosen at random
// without replacement. The first letter is always shown.
func Mask(word string, rng *rand.Rand) exercise.Masked {
	runes := []rune(word)
	count := BlankCount(len(runes))

	var positions []int
	if count > 0 {
		perm := rng.Perm(len(runes) - 1)[:count]
		for _, p := range perm {
			positions = append(positions, p+1)
		}
		slices.Sort(positions)
	}

	return exercise.Masked{
		Positions: positions,
		Text:      renderMasked(runes, positions),
	}
}

func renderMasked(runes []rune, positions []int) string {
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	for _, p := range positions {
		parts[p] = exercise.BlankMarker
	}
	return strings.Join(parts, " ")
}
