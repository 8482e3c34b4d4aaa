package problemgen

import (
	"math/rand/v2"

	"github.com/abhisek/wizquest/internal/exercise"
)

// DistractorCount is the number of wrong choices per equation.
const DistractorCount = exercise.ChoiceCount - 1

// Distractors builds DistractorCount unique wrong answers near answer.
// Each candidate is answer plus a non-zero offset in [-variance, variance],
// clamped to at least 1. If the window is too narrow to yield enough
// unique values within maxDraws, the rest are filled with the smallest
// unused integers above answer.
func Distractors(answer, variance, maxDraws int, rng *rand.Rand) []int {
	if variance < 1 {
		variance = 1
	}
	used := map[int]bool{answer: true}
	out := make([]int, 0, DistractorCount)

	for draws := 0; len(out) < DistractorCount && draws < maxDraws; draws++ {
		offset := rng.IntN(2*variance+1) - variance
		if offset == 0 {
			continue
		}
		c := max(answer+offset, 1)
		if used[c] {
			continue
		}
		used[c] = true
		out = append(out, c)
	}

	for c := max(answer+1, 1); len(out) < DistractorCount; c++ {
		if used[c] {
			continue
		}
		used[c] = true
		out = append(out, c)
	}
	return out
}

// Choices merges answer with its distractors and shuffles the result.
func Choices(answer, variance, maxDraws int, rng *rand.Rand) []int {
	choices := append(Distractors(answer, variance, maxDraws, rng), answer)
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}
