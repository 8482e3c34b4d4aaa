package exercise

import (
	"fmt"
	"strings"

	"github.com/abhisek/wizquest/internal/difficulty"
)

// Kind discriminates the Exercise variants.
type Kind int

const (
	KindEquation Kind = iota
	KindWord
)

func (k Kind) String() string {
	switch k {
	case KindEquation:
		return "equation"
	case KindWord:
		return "word"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Key is the canonical value used to detect repetition: the
// operand/operator triple for equations, the normalized word for words.
type Key string

// EquationKey builds the canonical key for operand1 <op> operand2.
func EquationKey(a int, op difficulty.Operator, b int) Key {
	return Key(fmt.Sprintf("%d%s%d", a, op, b))
}

// WordKey builds the canonical key for a vocabulary word.
func WordKey(word string) Key {
	return Key(NormalizeWord(word))
}

// NormalizeWord trims and lower-cases a word or typed answer.
func NormalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Exercise is one generated item: either an *Equation or a *Word.
// The set of implementations is closed.
type Exercise interface {
	Kind() Kind

	// Key returns the canonical repeat-avoidance key.
	Key() Key

	// Difficulty returns the tier the exercise was generated for.
	Difficulty() difficulty.Tier

	// Check reports whether a non-empty, typed answer is correct.
	Check(answer string) bool

	// Solution returns the correct answer as displayed to the player.
	Solution() string

	exercise()
}
