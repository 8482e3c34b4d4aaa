package exercise

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/wizquest/internal/difficulty"
)

// ChoiceCount is the number of answer choices offered per equation.
const ChoiceCount = 5

// Equation is an arithmetic exercise with multiple-choice answers.
type Equation struct {
	Operand1 int
	Operand2 int
	Operator difficulty.Operator

	// Answer is the correct result. For ÷ it was chosen first and
	// Operand1 derived from it.
	Answer int

	// Choices holds ChoiceCount distinct values, Answer among them.
	Choices []int

	Tier difficulty.Tier
}

var _ Exercise = (*Equation)(nil)

func (e *Equation) Kind() Kind                  { return KindEquation }
func (e *Equation) Key() Key                    { return EquationKey(e.Operand1, e.Operator, e.Operand2) }
func (e *Equation) Difficulty() difficulty.Tier { return e.Tier }
func (e *Equation) Solution() string            { return strconv.Itoa(e.Answer) }
func (e *Equation) exercise()                   {}

// Text renders the equation prompt, e.g. "9 − 4 = ?".
func (e *Equation) Text() string {
	return fmt.Sprintf("%d %s %d = ?", e.Operand1, e.Operator.Symbol(), e.Operand2)
}

// Check parses a typed integer answer. Leading zeros and surrounding
// whitespace are ignored.
func (e *Equation) Check(answer string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return false
	}
	return n == e.Answer
}

// ChoiceIndex returns the position of value in Choices, or -1.
func (e *Equation) ChoiceIndex(value int) int {
	for i, c := range e.Choices {
		if c == value {
			return i
		}
	}
	return -1
}
