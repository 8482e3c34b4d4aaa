package difficulty

import "math/rand/v2"

// Round durations in seconds.
const (
	MathRoundSecs = 30
	WordRoundSecs = 45
)

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

// Pick returns a uniformly random value in [Min, Max].
func (r Range) Pick(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.IntN(r.Max-r.Min+1)
}

// Contains reports whether n lies within the range.
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Params bundles the generation parameters for one tier.
type Params struct {
	// Level is the player level these params were resolved from.
	Level int

	Tier Tier

	// Operators is the operator subset drawn from uniformly.
	Operators []Operator

	// Add is the operand range for + and −.
	Add Range

	// Mul is the (smaller) operand range for ×.
	Mul Range

	// Divisor and Quotient build ÷ exercises: operand1 = divisor × quotient.
	Divisor  Range
	Quotient Range

	// Variance bounds the signed offset used to build distractors.
	Variance int

	// WordLength is the expected word length for catalog entries of this tier.
	WordLength Range

	MathRoundSecs int
	WordRoundSecs int
}

// RoundSecs returns the countdown length for a math or word round.
func (p Params) RoundSecs(word bool) int {
	if word {
		return p.WordRoundSecs
	}
	return p.MathRoundSecs
}

// HasOperator reports whether op is part of this tier's operator set.
func (p Params) HasOperator(op Operator) bool {
	for _, o := range p.Operators {
		if o == op {
			return true
		}
	}
	return false
}

var tierParams = map[Tier]Params{
	TierEasy: {
		Operators:  []Operator{OpAdd, OpSub},
		Add:        Range{1, 10},
		Variance:   3,
		WordLength: Range{3, 4},
	},
	TierMedium: {
		Operators:  []Operator{OpAdd, OpSub, OpMul},
		Add:        Range{1, 20},
		Mul:        Range{1, 5},
		Variance:   5,
		WordLength: Range{4, 5},
	},
	TierIntermediate: {
		Operators:  []Operator{OpAdd, OpSub, OpMul, OpDiv},
		Add:        Range{1, 50},
		Mul:        Range{2, 10},
		Divisor:    Range{2, 10},
		Quotient:   Range{1, 10},
		Variance:   8,
		WordLength: Range{5, 7},
	},
	TierDifficult: {
		Operators:  []Operator{OpAdd, OpSub, OpMul, OpDiv},
		Add:        Range{10, 100},
		Mul:        Range{2, 12},
		Divisor:    Range{2, 12},
		Quotient:   Range{2, 12},
		Variance:   10,
		WordLength: Range{6, 9},
	},
	TierExtreme: {
		Operators:  []Operator{OpAdd, OpSub, OpMul, OpDiv},
		Add:        Range{50, 500},
		Mul:        Range{5, 20},
		Divisor:    Range{3, 15},
		Quotient:   Range{3, 20},
		Variance:   15,
		WordLength: Range{8, 14},
	},
}

// Resolve maps a level to its tier and generation parameters. It is total:
// levels below 1 resolve as level 1.
func Resolve(level int) Params {
	if level < 1 {
		level = 1
	}
	return ForTier(TierFor(level), level)
}

// ForTier returns the parameter bundle for a tier, tagged with level.
func ForTier(t Tier, level int) Params {
	base, ok := tierParams[t]
	if !ok {
		base = tierParams[TierExtreme]
		t = TierExtreme
	}
	p := base
	p.Operators = append([]Operator(nil), base.Operators...)
	p.Level = level
	p.Tier = t
	p.MathRoundSecs = MathRoundSecs
	p.WordRoundSecs = WordRoundSecs
	return p
}
