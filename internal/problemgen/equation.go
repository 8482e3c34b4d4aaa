package problemgen

import (
	"math/rand/v2"

	"github.com/abhisek/wizquest/internal/difficulty"
	"github.com/abhisek/wizquest/internal/exercise"
)

// EquationGenerator produces arithmetic exercises from an injected RNG.
type EquationGenerator struct {
	rng *rand.Rand
	cfg Config
}

// NewEquationGenerator creates a generator drawing from rng.
func NewEquationGenerator(rng *rand.Rand, cfg Config) *EquationGenerator {
	return &EquationGenerator{rng: rng, cfg: cfg.withDefaults()}
}

// Generate produces an equation for p whose key is not excluded, trying up
// to MaxAttempts times. When every attempt collides the last equation is
// returned with fresh set to false; a repeat is preferred over stalling.
func (g *EquationGenerator) Generate(p difficulty.Params, exclude func(exercise.Key) bool) (eq *exercise.Equation, fresh bool) {
	for range g.cfg.MaxAttempts {
		eq = g.generateOnce(p)
		if exclude == nil || !exclude(eq.Key()) {
			return eq, true
		}
	}
	return eq, false
}

func (g *EquationGenerator) generateOnce(p difficulty.Params) *exercise.Equation {
	op := difficulty.OpAdd
	if len(p.Operators) > 0 {
		op = p.Operators[g.rng.IntN(len(p.Operators))]
	}

	switch op {
	case difficulty.OpDiv:
		return g.build(p, op, p.Divisor.Pick(g.rng), p.Quotient.Pick(g.rng))
	case difficulty.OpMul:
		return g.build(p, op, p.Mul.Pick(g.rng), p.Mul.Pick(g.rng))
	default:
		return g.build(p, op, p.Add.Pick(g.rng), p.Add.Pick(g.rng))
	}
}

// build assembles an equation from two drawn values. For ÷, x is the
// divisor and y the quotient, so operand1 = x × y is exact by construction.
// For −, the operands are swapped when needed so the result is never
// negative.
func (g *EquationGenerator) build(p difficulty.Params, op difficulty.Operator, x, y int) *exercise.Equation {
	eq := &exercise.Equation{Operator: op, Tier: p.Tier}

	switch op {
	case difficulty.OpDiv:
		eq.Operand2 = x
		eq.Answer = y
		eq.Operand1 = x * y
	case difficulty.OpSub:
		if x < y {
			x, y = y, x
		}
		eq.Operand1, eq.Operand2 = x, y
		eq.Answer = op.Apply(x, y)
	default:
		eq.Operand1, eq.Operand2 = x, y
		eq.Answer = op.Apply(x, y)
	}

	eq.Choices = Choices(eq.Answer, p.Variance, g.cfg.MaxDistractorDraws, g.rng)
	return eq
}
