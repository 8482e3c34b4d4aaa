package problemgen

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/wizquest/internal/difficulty"
	"github.com/abhisek/wizquest/internal/exercise"
	"github.com/abhisek/wizquest/internal/wordbank"
)

// ErrUnknownMode is returned for a mode no generator serves.
var ErrUnknownMode = errors.New("unknown exercise mode")

// Generator dispatches to the equation or word generator by mode. All
// randomness comes from the single RNG it was built with.
type Generator struct {
	Equations *EquationGenerator
	Words     *WordGenerator
}

// New creates a Generator over catalog. Pass a seeded rng for
// reproducible sequences.
func New(catalog *wordbank.Catalog, rng *rand.Rand, cfg Config) *Generator {
	return &Generator{
		Equations: NewEquationGenerator(rng, cfg),
		Words:     NewWordGenerator(catalog, rng),
	}
}

// Generate produces one exercise for the given params and mode. exclude
// only applies to equations; words are de-duplicated by their tier pool.
// fresh is false when an equation had to repeat an excluded key.
func (g *Generator) Generate(p difficulty.Params, mode exercise.Mode, exclude func(exercise.Key) bool) (ex exercise.Exercise, fresh bool, err error) {
	switch {
	case mode == exercise.ModeMath:
		eq, fresh := g.Equations.Generate(p, exclude)
		return eq, fresh, nil
	case mode.IsWord():
		w, err := g.Words.Generate(p, mode)
		if err != nil {
			return nil, false, err
		}
		return w, true, nil
	default:
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}
