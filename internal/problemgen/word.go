package problemgen

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/abhisek/wizquest/internal/difficulty"
	"github.com/abhisek/wizquest/internal/exercise"
	"github.com/abhisek/wizquest/internal/pool"
	"github.com/abhisek/wizquest/internal/wordbank"
)

// WordGenerator serves vocabulary exercises from the catalog, one
// non-repeating pool per tier.
type WordGenerator struct {
	catalog *wordbank.Catalog
	rng     *rand.Rand
	pools   map[difficulty.Tier]*pool.Pool[int]
}

// NewWordGenerator creates a generator over catalog drawing from rng.
func NewWordGenerator(catalog *wordbank.Catalog, rng *rand.Rand) *WordGenerator {
	return &WordGenerator{
		catalog: catalog,
		rng:     rng,
		pools:   make(map[difficulty.Tier]*pool.Pool[int]),
	}
}

// Generate draws the next word for p's tier. In fill-in-the-blank mode the
// masked form is computed as well.
func (g *WordGenerator) Generate(p difficulty.Params, mode exercise.Mode) (*exercise.Word, error) {
	pl := g.poolFor(p.Tier)
	idx, ok := pl.Draw()
	if !ok {
		return nil, fmt.Errorf("draw %s word: %w", p.Tier, wordbank.ErrEmptyTier)
	}
	entry, err := g.catalog.Entry(p.Tier, idx)
	if err != nil {
		return nil, err
	}

	w := &exercise.Word{
		Word:       exercise.NormalizeWord(entry.Word),
		Definition: entry.Definition,
		Category:   entry.Category,
		Hints:      slices.Clone(entry.Hints),
		Tier:       p.Tier,
	}
	if mode == exercise.ModeFillBlank {
		m := Mask(w.Word, g.rng)
		w.Masked = &m
	}
	return w, nil
}

// PoolStatus reports progress through the current cycle of a tier's pool.
// A tier that has not been requested yet reports a fresh cycle.
func (g *WordGenerator) PoolStatus(t difficulty.Tier) (served, size, epoch int) {
	if pl, ok := g.pools[t]; ok {
		return pl.Served(), pl.Len(), pl.Epoch()
	}
	return 0, g.catalog.Len(t), 0
}

// poolFor creates the tier's pool on first request with a full shuffle.
func (g *WordGenerator) poolFor(t difficulty.Tier) *pool.Pool[int] {
	if pl, ok := g.pools[t]; ok {
		return pl
	}
	indices := make([]int, g.catalog.Len(t))
	for i := range indices {
		indices[i] = i
	}
	pl := pool.New(indices, g.rng)
	g.pools[t] = pl
	return pl
}
