// Package pool serves keys without repetition.
//
// A Pool holds a fixed, shuffled slice and a cursor. Each Draw advances
// the cursor; when the cursor reaches the end the slice is reshuffled in
// place, the epoch is incremented and the cursor restarts at 0. No key is
// served twice within one epoch and the pool never blocks or grows.
package pool

import "math/rand/v2"

// Pool is a non-repeating ring of keys. Not safe for concurrent use.
type Pool[K comparable] struct {
	items  []K
	cursor int
	epoch  int
	rng    *rand.Rand
}

// New creates a Pool over a copy of items and shuffles it with rng.
func New[K comparable](items []K, rng *rand.Rand) *Pool[K] {
	p := &Pool[K]{
		items: append([]K(nil), items...),
		rng:   rng,
	}
	p.shuffle()
	return p
}

// Draw returns the next key of the current cycle. When the cycle is
// exhausted the pool is reshuffled first. ok is false only for an empty pool.
func (p *Pool[K]) Draw() (key K, ok bool) {
	if len(p.items) == 0 {
		return key, false
	}
	if p.cursor >= len(p.items) {
		p.shuffle()
		p.cursor = 0
		p.epoch++
	}
	key = p.items[p.cursor]
	p.cursor++
	return key, true
}

// Len returns the pool size.
func (p *Pool[K]) Len() int { return len(p.items) }

// Served returns how many keys were drawn in the current cycle.
func (p *Pool[K]) Served() int { return p.cursor }

// Remaining returns how many keys are left before the next reshuffle.
func (p *Pool[K]) Remaining() int { return len(p.items) - p.cursor }

// Epoch returns the number of completed reshuffles.
func (p *Pool[K]) Epoch() int { return p.epoch }

// Fisher–Yates via rand.Shuffle.
func (p *Pool[K]) shuffle() {
	p.rng.Shuffle(len(p.items), func(i, j int) {
		p.items[i], p.items[j] = p.items[j], p.items[i]
	})
}
