// Package wordbank holds the vocabulary catalog, partitioned by tier.
package wordbank

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/abhisek/wizquest/internal/difficulty"
	"github.com/abhisek/wizquest/internal/exercise"
)

// ErrEmptyTier is returned when a tier has no catalog entries.
var ErrEmptyTier = errors.New("no words in tier")

//go:embed words.json
var defaultCatalog []byte

// Entry is one vocabulary word with its clues.
type Entry struct {
	Word       string   `json:"word"`
	Definition string   `json:"definition"`
	Category   string   `json:"category"`
	Hints      []string `json:"hints"`
}

// Key returns the canonical repeat-avoidance key for the entry.
func (e Entry) Key() exercise.Key {
	return exercise.WordKey(e.Word)
}

// Catalog is an immutable-after-load set of entries per tier.
type Catalog struct {
	tiers map[difficulty.Tier][]Entry
}

type catalogDoc struct {
	Version int                `json:"version"`
	Tiers   map[string][]Entry `json:"tiers"`
}

// Default returns the catalog embedded in the binary. It panics if the
// embedded document is invalid, which the package tests rule out.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("wordbank: embedded catalog: %v", err))
	}
	return c
}

// Parse validates raw against the catalog schema and decodes it.
func Parse(raw []byte) (*Catalog, error) {
	if err := validateCatalogJSON(raw); err != nil {
		return nil, err
	}
	var doc catalogDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{tiers: make(map[difficulty.Tier][]Entry)}
	for name, entries := range doc.Tiers {
		tier, err := difficulty.ParseTier(name)
		if err != nil {
			return nil, err
		}
		c.tiers[tier] = append(c.tiers[tier], entries...)
	}
	return c, nil
}

// Load reads and parses a catalog document from r.
func Load(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// LoadFile reads a catalog document from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Entries returns a copy of the entries for a tier.
func (c *Catalog) Entries(t difficulty.Tier) []Entry {
	return slices.Clone(c.tiers[t])
}

// Entry returns the i-th entry of a tier.
func (c *Catalog) Entry(t difficulty.Tier, i int) (Entry, error) {
	entries := c.tiers[t]
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%s: %w", t, ErrEmptyTier)
	}
	if i < 0 || i >= len(entries) {
		return Entry{}, fmt.Errorf("%s: entry %d out of range", t, i)
	}
	return entries[i], nil
}

// Len returns the number of entries in a tier.
func (c *Catalog) Len(t difficulty.Tier) int {
	return len(c.tiers[t])
}

// Total returns the number of entries across all tiers.
func (c *Catalog) Total() int {
	n := 0
	for _, entries := range c.tiers {
		n += len(entries)
	}
	return n
}

// Contains reports whether word appears in any tier.
func (c *Catalog) Contains(word string) bool {
	key := exercise.WordKey(word)
	for _, entries := range c.tiers {
		for _, e := range entries {
			if e.Key() == key {
				return true
			}
		}
	}
	return false
}

// Merge returns a new catalog with other's entries appended. Entries whose
// word already exists in the receiver are skipped.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	merged := &Catalog{tiers: make(map[difficulty.Tier][]Entry)}
	for t, entries := range c.tiers {
		merged.tiers[t] = slices.Clone(entries)
	}
	if other == nil {
		return merged
	}
	for _, t := range difficulty.AllTiers() {
		for _, e := range other.tiers[t] {
			if merged.Contains(e.Word) {
				continue
			}
			merged.tiers[t] = append(merged.tiers[t], e)
		}
	}
	return merged
}

// Add returns a new catalog with entries appended to tier t, skipping words
// already present.
func (c *Catalog) Add(t difficulty.Tier, entries ...Entry) *Catalog {
	extra := &Catalog{tiers: map[difficulty.Tier][]Entry{t: entries}}
	return c.Merge(extra)
}

// Write encodes the catalog as an indented JSON document.
func (c *Catalog) Write(w io.Writer) error {
	doc := catalogDoc{Version: 1, Tiers: make(map[string][]Entry)}
	for _, t := range difficulty.AllTiers() {
		if entries := c.tiers[t]; len(entries) > 0 {
			doc.Tiers[t.String()] = entries
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return nil
}

func tierNames() []string {
	var names []string
	for _, t := range difficulty.AllTiers() {
		names = append(names, t.String())
	}
	return names
}
