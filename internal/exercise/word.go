package exercise

import (
	"strings"

	"github.com/abhisek/wizquest/internal/difficulty"
)

// BlankMarker replaces hidden letters in a masked word.
const BlankMarker = "_"

// Masked is the fill-in-the-blank rendering of a word.
type Masked struct {
	// Positions are the hidden rune indices in ascending order. Never 0.
	Positions []int

	// Text is the space-joined rendering, e.g. "e _ e p _ a n t".
	Text string
}

// Word is a vocabulary exercise drawn from the word catalog.
type Word struct {
	Word       string
	Definition string
	Category   string
	Hints      []string
	Tier       difficulty.Tier

	// Masked is set only when the session runs in fill-in-the-blank mode.
	Masked *Masked
}

var _ Exercise = (*Word)(nil)

func (w *Word) Kind() Kind                  { return KindWord }
func (w *Word) Key() Key                    { return WordKey(w.Word) }
func (w *Word) Difficulty() difficulty.Tier { return w.Tier }
func (w *Word) Solution() string            { return NormalizeWord(w.Word) }
func (w *Word) exercise()                   {}

// Check compares a typed answer case-insensitively.
func (w *Word) Check(answer string) bool {
	a := NormalizeWord(answer)
	return a != "" && a == NormalizeWord(w.Word)
}

// Hint returns the hint following the first revealed hints, in fixed
// order. ok is false once every hint has been shown.
func (w *Word) Hint(revealed int) (hint string, ok bool) {
	if revealed < 0 || revealed >= len(w.Hints) {
		return "", false
	}
	return w.Hints[revealed], true
}

// Prompt returns the clue shown to the player for the given mode.
func (w *Word) Prompt(mode Mode) string {
	switch mode {
	case ModeFillBlank:
		if w.Masked != nil {
			return w.Masked.Text
		}
		return strings.TrimSpace(strings.Repeat(BlankMarker+" ", len([]rune(w.Word))))
	case ModeDescribe:
		return w.Definition
	default:
		return "Listen and type the word (" + w.Category + ")"
	}
}
