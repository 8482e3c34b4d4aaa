package exercise

import (
	"fmt"
	"strings"
)

// Mode is the presentation mode of a practice session.
type Mode int

const (
	ModeMath      Mode = iota // Arithmetic equations
	ModeListen                // Hear the word, type it
	ModeFillBlank             // Complete the masked word
	ModeDescribe              // Read the definition, type the word
)

// AllModes returns every mode in menu order.
func AllModes() []Mode {
	return []Mode{ModeMath, ModeListen, ModeFillBlank, ModeDescribe}
}

// IsWord reports whether the mode serves vocabulary exercises.
func (m Mode) IsWord() bool {
	return m == ModeListen || m == ModeFillBlank || m == ModeDescribe
}

// Kind returns the exercise variant this mode serves.
func (m Mode) Kind() Kind {
	if m.IsWord() {
		return KindWord
	}
	return KindEquation
}

func (m Mode) String() string {
	switch m {
	case ModeMath:
		return "math"
	case ModeListen:
		return "listen"
	case ModeFillBlank:
		return "fill"
	case ModeDescribe:
		return "describe"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// DisplayName returns a human-readable label for the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModeMath:
		return "Math Blitz"
	case ModeListen:
		return "Listen & Type"
	case ModeFillBlank:
		return "Fill in the Blank"
	case ModeDescribe:
		return "Guess from Description"
	default:
		return m.String()
	}
}

// ParseMode parses a mode name as produced by String.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, m := range AllModes() {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}
