// Package scoring computes XP awards and keeps streak and per-day
// aggregates.
package scoring

import "github.com/abhisek/wizquest/internal/exercise"

// XP constants for equation rounds.
const (
	MathBase          = 15
	MathPerTickBonus  = 2
	MathLevelDivisor  = 5
	WordBase          = 20
	WordPerTickBonus  = 3
	WordLevelDivisor  = 3
	LevelBonusPerStep = 5

	// TimeBonusStep is the number of remaining seconds per time bonus.
	TimeBonusStep = 5
)

// Input describes a resolved round for XP computation.
type Input struct {
	Correct       bool
	TimeRemaining int
	Level         int
	Mode          exercise.Mode
}

// XP returns the award for a round. Incorrect answers and timeouts earn
// nothing.
func XP(in Input) int {
	if !in.Correct {
		return 0
	}
	remaining := max(in.TimeRemaining, 0)
	level := max(in.Level, 1)

	if !in.Mode.IsWord() {
		return MathBase +
			remaining/TimeBonusStep*MathPerTickBonus +
			level/MathLevelDivisor*LevelBonusPerStep
	}
	return WordBase +
		remaining/TimeBonusStep*WordPerTickBonus +
		level/WordLevelDivisor*LevelBonusPerStep +
		ModeBonus(in.Mode)
}

// ModeBonus returns the extra XP a word mode awards.
func ModeBonus(m exercise.Mode) int {
	switch m {
	case exercise.ModeFillBlank:
		return 5
	case exercise.ModeDescribe:
		return 10
	default:
		return 0
	}
}
