package scoring

// Progress holds the long-lived player fields. The host owns persistence;
// the engine only updates a copy through Record.
type Progress struct {
	Name          string
	Level         int
	TotalXP       int
	CurrentStreak int
	BestStreak    int
}

// NewProgress returns a level 1 profile.
func NewProgress(name string) Progress {
	return Progress{Name: name, Level: 1}
}

// Update is the effect of one resolved round on Progress.
type Update struct {
	XP     int
	Streak int
	Best   int

	// Milestone is set when the new streak reached a milestone.
	Milestone bool
}

// Record applies a round outcome. A correct answer extends the streak and
// raises the best streak if needed; anything else resets the streak. The
// best streak never drops below the current one.
func (p *Progress) Record(correct bool, xp int) Update {
	if correct {
		p.CurrentStreak++
		p.TotalXP += max(xp, 0)
	} else {
		p.CurrentStreak = 0
	}
	p.BestStreak = max(p.BestStreak, p.CurrentStreak)

	return Update{
		XP:        xp,
		Streak:    p.CurrentStreak,
		Best:      p.BestStreak,
		Milestone: correct && IsStreakMilestone(p.CurrentStreak),
	}
}

// Normalize clamps fields loaded from an external source to valid values.
func (p *Progress) Normalize() {
	p.Level = max(p.Level, 1)
	p.TotalXP = max(p.TotalXP, 0)
	p.CurrentStreak = max(p.CurrentStreak, 0)
	p.BestStreak = max(p.BestStreak, p.CurrentStreak)
}
