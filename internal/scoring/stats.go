package scoring

import "time"

// Stats is the running aggregate for one calendar day.
type Stats struct {
	Day            time.Time
	TotalSolved    int
	CorrectAnswers int
	XPEarnedToday  int
}

// NewStats returns empty stats for the day containing now.
func NewStats(now time.Time) Stats {
	return Stats{Day: StartOfDay(now)}
}

// Record counts one resolved round. Every round is counted; only correct
// rounds add to the correct count and XP.
func (s *Stats) Record(correct bool, xp int) {
	s.TotalSolved++
	if correct {
		s.CorrectAnswers++
		s.XPEarnedToday += xp
	}
}

// Roll resets the aggregate when now falls on a different day. It reports
// whether a reset happened.
func (s *Stats) Roll(now time.Time) bool {
	day := StartOfDay(now)
	if s.Day.Equal(day) {
		return false
	}
	*s = Stats{Day: day}
	return true
}

// Accuracy returns the fraction of correct answers, or 0 with no rounds.
func (s Stats) Accuracy() float64 {
	if s.TotalSolved == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalSolved)
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
