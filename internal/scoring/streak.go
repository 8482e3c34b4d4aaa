package scoring

// BaseStreakMilestone is the first streak length worth celebrating.
const BaseStreakMilestone = 5

var streakMilestones = []int{5, 10, 15, 20}

// NextStreakMilestone returns the next milestone above the current
// streak length.
func NextStreakMilestone(current int) int {
	for _, m := range streakMilestones {
		if m > current {
			return m
		}
	}
	// Beyond 20, every 5.
	return (current/BaseStreakMilestone + 1) * BaseStreakMilestone
}

// IsStreakMilestone reports whether a streak of n is a milestone.
func IsStreakMilestone(n int) bool {
	return n > 0 && NextStreakMilestone(n-1) == n
}
