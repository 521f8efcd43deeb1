package store

import (
	"strings"
	"time"
)

// ParseGoalDate parses a stored DateLayout string. The bool reports whether
// the value was well-formed; callers fall back rather than erroring so
// legacy or hand-edited records stay readable.
func ParseGoalDate(raw string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// dateOf truncates an instant to the start of its calendar day.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsActive reports whether the goal is still active at the given reference
// instant. A goal stays active through its end date (inclusive); an
// unparsable end date counts as ongoing so a stored goal never silently
// drops off the active tab.
func (g Goal) IsActive(ref time.Time) bool {
	end, ok := ParseGoalDate(g.EndDate)
	if !ok {
		return true
	}
	return !end.Before(dateOf(ref))
}

// IsCompleted is the inverse of IsActive; status is always derived from
// dates, never stored.
func (g Goal) IsCompleted(ref time.Time) bool {
	return !g.IsActive(ref)
}

// RemainingProgress returns the fraction of the goal's lifetime still left
// at now, in [0,1]. The span runs from the start of StartDate to the start
// of the day after EndDate, so the final day still shows remaining time.
// Measured in hours for smooth intra-day updates. A zero-length span
// returns 0 (empty bar) rather than 1.
func (g Goal) RemainingProgress(now time.Time) float64 {
	start, ok := ParseGoalDate(g.StartDate)
	if !ok {
		start = now
	}
	endExclusive := start
	if end, ok := ParseGoalDate(g.EndDate); ok {
		endExclusive = end.AddDate(0, 0, 1)
	}

	totalHours := endExclusive.Sub(start).Hours()
	if totalHours <= 0 {
		return 0
	}
	remainingHours := endExclusive.Sub(now).Hours()
	if remainingHours < 0 {
		remainingHours = 0
	}

	ratio := remainingHours / totalHours
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// ActiveCount counts the goals classified active at ref.
func ActiveCount(goals []Goal, ref time.Time) int {
	n := 0
	for _, g := range goals {
		if g.IsActive(ref) {
			n++
		}
	}
	return n
}
