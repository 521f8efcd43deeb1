package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParseGoalDate(t *testing.T) {
	parsed, ok := ParseGoalDate("15.06.2024")
	require.True(t, ok)
	assert.Equal(t, day(2024, time.June, 15), parsed)

	// Surrounding whitespace is tolerated
	parsed, ok = ParseGoalDate("  01.01.2025 ")
	require.True(t, ok)
	assert.Equal(t, day(2025, time.January, 1), parsed)

	_, ok = ParseGoalDate("2024-06-15")
	assert.False(t, ok)
	_, ok = ParseGoalDate("")
	assert.False(t, ok)
	_, ok = ParseGoalDate("soon")
	assert.False(t, ok)
}

func TestIsActive(t *testing.T) {
	g := Goal{StartDate: "10.06.2024", EndDate: "15.06.2024"}

	assert.True(t, g.IsActive(day(2024, time.June, 10)))
	assert.True(t, g.IsActive(day(2024, time.June, 15)))
	assert.False(t, g.IsActive(day(2024, time.June, 16)))
	assert.False(t, g.IsCompleted(day(2024, time.June, 15)))
	assert.True(t, g.IsCompleted(day(2024, time.June, 16)))
}

func TestIsActiveFlipsAtMidnight(t *testing.T) {
	g := Goal{StartDate: "10.06.2024", EndDate: "15.06.2024"}

	lastMinute := time.Date(2024, time.June, 15, 23, 59, 0, 0, time.Local)
	assert.True(t, g.IsActive(lastMinute))

	midnight := time.Date(2024, time.June, 16, 0, 0, 0, 0, time.Local)
	assert.False(t, g.IsActive(midnight))
}

func TestIsActiveUnparsableEndDate(t *testing.T) {
	// A goal with a broken end date stays visible as ongoing rather than
	// silently disappearing into the completed list.
	g := Goal{StartDate: "10.06.2024", EndDate: "whenever"}
	assert.True(t, g.IsActive(day(2030, time.January, 1)))
}

func TestRemainingProgress(t *testing.T) {
	// Five-day goal: span runs from start of the 10th to start of the 16th.
	g := Goal{StartDate: "10.06.2024", EndDate: "15.06.2024"}

	assert.InDelta(t, 1.0, g.RemainingProgress(day(2024, time.June, 10)), 0.001)
	assert.InDelta(t, 0.5, g.RemainingProgress(day(2024, time.June, 13)), 0.001)

	// The final day still shows a sliver of remaining time
	last := g.RemainingProgress(time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local))
	assert.Greater(t, last, 0.0)
	assert.Less(t, last, 0.2)

	// Past the end the bar is empty, never negative
	assert.Equal(t, 0.0, g.RemainingProgress(day(2024, time.June, 20)))
}

func TestRemainingProgressClampedBeforeStart(t *testing.T) {
	g := Goal{StartDate: "10.06.2024", EndDate: "15.06.2024"}
	assert.Equal(t, 1.0, g.RemainingProgress(day(2024, time.June, 1)))
}

func TestRemainingProgressZeroSpan(t *testing.T) {
	// End before start yields a non-positive span, which reads as empty.
	g := Goal{StartDate: "10.06.2024", EndDate: "08.06.2024"}
	assert.Equal(t, 0.0, g.RemainingProgress(day(2024, time.June, 9)))
}

func TestRemainingProgressMonotonic(t *testing.T) {
	g := Goal{StartDate: "10.06.2024", EndDate: "15.06.2024"}

	prev := 1.1
	for h := 0; h < 6*24; h += 7 {
		now := day(2024, time.June, 10).Add(time.Duration(h) * time.Hour)
		cur := g.RemainingProgress(now)
		assert.LessOrEqual(t, cur, prev, "progress must never increase (hour %d)", h)
		prev = cur
	}
}

func TestActiveCount(t *testing.T) {
	ref := day(2024, time.June, 15)
	goals := []Goal{
		{ID: "a", EndDate: "20.06.2024"},
		{ID: "b", EndDate: "14.06.2024"},
		{ID: "c", EndDate: "15.06.2024"},
	}
	assert.Equal(t, 2, ActiveCount(goals, ref))
	assert.Equal(t, 0, ActiveCount(nil, ref))
}

func TestParseThemeMode(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseThemeMode("dark"))
	assert.Equal(t, ThemeLight, ParseThemeMode("light"))
	assert.Equal(t, ThemeLight, ParseThemeMode(""))
	assert.Equal(t, ThemeLight, ParseThemeMode("solarized"))
}
