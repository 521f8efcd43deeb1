package store

// MaxActiveGoals is the hard cap on concurrently active goals. The store
// enforces it at write time so no sequence of mutations can exceed it.
const MaxActiveGoals = 3

// DateLayout is the fixed calendar-date format used for all stored goal
// dates (day.month.year, no time component).
const DateLayout = "02.01.2006"

// Default reminder window: 09:00–21:00, expressed as minutes of day.
const (
	DefaultWindowStartMin = 9 * 60
	DefaultWindowEndMin   = 21 * 60
)

// MaxMinuteOfDay is the last valid minute of a single 24h window.
const MaxMinuteOfDay = 24*60 - 1

// Goal is one goal record. Dates are DateLayout strings; ID and StartDate
// are fixed at creation and never change afterwards.
type Goal struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// ThemeMode selects the UI color palette.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// ParseThemeMode maps a stored value to a ThemeMode. Unrecognized or legacy
// values fall back to light so the app never fails on old preference data.
func ParseThemeMode(raw string) ThemeMode {
	switch ThemeMode(raw) {
	case ThemeLight, ThemeDark:
		return ThemeMode(raw)
	default:
		return ThemeLight
	}
}
