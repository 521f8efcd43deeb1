package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/arif/checkin/pkg/store"
)

// Theme bundles the styles for one color mode. The active mode follows the
// store's theme preference.
type Theme struct {
	Header      lipgloss.Style
	HeaderCount lipgloss.Style
	Footer      lipgloss.Style

	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	Selected lipgloss.Style
	Title    lipgloss.Style
	Dates    lipgloss.Style
	Desc     lipgloss.Style
	Done     lipgloss.Style

	Modal      lipgloss.Style
	ModalTitle lipgloss.Style
	Confirm    lipgloss.Style
	Cancel     lipgloss.Style

	InputPrompt lipgloss.Style
	Status      lipgloss.Style

	ProgressFull  string
	ProgressEmpty string
}

// Dark palette colors.
var (
	darkPurple    = lipgloss.Color("#7D56F4")
	darkGreen     = lipgloss.Color("#25A065")
	darkRed       = lipgloss.Color("#E05252")
	darkGray      = lipgloss.Color("#626262")
	darkWhite     = lipgloss.Color("#FFFFFF")
	darkOffWhite  = lipgloss.Color("#D0D0D0")
	darkCyan      = lipgloss.Color("#56B6C2")
	darkSelection = lipgloss.Color("#2D3B4D")
)

// Light palette colors.
var (
	lightPurple    = lipgloss.Color("#5A36C8")
	lightGreen     = lipgloss.Color("#1E7D4F")
	lightRed       = lipgloss.Color("#B23A3A")
	lightGray      = lipgloss.Color("#8A8A8A")
	lightBlack     = lipgloss.Color("#1C1C1C")
	lightDim       = lipgloss.Color("#5F5F5F")
	lightCyan      = lipgloss.Color("#2E7D8A")
	lightSelection = lipgloss.Color("#D7D7F0")
)

// NewTheme builds the style set for the given mode.
func NewTheme(mode store.ThemeMode) Theme {
	if mode == store.ThemeDark {
		return darkTheme()
	}
	return lightTheme()
}

func darkTheme() Theme {
	return Theme{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(darkPurple),
		HeaderCount: lipgloss.NewStyle().Foreground(darkGray),
		Footer:      lipgloss.NewStyle().Foreground(darkGray),

		ActiveTab:   lipgloss.NewStyle().Bold(true).Foreground(darkWhite).Background(darkPurple).Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().Foreground(darkGray).Padding(0, 1),

		Selected: lipgloss.NewStyle().Bold(true).Foreground(darkWhite).Background(darkSelection),
		Title:    lipgloss.NewStyle().Foreground(darkOffWhite),
		Dates:    lipgloss.NewStyle().Foreground(darkGray),
		Desc:     lipgloss.NewStyle().Foreground(darkGray).Italic(true),
		Done:     lipgloss.NewStyle().Foreground(darkGreen),

		Modal:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(darkPurple).Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Bold(true).Foreground(darkPurple),
		Confirm:    lipgloss.NewStyle().Foreground(darkGreen),
		Cancel:     lipgloss.NewStyle().Foreground(darkRed),

		InputPrompt: lipgloss.NewStyle().Foreground(darkPurple).Bold(true),
		Status:      lipgloss.NewStyle().Foreground(darkCyan),

		ProgressFull:  "#7D56F4",
		ProgressEmpty: "#404040",
	}
}

func lightTheme() Theme {
	return Theme{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lightPurple),
		HeaderCount: lipgloss.NewStyle().Foreground(lightGray),
		Footer:      lipgloss.NewStyle().Foreground(lightGray),

		ActiveTab:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lightPurple).Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().Foreground(lightGray).Padding(0, 1),

		Selected: lipgloss.NewStyle().Bold(true).Foreground(lightBlack).Background(lightSelection),
		Title:    lipgloss.NewStyle().Foreground(lightBlack),
		Dates:    lipgloss.NewStyle().Foreground(lightDim),
		Desc:     lipgloss.NewStyle().Foreground(lightDim).Italic(true),
		Done:     lipgloss.NewStyle().Foreground(lightGreen),

		Modal:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lightPurple).Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Bold(true).Foreground(lightPurple),
		Confirm:    lipgloss.NewStyle().Foreground(lightGreen),
		Cancel:     lipgloss.NewStyle().Foreground(lightRed),

		InputPrompt: lipgloss.NewStyle().Foreground(lightPurple).Bold(true),
		Status:      lipgloss.NewStyle().Foreground(lightCyan),

		ProgressFull:  "#5A36C8",
		ProgressEmpty: "#C8C8C8",
	}
}

// Status icons
const (
	IconActive   = "○"
	IconComplete = "✓"
)
