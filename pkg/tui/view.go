package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/arif/checkin/pkg/store"
)

const minWidth = 40
const minHeight = 10

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelp {
		return placeOverlay(m.renderHelpModal(), w, h)
	}
	if m.showLimitInfo {
		return placeOverlay(m.renderLimitModal(), w, h)
	}
	if m.pendingDelete != nil {
		return placeOverlay(m.renderDeleteModal(), w, h)
	}
	if m.form != nil {
		return placeOverlay(m.renderFormModal(), w, h)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	headerLines := 3
	footerLines := 2
	contentHeight := h - headerLines - footerLines

	body := m.renderList(w, contentHeight)
	bodyLines := strings.Split(body, "\n")
	if len(bodyLines) > contentHeight {
		bodyLines = bodyLines[:contentHeight]
	}
	for len(bodyLines) < contentHeight {
		bodyLines = append(bodyLines, "")
	}
	b.WriteString(strings.Join(bodyLines, "\n"))
	b.WriteString("\n")

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := m.theme.Header.Render("Check-in")

	stats := m.theme.HeaderCount.Render(
		fmt.Sprintf("%d active / %d completed", len(m.snap.active), len(m.snap.completed)))

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = m.theme.Status.Render(m.statusMsg) + "  "
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(stats) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + status + stats
}

func (m Model) renderTabs() string {
	active := fmt.Sprintf("Active (%d)", len(m.snap.active))
	completed := fmt.Sprintf("Completed (%d)", len(m.snap.completed))

	if m.tab == TabActive {
		return m.theme.ActiveTab.Render(active) + " " + m.theme.InactiveTab.Render(completed)
	}
	return m.theme.InactiveTab.Render(active) + " " + m.theme.ActiveTab.Render(completed)
}

func (m Model) renderList(width, height int) string {
	if m.tab == TabActive {
		return m.renderActiveList(width)
	}
	return m.renderCompletedList(width)
}

// renderActiveList shows each active goal as a three-line card: title row,
// progress bar with remaining percentage, then dates and description.
func (m Model) renderActiveList(width int) string {
	if len(m.snap.active) == 0 {
		return m.theme.Footer.Render("No active goals. Press 'a' to add one (up to 3).")
	}

	var lines []string
	for i, gp := range m.snap.active {
		g := gp.Goal
		selected := i == m.cursor

		marker := "  "
		if selected {
			marker = m.theme.Selected.Render("▌ ")
		}

		title := m.theme.Title.Render(g.Title)
		if selected {
			title = m.theme.Selected.Render(g.Title)
		}
		lines = append(lines, marker+IconActive+" "+title)

		bar := m.prog.ViewAs(gp.Remaining)
		pct := m.theme.Dates.Render(fmt.Sprintf(" %3.0f%% left", gp.Remaining*100))
		lines = append(lines, "    "+bar+pct)

		meta := g.StartDate + " → " + g.EndDate
		if g.Description != "" {
			meta += "  " + m.theme.Desc.Render(g.Description)
		}
		lines = append(lines, "    "+m.theme.Dates.Render(meta))
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCompletedList(width int) string {
	if len(m.snap.completed) == 0 {
		return m.theme.Footer.Render("Nothing completed yet.")
	}

	var lines []string
	for i, g := range m.snap.completed {
		selected := i == m.cursor

		marker := "  "
		if selected {
			marker = m.theme.Selected.Render("▌ ")
		}

		title := m.theme.Done.Render(g.Title)
		if selected {
			title = m.theme.Selected.Render(g.Title)
		}
		line := marker + m.theme.Done.Render(IconComplete) + " " + title +
			"  " + m.theme.Dates.Render(g.StartDate+" → "+g.EndDate)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	return m.theme.Footer.Render(m.keys.ShortHelp())
}

func (m Model) renderFormModal() string {
	var b strings.Builder

	heading := "New Goal"
	if m.form.editing() {
		heading = "Edit Goal"
	}
	b.WriteString(m.theme.ModalTitle.Render(heading))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Title", "Description", "End date"}
	for i := 0; i < fieldCount; i++ {
		prompt := "  "
		if i == m.form.focus {
			prompt = m.theme.InputPrompt.Render("> ")
		}
		b.WriteString(prompt + labels[i] + "\n")
		b.WriteString("  " + m.form.inputs[i].View() + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Footer.Render("enter next/save  tab switch field  esc cancel"))

	return m.theme.Modal.Render(b.String())
}

func (m Model) renderDeleteModal() string {
	var b strings.Builder

	b.WriteString(m.theme.ModalTitle.Render("Delete Goal"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Delete '%s'?\n\n", m.pendingDelete.Title))
	b.WriteString(m.theme.Confirm.Render("[y]") + " Yes  ")
	b.WriteString(m.theme.Cancel.Render("[n]") + " No")

	return m.theme.Modal.Render(b.String())
}

func (m Model) renderLimitModal() string {
	var b strings.Builder

	b.WriteString(m.theme.ModalTitle.Render("Active Goal Limit"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("You already have %d active goals.\n", store.MaxActiveGoals))
	b.WriteString("Complete or delete one before adding another.\n\n")
	b.WriteString(m.theme.Footer.Render("Press Esc to close"))

	return m.theme.Modal.Render(b.String())
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(m.theme.ModalTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := m.theme.InputPrompt.Width(12)
	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(m.theme.Title.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Footer.Render("Press Esc or ? to close"))

	return m.theme.Modal.Render(b.String())
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}
	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
