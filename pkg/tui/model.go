package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arif/checkin/pkg/sched"
	"github.com/arif/checkin/pkg/store"
)

// GoalsMsg carries a committed goal-list snapshot from the store's live
// stream.
type GoalsMsg []store.Goal

// tickMsg re-derives progress between commits so bars keep draining.
type tickMsg time.Time

// Tab selects which partition the list shows.
type Tab int

const (
	TabActive Tab = iota
	TabCompleted
)

// GoalProgress pairs an active goal with its remaining-progress ratio.
type GoalProgress struct {
	Goal      store.Goal
	Remaining float64
}

// snapshot is everything derived from the store's goal list. It is rebuilt
// wholesale on each emission and merged into the model without touching
// transient UI state.
type snapshot struct {
	active     []GoalProgress
	completed  []store.Goal
	canAddMore bool
}

// deriveSnapshot partitions goals into active/completed at now and computes
// per-goal remaining progress.
func deriveSnapshot(goals []store.Goal, now time.Time) snapshot {
	var snap snapshot
	for _, g := range goals {
		if g.IsActive(now) {
			snap.active = append(snap.active, GoalProgress{Goal: g, Remaining: g.RemainingProgress(now)})
		} else {
			snap.completed = append(snap.completed, g)
		}
	}
	snap.canAddMore = len(snap.active) < store.MaxActiveGoals
	return snap
}

// Model is the Bubble Tea model for the goal tracker.
type Model struct {
	store  *store.Store
	worker *sched.Worker
	keys   KeyMap

	width  int
	height int
	mode   store.ThemeMode
	theme  Theme
	prog   progress.Model

	goals []store.Goal // last emission, re-derived on tick
	snap  snapshot

	// Transient UI state, never touched by snapshot merges
	tab           Tab
	cursor        int
	pendingDelete *store.Goal
	showLimitInfo bool
	showHelp      bool
	form          *goalForm

	statusMsg     string
	statusTimeout time.Time
}

// NewModel creates the TUI model. The worker is only used for the test
// notification action and may be nil.
func NewModel(s *store.Store, w *sched.Worker) Model {
	mode, _ := s.ThemeMode()
	theme := NewTheme(mode)
	return Model{
		store:  s,
		worker: w,
		keys:   DefaultKeyMap(),
		mode:   mode,
		theme:  theme,
		prog:   newProgressBar(theme),
	}
}

func newProgressBar(theme Theme) progress.Model {
	p := progress.New(progress.WithSolidFill(theme.ProgressFull), progress.WithoutPercentage())
	p.EmptyColor = theme.ProgressEmpty
	return p
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width - 30
		if w < 10 {
			w = 10
		}
		if w > 40 {
			w = 40
		}
		m.prog.Width = w
		return m, tea.ClearScreen

	case GoalsMsg:
		m.goals = msg
		m.applyDerived(time.Now())
		return m, nil

	case tickMsg:
		m.applyDerived(time.Time(msg))
		return m, tick()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.form != nil {
		cmd := m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

// applyDerived merges a freshly derived snapshot into the model. Only the
// derived fields change; tab, pending delete, overlays and the form are the
// user's and stay exactly as they were.
func (m *Model) applyDerived(now time.Time) {
	m.snap = deriveSnapshot(m.goals, now)
	if max := m.visibleCount() - 1; m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) visibleCount() int {
	if m.tab == TabActive {
		return len(m.snap.active)
	}
	return len(m.snap.completed)
}

// selectedGoal returns the goal under the cursor, or nil when the current
// tab is empty.
func (m Model) selectedGoal() *store.Goal {
	if m.tab == TabActive {
		if m.cursor < len(m.snap.active) {
			g := m.snap.active[m.cursor].Goal
			return &g
		}
		return nil
	}
	if m.cursor < len(m.snap.completed) {
		g := m.snap.completed[m.cursor]
		return &g
	}
	return nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Form handling comes first so typed characters reach the inputs.
	if m.form != nil {
		switch msg.Type {
		case tea.KeyEsc:
			m.form = nil
			return m, nil
		case tea.KeyEnter:
			if m.form.lastField() {
				m.submitForm()
				return m, nil
			}
			m.form.nextField()
			return m, textinput.Blink
		case tea.KeyTab, tea.KeyDown:
			m.form.nextField()
			return m, textinput.Blink
		case tea.KeyShiftTab, tea.KeyUp:
			m.form.prevField()
			return m, textinput.Blink
		default:
			cmd := m.form.update(msg)
			return m, cmd
		}
	}

	if m.showHelp {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelp = false
		}
		return m, nil
	}

	// Limit overlay: any dismissal key hides it again.
	if m.showLimitInfo {
		switch msg.String() {
		case "esc", "enter", "q":
			m.showLimitInfo = false
		}
		return m, nil
	}

	// Two-step delete confirmation.
	if m.pendingDelete != nil {
		switch msg.String() {
		case "y", "Y":
			m.confirmDelete()
		case "n", "N", "esc":
			m.pendingDelete = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.visibleCount()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Tab):
		m.setTab(m.otherTab())

	case key.Matches(msg, m.keys.Add):
		if !m.snap.canAddMore {
			m.showLimitInfo = true
			return m, nil
		}
		m.form = newGoalForm(nil)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		if g := m.selectedGoal(); g != nil {
			m.form = newGoalForm(g)
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.Complete):
		if m.tab == TabActive {
			if g := m.selectedGoal(); g != nil {
				m.markCompleted(*g)
			}
		}

	case key.Matches(msg, m.keys.Delete):
		if g := m.selectedGoal(); g != nil {
			m.requestDelete(*g)
		}

	case key.Matches(msg, m.keys.Notify):
		if g := m.selectedGoal(); g != nil && m.worker != nil {
			m.worker.NotifyNow(*g)
			m.setStatus("Notification sent")
		}

	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}

	return m, nil
}

func (m Model) otherTab() Tab {
	if m.tab == TabActive {
		return TabCompleted
	}
	return TabActive
}

// setTab switches the visible partition and resets the cursor.
func (m *Model) setTab(tab Tab) {
	if m.tab == tab {
		return
	}
	m.tab = tab
	m.cursor = 0
}

// requestDelete stages a delete candidate without touching storage. A new
// request simply replaces any previous candidate.
func (m *Model) requestDelete(g store.Goal) {
	m.pendingDelete = &g
}

// confirmDelete issues the staged delete. A stale candidate (already gone)
// is harmless: removal of an unknown id is a no-op.
func (m *Model) confirmDelete() {
	if m.pendingDelete == nil {
		return
	}
	if err := m.store.RemoveGoal(m.pendingDelete.ID); err != nil {
		m.setStatus("Delete failed: " + err.Error())
	} else {
		m.setStatus("Deleted: " + m.pendingDelete.Title)
	}
	m.pendingDelete = nil
}

// markCompleted completes the goal and follows it to the completed tab so
// the user sees where it went.
func (m *Model) markCompleted(g store.Goal) {
	if err := m.store.CompleteGoal(g.ID); err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}
	m.setTab(TabCompleted)
	m.setStatus("Completed: " + g.Title)
}

// submitForm commits the add/edit form. A limit-reached failure swaps the
// form for the explanatory overlay; other validation errors keep the form
// open for fixing.
func (m *Model) submitForm() {
	title, desc, end := m.form.values()

	var err error
	if m.form.editing() {
		err = m.store.UpdateGoal(m.form.editID, title, desc, end)
	} else {
		_, err = m.store.AddGoal(title, desc, end)
	}

	switch {
	case errors.Is(err, store.ErrGoalLimit):
		m.form = nil
		m.showLimitInfo = true
	case err != nil:
		m.setStatus("Error: " + err.Error())
	default:
		m.form = nil
		m.setStatus("Saved")
	}
}

func (m *Model) toggleTheme() {
	if m.mode == store.ThemeDark {
		m.mode = store.ThemeLight
	} else {
		m.mode = store.ThemeDark
	}
	if err := m.store.SetThemeMode(m.mode); err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}
	m.theme = NewTheme(m.mode)
	m.prog = newProgressBar(m.theme)
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}
