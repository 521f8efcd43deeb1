package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arif/checkin/pkg/store"
)

const (
	fieldTitle = iota
	fieldDesc
	fieldEnd
	fieldCount
)

// goalForm is the add/edit input form: title, description, end date. The
// start date is fixed at creation and never editable.
type goalForm struct {
	editID string // empty when adding
	inputs [fieldCount]textinput.Model
	focus  int
}

// newGoalForm builds a blank form, or one pre-filled from g when editing.
func newGoalForm(g *store.Goal) *goalForm {
	f := &goalForm{}

	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 64
	f.inputs[fieldTitle] = title

	desc := textinput.New()
	desc.Placeholder = "description (optional)"
	desc.CharLimit = 140
	f.inputs[fieldDesc] = desc

	end := textinput.New()
	end.Placeholder = "end date (dd.mm.yyyy)"
	end.CharLimit = 10
	f.inputs[fieldEnd] = end

	if g != nil {
		f.editID = g.ID
		f.inputs[fieldTitle].SetValue(g.Title)
		f.inputs[fieldDesc].SetValue(g.Description)
		f.inputs[fieldEnd].SetValue(g.EndDate)
	}

	f.inputs[f.focus].Focus()
	return f
}

func (f *goalForm) editing() bool {
	return f.editID != ""
}

func (f *goalForm) values() (title, desc, end string) {
	return f.inputs[fieldTitle].Value(), f.inputs[fieldDesc].Value(), f.inputs[fieldEnd].Value()
}

// lastField reports whether focus sits on the final field, where enter
// submits instead of advancing.
func (f *goalForm) lastField() bool {
	return f.focus == fieldCount-1
}

func (f *goalForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *goalForm) nextField() {
	f.setFocus((f.focus + 1) % fieldCount)
}

func (f *goalForm) prevField() {
	f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

// update forwards a message to the focused input.
func (f *goalForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}
