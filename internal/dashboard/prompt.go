package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// promptPurpose identifies which flow a prompt feeds.
type promptPurpose int

const (
	promptSearch promptPurpose = iota
	promptUpdate
	promptDelete
)

// promptState is a single-line input used for search terms and for the
// name entry that starts the update and delete flows.
type promptState struct {
	purpose promptPurpose
	title   string
	input   textinput.Model
}

func newPromptState(purpose promptPurpose) promptState {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 128
	ti.Focus()

	var title string
	switch purpose {
	case promptSearch:
		title = "Enter name search (blank lists everyone):"
	case promptUpdate:
		title = "Enter name to update:"
	case promptDelete:
		title = "Enter name to delete:"
	}

	return promptState{purpose: purpose, title: title, input: ti}
}

// Update processes messages for the prompt.
func (ps promptState) Update(msg tea.Msg) (promptState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return ps, func() tea.Msg { return backToMenuMsg{} }
		case "enter":
			purpose := ps.purpose
			value := strings.TrimSpace(ps.input.Value())
			return ps, func() tea.Msg {
				return promptDoneMsg{Purpose: purpose, Value: value}
			}
		}
	}

	var cmd tea.Cmd
	ps.input, cmd = ps.input.Update(msg)
	return ps, cmd
}

// View renders the prompt title and input.
func (ps promptState) View() string {
	return TitleStyle().Render(ps.title) + "\n\n" + ps.input.View()
}
