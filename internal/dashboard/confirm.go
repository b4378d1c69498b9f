package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmKind identifies which decision a confirmation screen resolves.
type confirmKind int

const (
	confirmDelete         confirmKind = iota // Delete the named contact?
	confirmUpdateInstead                     // Duplicate add: switch to update?
)

// confirmState holds the data for a yes/no screen. Nothing is mutated until
// the answer comes back as a confirmDoneMsg.
type confirmState struct {
	kind confirmKind
	key  string // stored contact key the question is about
}

// Update processes keys for the confirmation screen. Only an explicit yes
// proceeds; n and esc both answer no.
func (cs confirmState) Update(msg tea.Msg) (confirmState, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return cs, nil
	}

	switch keyMsg.String() {
	case "y", "enter":
		return cs, cs.answer(true)
	case "n", "esc":
		return cs, cs.answer(false)
	}
	return cs, nil
}

func (cs confirmState) answer(accepted bool) tea.Cmd {
	kind := cs.kind
	return func() tea.Msg {
		return confirmDoneMsg{Kind: kind, Accepted: accepted}
	}
}

// View renders the question for the given kind.
func (cs confirmState) View() string {
	var b strings.Builder
	switch cs.kind {
	case confirmDelete:
		fmt.Fprintf(&b, "Are you sure you want to delete %q?\n", cs.key)
		b.WriteString("\nThis cannot be undone within the session.")
	case confirmUpdateInstead:
		fmt.Fprintf(&b, "Contact %q already exists.\n", cs.key)
		b.WriteString("\nDo you want to update it instead?")
	}
	b.WriteString("\n\n  [y] Yes   [n] No")
	return b.String()
}
