package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// menuAction identifies what a menu entry does when selected.
type menuAction int

const (
	actionAdd menuAction = iota
	actionSearch
	actionUpdate
	actionDelete
	actionList
	actionExport
	actionStats
	actionQuit
)

// menuEntry is one numbered row of the main menu.
type menuEntry struct {
	label  string
	action menuAction
}

// menuState manages the main menu cursor and selection.
type menuState struct {
	entries []menuEntry
	cursor  int
}

// menuSelectMsg signals that a menu entry was chosen.
type menuSelectMsg struct {
	action menuAction
}

func newMenuState() menuState {
	return menuState{
		entries: []menuEntry{
			{label: "Add Contact", action: actionAdd},
			{label: "Search Contacts", action: actionSearch},
			{label: "Update Contact", action: actionUpdate},
			{label: "Delete Contact", action: actionDelete},
			{label: "Display All Contacts", action: actionList},
			{label: "Export to CSV", action: actionExport},
			{label: "View Statistics", action: actionStats},
			{label: "Exit", action: actionQuit},
		},
	}
}

// Update processes key messages for the menu. Digits jump straight to an
// entry; anything unrecognized is ignored rather than treated as fatal.
func (ms menuState) Update(msg tea.Msg) (menuState, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return ms, nil
	}

	switch s := keyMsg.String(); s {
	case "up", "k":
		ms.cursor--
		if ms.cursor < 0 {
			ms.cursor = len(ms.entries) - 1
		}
		return ms, nil

	case "down", "j":
		ms.cursor++
		if ms.cursor >= len(ms.entries) {
			ms.cursor = 0
		}
		return ms, nil

	case "enter":
		return ms, ms.selectCmd(ms.cursor)

	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '8' {
			idx := int(s[0] - '1')
			if idx < len(ms.entries) {
				ms.cursor = idx
				return ms, ms.selectCmd(idx)
			}
		}
		return ms, nil
	}
}

func (ms menuState) selectCmd(idx int) tea.Cmd {
	action := ms.entries[idx].action
	return func() tea.Msg {
		return menuSelectMsg{action: action}
	}
}

// View renders the numbered menu with the cursor marker.
func (ms menuState) View(total int) string {
	var b strings.Builder
	b.WriteString(TitleStyle().Render("CONTACT MANAGEMENT SYSTEM"))
	fmt.Fprintf(&b, "\n%d contact(s) on file\n\n", total)

	for i, e := range ms.entries {
		marker := "  "
		if i == ms.cursor {
			marker = CursorMarker
		}
		fmt.Fprintf(&b, "%s%d. %s\n", marker, i+1, e.label)
	}
	return b.String()
}
