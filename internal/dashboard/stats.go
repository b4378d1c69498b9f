package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/rolodex/internal/contact"
)

// statsState shows the statistics snapshot taken when the view was opened.
type statsState struct {
	stats contact.Statistics
}

// Update returns to the menu on any key.
func (ss statsState) Update(msg tea.Msg) (statsState, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return ss, func() tea.Msg { return backToMenuMsg{} }
	}
	return ss, nil
}

// View renders totals, per-group counts, and the recently-updated count.
func (ss statsState) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle().Render("STATISTICS"))
	fmt.Fprintf(&b, "\n\nTotal contacts: %d\n", ss.stats.Total)

	if len(ss.stats.Groups) > 0 {
		b.WriteString("Contacts by group:\n")
		for _, gc := range ss.stats.Groups {
			fmt.Fprintf(&b, "  %s: %d contact(s)\n", GroupBadge(gc.Group), gc.Count)
		}
	}

	fmt.Fprintf(&b, "Recently updated (last 7 days): %d\n", ss.stats.RecentlyUpdated)
	b.WriteString("\nPress any key to return to the menu.")
	return b.String()
}
