package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/rolodex/internal/contact"
)

// browseState shows a scrollable rendering of contact records, either the
// whole book or the results of a search.
type browseState struct {
	title    string
	records  []contact.Record
	viewport viewport.Model
}

func newBrowseState(title string, records []contact.Record, width, height int) browseState {
	bs := browseState{title: title, records: records}
	bs.viewport = viewport.New(width, height)
	bs.viewport.SetContent(renderRecords(records))
	return bs
}

// Resize adjusts the viewport to a new window size.
func (bs browseState) Resize(width, height int) browseState {
	bs.viewport.Width = width
	bs.viewport.Height = height
	return bs
}

// Update processes messages for the list view.
func (bs browseState) Update(msg tea.Msg) (browseState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q":
			return bs, func() tea.Msg { return backToMenuMsg{} }
		}
	}

	var cmd tea.Cmd
	bs.viewport, cmd = bs.viewport.Update(msg)
	return bs, cmd
}

// View renders the title line and the record viewport.
func (bs browseState) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle().Render(bs.title))
	fmt.Fprintf(&b, "\n%d contact(s)\n\n", len(bs.records))
	if len(bs.records) == 0 {
		b.WriteString("No contacts found.\n")
		return b.String()
	}
	b.WriteString(bs.viewport.View())
	return b.String()
}

// renderRecords formats records the way the terminal report does: one block
// per contact, optional fields shown only when present.
func renderRecords(records []contact.Record) string {
	var b strings.Builder
	for i, rec := range records {
		fmt.Fprintf(&b, "%d. %s  %s\n", i+1, rec.Name, GroupBadge(rec.Group))
		fmt.Fprintf(&b, "   Phone: %s\n", rec.Phone)
		if rec.Email != nil {
			fmt.Fprintf(&b, "   Email: %s\n", *rec.Email)
		}
		if rec.Address != nil {
			fmt.Fprintf(&b, "   Address: %s\n", *rec.Address)
		}
		fmt.Fprintf(&b, "   Created: %s   Updated: %s\n", rec.CreatedAt.Format("2006-01-02 15:04"), rec.UpdatedAt.Format("2006-01-02 15:04"))
		if i < len(records)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
