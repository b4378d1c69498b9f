// Package dashboard implements the interactive contact manager TUI:
// a numbered menu routing to add/update forms, search, delete
// confirmation, a contact list view, and statistics.
package dashboard

import "github.com/smileynet/rolodex/internal/contact"

// Mode represents the current dashboard view mode.
type Mode int

const (
	ModeMenu    Mode = iota // Main menu with numbered actions.
	ModeForm                // Add or update form with field inputs.
	ModePrompt              // Single-line name/term prompt.
	ModeBrowse              // Contact list or search results.
	ModeConfirm             // Yes/no confirmation screen.
	ModeStats               // Statistics view.
)

// --- Consumer-side interfaces ---

// Saver persists the book after each completed mutation.
type Saver interface {
	Save(book *contact.Book) error
}

// Exporter writes the export artifact and returns how many records it wrote.
type Exporter interface {
	Export(records []contact.Record) (int, error)
}

// --- tea.Msg types ---

// SavedMsg carries the result of an asynchronous save.
type SavedMsg struct {
	Err error
}

// ExportDoneMsg carries the result of an export.
type ExportDoneMsg struct {
	Count int
	Err   error
}

// addSubmitMsg is emitted by the form when an add is submitted.
type addSubmitMsg struct {
	Input contact.Input
}

// updateSubmitMsg is emitted by the form when an update is submitted.
type updateSubmitMsg struct {
	Key     string
	Changes contact.Changes
}

// promptDoneMsg is emitted when a single-line prompt is accepted.
type promptDoneMsg struct {
	Purpose promptPurpose
	Value   string
}

// confirmDoneMsg is emitted when a confirmation screen is answered.
type confirmDoneMsg struct {
	Kind     confirmKind
	Accepted bool
}
