package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/rolodex/internal/contact"
)

// helpBarHeight is the number of lines reserved for the help bar.
const helpBarHeight = 1

// statusBarHeight is the number of lines reserved for the status line.
const statusBarHeight = 1

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// Model is the root Bubble Tea model for the contact manager TUI.
// It routes messages by mode; every mutation goes through the book and is
// followed by an asynchronous save. Save and export failures surface on
// the status line and never terminate the program.
type Model struct {
	mode         Mode
	book         *contact.Book
	saver        Saver
	exporter     Exporter
	defaultGroup string

	menu    menuState
	form    formState
	prompt  promptState
	browse  browseState
	confirm confirmState
	stats   statsState

	// pendingAdd holds the attempted add values while the user decides
	// whether a duplicate name should become an update.
	pendingAdd contact.Input

	width  int
	height int
	help   help.Model
	status string
}

// Option configures a Model.
type Option func(*Model)

// WithSaver sets the persistence collaborator invoked after each mutation.
func WithSaver(s Saver) Option {
	return func(m *Model) { m.saver = s }
}

// WithExporter sets the export collaborator.
func WithExporter(e Exporter) Option {
	return func(m *Model) { m.exporter = e }
}

// WithDefaultGroup sets the group used when an added contact has none.
func WithDefaultGroup(group string) Option {
	return func(m *Model) { m.defaultGroup = group }
}

// NewModel creates a dashboard over the given book, starting at the menu.
func NewModel(book *contact.Book, opts ...Option) Model {
	m := Model{
		mode:         ModeMenu,
		book:         book,
		defaultGroup: contact.DefaultGroup,
		menu:         newMenuState(),
		help:         help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.browse = m.browse.Resize(m.viewportWidth(), m.viewportHeight())
		return m, nil

	case menuSelectMsg:
		return m.handleMenuSelect(msg.action)

	case promptDoneMsg:
		return m.handlePromptDone(msg)

	case addSubmitMsg:
		return m.handleAddSubmit(msg.Input)

	case updateSubmitMsg:
		return m.handleUpdateSubmit(msg.Key, msg.Changes)

	case duplicateNameMsg:
		m.pendingAdd = m.form.values()
		m.confirm = confirmState{kind: confirmUpdateInstead, key: msg.Key}
		m.mode = ModeConfirm
		return m, nil

	case confirmDoneMsg:
		return m.handleConfirmDone(msg)

	case backToMenuMsg:
		m.mode = ModeMenu
		return m, nil

	case SavedMsg:
		if msg.Err != nil {
			m.status = WarningStyle().Render(fmt.Sprintf("warning: save failed: %v", msg.Err))
		}
		return m, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			m.status = WarningStyle().Render(fmt.Sprintf("warning: export failed: %v", msg.Err))
		} else {
			m.status = fmt.Sprintf("Exported %d contact(s).", msg.Count)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.routeToMode(msg)
}

// handleKey applies global bindings, then routes to the current mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()
	if s == "ctrl+c" || (s == "q" && m.mode == ModeMenu) {
		return m, m.quitCmd()
	}
	return m.routeToMode(msg)
}

// routeToMode forwards a message to the active sub-state.
func (m Model) routeToMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case ModeMenu:
		m.menu, cmd = m.menu.Update(msg)
	case ModeForm:
		m.form, cmd = m.form.Update(msg)
	case ModePrompt:
		m.prompt, cmd = m.prompt.Update(msg)
	case ModeBrowse:
		m.browse, cmd = m.browse.Update(msg)
	case ModeConfirm:
		m.confirm, cmd = m.confirm.Update(msg)
	case ModeStats:
		m.stats, cmd = m.stats.Update(msg)
	}
	return m, cmd
}

func (m Model) handleMenuSelect(action menuAction) (tea.Model, tea.Cmd) {
	m.status = ""
	switch action {
	case actionAdd:
		m.form = newAddForm(m.defaultGroup, contact.Input{}, m.book.FindKey)
		m.mode = ModeForm

	case actionSearch:
		m.prompt = newPromptState(promptSearch)
		m.mode = ModePrompt

	case actionUpdate:
		m.prompt = newPromptState(promptUpdate)
		m.mode = ModePrompt

	case actionDelete:
		m.prompt = newPromptState(promptDelete)
		m.mode = ModePrompt

	case actionList:
		m.browse = newBrowseState("ALL CONTACTS", m.book.All(), m.viewportWidth(), m.viewportHeight())
		m.mode = ModeBrowse

	case actionExport:
		return m, m.exportCmd()

	case actionStats:
		m.stats = statsState{stats: m.book.Stats(time.Now())}
		m.mode = ModeStats

	case actionQuit:
		return m, m.quitCmd()
	}
	return m, nil
}

func (m Model) handlePromptDone(msg promptDoneMsg) (tea.Model, tea.Cmd) {
	switch msg.Purpose {
	case promptSearch:
		title := "ALL CONTACTS"
		if msg.Value != "" {
			title = fmt.Sprintf("SEARCH RESULTS for %q", msg.Value)
		}
		m.browse = newBrowseState(title, m.book.Search(msg.Value), m.viewportWidth(), m.viewportHeight())
		m.mode = ModeBrowse

	case promptUpdate:
		rec, ok := m.book.Get(msg.Value)
		if !ok {
			m.status = "Contact not found."
			m.mode = ModeMenu
			return m, nil
		}
		m.form = newUpdateForm(rec, contact.Input{})
		m.mode = ModeForm

	case promptDelete:
		rec, ok := m.book.Get(msg.Value)
		if !ok {
			m.status = "Contact not found."
			m.mode = ModeMenu
			return m, nil
		}
		m.confirm = confirmState{kind: confirmDelete, key: rec.Name}
		m.mode = ModeConfirm
	}
	return m, nil
}

func (m Model) handleAddSubmit(input contact.Input) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input.Group) == "" {
		input.Group = m.defaultGroup
	}

	rec, err := m.book.Add(input)
	if err != nil {
		// The form validates field by field, so this is a late duplicate
		// or a programming error; either way report and return to the menu.
		m.status = WarningStyle().Render(err.Error())
		m.mode = ModeMenu
		return m, nil
	}

	m.status = fmt.Sprintf("Contact %q added.", rec.Name)
	m.mode = ModeMenu
	return m, m.saveCmd()
}

func (m Model) handleUpdateSubmit(key string, changes contact.Changes) (tea.Model, tea.Cmd) {
	rec, res, err := m.book.Update(key, changes)
	if err != nil {
		m.status = WarningStyle().Render(err.Error())
		m.mode = ModeMenu
		return m, nil
	}

	m.status = fmt.Sprintf("Contact %q updated.", rec.Name)
	if len(res.Skipped) > 0 {
		m.status += WarningStyle().Render(fmt.Sprintf("  (kept old %s: invalid input)", strings.Join(res.Skipped, ", ")))
	}
	m.mode = ModeMenu
	return m, m.saveCmd()
}

func (m Model) handleConfirmDone(msg confirmDoneMsg) (tea.Model, tea.Cmd) {
	switch msg.Kind {
	case confirmDelete:
		if !msg.Accepted {
			m.status = "Deletion canceled."
			m.mode = ModeMenu
			return m, nil
		}
		rec, err := m.book.Delete(m.confirm.key, true)
		if err != nil {
			m.status = WarningStyle().Render(err.Error())
			m.mode = ModeMenu
			return m, nil
		}
		m.status = fmt.Sprintf("Contact %q deleted.", rec.Name)
		m.mode = ModeMenu
		return m, m.saveCmd()

	case confirmUpdateInstead:
		if !msg.Accepted {
			// Back to the add form with its values intact.
			m.mode = ModeForm
			return m, nil
		}
		rec, ok := m.book.Get(m.confirm.key)
		if !ok {
			m.status = "Contact not found."
			m.mode = ModeMenu
			return m, nil
		}
		pending := m.pendingAdd
		pending.Name = ""
		m.form = newUpdateForm(rec, pending)
		m.mode = ModeForm
	}
	return m, nil
}

// saveCmd persists the book asynchronously. Nil when no saver is wired.
func (m Model) saveCmd() tea.Cmd {
	if m.saver == nil {
		return nil
	}
	saver, book := m.saver, m.book
	return func() tea.Msg {
		return SavedMsg{Err: saver.Save(book)}
	}
}

// exportCmd writes the export artifact asynchronously.
func (m Model) exportCmd() tea.Cmd {
	if m.exporter == nil {
		return nil
	}
	exporter := m.exporter
	records := m.book.All()
	return func() tea.Msg {
		count, err := exporter.Export(records)
		return ExportDoneMsg{Count: count, Err: err}
	}
}

// quitCmd saves one last time, then quits.
func (m Model) quitCmd() tea.Cmd {
	if save := m.saveCmd(); save != nil {
		return tea.Sequence(save, tea.Quit)
	}
	return tea.Quit
}

// viewportWidth returns the usable width for the browse viewport.
func (m Model) viewportWidth() int {
	w := m.width - borderChrome - 2
	if w < 0 {
		return 0
	}
	return w
}

// viewportHeight returns the usable height for the browse viewport,
// leaving room for the title block inside the frame.
func (m Model) viewportHeight() int {
	h := m.contentHeight() - 3
	if h < 1 {
		return 1
	}
	return h
}

// contentHeight returns the usable height inside the frame.
func (m Model) contentHeight() int {
	h := m.height - borderChrome - helpBarHeight - statusBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the active mode inside the frame, with status and help bars.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var content string
	switch m.mode {
	case ModeForm:
		content = m.form.View()
	case ModePrompt:
		content = m.prompt.View()
	case ModeBrowse:
		content = m.browse.View()
	case ModeConfirm:
		content = m.confirm.View()
	case ModeStats:
		content = m.stats.View()
	default:
		content = m.menu.View(m.book.Len())
	}

	frame := FrameStyle().
		Width(m.width - borderChrome - 2).
		Height(m.contentHeight()).
		Render(content)
	statusLine := StatusStyle().Render(m.status)
	helpView := m.help.View(HelpBindings(m.mode))

	return lipgloss.JoinVertical(lipgloss.Left, frame, statusLine, helpView)
}
