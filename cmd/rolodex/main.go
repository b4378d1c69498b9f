package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/rolodex/internal/config"
	"github.com/smileynet/rolodex/internal/contact"
	"github.com/smileynet/rolodex/internal/dashboard"
	"github.com/smileynet/rolodex/internal/export"
	"github.com/smileynet/rolodex/internal/store"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for rolodex.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Tui     TuiCmd           `cmd:"" default:"1" help:"Open the interactive contact manager TUI."`
	Add     AddCmd           `cmd:"" help:"Add a contact."`
	Search  SearchCmd        `cmd:"" help:"Search contacts by name."`
	List    ListCmd          `cmd:"" help:"List all contacts."`
	Update  UpdateCmd        `cmd:"" help:"Update an existing contact."`
	Delete  DeleteCmd        `cmd:"" help:"Delete a contact."`
	Export  ExportCmd        `cmd:"" help:"Export all contacts to CSV."`
	Stats   StatsCmd         `cmd:"" help:"Show contact statistics."`
}

// bookStore abstracts contact persistence for testing.
type bookStore interface {
	Load() (*contact.Book, error)
	Save(book *contact.Book) error
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/rolodex/config.yaml"),
		".rolodex/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadBook opens the store and loads the book. A corrupt data file is
// reported as a warning and treated as an empty book, so a bad file never
// locks the user out; the backup still holds the previous generation.
func loadBook(w io.Writer, st bookStore) *contact.Book {
	book, err := st.Load()
	if err != nil {
		_, _ = fmt.Fprintf(w, "warning: could not read contacts: %v (starting empty)\n", err)
	}
	return book
}

// csvExporter adapts export.ToFile to the dashboard.Exporter interface.
type csvExporter struct {
	path string
}

func (e csvExporter) Export(records []contact.Record) (int, error) {
	return export.ToFile(e.path, records)
}

// --- Tui command ---

// TuiCmd opens the interactive contact manager TUI.
type TuiCmd struct{}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the TUI.
func (t *TuiCmd) Run() error {
	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !isTTY {
		return fmt.Errorf("tui: requires a terminal (TTY); use the subcommands for scripting")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	st := store.NewFileStore(cfg.Storage.Path, cfg.Storage.BackupPath)
	book := loadBook(os.Stderr, st)

	m := dashboard.NewModel(book,
		dashboard.WithSaver(st),
		dashboard.WithExporter(csvExporter{path: cfg.Export.Path}),
		dashboard.WithDefaultGroup(cfg.Contacts.DefaultGroup),
	)

	prog := tea.NewProgram(m, tea.WithAltScreen())
	return t.run(isTTY, prog)
}

// run executes the tea program, enabling testable wiring.
func (t *TuiCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("tui: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

// --- Add command ---

// AddCmd adds a single contact from the command line.
type AddCmd struct {
	Name    string `arg:"" help:"Contact name."`
	Phone   string `help:"Phone number (10-11 digits, punctuation ignored)." required:""`
	Email   string `help:"Email address." default:""`
	Address string `help:"Postal address." default:""`
	Group   string `help:"Group name." default:""`
}

// Run executes the add command.
func (a *AddCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	st := store.NewFileStore(cfg.Storage.Path, cfg.Storage.BackupPath)
	return a.run(os.Stdout, st, cfg.Contacts.DefaultGroup)
}

// run executes the add with the given store, enabling testable wiring.
func (a *AddCmd) run(w io.Writer, st bookStore, defaultGroup string) error {
	book := loadBook(w, st)

	group := a.Group
	if group == "" {
		group = defaultGroup
	}

	rec, err := book.Add(contact.Input{
		Name:    a.Name,
		Phone:   a.Phone,
		Email:   a.Email,
		Address: a.Address,
		Group:   group,
	})
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	if err := st.Save(book); err != nil {
		return fmt.Errorf("add: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Added %q (%s)\n", rec.Name, rec.Group)
	return nil
}

// --- Search command ---

// SearchCmd searches contacts by partial, case-insensitive name match.
type SearchCmd struct {
	Term string `arg:"" optional:"" help:"Name fragment to search for. Empty lists everything."`
}

// Run executes the search command.
func (s *SearchCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	return s.run(os.Stdout, store.NewFileStore(cfg.Storage.Path, cfg.Storage.BackupPath))
}

// run executes the search with the given store, enabling testable wiring.
func (s *SearchCmd) run(w io.Writer, st bookStore) error {
	book := loadBook(w, st)

	results := book.Search(s.Term)
	if len(results) == 0 {
		_, _ = fmt.Fprintf(w, "No contacts found for %q.\n", s.Term)
		return nil
	}

	printRecords(w, results)
	return nil
}

// --- List command ---

// ListCmd lists every contact in insertion order.
type ListCmd struct{}

// Run executes the list command.
func (l *ListCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return l.run(os.Stdout, store.NewFileStore(cfg.Storage.Path, cfg.Storage.BackupPath))
}

// run executes the list with the given store, enabling testable wiring.
func (l *ListCmd) run(w io.Writer, st bookStore) error {
	book := loadBook(w, st)

	records := book.All()
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "No contacts yet.")
		return nil
	}

	printRecords(w, records)
	return nil
}

// --- Update command ---

// UpdateCmd updates fields of an existing contact. Unset flags keep the
// current values; invalid phone or email values are skipped with a warning
// rather than failing the whole update.
type UpdateCmd struct {
	Name    string `arg:"" help:"Name of the contact to update (case-insensitive)."`
	Phone   string `help:"New phone number." default:""`
	Email   string `help:"New email address." default:""`
	Address string `help:"New postal address." default:""`
	Group   string `help:"New group name." default:""`
}

// Run executes the update command.
func (u *UpdateCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return u.run(os.Stdout, store.NewFileStore(cfg.Storage.Path, cfg.Storage.BackupPath))
}

// run executes the update with the given store, enabling testable wiring.
func (u *UpdateCmd) run(w io.Writer, st bookStore) error {
	book := loadBook(w, st)

	rec, res, err := book.Update(u.Name, contact.Changes{
		Phone:   u.Phone,
		Email:   u.Email,
		Address: u.Address,
		Group:   u.Group,
	})
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	for _, field := range res.Skipped {
		_, _ = fmt.Fprintf(w, "warning: invalid %s, keeping old value\n", field)
	}

	if err := st.Save(book); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Updated %q\n", rec.Name)
	return nil
}

// --- Delete command ---

// DeleteCmd deletes a contact. Requires --yes; there is no interactive
// confirmation in scripting mode.
type DeleteCmd struct {
	Name string `arg:"" help:"Name of the contact to delete (case-insensitive)."`
	Yes  bool   `help:"Confirm the deletion." default:"false"`
}

// Run executes the delete command.
func (d *DeleteCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return d.run(os.Stdout, store.NewFileStore(cfg.Storage.Path, cfg.Storage.BackupPath))
}

// run executes the delete with the given store, enabling testable wiring.
func (d *DeleteCmd) run(w io.Writer, st bookStore) error {
	book := loadBook(w, st)

	rec, err := book.Delete(d.Name, d.Yes)
	if err != nil {
		if errors.Is(err, contact.ErrNotConfirmed) {
			return fmt.Errorf("delete: %q exists; pass --yes to confirm: %w", d.Name, err)
		}
		return fmt.Errorf("delete: %w", err)
	}

	if err := st.Save(book); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Deleted %q\n", rec.Name)
	return nil
}

// --- Export command ---

// ExportCmd exports all contacts to a CSV file.
type ExportCmd struct {
	Output string `help:"Output path. Defaults to the configured export path." default:""`
}

// Run executes the export command.
func (e *ExportCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	path := e.Output
	if path == "" {
		path = cfg.Export.Path
	}
	st := store.NewFileStore(cfg.Storage.Path, cfg.Storage.BackupPath)
	return e.run(os.Stdout, st, csvExporter{path: path}, path)
}

// recordExporter abstracts CSV export for testing.
type recordExporter interface {
	Export(records []contact.Record) (int, error)
}

// run executes the export with the given store and exporter, enabling testable wiring.
func (e *ExportCmd) run(w io.Writer, st bookStore, exp recordExporter, path string) error {
	book := loadBook(w, st)

	count, err := exp.Export(book.All())
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Exported %d contact(s) to %s\n", count, path)
	return nil
}

// --- Stats command ---

// StatsCmd prints contact statistics.
type StatsCmd struct{}

// Run executes the stats command.
func (s *StatsCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	return s.run(os.Stdout, store.NewFileStore(cfg.Storage.Path, cfg.Storage.BackupPath), time.Now())
}

// run executes the stats with the given store, enabling testable wiring.
func (s *StatsCmd) run(w io.Writer, st bookStore, now time.Time) error {
	book := loadBook(w, st)
	stats := book.Stats(now)

	_, _ = fmt.Fprintf(w, "Total contacts: %d\n", stats.Total)
	if len(stats.Groups) > 0 {
		_, _ = fmt.Fprintln(w, "By group:")
		for _, g := range stats.Groups {
			_, _ = fmt.Fprintf(w, "  %s: %d\n", g.Group, g.Count)
		}
	}
	_, _ = fmt.Fprintf(w, "Updated in the last 7 days: %d\n", stats.RecentlyUpdated)
	return nil
}

// printRecords prints numbered contact blocks in insertion order.
func printRecords(w io.Writer, records []contact.Record) {
	for i, rec := range records {
		_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, rec.Name)
		_, _ = fmt.Fprintf(w, "   Phone: %s\n", rec.Phone)
		if rec.Email != nil {
			_, _ = fmt.Fprintf(w, "   Email: %s\n", *rec.Email)
		}
		if rec.Address != nil {
			_, _ = fmt.Fprintf(w, "   Address: %s\n", *rec.Address)
		}
		_, _ = fmt.Fprintf(w, "   Group: %s\n", rec.Group)
		_, _ = fmt.Fprintf(w, "   Updated: %s\n", rec.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

// Exit codes.
const (
	exitSuccess = 0
	exitData    = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code. Validation and
// lookup failures are data errors; everything else is a setup problem.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, data := range []error{
		contact.ErrEmptyName,
		contact.ErrDuplicateName,
		contact.ErrNotFound,
		contact.ErrInvalidPhone,
		contact.ErrInvalidEmail,
		contact.ErrNotConfirmed,
	} {
		if errors.Is(err, data) {
			return exitData
		}
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, kong.Vars{"version": version + " " + commit + " " + date})
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
