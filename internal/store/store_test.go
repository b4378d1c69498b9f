package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smileynet/rolodex/internal/contact"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(
		filepath.Join(dir, "contacts.json"),
		filepath.Join(dir, "contacts_backup.json"),
	)
}

func TestFileStore_RoundTrip(t *testing.T) {
	// Given a book with optionals both present and absent
	s := newTestStore(t)
	book := contact.NewBook()
	email := "jane@example.com"
	addr := "1 Main St"
	created := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	book.Put(contact.Record{
		Name: "Jane Smith", Phone: "5551234567",
		Email: &email, Address: &addr, Group: "Work",
		CreatedAt: created, UpdatedAt: created.Add(time.Hour),
	})
	book.Put(contact.Record{
		Name: "John Doe", Phone: "15559876543", Group: "Friends",
		CreatedAt: created, UpdatedAt: created,
	})

	// When saving and loading back
	if err := s.Save(book); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Then every record round-trips with all fields intact
	if loaded.Len() != 2 {
		t.Fatalf("loaded Len() = %d, want 2", loaded.Len())
	}

	jane, ok := loaded.Get("jane smith")
	if !ok {
		t.Fatal("Get(jane smith) not found; case-insensitive resolution lost")
	}
	if jane.Name != "Jane Smith" || jane.Phone != "5551234567" || jane.Group != "Work" {
		t.Errorf("Jane = %+v, want original fields", jane)
	}
	if jane.Email == nil || *jane.Email != email {
		t.Errorf("Jane.Email = %v, want %q", jane.Email, email)
	}
	if jane.Address == nil || *jane.Address != addr {
		t.Errorf("Jane.Address = %v, want %q", jane.Address, addr)
	}
	if !jane.CreatedAt.Equal(created) || !jane.UpdatedAt.Equal(created.Add(time.Hour)) {
		t.Errorf("Jane timestamps = %v/%v, want %v/%v",
			jane.CreatedAt, jane.UpdatedAt, created, created.Add(time.Hour))
	}

	john, ok := loaded.Get("John Doe")
	if !ok {
		t.Fatal("Get(John Doe) not found")
	}
	if john.Email != nil {
		t.Errorf("John.Email = %v, want nil (absent stays absent)", *john.Email)
	}
	if john.Address != nil {
		t.Errorf("John.Address = %v, want nil", *john.Address)
	}

	// And file order becomes insertion order
	all := loaded.All()
	if all[0].Name != "Jane Smith" || all[1].Name != "John Doe" {
		t.Errorf("loaded order = [%s %s], want [Jane Smith John Doe]", all[0].Name, all[1].Name)
	}
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	// Given no file on disk
	s := newTestStore(t)

	// When loading
	book, err := s.Load()

	// Then an empty book is returned without error (expected first run)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if book.Len() != 0 {
		t.Errorf("Len() = %d, want 0", book.Len())
	}
}

func TestFileStore_LoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "this is not json"},
		{name: "top level array", content: `[{"phone": "5551234567"}]`},
		{name: "top level string", content: `"hello"`},
		{name: "truncated object", content: `{"Jane": {"phone": "555`},
		{name: "bad timestamp", content: `{"Jane": {"phone": "5551234567", "email": null, "address": null, "group": "Other", "created_at": "yesterday", "updated_at": "yesterday"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given a malformed file
			s := newTestStore(t)
			if err := os.WriteFile(s.Path(), []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			// When loading
			book, err := s.Load()

			// Then the condition is reported but an empty, usable book comes back
			if err == nil {
				t.Error("Load() error = nil, want a reported parse failure")
			}
			if book == nil || book.Len() != 0 {
				t.Errorf("book = %v, want empty book", book)
			}
		})
	}
}

func TestFileStore_SaveRotatesBackup(t *testing.T) {
	s := newTestStore(t)
	backupPath := strings.Replace(s.Path(), "contacts.json", "contacts_backup.json", 1)

	book := contact.NewBook()
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	book.Put(contact.Record{Name: "First", Phone: "5551234567", Group: "Other", CreatedAt: now, UpdatedAt: now})

	// Given a first save with no prior file
	if err := s.Save(book); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Then no backup exists yet
	if _, err := os.Stat(backupPath); !os.IsNotExist(err) {
		t.Errorf("backup exists after first save, want none (stat err = %v)", err)
	}

	firstBytes, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	// When saving again with more contacts
	book.Put(contact.Record{Name: "Second", Phone: "5559876543", Group: "Other", CreatedAt: now, UpdatedAt: now})
	if err := s.Save(book); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	// Then the backup is a byte-for-byte copy of the previous primary file
	backupBytes, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if string(backupBytes) != string(firstBytes) {
		t.Errorf("backup = %q, want previous primary contents %q", backupBytes, firstBytes)
	}

	// And a third save overwrites the backup (single generation)
	secondBytes, _ := os.ReadFile(s.Path())
	if err := s.Save(book); err != nil {
		t.Fatalf("third Save() error = %v", err)
	}
	backupBytes, _ = os.ReadFile(backupPath)
	if string(backupBytes) != string(secondBytes) {
		t.Error("backup not overwritten by the most recent save")
	}
}

func TestFileStore_SaveEmptyBook(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(contact.NewBook()); err != nil {
		t.Fatalf("Save(empty) error = %v", err)
	}

	book, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if book.Len() != 0 {
		t.Errorf("Len() = %d, want 0", book.Len())
	}
}

func TestFileStore_SavePreservesKeyOrder(t *testing.T) {
	// Given contacts inserted in non-alphabetical order
	s := newTestStore(t)
	book := contact.NewBook()
	now := time.Now()
	for _, name := range []string{"Zed", "Amy", "Mia"} {
		book.Put(contact.Record{Name: name, Phone: "5551234567", Group: "Other", CreatedAt: now, UpdatedAt: now})
	}
	if err := s.Save(book); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Then the file lists keys in insertion order
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	zed := strings.Index(text, `"Zed"`)
	amy := strings.Index(text, `"Amy"`)
	mia := strings.Index(text, `"Mia"`)
	if zed < 0 || amy < 0 || mia < 0 || !(zed < amy && amy < mia) {
		t.Errorf("key order in file = Zed@%d Amy@%d Mia@%d, want insertion order", zed, amy, mia)
	}
}

func TestFileStore_LoadZonelessTimestamps(t *testing.T) {
	// Given a file written with zone-less ISO-8601 timestamps
	s := newTestStore(t)
	content := `{"Jane": {"phone": "5551234567", "email": null, "address": null, "group": "Other", "created_at": "2026-08-01T09:30:00.123456", "updated_at": "2026-08-01T10:30:00"}}`
	if err := os.WriteFile(s.Path(), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// When loading
	book, err := s.Load()

	// Then they parse
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	rec, ok := book.Get("Jane")
	if !ok {
		t.Fatal("Get(Jane) not found")
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Errorf("timestamps = %v/%v, want parsed values", rec.CreatedAt, rec.UpdatedAt)
	}
}
