// Package store persists the contact book to the filesystem as a
// human-readable JSON mapping with a single-generation backup.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smileynet/rolodex/internal/contact"
)

// FileStore reads and writes the contact book at a fixed path. Before each
// save the previous file's bytes are copied verbatim to the backup path, so
// exactly one prior generation is retained.
//
// The backup-then-overwrite sequence is deliberately not atomic: a crash
// between the two writes leaves the old primary alongside an identical
// backup. That gap is accepted for a single-user offline tool.
type FileStore struct {
	path       string
	backupPath string
}

// NewFileStore creates a FileStore using the given primary and backup paths.
func NewFileStore(path, backupPath string) *FileStore {
	return &FileStore{path: path, backupPath: backupPath}
}

// Path returns the primary file path.
func (s *FileStore) Path() string {
	return s.path
}

// recordJSON is the on-disk shape of one contact. Email and address are
// null when absent, never the empty string.
type recordJSON struct {
	Phone     string  `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	Group     string  `json:"group"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// Load reads the book from the primary file. A missing file is the expected
// first-run state and yields an empty book with no error. An unreadable or
// malformed file also yields an empty book, with a non-nil error the caller
// should report; the process carries on either way.
func (s *FileStore) Load() (*contact.Book, error) {
	book := contact.NewBook()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return book, nil
		}
		return book, fmt.Errorf("store: reading %s: %w", s.path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	// The top level must be a JSON object mapping name to record;
	// anything else is treated the same as a missing file.
	tok, err := dec.Token()
	if err != nil {
		return contact.NewBook(), fmt.Errorf("store: parsing %s: %w", s.path, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return contact.NewBook(), fmt.Errorf("store: %s: top level is not an object", s.path)
	}

	// Decoding key by key keeps the file's insertion order, which a plain
	// map unmarshal would lose.
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return contact.NewBook(), fmt.Errorf("store: parsing %s: %w", s.path, err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return contact.NewBook(), fmt.Errorf("store: %s: unexpected key token %v", s.path, keyTok)
		}

		var rj recordJSON
		if err := dec.Decode(&rj); err != nil {
			return contact.NewBook(), fmt.Errorf("store: parsing %s: record %q: %w", s.path, name, err)
		}

		rec, err := fromJSON(name, rj)
		if err != nil {
			return contact.NewBook(), fmt.Errorf("store: %s: record %q: %w", s.path, name, err)
		}
		book.Put(rec)
	}

	return book, nil
}

// Save writes the book to the primary file, first copying the existing
// file's contents to the backup path. Failures are returned, never fatal;
// the in-memory book remains the source of truth for the session.
func (s *FileStore) Save(book *contact.Book) error {
	if prev, err := os.ReadFile(s.path); err == nil {
		if err := writeFile(s.backupPath, prev); err != nil {
			return fmt.Errorf("store: writing backup %s: %w", s.backupPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: reading %s for backup: %w", s.path, err)
	}

	data, err := encode(book)
	if err != nil {
		return fmt.Errorf("store: marshaling: %w", err)
	}
	if err := writeFile(s.path, data); err != nil {
		return fmt.Errorf("store: writing %s: %w", s.path, err)
	}
	return nil
}

// writeFile writes data at path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// encode renders the book as an indented JSON object with keys in the
// book's insertion order. encoding/json sorts map keys, so the object is
// assembled by hand around per-record MarshalIndent.
func encode(book *contact.Book) ([]byte, error) {
	recs := book.All()
	if len(recs) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, rec := range recs {
		nameJSON, err := json.Marshal(rec.Name)
		if err != nil {
			return nil, err
		}
		recJSON, err := json.MarshalIndent(toJSON(rec), "  ", "  ")
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(nameJSON)
		buf.WriteString(": ")
		buf.Write(recJSON)
		if i < len(recs)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func toJSON(rec contact.Record) recordJSON {
	return recordJSON{
		Phone:     rec.Phone,
		Email:     rec.Email,
		Address:   rec.Address,
		Group:     rec.Group,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: rec.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func fromJSON(name string, rj recordJSON) (contact.Record, error) {
	created, err := parseTimestamp(rj.CreatedAt)
	if err != nil {
		return contact.Record{}, fmt.Errorf("created_at: %w", err)
	}
	updated, err := parseTimestamp(rj.UpdatedAt)
	if err != nil {
		return contact.Record{}, fmt.Errorf("updated_at: %w", err)
	}
	return contact.Record{
		Name:      name,
		Phone:     rj.Phone,
		Email:     rj.Email,
		Address:   rj.Address,
		Group:     rj.Group,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

// parseTimestamp accepts RFC 3339 timestamps and the zone-less ISO-8601
// variant some earlier exports used.
func parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05.999999999", raw)
}
