// Package export renders the contact book as a CSV artifact.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/smileynet/rolodex/internal/contact"
)

// header is the fixed first row of every export.
var header = []string{"Name", "Phone", "Email", "Address", "Group", "Created At", "Updated At"}

// WriteCSV writes the header row and one row per record to w, in the order
// given. Absent email and address render as empty cells, not a null marker.
func WriteCSV(w io.Writer, records []contact.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: writing header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Name,
			rec.Phone,
			orEmpty(rec.Email),
			orEmpty(rec.Address),
			rec.Group,
			rec.CreatedAt.Format(time.RFC3339Nano),
			rec.UpdatedAt.Format(time.RFC3339Nano),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: writing row for %q: %w", rec.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flushing: %w", err)
	}
	return nil
}

// ToFile writes the records as CSV at path and returns the number exported.
func ToFile(path string, records []contact.Record) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("export: creating %s: %w", path, err)
	}

	if err := WriteCSV(f, records); err != nil {
		_ = f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("export: closing %s: %w", path, err)
	}
	return len(records), nil
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
