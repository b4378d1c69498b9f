package contact

import (
	"errors"
	"testing"
	"time"
)

// fixedClock returns a clock function pinned to t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func mustAdd(t *testing.T, b *Book, in Input) Record {
	t.Helper()
	rec, err := b.Add(in)
	if err != nil {
		t.Fatalf("Add(%q) error = %v", in.Name, err)
	}
	return rec
}

func TestBook_AddAndCaseInsensitiveLookup(t *testing.T) {
	// Given a book with one contact
	b := NewBook()
	mustAdd(t, b, Input{Name: "John Doe", Phone: "5551234567"})

	// When looking up with different casings
	for _, name := range []string{"John Doe", "JOHN DOE", "john doe", "  john doe  "} {
		key, ok := b.FindKey(name)

		// Then all resolve to the same stored record
		if !ok {
			t.Errorf("FindKey(%q) not found, want found", name)
			continue
		}
		if key != "John Doe" {
			t.Errorf("FindKey(%q) = %q, want %q", name, key, "John Doe")
		}
	}
}

func TestBook_AddRejectsCaseInsensitiveDuplicate(t *testing.T) {
	// Given a book with "John Doe"
	b := NewBook()
	mustAdd(t, b, Input{Name: "John Doe", Phone: "5551234567"})

	// When adding a name differing only by case
	_, err := b.Add(Input{Name: "JOHN DOE", Phone: "5559876543"})

	// Then the add is rejected as a duplicate, not inserted separately
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Add duplicate error = %v, want ErrDuplicateName", err)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestBook_AddValidation(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantErr error
	}{
		{name: "empty name", in: Input{Name: "  ", Phone: "5551234567"}, wantErr: ErrEmptyName},
		{name: "bad phone", in: Input{Name: "A", Phone: "123"}, wantErr: ErrInvalidPhone},
		{name: "bad email", in: Input{Name: "A", Phone: "5551234567", Email: "nope"}, wantErr: ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBook()
			_, err := b.Add(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Add() error = %v, want %v", err, tt.wantErr)
			}
			if b.Len() != 0 {
				t.Errorf("Len() = %d after rejected add, want 0", b.Len())
			}
		})
	}
}

func TestBook_AddDefaultsAndNormalization(t *testing.T) {
	// Given an input with a formatted phone, blank group, and blank optionals
	b := NewBook()
	rec := mustAdd(t, b, Input{Name: "Jane", Phone: "(555) 987-6543", Email: "", Address: ""})

	// Then the phone is stored as digits only
	if rec.Phone != "5559876543" {
		t.Errorf("Phone = %q, want %q", rec.Phone, "5559876543")
	}
	// And the group defaults to Other
	if rec.Group != DefaultGroup {
		t.Errorf("Group = %q, want %q", rec.Group, DefaultGroup)
	}
	// And absent optionals are nil, not empty strings
	if rec.Email != nil {
		t.Errorf("Email = %v, want nil", *rec.Email)
	}
	if rec.Address != nil {
		t.Errorf("Address = %v, want nil", *rec.Address)
	}
	// And both timestamps are set equal
	if !rec.CreatedAt.Equal(rec.UpdatedAt) {
		t.Errorf("CreatedAt = %v, UpdatedAt = %v, want equal at creation", rec.CreatedAt, rec.UpdatedAt)
	}
}

func TestBook_Search(t *testing.T) {
	// Given three contacts
	b := NewBook()
	mustAdd(t, b, Input{Name: "John Doe", Phone: "5551234567"})
	mustAdd(t, b, Input{Name: "Jane Smith", Phone: "5551234568"})
	mustAdd(t, b, Input{Name: "Johnny Appleseed", Phone: "5551234569"})

	// When searching for "john"
	got := b.Search("john")

	// Then exactly the two Johns match, in insertion order
	want := []string{"John Doe", "Johnny Appleseed"}
	if len(got) != len(want) {
		t.Fatalf("Search(john) returned %d records, want %d", len(got), len(want))
	}
	for i, rec := range got {
		if rec.Name != want[i] {
			t.Errorf("Search(john)[%d] = %q, want %q", i, rec.Name, want[i])
		}
	}
}

func TestBook_SearchEmptyTermMatchesAll(t *testing.T) {
	b := NewBook()
	mustAdd(t, b, Input{Name: "A One", Phone: "5551234567"})
	mustAdd(t, b, Input{Name: "B Two", Phone: "5551234568"})

	if got := b.Search(""); len(got) != 2 {
		t.Errorf("Search(\"\") returned %d records, want 2", len(got))
	}
}

func TestBook_UpdateInvalidPhoneKeepsOldButRefreshesTimestamp(t *testing.T) {
	// Given a contact created at t0
	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	b := NewBook()
	b.now = fixedClock(t0)
	mustAdd(t, b, Input{Name: "John Doe", Phone: "5551234567"})

	// When updating with an invalid phone at t1
	t1 := t0.Add(time.Hour)
	b.now = fixedClock(t1)
	rec, res, err := b.Update("john doe", Changes{Phone: "123"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	// Then the old phone is retained and the change reported as skipped
	if rec.Phone != "5551234567" {
		t.Errorf("Phone = %q, want old value %q", rec.Phone, "5551234567")
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != "phone" {
		t.Errorf("Skipped = %v, want [phone]", res.Skipped)
	}
	// And UpdatedAt is still refreshed
	if !rec.UpdatedAt.Equal(t1) {
		t.Errorf("UpdatedAt = %v, want %v", rec.UpdatedAt, t1)
	}
	if !rec.CreatedAt.Equal(t0) {
		t.Errorf("CreatedAt = %v, want unchanged %v", rec.CreatedAt, t0)
	}
}

func TestBook_UpdateFields(t *testing.T) {
	b := NewBook()
	mustAdd(t, b, Input{Name: "Jane", Phone: "5551234567", Email: "jane@example.com"})

	t.Run("blank fields leave attributes untouched", func(t *testing.T) {
		rec, res, err := b.Update("Jane", Changes{})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if len(res.Skipped) != 0 {
			t.Errorf("Skipped = %v, want none", res.Skipped)
		}
		if rec.Phone != "5551234567" || rec.Email == nil || *rec.Email != "jane@example.com" {
			t.Errorf("record changed by blank update: %+v", rec)
		}
	})

	t.Run("invalid email skipped with warning", func(t *testing.T) {
		rec, res, err := b.Update("Jane", Changes{Email: "broken"})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if len(res.Skipped) != 1 || res.Skipped[0] != "email" {
			t.Errorf("Skipped = %v, want [email]", res.Skipped)
		}
		if rec.Email == nil || *rec.Email != "jane@example.com" {
			t.Errorf("Email changed despite invalid input: %v", rec.Email)
		}
	})

	t.Run("address and group accepted unconditionally", func(t *testing.T) {
		rec, _, err := b.Update("Jane", Changes{Address: "1 Main St", Group: "Work"})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if rec.Address == nil || *rec.Address != "1 Main St" {
			t.Errorf("Address = %v, want 1 Main St", rec.Address)
		}
		if rec.Group != "Work" {
			t.Errorf("Group = %q, want Work", rec.Group)
		}
	})

	t.Run("new phone normalized", func(t *testing.T) {
		rec, _, err := b.Update("Jane", Changes{Phone: "(555) 000-1111"})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if rec.Phone != "5550001111" {
			t.Errorf("Phone = %q, want 5550001111", rec.Phone)
		}
	})
}

func TestBook_UpdateNotFound(t *testing.T) {
	b := NewBook()
	_, _, err := b.Update("Nobody", Changes{Phone: "5551234567"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(Nobody) error = %v, want ErrNotFound", err)
	}
}

func TestBook_Delete(t *testing.T) {
	t.Run("unconfirmed leaves store unchanged", func(t *testing.T) {
		b := NewBook()
		mustAdd(t, b, Input{Name: "John Doe", Phone: "5551234567"})

		_, err := b.Delete("john doe", false)

		if !errors.Is(err, ErrNotConfirmed) {
			t.Errorf("Delete unconfirmed error = %v, want ErrNotConfirmed", err)
		}
		if b.Len() != 1 {
			t.Errorf("Len() = %d after canceled delete, want 1", b.Len())
		}
	})

	t.Run("confirmed removes exactly that record", func(t *testing.T) {
		b := NewBook()
		mustAdd(t, b, Input{Name: "John Doe", Phone: "5551234567"})
		mustAdd(t, b, Input{Name: "Jane Smith", Phone: "5551234568"})

		rec, err := b.Delete("JOHN DOE", true)

		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if rec.Name != "John Doe" {
			t.Errorf("deleted record = %q, want John Doe", rec.Name)
		}
		if _, ok := b.Get("John Doe"); ok {
			t.Error("John Doe still present after delete")
		}
		if _, ok := b.Get("Jane Smith"); !ok {
			t.Error("Jane Smith removed by deleting John Doe")
		}
	})

	t.Run("not found", func(t *testing.T) {
		b := NewBook()
		_, err := b.Delete("Nobody", true)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete(Nobody) error = %v, want ErrNotFound", err)
		}
	})
}

func TestBook_Stats(t *testing.T) {
	// Given three contacts in groups Friends, Friends, Work, two updated now
	// and one updated 10 days ago
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	b := NewBook()
	b.now = fixedClock(now)
	mustAdd(t, b, Input{Name: "A", Phone: "5551234567", Group: "Friends"})
	mustAdd(t, b, Input{Name: "B", Phone: "5551234568", Group: "Friends"})

	b.now = fixedClock(now.Add(-10 * 24 * time.Hour))
	mustAdd(t, b, Input{Name: "C", Phone: "5551234569", Group: "Work"})

	// When computing statistics at now
	stats := b.Stats(now)

	// Then totals, sorted group counts, and the recent count are reported
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	wantGroups := []GroupCount{{Group: "Friends", Count: 2}, {Group: "Work", Count: 1}}
	if len(stats.Groups) != len(wantGroups) {
		t.Fatalf("Groups = %v, want %v", stats.Groups, wantGroups)
	}
	for i, gc := range stats.Groups {
		if gc != wantGroups[i] {
			t.Errorf("Groups[%d] = %v, want %v", i, gc, wantGroups[i])
		}
	}
	if stats.RecentlyUpdated != 2 {
		t.Errorf("RecentlyUpdated = %d, want 2", stats.RecentlyUpdated)
	}
}

func TestBook_StatsSevenDayBoundaryInclusive(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	b := NewBook()

	b.now = fixedClock(now.Add(-7 * 24 * time.Hour))
	mustAdd(t, b, Input{Name: "Edge", Phone: "5551234567"})

	if got := b.Stats(now).RecentlyUpdated; got != 1 {
		t.Errorf("RecentlyUpdated at exactly 7 days = %d, want 1 (inclusive)", got)
	}
}

func TestBook_PutPreservesRecordAndOrder(t *testing.T) {
	// Given records inserted via Put (the load path)
	b := NewBook()
	email := "x@example.com"
	b.Put(Record{Name: "Zed", Phone: "5551234567", Email: &email, Group: "Work"})
	b.Put(Record{Name: "Amy", Phone: "5551234568", Group: "Friends"})

	// Then insertion order is preserved, not sorted
	all := b.All()
	if len(all) != 2 || all[0].Name != "Zed" || all[1].Name != "Amy" {
		t.Errorf("All() order = %v, want [Zed Amy]", []string{all[0].Name, all[1].Name})
	}

	// And case-insensitive resolution works over loaded records
	if _, ok := b.FindKey("zed"); !ok {
		t.Error("FindKey(zed) not found after Put")
	}

	// When Put replaces with a differently-cased name
	b.Put(Record{Name: "ZED", Phone: "5550000000", Group: "Work"})

	// Then there is still a single record under the new casing
	if b.Len() != 2 {
		t.Errorf("Len() = %d after re-Put, want 2", b.Len())
	}
	rec, ok := b.Get("zed")
	if !ok || rec.Name != "ZED" || rec.Phone != "5550000000" {
		t.Errorf("Get(zed) = %+v, ok=%v, want replaced record named ZED", rec, ok)
	}
}
