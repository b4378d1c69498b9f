package contact

import (
	"sort"
	"strings"
	"time"
)

// Book is the in-memory contact store. Records are keyed by name with
// case-insensitive resolution; insertion order is kept so listings and
// search results are deterministic.
//
// A Book is not safe for concurrent use. The tool is single-process and
// synchronous, so no locking is needed.
type Book struct {
	records map[string]Record
	order   []string
	now     func() time.Time
}

// NewBook returns an empty Book.
func NewBook() *Book {
	return &Book{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

// Len returns the number of contacts in the book.
func (b *Book) Len() int {
	return len(b.order)
}

// FindKey returns the exact stored key matching name case-insensitively.
// The scan is linear over all keys; fine at personal contact list scale.
func (b *Book) FindKey(name string) (string, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	for _, key := range b.order {
		if strings.ToLower(key) == target {
			return key, true
		}
	}
	return "", false
}

// Get returns the record for name, resolved case-insensitively.
func (b *Book) Get(name string) (Record, bool) {
	key, ok := b.FindKey(name)
	if !ok {
		return Record{}, false
	}
	return b.records[key], true
}

// Add inserts a new contact. It returns ErrEmptyName, ErrDuplicateName,
// ErrInvalidPhone, or ErrInvalidEmail when the input does not validate;
// all add-time validation failures are blocking.
func (b *Book) Add(in Input) (Record, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Record{}, ErrEmptyName
	}
	if _, exists := b.FindKey(name); exists {
		return Record{}, ErrDuplicateName
	}

	phone, ok := ValidatePhone(in.Phone)
	if !ok {
		return Record{}, ErrInvalidPhone
	}

	var email *string
	if e := strings.TrimSpace(in.Email); e != "" {
		if !ValidateEmail(e) {
			return Record{}, ErrInvalidEmail
		}
		email = &e
	}

	var address *string
	if a := strings.TrimSpace(in.Address); a != "" {
		address = &a
	}

	group := strings.TrimSpace(in.Group)
	if group == "" {
		group = DefaultGroup
	}

	now := b.now()
	rec := Record{
		Name:      name,
		Phone:     phone,
		Email:     email,
		Address:   address,
		Group:     group,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.records[name] = rec
	b.order = append(b.order, name)
	return rec, nil
}

// Update applies the non-blank fields of ch to the named contact.
// Invalid phone or email values are skipped with a warning in the result
// rather than failing the update; the prior value is retained. UpdatedAt is
// refreshed whenever the contact was found, even if every change was skipped.
func (b *Book) Update(name string, ch Changes) (Record, UpdateResult, error) {
	key, ok := b.FindKey(name)
	if !ok {
		return Record{}, UpdateResult{}, ErrNotFound
	}

	rec := b.records[key]
	var res UpdateResult

	if p := strings.TrimSpace(ch.Phone); p != "" {
		if normalized, valid := ValidatePhone(p); valid {
			rec.Phone = normalized
		} else {
			res.Skipped = append(res.Skipped, "phone")
		}
	}
	if e := strings.TrimSpace(ch.Email); e != "" {
		if ValidateEmail(e) {
			rec.Email = &e
		} else {
			res.Skipped = append(res.Skipped, "email")
		}
	}
	if a := strings.TrimSpace(ch.Address); a != "" {
		rec.Address = &a
	}
	if g := strings.TrimSpace(ch.Group); g != "" {
		rec.Group = g
	}

	rec.UpdatedAt = b.now()
	b.records[key] = rec
	return rec, res, nil
}

// Delete removes the named contact. Without confirmation it returns
// ErrNotConfirmed and leaves the book unchanged.
func (b *Book) Delete(name string, confirmed bool) (Record, error) {
	key, ok := b.FindKey(name)
	if !ok {
		return Record{}, ErrNotFound
	}
	rec := b.records[key]
	if !confirmed {
		return rec, ErrNotConfirmed
	}

	delete(b.records, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return rec, nil
}

// Search returns the contacts whose name contains term as a case-insensitive
// substring, in insertion order. An empty term matches every contact.
func (b *Book) Search(term string) []Record {
	target := strings.ToLower(strings.TrimSpace(term))
	var matches []Record
	for _, key := range b.order {
		if strings.Contains(strings.ToLower(key), target) {
			matches = append(matches, b.records[key])
		}
	}
	return matches
}

// All returns every record in insertion order.
func (b *Book) All() []Record {
	recs := make([]Record, len(b.order))
	for i, key := range b.order {
		recs[i] = b.records[key]
	}
	return recs
}

// Put inserts a record as-is, replacing any case-insensitive match.
// It is used when loading persisted state and bypasses validation;
// timestamps and field values come straight from the record.
func (b *Book) Put(rec Record) {
	if key, exists := b.FindKey(rec.Name); exists {
		if key != rec.Name {
			delete(b.records, key)
			for i, k := range b.order {
				if k == key {
					b.order[i] = rec.Name
					break
				}
			}
		}
		b.records[rec.Name] = rec
		return
	}
	b.records[rec.Name] = rec
	b.order = append(b.order, rec.Name)
}

// Stats aggregates the book: total count, per-group counts sorted by group
// name, and how many contacts were updated within the last 7 days of now.
func (b *Book) Stats(now time.Time) Statistics {
	stats := Statistics{Total: len(b.order)}

	byGroup := make(map[string]int)
	for _, key := range b.order {
		rec := b.records[key]
		byGroup[rec.Group]++
		if now.Sub(rec.UpdatedAt) <= recentWindow {
			stats.RecentlyUpdated++
		}
	}

	groups := make([]string, 0, len(byGroup))
	for g := range byGroup {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		stats.Groups = append(stats.Groups, GroupCount{Group: g, Count: byGroup[g]})
	}
	return stats
}
