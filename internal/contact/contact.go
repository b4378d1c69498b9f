// Package contact implements the contact book: records keyed by name with
// case-insensitive lookup, field validation, and statistics.
package contact

import "time"

// DefaultGroup is the group assigned when a contact is added without one.
const DefaultGroup = "Other"

// Record holds all fields describing one contact.
// Email and Address are nil when absent, never the empty string.
type Record struct {
	Name      string
	Phone     string
	Email     *string
	Address   *string
	Group     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Input carries the fields for adding a new contact.
// Email, Address, and Group are optional; blank values mean "not supplied".
type Input struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Group   string
}

// Changes carries field updates for an existing contact.
// Blank fields leave the corresponding attribute untouched.
type Changes struct {
	Phone   string
	Email   string
	Address string
	Group   string
}

// UpdateResult reports which requested changes were skipped as invalid.
// A skipped field keeps its prior value; the update itself still succeeds.
type UpdateResult struct {
	Skipped []string
}

// GroupCount is the number of contacts in one group.
type GroupCount struct {
	Group string
	Count int
}

// Statistics aggregates the book at a point in time.
type Statistics struct {
	Total           int
	Groups          []GroupCount // sorted by group name
	RecentlyUpdated int          // UpdatedAt within the last 7 days
}

// recentWindow is how far back UpdatedAt may fall to count as recent.
const recentWindow = 7 * 24 * time.Hour
