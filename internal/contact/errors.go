package contact

import "errors"

// Sentinel errors for caller-checkable conditions.
var (
	ErrEmptyName     = errors.New("contact: name cannot be empty")
	ErrDuplicateName = errors.New("contact: a contact with that name already exists")
	ErrNotFound      = errors.New("contact: contact not found")
	ErrInvalidPhone  = errors.New("contact: phone must contain 10-11 digits")
	ErrInvalidEmail  = errors.New("contact: invalid email format")
	ErrNotConfirmed  = errors.New("contact: deletion not confirmed")
)
