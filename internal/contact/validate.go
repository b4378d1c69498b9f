package contact

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// emailPattern matches a conventional local@domain.tld address, anchored at
// both ends. Empty input is the caller's "no email" and is never passed here.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidatePhone strips every non-digit rune from raw and reports whether the
// remaining digit string is a valid phone number (10 or 11 digits).
// On success the normalized digit string is returned; otherwise "".
func ValidatePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	// Count runes, not bytes: non-ASCII decimal digits are multi-byte.
	if n := utf8.RuneCountInString(digits); n < 10 || n > 11 {
		return "", false
	}
	return digits, true
}

// ValidateEmail reports whether raw has a conventional email shape.
func ValidateEmail(raw string) bool {
	return emailPattern.MatchString(raw)
}
