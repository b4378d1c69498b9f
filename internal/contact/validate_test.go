package contact

import "testing"

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantOK   bool
		wantNorm string
	}{
		{name: "ten digits", raw: "5551234567", wantOK: true, wantNorm: "5551234567"},
		{name: "eleven digits", raw: "15551234567", wantOK: true, wantNorm: "15551234567"},
		{name: "formatted", raw: "(555) 123-4567", wantOK: true, wantNorm: "5551234567"},
		{name: "country code with plus", raw: "+1 555 123 4567", wantOK: true, wantNorm: "15551234567"},
		{name: "too short", raw: "123", wantOK: false, wantNorm: ""},
		{name: "nine digits", raw: "555123456", wantOK: false, wantNorm: ""},
		{name: "twelve digits", raw: "555123456789", wantOK: false, wantNorm: ""},
		{name: "empty", raw: "", wantOK: false, wantNorm: ""},
		{name: "letters only", raw: "call me maybe", wantOK: false, wantNorm: ""},
		{name: "letters around digits", raw: "tel:555-123-4567x", wantOK: true, wantNorm: "5551234567"},
		{name: "ten arabic-indic digits", raw: "٠١٢٣٤٥٦٧٨٩", wantOK: true, wantNorm: "٠١٢٣٤٥٦٧٨٩"},
		{name: "five arabic-indic digits", raw: "٠١٢٣٤", wantOK: false, wantNorm: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			norm, ok := ValidatePhone(tt.raw)
			if ok != tt.wantOK {
				t.Errorf("ValidatePhone(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if norm != tt.wantNorm {
				t.Errorf("ValidatePhone(%q) normalized = %q, want %q", tt.raw, norm, tt.wantNorm)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "simple", raw: "a.b@example.com", want: true},
		{name: "plus tag", raw: "user+tag@mail.example.org", want: true},
		{name: "percent and underscore", raw: "first_last%x@sub.example.io", want: true},
		{name: "no at sign", raw: "not-an-email", want: false},
		{name: "no dot in domain", raw: "user@localhost", want: false},
		{name: "one letter tld", raw: "user@example.c", want: false},
		{name: "missing local part", raw: "@example.com", want: false},
		{name: "trailing garbage", raw: "a@example.com extra", want: false},
		{name: "empty", raw: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateEmail(tt.raw); got != tt.want {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
