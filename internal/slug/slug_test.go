package slug

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		in   string
		rule string // empty means valid
	}{
		{"abc", ""},
		{"jane-doe", ""},
		{"a1-b2-c3", ""},
		{strings.Repeat("a", 64), ""},
		{"", "required"},
		{"ab", "min"},
		{strings.Repeat("a", 65), "max"},
		{"Jane", "slug"},
		{"jane_doe", "slug"},
		{"-jane", "slug"},
		{"jane--doe", "slug"},
		{"jane-", "slug"},
		{"jané", "slug"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.rule == "" {
				if err != nil {
					t.Errorf("Expected %q to be valid, got %v", tt.in, err)
				}
				return
			}
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Expected ErrInvalid for %q, got %v", tt.in, err)
			}
			var se *Error
			if !errors.As(err, &se) || se.Rule != tt.rule {
				t.Errorf("Expected rule %s for %q, got %v", tt.rule, tt.in, err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Jane-Doe "); got != "jane-doe" {
		t.Errorf("Expected jane-doe, got %q", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Jane Doe", "jane-doe"},
		{"  José  Álvarez!! ", "jose-alvarez"},
		{"ACME, Inc.", "acme-inc"},
		{"---", ""},
		{"a__b", "a-b"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := Slugify(strings.Repeat("ab ", 40))
	if len(long) > MaxLen || strings.HasSuffix(long, "-") {
		t.Errorf("Expected a trimmed slug of at most %d chars, got %q", MaxLen, long)
	}
	if err := Validate(long); err != nil {
		t.Errorf("Slugified text should validate: %v", err)
	}
}
