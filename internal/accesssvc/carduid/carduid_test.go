package carduid_test

import (
	"testing"

	"github.com/fitclub/gym-services/internal/accesssvc/carduid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "0001234567", "0001234567"},
		{"surrounding whitespace", "  0001234567\n", "0001234567"},
		{"only whitespace", " \t ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := carduid.Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name       string
		uid        string
		wantReason string
	}{
		{"valid full read", "0000123456", ""},
		{"empty", "", "empty_value"},
		{"too short", "12345", "length_mismatch:5"},
		{"too long", "00001234567", "length_mismatch:11"},
		{"letters mixed in", "00001234AB", "invalid_characters"},
		{"reader noise", "0000;12345", "invalid_characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := carduid.ValidateFormat(tt.uid, carduid.UIDLength)
			if tt.wantReason == "" {
				if issue != nil {
					t.Fatalf("ValidateFormat(%q) = %+v, want nil", tt.uid, issue)
				}
				return
			}
			if issue == nil {
				t.Fatalf("ValidateFormat(%q) = nil, want reason %q", tt.uid, tt.wantReason)
			}
			if issue.Reason != tt.wantReason {
				t.Errorf("ValidateFormat(%q) reason = %q, want %q", tt.uid, issue.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidateFormatCustomLength(t *testing.T) {
	if issue := carduid.ValidateFormat("12345678", 8); issue != nil {
		t.Fatalf("expected 8-digit uid to pass with expected length 8, got %+v", issue)
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		uid  string
		want string
	}{
		{"strips leading zeros", "0000123456", "123456"},
		{"strips non-digits", "00-12.34", "1234"},
		{"all zeros collapse to zero", "0000000000", "0"},
		{"no digits at all", "abc", ""},
		{"already canonical", "123456", "123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := carduid.Canonicalize(tt.uid); got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.uid, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []string{"0000123456", "0", "123456", "0000000000", "9"}
	for _, uid := range inputs {
		once := carduid.Canonicalize(uid)
		twice := carduid.Canonicalize(once)
		if once != twice {
			t.Errorf("Canonicalize not idempotent for %q: first %q, second %q", uid, once, twice)
		}
	}
}
