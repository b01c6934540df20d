// Package carduid normalizes and validates raw RFID reader input.
//
// Physical readers emit fixed-width, zero-padded numeric strings and the
// occasional keyboard-injection noise (partial reads, stray characters).
// Strict length/charset checks happen here so garbage never reaches the
// card directory lookup.
package carduid

import (
	"fmt"
	"strings"
)

// UIDLength is the width a reader emits for a full card read.
const UIDLength = 10

// Validation failure reasons, surfaced separately to the kiosk because
// they drive different operator messages.
const (
	ReasonEmpty             = "empty_value"
	ReasonInvalidCharacters = "invalid_characters"
)

type ValidationIssue struct {
	Status string `json:"status"` // always "VALIDATION_ERROR"
	Reason string `json:"reason"`
}

// Normalize trims surrounding whitespace from a raw reader string.
func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}

// ValidateFormat checks a normalized UID against the reader contract.
// Returns nil when the value is acceptable.
func ValidateFormat(normalized string, expectedLength int) *ValidationIssue {
	if normalized == "" {
		return &ValidationIssue{Status: "VALIDATION_ERROR", Reason: ReasonEmpty}
	}

	if len(normalized) != expectedLength {
		return &ValidationIssue{
			Status: "VALIDATION_ERROR",
			Reason: fmt.Sprintf("length_mismatch:%d", len(normalized)),
		}
	}

	for _, r := range normalized {
		if r < '0' || r > '9' {
			return &ValidationIssue{Status: "VALIDATION_ERROR", Reason: ReasonInvalidCharacters}
		}
	}

	return nil
}

// Canonicalize strips non-digit characters and leading zeros so a padded
// reader value matches records stored without padding. A value that is
// all zeros canonicalizes to "0"; a value with no digits at all comes
// back empty. Canonicalize is idempotent.
func Canonicalize(uid string) string {
	var b strings.Builder
	for _, r := range uid {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := strings.TrimLeft(b.String(), "0")
	if digits == "" {
		if b.Len() == 0 {
			return ""
		}
		return "0"
	}
	return digits
}
