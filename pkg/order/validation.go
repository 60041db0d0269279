package order

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MsgFullNameTooShort = "full name must be at least 3 characters"
	MsgFullNameTooLong  = "full name must be at most 20 characters"
	MsgSizeIncorrect    = "size must be S or M or L"
)

const (
	FullNameMinLength = 3
	FullNameMaxLength = 20
)

// ValidateFullName returns the validation message for a full name, or "" when
// the trimmed value is between 3 and 20 characters long.
func ValidateFullName(value string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	switch {
	case n < FullNameMinLength:
		return MsgFullNameTooShort
	case n > FullNameMaxLength:
		return MsgFullNameTooLong
	default:
		return ""
	}
}

// ValidateSize returns the validation message for a size code, or "" when it
// is one of S, M or L.
func ValidateSize(value string) string {
	if Size(value).Valid() {
		return ""
	}
	return MsgSizeIncorrect
}

// ValidateField validates a single named field. Toppings carry no rule and
// always pass.
func ValidateField(field, value string) (string, error) {
	switch field {
	case FieldFullName:
		return ValidateFullName(value), nil
	case FieldSize:
		return ValidateSize(value), nil
	case FieldToppings:
		return "", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// IsValid reports whether every required field of the draft passes.
func IsValid(d Draft) bool {
	return ValidateFullName(d.FullName) == "" && ValidateSize(string(d.Size)) == ""
}
