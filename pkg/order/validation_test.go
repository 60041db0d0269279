package order

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateFullName(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty", value: "", want: MsgFullNameTooShort},
		{name: "two chars", value: "Al", want: MsgFullNameTooShort},
		{name: "padded short", value: "  Al  ", want: MsgFullNameTooShort},
		{name: "three chars", value: "Ann", want: ""},
		{name: "padded three", value: "   Ann ", want: ""},
		{name: "twenty chars", value: strings.Repeat("a", 20), want: ""},
		{name: "twenty one chars", value: strings.Repeat("a", 21), want: MsgFullNameTooLong},
		{name: "multibyte counted as characters", value: "Zoë", want: ""},
		{name: "inner spaces count", value: "Bo Lee", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateFullName(tc.value); got != tc.want {
				t.Fatalf("ValidateFullName(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestValidateSize(t *testing.T) {
	for _, valid := range []string{"S", "M", "L"} {
		if got := ValidateSize(valid); got != "" {
			t.Fatalf("expected %q to be valid, got %q", valid, got)
		}
	}
	for _, invalid := range []string{"", "s", "XL", " M", "Medium"} {
		if got := ValidateSize(invalid); got != MsgSizeIncorrect {
			t.Fatalf("expected %q to fail with %q, got %q", invalid, MsgSizeIncorrect, got)
		}
	}
}

func TestValidateField(t *testing.T) {
	if msg, err := ValidateField(FieldFullName, "Al"); err != nil || msg != MsgFullNameTooShort {
		t.Fatalf("unexpected fullName result: %q, %v", msg, err)
	}
	if msg, err := ValidateField(FieldSize, "Q"); err != nil || msg != MsgSizeIncorrect {
		t.Fatalf("unexpected size result: %q, %v", msg, err)
	}
	if msg, err := ValidateField(FieldToppings, "anything"); err != nil || msg != "" {
		t.Fatalf("toppings should always pass, got %q, %v", msg, err)
	}
	if _, err := ValidateField("email", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestIsValid(t *testing.T) {
	cases := []struct {
		name  string
		draft Draft
		want  bool
	}{
		{name: "empty", draft: Draft{}, want: false},
		{name: "name only", draft: Draft{FullName: "Ann"}, want: false},
		{name: "size only", draft: Draft{Size: SizeMedium}, want: false},
		{name: "both", draft: Draft{FullName: "Ann", Size: SizeMedium}, want: true},
		{name: "toppings ignored", draft: Draft{FullName: "Ann", Size: SizeLarge, Toppings: []string{"Ham"}}, want: true},
		{name: "bad size", draft: Draft{FullName: "Ann", Size: "XL"}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValid(tc.draft); got != tc.want {
				t.Fatalf("IsValid(%+v) = %v, want %v", tc.draft, got, tc.want)
			}
		})
	}
}

func TestSizeDisplayName(t *testing.T) {
	cases := map[Size]string{
		SizeSmall:  "Small",
		SizeMedium: "Medium",
		SizeLarge:  "Large",
		"XL":       "XL",
	}
	for size, want := range cases {
		if got := size.DisplayName(); got != want {
			t.Fatalf("DisplayName(%q) = %q, want %q", size, got, want)
		}
	}
}
