package order

import (
	"slices"
	"strings"
)

// Field names as posted by the form controls.
const (
	FieldFullName = "fullName"
	FieldSize     = "size"
	FieldToppings = "toppings"
)

// Size is the pizza size code selected in the form.
type Size string

const (
	SizeUnset  Size = ""
	SizeSmall  Size = "S"
	SizeMedium Size = "M"
	SizeLarge  Size = "L"
)

var sizeNames = map[Size]string{
	SizeSmall:  "Small",
	SizeMedium: "Medium",
	SizeLarge:  "Large",
}

// Sizes lists the selectable size codes in display order.
func Sizes() []Size {
	return []Size{SizeSmall, SizeMedium, SizeLarge}
}

// Valid reports whether the size is one of S, M or L.
func (s Size) Valid() bool {
	_, ok := sizeNames[s]
	return ok
}

// DisplayName maps a size code to its human name. Unknown codes are returned
// as-is.
func (s Size) DisplayName() string {
	if name, ok := sizeNames[s]; ok {
		return name
	}
	return string(s)
}

// Topping is a catalog entry.
type Topping struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var toppingCatalog = []Topping{
	{ID: "1", Label: "Pepperoni"},
	{ID: "2", Label: "Green Peppers"},
	{ID: "3", Label: "Pineapple"},
	{ID: "4", Label: "Mushrooms"},
	{ID: "5", Label: "Ham"},
}

// Toppings returns a copy of the static topping catalog in display order.
func Toppings() []Topping {
	return slices.Clone(toppingCatalog)
}

// ToppingLabels returns the catalog labels in display order.
func ToppingLabels() []string {
	out := make([]string, 0, len(toppingCatalog))
	for _, topping := range toppingCatalog {
		out = append(out, topping.Label)
	}
	return out
}

// IsTopping reports whether label names a catalog entry.
func IsTopping(label string) bool {
	for _, topping := range toppingCatalog {
		if topping.Label == label {
			return true
		}
	}
	return false
}

// Draft is the in-progress order. Toppings holds catalog labels without
// duplicates, in the order they were selected.
type Draft struct {
	FullName string   `json:"fullName"`
	Size     Size     `json:"size"`
	Toppings []string `json:"toppings"`
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	out := d
	out.Toppings = slices.Clone(d.Toppings)
	if out.Toppings == nil {
		out.Toppings = []string{}
	}
	return out
}

// HasTopping reports whether label is selected.
func (d Draft) HasTopping(label string) bool {
	return slices.Contains(d.Toppings, label)
}

// Empty reports whether the draft carries no input at all.
func (d Draft) Empty() bool {
	return d.FullName == "" && d.Size == SizeUnset && len(d.Toppings) == 0
}

// Snapshot is the immutable copy of a draft taken at submission time.
type Snapshot struct {
	FullName string   `json:"fullName"`
	Size     Size     `json:"size"`
	Toppings []string `json:"toppings"`
}

// Status is the result of the latest submit attempt.
type Status string

const (
	StatusNone      Status = ""
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Outcome is the displayed result of the latest submit attempt. Snapshot is
// only set when Status is StatusSucceeded.
type Outcome struct {
	Status   Status    `json:"status"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
}

// Submitted reports whether any submit attempt has completed.
func (o Outcome) Submitted() bool {
	return o.Status != StatusNone
}

// FieldErrors maps a field name to its latest validation message. A missing
// entry means the field was never validated; an empty message means it
// passed.
type FieldErrors map[string]string

// Message returns the message for field and whether the field was validated.
func (e FieldErrors) Message(field string) (string, bool) {
	if e == nil {
		return "", false
	}
	msg, ok := e[field]
	return msg, ok
}

// Failing reports whether field currently carries a non-empty message.
func (e FieldErrors) Failing(field string) bool {
	msg, _ := e.Message(field)
	return strings.TrimSpace(msg) != ""
}

func (e FieldErrors) clone() FieldErrors {
	if len(e) == 0 {
		return FieldErrors{}
	}
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
