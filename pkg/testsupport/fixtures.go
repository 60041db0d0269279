package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/order"
)

// Order describes a form fixture. Fields left empty are not touched, so the
// matching error slot stays unvalidated.
type Order struct {
	FullName string
	Size     string
	Toppings []string
}

// NewForm builds a form and applies the fixture as user edits would.
func NewForm(t *testing.T, fixture Order, opts ...order.Option) *order.Form {
	t.Helper()

	form := order.NewForm(opts...)
	if fixture.FullName != "" {
		if err := form.Change(order.FieldFullName, fixture.FullName); err != nil {
			t.Fatalf("change fullName: %v", err)
		}
	}
	if fixture.Size != "" {
		if err := form.Change(order.FieldSize, fixture.Size); err != nil {
			t.Fatalf("change size: %v", err)
		}
	}
	for _, label := range fixture.Toppings {
		if err := form.SetTopping(label, true); err != nil {
			t.Fatalf("set topping: %v", err)
		}
	}
	return form
}

// SubmittedForm builds a form from fixture and submits it, failing the test
// when the submit does not succeed.
func SubmittedForm(t *testing.T, fixture Order, opts ...order.Option) *order.Form {
	t.Helper()

	form := NewForm(t, fixture, opts...)
	if _, err := form.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	return form
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
