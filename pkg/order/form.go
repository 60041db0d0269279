package order

import (
	"context"
	"fmt"
	"slices"
)

// SubmitHook receives the snapshot of a submission before the draft is
// cleared. Returning an error marks the attempt as failed.
type SubmitHook func(ctx context.Context, snapshot Snapshot) error

// Option configures a Form.
type Option func(*Form)

// WithSubmitHook installs a hook that runs on every submit attempt.
func WithSubmitHook(hook SubmitHook) Option {
	return func(f *Form) {
		f.hook = hook
	}
}

// WithDraft seeds the form with an initial draft. Invalid toppings are
// dropped; field errors are left untouched so nothing is shown until the user
// edits a field.
func WithDraft(d Draft) Option {
	return func(f *Form) {
		f.draft = Draft{FullName: d.FullName, Size: d.Size, Toppings: []string{}}
		for _, label := range d.Toppings {
			if IsTopping(label) && !f.draft.HasTopping(label) {
				f.draft.Toppings = append(f.draft.Toppings, label)
			}
		}
	}
}

// Form is the order form state machine. It is not safe for concurrent use.
type Form struct {
	draft   Draft
	errors  FieldErrors
	enabled bool
	outcome Outcome
	hook    SubmitHook
}

// NewForm returns an empty form.
func NewForm(options ...Option) *Form {
	f := &Form{
		draft:  Draft{Toppings: []string{}},
		errors: FieldErrors{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	f.recompute()
	return f
}

// Change applies a new value to a text or select field. Only that field is
// re-validated; the enabled flag is recomputed over the whole draft.
func (f *Form) Change(field, value string) error {
	switch field {
	case FieldFullName:
		f.errors[field] = ValidateFullName(value)
		f.draft.FullName = value
	case FieldSize:
		f.errors[field] = ValidateSize(value)
		f.draft.Size = Size(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	f.recompute()
	return nil
}

// SetTopping adds or removes a topping from the draft.
func (f *Form) SetTopping(label string, checked bool) error {
	if !IsTopping(label) {
		return fmt.Errorf("%w: %q", ErrUnknownTopping, label)
	}
	has := f.draft.HasTopping(label)
	switch {
	case checked && !has:
		f.draft.Toppings = append(f.draft.Toppings, label)
	case !checked && has:
		f.draft.Toppings = slices.DeleteFunc(f.draft.Toppings, func(item string) bool {
			return item == label
		})
	}
	f.recompute()
	return nil
}

// ToggleTopping flips the membership of a topping.
func (f *Form) ToggleTopping(label string) error {
	return f.SetTopping(label, !f.draft.HasTopping(label))
}

// Enabled reports whether submit is currently allowed.
func (f *Form) Enabled() bool {
	return f.enabled
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() Draft {
	return f.draft.Clone()
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() FieldErrors {
	return f.errors.clone()
}

// Outcome returns the result of the latest submit attempt.
func (f *Form) Outcome() Outcome {
	out := f.outcome
	if out.Snapshot != nil {
		snap := *out.Snapshot
		snap.Toppings = slices.Clone(snap.Toppings)
		out.Snapshot = &snap
	}
	return out
}

// Submit captures a snapshot of the draft, runs the submit hook and, on
// success, clears the draft. It returns ErrSubmitDisabled without touching
// any state while the enabled flag is false.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	if !f.enabled {
		return f.Outcome(), ErrSubmitDisabled
	}

	snapshot := Snapshot{
		FullName: f.draft.FullName,
		Size:     f.draft.Size,
		Toppings: slices.Clone(f.draft.Toppings),
	}
	if snapshot.Toppings == nil {
		snapshot.Toppings = []string{}
	}

	if f.hook != nil {
		if err := f.hook(ctx, snapshot); err != nil {
			f.outcome = Outcome{Status: StatusFailed}
			return f.Outcome(), fmt.Errorf("%w: %w", ErrSubmitFailed, err)
		}
	}

	f.outcome = Outcome{Status: StatusSucceeded, Snapshot: &snapshot}
	f.draft = Draft{Toppings: []string{}}
	f.recompute()
	return f.Outcome(), nil
}

func (f *Form) recompute() {
	f.enabled = IsValid(f.draft)
}
