package order

import "errors"

var (
	// ErrUnknownField is returned when a change targets a field the form
	// does not have.
	ErrUnknownField = errors.New("order: unknown field")
	// ErrUnknownTopping is returned when a topping label is not in the catalog.
	ErrUnknownTopping = errors.New("order: unknown topping")
	// ErrSubmitDisabled is returned when Submit is called while the enabled
	// flag is false.
	ErrSubmitDisabled = errors.New("order: submit is disabled")
	// ErrSubmitFailed wraps errors returned by the submit hook.
	ErrSubmitFailed = errors.New("order: submit failed")
)
