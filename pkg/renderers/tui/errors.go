package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDeclined is returned when the user answers no at the final
	// confirmation; the draft is left as entered.
	ErrDeclined = errors.New("tui: order not placed")
)
