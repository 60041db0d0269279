package order

import "fmt"

// FailureMessage is shown when a submit attempt fails.
const FailureMessage = "There was an issue submitting your order. Please try again later."

// ToppingsPhrase describes the topping count for the confirmation text.
func ToppingsPhrase(count int) string {
	switch {
	case count <= 0:
		return "with no toppings"
	case count == 1:
		return "with 1 topping"
	default:
		return fmt.Sprintf("with %d toppings", count)
	}
}

// Confirmation renders the thank-you text for a submitted order.
func Confirmation(s Snapshot) string {
	return fmt.Sprintf("Thank you for your order, %s! Your %s pizza %s is on the way.",
		s.FullName, s.Size.DisplayName(), ToppingsPhrase(len(s.Toppings)))
}

// Message returns the text to display for an outcome: the confirmation on
// success, the failure message on failure, and "" before any submit.
func (o Outcome) Message() string {
	switch o.Status {
	case StatusSucceeded:
		if o.Snapshot == nil {
			return ""
		}
		return Confirmation(*o.Snapshot)
	case StatusFailed:
		return FailureMessage
	default:
		return ""
	}
}
