package orderform

import "github.com/goliatone/go-orderform/pkg/order"

// State is the JSON projection of a form returned by the API endpoints.
type State struct {
	Draft   order.Draft       `json:"draft"`
	Errors  order.FieldErrors `json:"errors"`
	Enabled bool              `json:"enabled"`
	Outcome OutcomeState      `json:"outcome"`
}

type OutcomeState struct {
	Status   order.Status    `json:"status"`
	Message  string          `json:"message"`
	Snapshot *order.Snapshot `json:"snapshot,omitempty"`
}

// StateOf captures the current state of form.
func StateOf(form *order.Form) State {
	outcome := form.Outcome()
	return State{
		Draft:   form.Draft(),
		Errors:  form.Errors(),
		Enabled: form.Enabled(),
		Outcome: OutcomeState{
			Status:   outcome.Status,
			Message:  outcome.Message(),
			Snapshot: outcome.Snapshot,
		},
	}
}

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}
