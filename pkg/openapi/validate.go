package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrInvalidPayload marks a request body that does not match its schema.
var ErrInvalidPayload = errors.New("openapi: invalid payload")

// ChangeRequest is the decoded body of a change request.
type ChangeRequest struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

var (
	changeSchemaOnce sync.Once
	changeSchema     *openapi3.Schema
)

// DecodeChange checks raw against the change request schema and decodes it.
// Errors wrap ErrInvalidPayload.
func DecodeChange(raw []byte) (ChangeRequest, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ChangeRequest{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := ValidateChange(payload); err != nil {
		return ChangeRequest{}, err
	}

	var req ChangeRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return ChangeRequest{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return req, nil
}

// ValidateChange checks a JSON-decoded value against the change request
// schema.
func ValidateChange(payload any) error {
	changeSchemaOnce.Do(func() {
		changeSchema = ChangeRequestSchema()
	})
	if err := changeSchema.VisitJSON(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
