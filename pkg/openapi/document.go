package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// Version is the OpenAPI revision emitted by NewDocument.
const Version = "3.0.3"

// Schema component names.
const (
	SchemaChangeRequest = "ChangeRequest"
	SchemaState         = "OrderState"
	SchemaSize          = "Size"
	SchemaTopping       = "Topping"
	SchemaSnapshot      = "Snapshot"
	SchemaError         = "Error"
)

// Paths holds the mounted JSON endpoints.
type Paths struct {
	State  string
	Change string
	Submit string
}

// DefaultPaths returns the endpoints relative to an empty base path.
func DefaultPaths() Paths {
	return Paths{
		State:  "/api/order",
		Change: "/api/order/change",
		Submit: "/api/order/submit",
	}
}

// NewDocument builds the document for the given endpoints. Size and topping
// enums are taken from the order catalog.
func NewDocument(paths Paths) *openapi3.T {
	if paths.State == "" || paths.Change == "" || paths.Submit == "" {
		def := DefaultPaths()
		if paths.State == "" {
			paths.State = def.State
		}
		if paths.Change == "" {
			paths.Change = def.Change
		}
		if paths.Submit == "" {
			paths.Submit = def.Submit
		}
	}

	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{
		SchemaChangeRequest: openapi3.NewSchemaRef("", ChangeRequestSchema()),
		SchemaSize:          openapi3.NewSchemaRef("", sizeSchema()),
		SchemaTopping:       openapi3.NewSchemaRef("", toppingSchema()),
		SchemaSnapshot:      openapi3.NewSchemaRef("", snapshotSchema()),
		SchemaState:         openapi3.NewSchemaRef("", stateSchema()),
		SchemaError:         openapi3.NewSchemaRef("", errorSchema()),
	}

	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       "Pizza order form",
			Description: "Field changes and submission for the pizza order form.",
			Version:     "1.0.0",
		},
		Paths:      openapi3.NewPaths(),
		Components: &components,
	}

	getState := openapi3.NewOperation()
	getState.OperationID = "getOrderState"
	getState.Summary = "Current form state for the session"
	getState.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, stateResponse("Current form state")),
	)
	doc.AddOperation(paths.State, http.MethodGet, getState)

	change := openapi3.NewOperation()
	change.OperationID = "changeOrderField"
	change.Summary = "Apply a single field change"
	change.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchemaRef(componentRef(SchemaChangeRequest)),
	}
	change.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, stateResponse("Form state after the change")),
		openapi3.WithStatus(http.StatusBadRequest, errorResponse("Malformed change request")),
		openapi3.WithStatus(http.StatusUnprocessableEntity, errorResponse("Unknown field or topping")),
	)
	doc.AddOperation(paths.Change, http.MethodPost, change)

	submit := openapi3.NewOperation()
	submit.OperationID = "submitOrder"
	submit.Summary = "Submit the current draft"
	submit.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, stateResponse("Form state with the submit outcome")),
		openapi3.WithStatus(http.StatusConflict, errorResponse("Submit is disabled")),
	)
	doc.AddOperation(paths.Submit, http.MethodPost, submit)

	return doc
}

// MarshalDocument validates doc and encodes it as indented JSON.
func MarshalDocument(ctx context.Context, doc *openapi3.T) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("openapi: document is nil")
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: invalid document: %w", err)
	}
	return json.MarshalIndent(doc, "", "  ")
}

func componentRef(name string) *openapi3.SchemaRef {
	var value *openapi3.Schema
	switch name {
	case SchemaChangeRequest:
		value = ChangeRequestSchema()
	case SchemaSize:
		value = sizeSchema()
	case SchemaTopping:
		value = toppingSchema()
	case SchemaSnapshot:
		value = snapshotSchema()
	case SchemaState:
		value = stateSchema()
	default:
		value = errorSchema()
	}
	return openapi3.NewSchemaRef("#/components/schemas/"+name, value)
}

func stateResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(description).
			WithJSONSchemaRef(componentRef(SchemaState)),
	}
}

func errorResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(description).
			WithJSONSchemaRef(componentRef(SchemaError)),
	}
}
