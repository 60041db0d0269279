package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-orderform/pkg/order"
)

// ChangeRequestSchema describes the body of a change request. The field name
// is left open so unknown fields reach the form and are reported as such.
func ChangeRequestSchema() *openapi3.Schema {
	field := openapi3.NewStringSchema().WithMinLength(1)
	field.Description = "fullName, size or toppings"

	value := openapi3.NewStringSchema()
	value.Description = "New field value, or the topping label for toppings"

	checked := openapi3.NewBoolSchema()
	checked.Description = "Whether the topping is selected; toppings only"

	return openapi3.NewObjectSchema().
		WithProperty("field", field).
		WithProperty("value", value).
		WithProperty("checked", checked).
		WithRequired([]string{"field"})
}

func sizeSchema() *openapi3.Schema {
	values := make([]any, 0, len(order.Sizes())+1)
	values = append(values, string(order.SizeUnset))
	for _, size := range order.Sizes() {
		values = append(values, string(size))
	}
	return openapi3.NewStringSchema().WithEnum(values...)
}

func toppingSchema() *openapi3.Schema {
	labels := order.ToppingLabels()
	values := make([]any, len(labels))
	for i, label := range labels {
		values[i] = label
	}
	return openapi3.NewStringSchema().WithEnum(values...)
}

func snapshotSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("fullName", openapi3.NewStringSchema()).
		WithProperty("size", sizeSchema()).
		WithProperty("toppings", openapi3.NewArraySchema().WithItems(toppingSchema())).
		WithRequired([]string{"fullName", "size", "toppings"})
}

// draftSchema leaves size open: the form stores whatever was posted and
// reports invalid sizes through errors.
func draftSchema() *openapi3.Schema {
	size := openapi3.NewStringSchema()
	size.Description = "Selected size code; may be invalid until corrected"

	return openapi3.NewObjectSchema().
		WithProperty("fullName", openapi3.NewStringSchema()).
		WithProperty("size", size).
		WithProperty("toppings", openapi3.NewArraySchema().WithItems(toppingSchema())).
		WithRequired([]string{"fullName", "size", "toppings"})
}

func stateSchema() *openapi3.Schema {
	errs := openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())
	errs.Description = "Latest message per validated field; empty when valid"

	outcome := openapi3.NewObjectSchema().
		WithProperty("status", openapi3.NewStringSchema().WithEnum(
			string(order.StatusNone), string(order.StatusSucceeded), string(order.StatusFailed))).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("snapshot", snapshotSchema())

	return openapi3.NewObjectSchema().
		WithProperty("draft", draftSchema()).
		WithProperty("errors", errs).
		WithProperty("enabled", openapi3.NewBoolSchema()).
		WithProperty("outcome", outcome).
		WithRequired([]string{"draft", "errors", "enabled", "outcome"})
}

func errorSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("status", openapi3.NewIntegerSchema()).
		WithRequired([]string{"error", "status"})
}
