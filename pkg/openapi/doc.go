// Package openapi describes the order form JSON endpoints as an OpenAPI 3
// document and checks incoming change requests against it before they reach
// the form.
package openapi
