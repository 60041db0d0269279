// Package orderform mounts the pizza order form on a net/http mux: the home
// and order pages, the JSON change and submit endpoints, the OpenAPI document
// and the page assets. Each browser gets its own form, keyed by a session
// cookie.
package orderform
