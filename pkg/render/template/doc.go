// Package template defines the template rendering seam the HTML renderer
// depends on, so the engine can be swapped in tests or by embedders.
package template
