package tui

import (
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// OutputFormat controls what Run returns once an order is placed.
type OutputFormat string

const (
	// OutputFormatPrettyText returns the confirmation sentence.
	OutputFormatPrettyText OutputFormat = "pretty"
	// OutputFormatJSON returns the submitted snapshot as JSON.
	OutputFormatJSON OutputFormat = "json"
)

// Theme captures optional prefixes the renderer applies when printing
// messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput directs the default survey driver's informational messages.
func WithOutput(out io.Writer) Option {
	return func(r *Renderer) {
		r.out = out
	}
}

// WithStdio points the default survey driver's prompts at the given streams
// instead of the process stdio.
func WithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) Option {
	return func(r *Renderer) {
		if in == nil || out == nil {
			return
		}
		r.askOpts = append(r.askOpts, survey.WithStdio(in, out, errOut))
	}
}

// WithOutputFormat selects the output format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithMaxAttempts bounds how many times the full name is asked for before
// giving up. Zero means no limit.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
