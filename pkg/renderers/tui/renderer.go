package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/render"
)

// Renderer drives the order form from a terminal and renders views as plain
// text.
type Renderer struct {
	driver       PromptDriver
	out          io.Writer
	askOpts      []survey.AskOpt
	outputFormat OutputFormat
	maxAttempts  int
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, pretty output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatPrettyText,
		theme:        Theme{ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out, r.askOpts...)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "text"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes a plain text rendition of view.
func (r *Renderer) Render(ctx context.Context, view render.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(view.Title)
	b.WriteString("\n")
	for _, link := range view.Nav {
		marker := " "
		if link.Active {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s (%s)\n", marker, link.Label, link.Href)
	}
	if view.Page != render.PageOrder {
		return []byte(b.String()), nil
	}

	b.WriteString("\n")
	writeField(&b, view.FullName)
	size := view.Size
	for _, opt := range view.SizeOptions {
		if opt.Selected && opt.Value != "" {
			size.Value = opt.Label
		}
	}
	writeField(&b, size)

	b.WriteString("Toppings:\n")
	for _, topping := range view.Toppings {
		box := "[ ]"
		if topping.Checked {
			box = "[x]"
		}
		fmt.Fprintf(&b, "  %s %s\n", box, topping.Label)
	}

	if view.Enabled {
		b.WriteString("Submit: ready\n")
	} else {
		b.WriteString("Submit: disabled\n")
	}
	if view.Outcome.Message != "" {
		b.WriteString("\n")
		b.WriteString(view.Outcome.Message)
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

func writeField(b *strings.Builder, field render.FieldView) {
	fmt.Fprintf(b, "%s: %s\n", field.Label, field.Value)
	if field.Message != "" {
		fmt.Fprintf(b, "  %s\n", field.Message)
	}
}

// Run walks the user through the order form: full name, size, toppings and a
// final confirmation. The full name is asked for again until it passes
// validation. On success the returned bytes hold the confirmation text or the
// submitted snapshot as JSON, depending on the output format.
func (r *Renderer) Run(ctx context.Context, form *order.Form) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if form == nil {
		form = order.NewForm()
	}

	if err := r.promptFullName(ctx, form); err != nil {
		return nil, err
	}
	if err := r.promptSize(ctx, form); err != nil {
		return nil, err
	}
	if err := r.promptToppings(ctx, form); err != nil {
		return nil, err
	}

	if !form.Enabled() {
		return nil, order.ErrSubmitDisabled
	}

	draft := form.Draft()
	ok, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Place order for a %s pizza %s?",
			draft.Size.DisplayName(), order.ToppingsPhrase(len(draft.Toppings))),
		Default: true,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDeclined
	}

	outcome, err := form.Submit(ctx)
	if err != nil {
		if errors.Is(err, order.ErrSubmitFailed) {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+outcome.Message())
		}
		return nil, err
	}
	return r.serialize(outcome)
}

func (r *Renderer) promptFullName(ctx context.Context, form *order.Form) error {
	current := form.Draft().FullName
	for attempt := 1; ; attempt++ {
		value, err := r.driver.Input(ctx, InputConfig{
			Message: "Full Name",
			Default: current,
			Help:    fmt.Sprintf("Between %d and %d characters", order.FullNameMinLength, order.FullNameMaxLength),
		})
		if err != nil {
			return err
		}
		if err := form.Change(order.FieldFullName, value); err != nil {
			return err
		}
		msg, _ := form.Errors().Message(order.FieldFullName)
		if msg == "" {
			return nil
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("tui: %s: %w", msg, ErrAborted)
		}
		current = value
	}
}

func (r *Renderer) promptSize(ctx context.Context, form *order.Form) error {
	sizes := order.Sizes()
	labels := make([]string, len(sizes))
	def := 0
	current := form.Draft().Size
	for i, size := range sizes {
		labels[i] = size.DisplayName()
		if size == current {
			def = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Size",
		Options:      labels,
		DefaultIndex: def,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(sizes) {
		return fmt.Errorf("tui: size selection %d out of range", idx)
	}
	return form.Change(order.FieldSize, string(sizes[idx]))
}

func (r *Renderer) promptToppings(ctx context.Context, form *order.Form) error {
	labels := order.ToppingLabels()
	draft := form.Draft()
	var defaults []int
	for i, label := range labels {
		if draft.HasTopping(label) {
			defaults = append(defaults, i)
		}
	}

	picked, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Toppings",
		Options:  labels,
		Defaults: defaults,
		PageSize: len(labels),
	})
	if err != nil {
		return err
	}

	selected := make(map[int]bool, len(picked))
	for _, idx := range picked {
		selected[idx] = true
	}
	for i, label := range labels {
		if err := form.SetTopping(label, selected[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) serialize(outcome order.Outcome) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatJSON:
		if outcome.Snapshot == nil {
			return []byte("null"), nil
		}
		return json.MarshalIndent(outcome.Snapshot, "", "  ")
	default:
		return []byte(r.theme.InfoPrefix + outcome.Message() + "\n"), nil
	}
}
