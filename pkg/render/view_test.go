package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/render"
)

var testLinks = render.Links{Home: "/", Order: "/order"}

func TestNewView_HomeMarksNavActive(t *testing.T) {
	view := render.NewView(render.PageHome, testLinks, nil)

	want := []render.NavLink{
		{Label: "Home", Href: "/", Active: true},
		{Label: "Order", Href: "/order", Active: false},
	}
	if diff := cmp.Diff(want, view.Nav); diff != "" {
		t.Fatalf("nav mismatch (-want +got):\n%s", diff)
	}
	if len(view.Toppings) != 0 || view.Action != "" {
		t.Fatalf("home view should not carry form controls: %#v", view)
	}
}

func TestNewView_OrderFreshForm(t *testing.T) {
	view := render.NewView(render.PageOrder, testLinks, order.NewForm())

	if !view.Nav[1].Active || view.Nav[0].Active {
		t.Fatalf("expected Order link active: %#v", view.Nav)
	}
	if view.Enabled {
		t.Fatalf("expected submit disabled for a fresh form")
	}
	if view.FullName.Validated || view.Size.Validated {
		t.Fatalf("fresh form must not show validation slots")
	}
	if view.Outcome.Succeeded || view.Outcome.Failed || view.Outcome.Message != "" {
		t.Fatalf("unexpected outcome on fresh form: %#v", view.Outcome)
	}

	wantSizes := []render.SizeOption{
		{Value: "", Label: render.SizePlaceholder, Selected: true},
		{Value: "S", Label: "Small"},
		{Value: "M", Label: "Medium"},
		{Value: "L", Label: "Large"},
	}
	if diff := cmp.Diff(wantSizes, view.SizeOptions); diff != "" {
		t.Fatalf("size options mismatch (-want +got):\n%s", diff)
	}

	var labels []string
	for _, topping := range view.Toppings {
		labels = append(labels, topping.Label)
	}
	if diff := cmp.Diff(order.ToppingLabels(), labels); diff != "" {
		t.Fatalf("toppings must follow catalog order (-want +got):\n%s", diff)
	}
}

func TestNewView_ReflectsFormState(t *testing.T) {
	form := order.NewForm()
	_ = form.Change(order.FieldFullName, "Al")
	_ = form.Change(order.FieldSize, "L")
	_ = form.SetTopping("Mushrooms", true)

	view := render.NewView(render.PageOrder, testLinks, form)

	wantName := render.FieldView{
		Name:        order.FieldFullName,
		Label:       "Full Name",
		Placeholder: "Type full name",
		Value:       "Al",
		Message:     order.MsgFullNameTooShort,
		Validated:   true,
	}
	if diff := cmp.Diff(wantName, view.FullName); diff != "" {
		t.Fatalf("fullName mismatch (-want +got):\n%s", diff)
	}
	if !view.Size.Validated || view.Size.Message != "" {
		t.Fatalf("expected validated size without message: %#v", view.Size)
	}
	if !view.SizeOptions[3].Selected {
		t.Fatalf("expected Large selected: %#v", view.SizeOptions)
	}
	for _, topping := range view.Toppings {
		if topping.Checked != (topping.Label == "Mushrooms") {
			t.Fatalf("unexpected checked state for %q", topping.Label)
		}
	}
	if view.Enabled {
		t.Fatalf("expected disabled while fullName fails")
	}
}

func TestNewView_SuccessOutcome(t *testing.T) {
	form := order.NewForm()
	_ = form.Change(order.FieldFullName, "Ann")
	_ = form.Change(order.FieldSize, "M")
	if _, err := form.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	view := render.NewView(render.PageOrder, testLinks, form)
	if !view.Outcome.Succeeded {
		t.Fatalf("expected succeeded outcome")
	}
	want := "Thank you for your order, Ann! Your Medium pizza with no toppings is on the way."
	if view.Outcome.Message != want {
		t.Fatalf("message mismatch: %q", view.Outcome.Message)
	}
	if view.FullName.Value != "" || view.Enabled {
		t.Fatalf("expected reset draft after submit: %#v", view.FullName)
	}
}
