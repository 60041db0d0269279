package render

import (
	"github.com/goliatone/go-orderform/pkg/order"
)

// Page identifies one of the navigable views.
type Page string

const (
	PageHome  Page = "home"
	PageOrder Page = "order"
)

// SizePlaceholder labels the empty size option.
const SizePlaceholder = "----Choose Size----"

// Links holds the mounted URLs for the navigable views.
type Links struct {
	Home  string `json:"home"`
	Order string `json:"order"`
	// Change is the JSON endpoint that applies a single field change. When
	// empty the page works as a plain form post.
	Change string `json:"change,omitempty"`
}

// NavLink is a navigation entry. Active is set for the current page.
type NavLink struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// FieldView is a text or select control. Validated mirrors whether the field
// has an entry in order.FieldErrors, so the inline message slot is only
// rendered once the user has touched the field.
type FieldView struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	Value       string `json:"value"`
	Message     string `json:"message"`
	Validated   bool   `json:"validated"`
}

type SizeOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type ToppingView struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// OutcomeView is the displayed submit result.
type OutcomeView struct {
	Status    order.Status    `json:"status"`
	Succeeded bool            `json:"succeeded"`
	Failed    bool            `json:"failed"`
	Message   string          `json:"message"`
	Snapshot  *order.Snapshot `json:"snapshot,omitempty"`
}

// View is the render-ready projection of a page and, for the order page, of
// the form state behind it.
type View struct {
	Page        Page          `json:"page"`
	Title       string        `json:"title"`
	Nav         []NavLink     `json:"nav"`
	Action      string        `json:"action,omitempty"`
	ChangeURL   string        `json:"changeUrl,omitempty"`
	FullName    FieldView     `json:"fullName"`
	Size        FieldView     `json:"size"`
	SizeOptions []SizeOption  `json:"sizeOptions,omitempty"`
	Toppings    []ToppingView `json:"toppings,omitempty"`
	Enabled     bool          `json:"enabled"`
	Outcome     OutcomeView   `json:"outcome"`
	IntroHTML   string        `json:"introHtml,omitempty"`
	Theme       *ThemeView    `json:"theme,omitempty"`
}

// NewView projects the form into a View for page. form may be nil for the
// home page.
func NewView(page Page, links Links, form *order.Form) View {
	view := View{
		Page:  page,
		Title: pageTitle(page),
		Nav: []NavLink{
			{Label: "Home", Href: links.Home, Active: page == PageHome},
			{Label: "Order", Href: links.Order, Active: page == PageOrder},
		},
	}
	if page != PageOrder {
		return view
	}
	if form == nil {
		form = order.NewForm()
	}

	draft := form.Draft()
	errs := form.Errors()

	view.Action = links.Order
	view.ChangeURL = links.Change
	view.FullName = fieldView(order.FieldFullName, "Full Name", draft.FullName, errs)
	view.FullName.Placeholder = "Type full name"
	view.Size = fieldView(order.FieldSize, "Size", string(draft.Size), errs)

	view.SizeOptions = append(view.SizeOptions, SizeOption{
		Value:    "",
		Label:    SizePlaceholder,
		Selected: draft.Size == order.SizeUnset,
	})
	for _, size := range order.Sizes() {
		view.SizeOptions = append(view.SizeOptions, SizeOption{
			Value:    string(size),
			Label:    size.DisplayName(),
			Selected: draft.Size == size,
		})
	}

	for _, topping := range order.Toppings() {
		view.Toppings = append(view.Toppings, ToppingView{
			ID:      topping.ID,
			Label:   topping.Label,
			Checked: draft.HasTopping(topping.Label),
		})
	}

	view.Enabled = form.Enabled()
	view.Outcome = outcomeView(form.Outcome())
	return view
}

func fieldView(name, label, value string, errs order.FieldErrors) FieldView {
	msg, validated := errs.Message(name)
	return FieldView{
		Name:      name,
		Label:     label,
		Value:     value,
		Message:   msg,
		Validated: validated,
	}
}

func outcomeView(o order.Outcome) OutcomeView {
	return OutcomeView{
		Status:    o.Status,
		Succeeded: o.Status == order.StatusSucceeded,
		Failed:    o.Status == order.StatusFailed,
		Message:   o.Message(),
		Snapshot:  o.Snapshot,
	}
}

func pageTitle(page Page) string {
	switch page {
	case PageOrder:
		return "Order Your Pizza"
	default:
		return "Welcome to the Pizza Shop"
	}
}
