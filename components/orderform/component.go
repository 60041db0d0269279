package orderform

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/render"
	"github.com/goliatone/go-orderform/pkg/renderers/tui"
	"github.com/goliatone/go-orderform/pkg/renderers/vanilla"
)

// Component bundles the order form handlers, their configuration and the
// session store.
type Component struct {
	opts  Options
	store *Store
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) (*Component, error) {
	opts := NewOptions(fns...)
	if opts.Renderers != nil {
		if _, err := opts.Renderers.Get(defaultFormat); err != nil {
			return nil, fmt.Errorf("orderform: %w", err)
		}
	}
	hook := opts.SubmitHook
	store := NewStore(opts.SessionTTL, func() *order.Form {
		return order.NewForm(order.WithSubmitHook(hook))
	})
	store.now = opts.now
	return &Component{opts: opts, store: store}, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Store exposes the session store, mainly so callers can run its sweeper.
func (c *Component) Store() *Store {
	return c.store
}

// Handler returns a mux serving every route under basePath.
func (c *Component) Handler(basePath string) (http.Handler, error) {
	mux := http.NewServeMux()
	if _, err := c.RegisterRoutes(mux, basePath); err != nil {
		return nil, err
	}
	return mux, nil
}

// RegisterRoutes registers the component routes under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (Routes, error) {
	if c == nil {
		return Routes{}, fmt.Errorf("orderform: nil component")
	}
	return c.register(mux, basePath)
}

func (c *Component) renderers(routes Routes) (*render.Registry, error) {
	if c.opts.Renderers != nil {
		return c.opts.Renderers, nil
	}
	html, err := vanilla.New(
		vanilla.WithTheme(c.opts.Theme.RebaseAssets(routes.Assets)),
		vanilla.WithIntroHTML(c.opts.IntroHTML),
		vanilla.WithScriptURL(routes.Assets+vanilla.RuntimeScriptName),
	)
	if err != nil {
		return nil, fmt.Errorf("orderform: html renderer: %w", err)
	}
	return render.NewRegistry(html, tui.New())
}

func (c *Component) guard(next http.Handler) http.Handler {
	if c.opts.Guard == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := c.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
