package orderform

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/render"
)

const (
	DefaultCookieName = "orderform_session"
	DefaultSessionTTL = 30 * time.Minute
)

type GuardFunc func(r *http.Request) error

type Options struct {
	HomePath    string
	OrderPath   string
	StatePath   string
	ChangePath  string
	SubmitPath  string
	OpenAPIPath string
	AssetsPath  string

	CookieName string
	SessionTTL time.Duration

	// Renderers holds the page renderers keyed by name. The "html" renderer
	// is the default; others are picked with ?format=<name>.
	Renderers *render.Registry
	Theme     *render.ThemeConfig
	IntroHTML string

	SubmitHook order.SubmitHook
	Guard      GuardFunc
	Logger     *zap.Logger

	now func() time.Time
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		HomePath:    "/",
		OrderPath:   "/order",
		StatePath:   "/api/order",
		ChangePath:  "/api/order/change",
		SubmitPath:  "/api/order/submit",
		OpenAPIPath: "/api/openapi.json",
		AssetsPath:  "/assets/",
		CookieName:  DefaultCookieName,
		SessionTTL:  DefaultSessionTTL,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	def := DefaultOptions()
	if opts.HomePath == "" {
		opts.HomePath = def.HomePath
	}
	if opts.OrderPath == "" {
		opts.OrderPath = def.OrderPath
	}
	if opts.StatePath == "" {
		opts.StatePath = def.StatePath
	}
	if opts.ChangePath == "" {
		opts.ChangePath = def.ChangePath
	}
	if opts.SubmitPath == "" {
		opts.SubmitPath = def.SubmitPath
	}
	if opts.OpenAPIPath == "" {
		opts.OpenAPIPath = def.OpenAPIPath
	}
	if opts.AssetsPath == "" {
		opts.AssetsPath = def.AssetsPath
	}
	if opts.CookieName == "" {
		opts.CookieName = def.CookieName
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = def.SessionTTL
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.now == nil {
		opts.now = time.Now
	}
	return opts
}

func WithSessionTTL(ttl time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SessionTTL = ttl
	}
}

func WithCookieName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CookieName = name
	}
}

func WithRenderers(registry *render.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderers = registry
	}
}

// WithTheme is applied to the default HTML renderer. It has no effect when
// WithRenderers supplies the renderers.
func WithTheme(theme *render.ThemeConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = theme
	}
}

func WithIntroHTML(html string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.IntroHTML = html
	}
}

func WithSubmitHook(hook order.SubmitHook) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SubmitHook = hook
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func withClock(now func() time.Time) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.now = now
	}
}
