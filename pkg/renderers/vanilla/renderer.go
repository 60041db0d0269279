package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-orderform/pkg/render"
	rendertemplate "github.com/goliatone/go-orderform/pkg/render/template"
	gotemplate "github.com/goliatone/go-orderform/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *render.ThemeConfig
	introHTML        string
	scriptURL        string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies a resolved theme to every page.
func WithTheme(theme *render.ThemeConfig) Option {
	return func(cfg *config) {
		cfg.theme = theme
	}
}

// WithIntroHTML sets the home page blurb. The markup is sanitized once here.
func WithIntroHTML(html string) Option {
	return func(cfg *config) {
		cfg.introHTML = SanitizeIntro(html)
	}
}

// WithScriptURL sets where the page loads the change runtime from.
func WithScriptURL(url string) Option {
	return func(cfg *config) {
		cfg.scriptURL = url
	}
}

// Renderer renders the home and order pages as HTML.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *render.ThemeView
	introHTML string
	scriptURL string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		scriptURL:  "/assets/" + RuntimeScriptName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		theme:     cfg.theme.View(),
		introHTML: cfg.introHTML,
		scriptURL: cfg.scriptURL,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, view render.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	if view.Theme == nil {
		view.Theme = r.theme
	}

	name := "templates/order.tmpl"
	if view.Page != render.PageOrder {
		name = "templates/home.tmpl"
		if view.IntroHTML == "" {
			view.IntroHTML = r.introHTML
		} else {
			view.IntroHTML = SanitizeIntro(view.IntroHTML)
		}
	}

	result, err := r.templates.RenderTemplate(name, map[string]any{
		"view":   view,
		"script": r.scriptURL,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render %s: %w", view.Page, err)
	}
	return []byte(result), nil
}
