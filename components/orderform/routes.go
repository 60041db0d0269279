package orderform

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes lists the mounted paths for a base path.
type Routes struct {
	Home    string
	Order   string
	State   string
	Change  string
	Submit  string
	OpenAPI string
	Assets  string
}

// MountRoutes returns the full mount paths for the component under basePath.
func MountRoutes(basePath string, fns ...OptionFn) Routes {
	return mountRoutes(basePath, NewOptions(fns...))
}

func mountRoutes(basePath string, opts Options) Routes {
	assets := mountPath(basePath, opts.AssetsPath)
	if !strings.HasSuffix(assets, "/") {
		assets += "/"
	}
	return Routes{
		Home:    mountPath(basePath, opts.HomePath),
		Order:   mountPath(basePath, opts.OrderPath),
		State:   mountPath(basePath, opts.StatePath),
		Change:  mountPath(basePath, opts.ChangePath),
		Submit:  mountPath(basePath, opts.SubmitPath),
		OpenAPI: mountPath(basePath, opts.OpenAPIPath),
		Assets:  assets,
	}
}

// Patterns returns the registered patterns in a stable order.
func (r Routes) Patterns() []string {
	return []string{r.Home, r.Order, r.State, r.Change, r.Submit, r.OpenAPI, r.Assets}
}

// RegisterRoutes builds a component from fns and registers it under basePath.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	c, err := New(fns...)
	if err != nil {
		return Routes{}, err
	}
	return c.RegisterRoutes(mux, basePath)
}

func (c *Component) register(mux Mux, basePath string) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("orderform: missing mux")
	}
	h, err := c.newHandlers(basePath)
	if err != nil {
		return Routes{}, err
	}
	routes := h.routes

	mux.Handle(routes.Home, c.guard(allow(h.home, http.MethodGet, http.MethodHead)))
	mux.Handle(routes.Order, c.guard(allow(h.orderPage, http.MethodGet, http.MethodHead, http.MethodPost)))
	mux.Handle(routes.State, c.guard(allow(h.state, http.MethodGet, http.MethodHead)))
	mux.Handle(routes.Change, c.guard(allow(h.change, http.MethodPost)))
	mux.Handle(routes.Submit, c.guard(allow(h.submit, http.MethodPost)))
	mux.Handle(routes.OpenAPI, allow(h.apiDoc, http.MethodGet, http.MethodHead))
	mux.Handle(routes.Assets, allow(h.assets.ServeHTTP, http.MethodGet, http.MethodHead))
	return routes, nil
}

func allow(fn http.HandlerFunc, methods ...string) http.Handler {
	allowed := strings.Join(methods, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		for _, m := range methods {
			if r.Method == m {
				fn(w, r)
				return
			}
		}
		w.Header().Set("Allow", allowed)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
