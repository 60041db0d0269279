package orderform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/openapi"
	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/render"
	"github.com/goliatone/go-orderform/pkg/renderers/vanilla"
)

const (
	maxBodyBytes  = 1 << 16
	defaultFormat = "html"
	formatParam   = "format"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// statusFor maps domain and transport errors to HTTP status codes.
func statusFor(err error) int {
	var httpErr HTTPError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &httpErr):
		return httpErr.StatusCode()
	case errors.Is(err, openapi.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrUnknownField), errors.Is(err, order.ErrUnknownTopping):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrSubmitDisabled):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type handlers struct {
	c         *Component
	routes    Routes
	links     render.Links
	renderers *render.Registry
	document  []byte
	assets    http.Handler
	log       *zap.Logger
}

func (c *Component) newHandlers(basePath string) (*handlers, error) {
	routes := mountRoutes(basePath, c.opts)

	registry, err := c.renderers(routes)
	if err != nil {
		return nil, err
	}
	doc, err := openapi.MarshalDocument(context.Background(), openapi.NewDocument(openapi.Paths{
		State:  routes.State,
		Change: routes.Change,
		Submit: routes.Submit,
	}))
	if err != nil {
		return nil, fmt.Errorf("orderform: %w", err)
	}

	return &handlers{
		c:      c,
		routes: routes,
		links: render.Links{
			Home:   routes.Home,
			Order:  routes.Order,
			Change: routes.Change,
		},
		renderers: registry,
		document:  doc,
		assets:    http.StripPrefix(routes.Assets, http.FileServer(http.FS(vanilla.AssetsFS()))),
		log:       c.opts.Logger,
	}, nil
}

func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != h.routes.Home && r.URL.Path != strings.TrimSuffix(h.routes.Home, "/") {
		http.NotFound(w, r)
		return
	}
	h.renderPage(w, r, http.StatusOK, render.NewView(render.PageHome, h.links, nil))
}

func (h *handlers) orderPage(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	var view render.View
	err := sess.Do(func(form *order.Form) error {
		if r.Method == http.MethodPost {
			if err := h.applyPost(w, r, form); err != nil {
				return err
			}
		}
		view = render.NewView(render.PageOrder, h.links, form)
		return nil
	})
	if err != nil {
		code := statusFor(err)
		http.Error(w, http.StatusText(code), code)
		return
	}
	h.renderPage(w, r, http.StatusOK, view)
}

// applyPost treats a plain form post as a batch of changes followed by a
// submit attempt. Fields missing from the post are left as they are. A post
// naming an unknown topping changes nothing.
func (h *handlers) applyPost(w http.ResponseWriter, r *http.Request, form *order.Form) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return StatusError{Code: http.StatusBadRequest, Err: err}
	}

	// Reject the whole post before touching the form.
	picked := make(map[string]bool)
	for _, label := range r.PostForm[order.FieldToppings] {
		if !order.IsTopping(label) {
			return fmt.Errorf("%w: %q", order.ErrUnknownTopping, label)
		}
		picked[label] = true
	}

	for _, field := range []string{order.FieldFullName, order.FieldSize} {
		if _, ok := r.PostForm[field]; !ok {
			continue
		}
		if err := form.Change(field, r.PostForm.Get(field)); err != nil {
			return err
		}
	}
	for _, label := range order.ToppingLabels() {
		if err := form.SetTopping(label, picked[label]); err != nil {
			return err
		}
	}

	if !form.Enabled() {
		return nil
	}
	outcome, err := form.Submit(r.Context())
	h.logSubmit(outcome, err)
	if err != nil && !errors.Is(err, order.ErrSubmitFailed) {
		return err
	}
	return nil
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	var st State
	_ = sess.Do(func(form *order.Form) error {
		st = StateOf(form)
		return nil
	})
	writeJSON(w, r, http.StatusOK, st)
}

func (h *handlers) change(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, StatusError{Code: http.StatusBadRequest, Err: err})
		return
	}
	req, err := openapi.DecodeChange(raw)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sess := h.session(w, r)
	var st State
	err = sess.Do(func(form *order.Form) error {
		var err error
		if req.Field == order.FieldToppings {
			err = form.SetTopping(req.Value, req.Checked)
		} else {
			err = form.Change(req.Field, req.Value)
		}
		if err != nil {
			return err
		}
		st = StateOf(form)
		return nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.log.Debug("order field changed",
		zap.String("session", sess.ID),
		zap.String("field", req.Field),
		zap.Bool("enabled", st.Enabled),
	)
	writeJSON(w, r, http.StatusOK, st)
}

func (h *handlers) submit(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	var st State
	err := sess.Do(func(form *order.Form) error {
		outcome, err := form.Submit(r.Context())
		h.logSubmit(outcome, err)
		if err != nil && !errors.Is(err, order.ErrSubmitFailed) {
			return err
		}
		st = StateOf(form)
		return nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, st)
}

func (h *handlers) apiDoc(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(h.document)
}

func (h *handlers) logSubmit(outcome order.Outcome, err error) {
	switch {
	case err == nil && outcome.Snapshot != nil:
		h.log.Info("order placed",
			zap.String("size", string(outcome.Snapshot.Size)),
			zap.Int("toppings", len(outcome.Snapshot.Toppings)),
		)
	case errors.Is(err, order.ErrSubmitFailed):
		h.log.Warn("order submit failed", zap.Error(err))
	}
}

func (h *handlers) session(w http.ResponseWriter, r *http.Request) *Session {
	var id string
	if cookie, err := r.Cookie(h.c.opts.CookieName); err == nil {
		id = cookie.Value
	}
	sess, created := h.c.store.Acquire(id)
	if created {
		h.log.Debug("session started", zap.String("session", sess.ID))
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.c.opts.CookieName,
		Value:    sess.ID,
		Path:     sessionCookiePath(h.routes.Home),
		MaxAge:   int(h.c.opts.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func sessionCookiePath(home string) string {
	path := strings.TrimSuffix(home, "/")
	if path == "" {
		return "/"
	}
	return path
}

func (h *handlers) renderPage(w http.ResponseWriter, r *http.Request, status int, view render.View) {
	format := r.URL.Query().Get(formatParam)
	if format == "" {
		format = defaultFormat
	}
	renderer, err := h.renderers.Get(format)
	if err != nil {
		http.Error(w, fmt.Sprintf("unknown format %q", format), http.StatusBadRequest)
		return
	}

	out, err := renderer.Render(r.Context(), view)
	if err != nil {
		h.log.Error("render page", zap.String("page", string(view.Page)), zap.Error(err))
		code := statusFor(err)
		http.Error(w, http.StatusText(code), code)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(out)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if r != nil && r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	writeJSON(w, r, code, errorResponse{Error: err.Error(), Status: code})
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
