package orderform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/render"
)

type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newTestClient(t *testing.T, basePath string, fns ...OptionFn) *testClient {
	t.Helper()
	c, err := New(fns...)
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	h, err := c.Handler(basePath)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	return &testClient{t: t, handler: h}
}

func (c *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return rec
}

func (c *testClient) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *testClient) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *testClient) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) State {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	var st State
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return st
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var payload errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return payload
}

func TestHandler_HomePage(t *testing.T) {
	c := newTestClient(t, "", WithIntroHTML("<p>Hot pies</p>"))

	rec := c.get("/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected HTML, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<a href="/" class="active">Home</a>`) || !strings.Contains(body, "<p>Hot pies</p>") {
		t.Fatalf("unexpected home page:\n%s", body)
	}

	if rec := c.get("/missing"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", rec.Code)
	}
}

func TestHandler_OrderPageStartsSession(t *testing.T) {
	c := newTestClient(t, "")

	rec := c.get("/order")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(c.cookies) != 1 || c.cookies[0].Name != DefaultCookieName || c.cookies[0].Value == "" {
		t.Fatalf("expected session cookie, got %v", c.cookies)
	}
	if !c.cookies[0].HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	if !strings.Contains(rec.Body.String(), `<input type="submit" disabled>`) {
		t.Fatalf("expected disabled submit on fresh form")
	}
}

func TestHandler_ChangeAndSubmit(t *testing.T) {
	c := newTestClient(t, "")

	st := decodeState(t, c.postJSON("/api/order/change", `{"field":"fullName","value":"Ann"}`))
	if st.Enabled {
		t.Fatalf("submit must stay disabled until size is valid")
	}
	if diff := cmp.Diff(order.FieldErrors{"fullName": ""}, st.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	st = decodeState(t, c.postJSON("/api/order/change", `{"field":"size","value":"M"}`))
	if !st.Enabled {
		t.Fatalf("expected submit enabled")
	}

	rec := c.postJSON("/api/order/submit", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	st = decodeState(t, rec)

	want := OutcomeState{
		Status:   order.StatusSucceeded,
		Message:  "Thank you for your order, Ann! Your Medium pizza with no toppings is on the way.",
		Snapshot: &order.Snapshot{FullName: "Ann", Size: order.SizeMedium, Toppings: []string{}},
	}
	if diff := cmp.Diff(want, st.Outcome); diff != "" {
		t.Fatalf("outcome mismatch (-want +got):\n%s", diff)
	}
	if !st.Draft.Empty() || st.Enabled {
		t.Fatalf("expected reset draft after submit, got %+v", st)
	}

	st = decodeState(t, c.get("/api/order"))
	if st.Outcome.Status != order.StatusSucceeded {
		t.Fatalf("outcome must persist for the session")
	}
}

func TestHandler_ToppingChanges(t *testing.T) {
	c := newTestClient(t, "")

	c.postJSON("/api/order/change", `{"field":"toppings","value":"Ham","checked":true}`)
	st := decodeState(t, c.postJSON("/api/order/change", `{"field":"toppings","value":"Pineapple","checked":true}`))
	if diff := cmp.Diff([]string{"Ham", "Pineapple"}, st.Draft.Toppings); diff != "" {
		t.Fatalf("toppings mismatch (-want +got):\n%s", diff)
	}

	st = decodeState(t, c.postJSON("/api/order/change", `{"field":"toppings","value":"Ham","checked":false}`))
	if diff := cmp.Diff([]string{"Pineapple"}, st.Draft.Toppings); diff != "" {
		t.Fatalf("toppings mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_ChangeErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
	}{
		{name: "broken json", body: `{"field":`, code: http.StatusBadRequest},
		{name: "missing field", body: `{"value":"Ann"}`, code: http.StatusBadRequest},
		{name: "wrong value type", body: `{"field":"size","value":2}`, code: http.StatusBadRequest},
		{name: "unknown field", body: `{"field":"crust","value":"thin"}`, code: http.StatusUnprocessableEntity},
		{name: "unknown topping", body: `{"field":"toppings","value":"Anchovies","checked":true}`, code: http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, "")
			rec := c.postJSON("/api/order/change", tc.body)
			if rec.Code != tc.code {
				t.Fatalf("expected status %d, got %d", tc.code, rec.Code)
			}
			if payload := decodeError(t, rec); payload.Status != tc.code || payload.Error == "" {
				t.Fatalf("unexpected error payload %+v", payload)
			}
		})
	}
}

func TestHandler_SubmitDisabled(t *testing.T) {
	c := newTestClient(t, "")
	c.postJSON("/api/order/change", `{"field":"fullName","value":"Ann"}`)

	rec := c.postJSON("/api/order/submit", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	st := decodeState(t, c.get("/api/order"))
	if st.Draft.FullName != "Ann" || st.Outcome.Status != order.StatusNone {
		t.Fatalf("disabled submit must not change state, got %+v", st)
	}
}

func TestHandler_SubmitHookFailure(t *testing.T) {
	c := newTestClient(t, "", WithSubmitHook(func(context.Context, order.Snapshot) error {
		return errors.New("oven offline")
	}))
	c.postJSON("/api/order/change", `{"field":"fullName","value":"Bo Lee"}`)
	c.postJSON("/api/order/change", `{"field":"size","value":"S"}`)

	rec := c.postJSON("/api/order/submit", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	st := decodeState(t, rec)
	if st.Outcome.Status != order.StatusFailed || st.Outcome.Message != order.FailureMessage {
		t.Fatalf("expected failed outcome, got %+v", st.Outcome)
	}
	if st.Draft.FullName != "Bo Lee" || !st.Enabled {
		t.Fatalf("draft must survive a failed submit, got %+v", st)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	c := newTestClient(t, "")

	for _, tc := range []struct {
		method string
		path   string
		allow  string
	}{
		{http.MethodGet, "/api/order/change", "POST"},
		{http.MethodGet, "/api/order/submit", "POST"},
		{http.MethodDelete, "/order", "GET, HEAD, POST"},
		{http.MethodPost, "/api/order", "GET, HEAD"},
	} {
		rec := c.do(httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: expected 405, got %d", tc.method, tc.path, rec.Code)
		}
		if got := rec.Header().Get("Allow"); got != tc.allow {
			t.Fatalf("%s %s: unexpected Allow %q", tc.method, tc.path, got)
		}
	}
}

func TestHandler_FormPost(t *testing.T) {
	c := newTestClient(t, "")

	rec := c.postForm("/order", url.Values{
		"fullName": {"Cara"},
		"size":     {"L"},
		"toppings": {"Ham", "Mushrooms"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	want := "Thank you for your order, Cara! Your Large pizza with 2 toppings is on the way."
	if !strings.Contains(rec.Body.String(), want) {
		t.Fatalf("expected confirmation:\n%s", rec.Body.String())
	}

	rec = c.postForm("/order", url.Values{"fullName": {"Jo"}, "size": {"XL"}})
	body := rec.Body.String()
	if !strings.Contains(body, order.MsgFullNameTooShort) || !strings.Contains(body, order.MsgSizeIncorrect) {
		t.Fatalf("expected both field errors:\n%s", body)
	}

	before := decodeState(t, c.get("/api/order"))
	rec = c.postForm("/order", url.Values{
		"fullName": {"Ann"},
		"size":     {"M"},
		"toppings": {"Ham", "Anchovies"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown topping, got %d", rec.Code)
	}
	after := decodeState(t, c.get("/api/order"))
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("rejected post changed the form (-before +after):\n%s", diff)
	}
	if after.Enabled {
		t.Fatalf("rejected post must not enable submit")
	}
}

func TestHandler_SessionsAreIsolated(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	h, err := c.Handler("")
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	alice := &testClient{t: t, handler: h}
	bob := &testClient{t: t, handler: h}

	alice.postJSON("/api/order/change", `{"field":"fullName","value":"Alice"}`)
	st := decodeState(t, bob.get("/api/order"))
	if st.Draft.FullName != "" {
		t.Fatalf("sessions leaked: %+v", st.Draft)
	}
	if c.Store().Len() != 2 {
		t.Fatalf("expected two sessions, got %d", c.Store().Len())
	}
}

func TestHandler_OpenAPIDocument(t *testing.T) {
	c := newTestClient(t, "/pizza")

	rec := c.get("/pizza/api/openapi.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var doc struct {
		OpenAPI string                     `json:"openapi"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.OpenAPI != "3.0.3" {
		t.Fatalf("unexpected version %q", doc.OpenAPI)
	}
	for _, path := range []string{"/pizza/api/order", "/pizza/api/order/change", "/pizza/api/order/submit"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Fatalf("missing path %s in %v", path, doc.Paths)
		}
	}
}

func TestHandler_Assets(t *testing.T) {
	c := newTestClient(t, "")

	rec := c.get("/assets/orderform.js")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("fetch(")) {
		t.Fatalf("expected runtime script body")
	}
}

var stylesheetHref = regexp.MustCompile(`<link rel="stylesheet" href="([^"]+)">`)

func TestHandler_StylesheetUnderBasePath(t *testing.T) {
	theme, err := render.ResolveTheme(nil, "")
	if err != nil {
		t.Fatalf("resolve theme: %v", err)
	}
	c := newTestClient(t, "/pizza", WithTheme(theme))

	rec := c.get("/pizza/order")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	match := stylesheetHref.FindStringSubmatch(rec.Body.String())
	if match == nil {
		t.Fatalf("expected a stylesheet link:\n%s", rec.Body.String())
	}
	if match[1] != "/pizza/assets/orderform.css" {
		t.Fatalf("unexpected stylesheet href %q", match[1])
	}

	rec = c.get(match[1])
	if rec.Code != http.StatusOK {
		t.Fatalf("stylesheet %s: expected status 200, got %d", match[1], rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Fatalf("unexpected stylesheet content type %q", ct)
	}
}

func TestHandler_TextFormat(t *testing.T) {
	c := newTestClient(t, "")

	rec := c.get("/order?format=text")
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected plain text, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Submit: disabled") {
		t.Fatalf("unexpected text page:\n%s", rec.Body.String())
	}

	if rec := c.get("/order?format=pdf"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown format, got %d", rec.Code)
	}
}

func TestHandler_Guard(t *testing.T) {
	c := newTestClient(t, "", WithGuard(func(r *http.Request) error {
		if r.Header.Get("X-Staff") == "" {
			return StatusError{Code: http.StatusUnauthorized}
		}
		return nil
	}))

	if rec := c.get("/api/order"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/order", nil)
	req.Header.Set("X-Staff", "1")
	if rec := c.do(req); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{StatusError{Code: http.StatusTeapot}, http.StatusTeapot},
		{order.ErrUnknownField, http.StatusUnprocessableEntity},
		{order.ErrSubmitDisabled, http.StatusConflict},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Fatalf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
