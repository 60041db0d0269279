package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddleware_LogsRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	h := Middleware(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("busy"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/order/submit", nil))

	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusConflict) || fields["bytes"] != int64(4) {
		t.Fatalf("unexpected fields %v", fields)
	}
	if fields["path"] != "/api/order/submit" || fields["method"] != http.MethodPost {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestMiddleware_ServerErrorsLogAtErrorLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := Middleware(zap.New(core), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if logs.FilterMessage("request").FilterLevelExact(zapcore.ErrorLevel).Len() != 1 {
		t.Fatalf("expected an error-level entry")
	}
}

func TestMiddleware_DistinctRequestIDs(t *testing.T) {
	h := Middleware(nil, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	first := httptest.NewRecorder()
	second := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	if first.Header().Get(RequestIDHeader) == second.Header().Get(RequestIDHeader) {
		t.Fatalf("request ids must differ")
	}
}

func TestNew(t *testing.T) {
	logger, err := New(true)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("verbose logger must enable debug")
	}
	quiet, err := New(false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if quiet.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("default logger must not enable debug")
	}
}
