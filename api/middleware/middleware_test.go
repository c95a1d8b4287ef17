package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pixelcart/pixelcart-backend/pkg/logger"
	"github.com/pixelcart/pixelcart-backend/pkg/metrics"
)

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected a generated request id header")
	}
}

func TestRequestIDEchoed(t *testing.T) {
	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Request-Id", "req-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if got := w.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("expected echoed id, got %q", got)
	}
}

func TestRecovererTurnsPanicInto500(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	handler := Recoverer(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestLoggingCountsRequests(t *testing.T) {
	m := metrics.NewService("test")
	handler := Logging(nil, m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/games", nil))

	families, err := m.Gather().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, fam := range families {
		if fam.GetName() == "http_requests_total" {
			found = true
		}
	}
	if !found {
		t.Fatalf("request counter not registered")
	}
}
