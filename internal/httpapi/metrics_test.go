package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func scrape(t *testing.T) []byte {
	t.Helper()
	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if mrr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", mrr.Code)
	}
	return mrr.Body.Bytes()
}

func preview(b []byte) string {
	if len(b) > 400 {
		b = b[:400]
	}
	return string(b)
}

// TestMetricsMiddleware_EmitsRequestCounters verifies that wrapping a handler
// with MetricsMiddleware results in request metrics being exposed via the
// Prometheus /metrics handler.
func TestMetricsMiddleware_EmitsRequestCounters(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	rr := httptest.NewRecorder()
	MetricsMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := scrape(t)
	if !bytes.Contains(body, []byte("lingod_http_requests_total")) {
		t.Fatalf("expected lingod_http_requests_total in metrics; got: %q", preview(body))
	}
}

// TestMetricsMiddleware_UsesRoutePattern ensures requests are labelled by the
// chi route pattern instead of the raw URL path.
func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/messages/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/messages/42", nil))
	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rr.Code)
	}
	body := scrape(t)
	if !bytes.Contains(body, []byte(`path="/messages/{id}"`)) {
		t.Fatalf("expected route pattern label; got: %q", preview(body))
	}
	if bytes.Contains(body, []byte(`path="/messages/42"`)) {
		t.Fatalf("raw path leaked into labels")
	}
}

func TestIncrementBackpressure_DefaultReason(t *testing.T) {
	IncrementBackpressure("")
	if !bytes.Contains(scrape(t), []byte(`lingod_http_backpressure_total{reason="unspecified"}`)) {
		t.Fatalf("expected unspecified backpressure sample")
	}
}
