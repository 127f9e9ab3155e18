package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"tierprice/monitoring"
)

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("index out of range")
	}))

	w := doRequest(t, handler, http.MethodPost, "/predict_proba", "{}")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if msg := decodeBody(t, w)["error"]; msg != "index out of range" {
		t.Fatalf("unexpected error message: %v", msg)
	}
}

func TestLoggerMiddlewareRequestID(t *testing.T) {
	var seen string
	handler := LoggerMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	w := doRequest(t, handler, http.MethodGet, "/", "")
	if seen == "" || w.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("expected generated request id in context and header, got %q / %q", seen, w.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "upstream-id" {
		t.Fatalf("expected upstream request id to be reused, got %q", seen)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	metrics := monitoring.NewMetricsCollector()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /get_price", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	handler := MetricsMiddleware(metrics, mux)(mux)

	doRequest(t, handler, http.MethodPost, "/get_price", "")
	doRequest(t, handler, http.MethodGet, "/random/path", "")

	if m, ok := metrics.GetMetric("http_requests_total", map[string]string{"route": "/get_price", "method": "POST", "status": "400"}); !ok || m.Value != 1 {
		t.Fatalf("expected one /get_price request, got %+v", m)
	}
	if _, ok := metrics.GetMetric("http_requests_total", map[string]string{"route": "unmatched", "method": "GET", "status": "404"}); !ok {
		t.Fatal("expected unmatched route to be grouped")
	}
}

func TestMetricsMiddlewareGroupsUnregisteredPaths(t *testing.T) {
	metrics := monitoring.NewMetricsCollector()
	server := NewServer(DefaultServerConfig(), zap.NewNop(), metrics, func(mux *http.ServeMux) {
		RegisterDocs(mux, PredictDocs)
	})

	for _, path := range []string{"/static/junk-1", "/static/junk-2", "/swagger/junk-3"} {
		w := doRequest(t, server.Handler(), http.MethodPost, path, "")
		if w.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405 for %s, got %d", path, w.Code)
		}
	}

	m, ok := metrics.GetMetric("http_requests_total", map[string]string{"route": "unmatched", "method": "POST", "status": "405"})
	if !ok || m.Value != 3 {
		t.Fatalf("expected three requests in one unmatched series, got %+v", m)
	}
	if strings.Contains(metrics.ExportPrometheus(), "junk") {
		t.Fatal("raw request paths leaked into metric labels")
	}

	doRequest(t, server.Handler(), http.MethodGet, "/static/openapi_predict.yaml", "")
	if _, ok := metrics.GetMetric("http_requests_total", map[string]string{"route": "/static/", "method": "GET", "status": "200"}); !ok {
		t.Fatal("expected static file request labelled with its pattern")
	}
}

func TestRecoveredPanicIsCounted(t *testing.T) {
	metrics := monitoring.NewMetricsCollector()
	server := NewServer(DefaultServerConfig(), zap.NewNop(), metrics, func(mux *http.ServeMux) {
		mux.HandleFunc("POST /predict_proba", func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})
	})

	w := doRequest(t, server.Handler(), http.MethodPost, "/predict_proba", "{}")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if msg := decodeBody(t, w)["error"]; msg != "boom" {
		t.Fatalf("unexpected error message: %v", msg)
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatal("expected request id on recovered response")
	}
	if _, ok := metrics.GetMetric("http_requests_total", map[string]string{"route": "/predict_proba", "method": "POST", "status": "500"}); !ok {
		t.Fatal("expected recovered panic to be counted as 500")
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORSMiddleware([]string{"http://docs.local"})(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodOptions, "/get_price", nil)
	req.Header.Set("Origin", "http://docs.local")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://docs.local" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestRequestSizeMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	RegisterPredictHandlers(mux, &fakePredictor{features: 2})
	handler := RequestSizeMiddleware(16)(mux)

	w := doRequest(t, handler, http.MethodPost, "/predict_proba", `{"features": [[1, 2], [3, 4], [5, 6]]}`)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "error") {
		t.Fatalf("expected JSON error body, got %s", w.Body.String())
	}
}
