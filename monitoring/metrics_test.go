package monitoring

import (
	"strings"
	"sync"
	"testing"
)

func TestCounterAccumulates(t *testing.T) {
	mc := NewMetricsCollector()
	labels := map[string]string{"route": "/get_price", "status": "200"}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mc.IncrCounter("http_requests_total", 1, labels)
		}()
	}
	wg.Wait()

	m, ok := mc.GetMetric("http_requests_total", map[string]string{"status": "200", "route": "/get_price"})
	if !ok {
		t.Fatal("expected metric to exist")
	}
	if m.Value != 50 {
		t.Fatalf("expected 50, got %f", m.Value)
	}
}

func TestObserveAndGauge(t *testing.T) {
	mc := NewMetricsCollector()
	mc.Observe("latency_seconds", 0.5, nil)
	mc.Observe("latency_seconds", 1.5, nil)
	mc.SetGauge("model_features", 3, nil)
	mc.SetGauge("model_features", 2, nil)

	m, _ := mc.GetMetric("latency_seconds", nil)
	if m.Value != 2 || m.Count != 2 {
		t.Fatalf("unexpected summary: %+v", m)
	}
	g, _ := mc.GetMetric("model_features", nil)
	if g.Value != 2 {
		t.Fatalf("expected gauge 2, got %f", g.Value)
	}
}

func TestExportPrometheus(t *testing.T) {
	mc := NewMetricsCollector()
	mc.Describe("http_requests_total", "Requests served")
	mc.IncrCounter("http_requests_total", 2, map[string]string{"route": "/predict_proba", "status": "200"})
	mc.Observe("http_request_duration_seconds", 0.25, map[string]string{"route": "/predict_proba"})

	out := mc.ExportPrometheus()
	for _, want := range []string{
		"# HELP http_requests_total Requests served",
		"# TYPE http_requests_total counter",
		`http_requests_total{route="/predict_proba",status="200"} 2`,
		`http_request_duration_seconds_sum{route="/predict_proba"} 0.25`,
		`http_request_duration_seconds_count{route="/predict_proba"} 1`,
		"process_uptime_seconds ",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
