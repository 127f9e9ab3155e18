package http

import (
	"io"
	"net/http"

	"tierprice/monitoring"
)

// RegisterMetricsHandler 注册Prometheus指标路由
func RegisterMetricsHandler(mux *http.ServeMux, metrics *monitoring.MetricsCollector) {
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		io.WriteString(w, metrics.ExportPrometheus())
	})
}
