package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"tierprice/inference"
	"tierprice/monitoring"
	"tierprice/pricing"
)

// Quoter prices a raw {"features": ...} payload.
type Quoter interface {
	Quote(ctx context.Context, payload []byte) (*pricing.Quote, error)
}

// RegisterPricingHandlers 注册定价服务路由
func RegisterPricingHandlers(mux *http.ServeMux, quoter Quoter, metrics *monitoring.MetricsCollector) {
	if metrics != nil {
		metrics.Describe("pricing_prices_total", "Prices issued by tier")
		metrics.Describe("pricing_upstream_failures_total", "Failed calls to the prediction service")
	}
	mux.Handle("POST /get_price", &pricingHandler{quoter: quoter, metrics: metrics})
}

type pricingHandler struct {
	quoter  Quoter
	metrics *monitoring.MetricsCollector
}

func (h *pricingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, bodyStatus(err), err.Error())
		return
	}

	// Only presence is checked here; the prediction service validates shape.
	var req featuresRequest
	if err := json.Unmarshal(body, &req); err != nil || !hasFeatures(req.Features) {
		writeError(w, http.StatusBadRequest, inference.ErrMissingFeatures.Error())
		return
	}

	ctx := pricing.WithRequestID(r.Context(), GetRequestID(r.Context()))
	quote, err := h.quoter.Quote(ctx, body)
	if err != nil {
		if h.metrics != nil {
			h.metrics.IncrCounter("pricing_upstream_failures_total", 1, nil)
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.metrics != nil {
		for _, price := range quote.Prices {
			h.metrics.IncrCounter("pricing_prices_total", 1, map[string]string{"price": strconv.Itoa(price)})
		}
	}
	respondJSON(w, http.StatusOK, quote)
}

func hasFeatures(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
