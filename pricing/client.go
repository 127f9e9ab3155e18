package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const DefaultTimeout = 10 * time.Second

var (
	ErrUpstreamStatus  = errors.New("failed to get probabilities from prediction API")
	ErrNoProbabilities = errors.New("no probabilities returned from prediction API")
)

// ProbabilityClient fetches positive-class probabilities for a raw
// {"features": ...} payload.
type ProbabilityClient interface {
	PredictProba(ctx context.Context, payload []byte) ([]float64, error)
}

// HTTPClient posts payloads to the inference service's /predict_proba URL.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type requestIDKey struct{}

// WithRequestID attaches id to ctx; HTTPClient forwards it as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

type predictResponse struct {
	Probabilities []float64 `json:"probabilities"`
}

// PredictProba sends payload unchanged. There is no retry.
func (c *HTTPClient) PredictProba(ctx context.Context, payload []byte) ([]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamStatus, resp.StatusCode)
	}

	var body predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode predict response: %w", err)
	}
	if len(body.Probabilities) == 0 {
		return nil, ErrNoProbabilities
	}
	return body.Probabilities, nil
}
