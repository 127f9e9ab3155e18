package pricing

import (
	"context"
	"errors"
	"testing"
)

type fakeClient struct {
	probabilities []float64
	err           error
	payload       []byte
}

func (f *fakeClient) PredictProba(ctx context.Context, payload []byte) ([]float64, error) {
	f.payload = payload
	return f.probabilities, f.err
}

func TestServiceQuote(t *testing.T) {
	client := &fakeClient{probabilities: []float64{0.25, 0.1, 0.75, 0.5}}
	svc, err := NewService(client)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	quote, err := svc.Quote(context.Background(), []byte(`{"features": [[1, 2]]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{500, 250, 1000, 750}
	if len(quote.Prices) != len(quote.Probabilities) {
		t.Fatalf("prices and probabilities differ in length: %d vs %d", len(quote.Prices), len(quote.Probabilities))
	}
	for i := range want {
		if quote.Prices[i] != want[i] {
			t.Fatalf("price %d: expected %d, got %d", i, want[i], quote.Prices[i])
		}
	}
	if string(client.payload) != `{"features": [[1, 2]]}` {
		t.Fatalf("unexpected payload forwarded: %s", client.payload)
	}
}

func TestServiceQuoteErrors(t *testing.T) {
	boom := errors.New("boom")
	svc, _ := NewService(&fakeClient{err: boom})
	if _, err := svc.Quote(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected client error, got %v", err)
	}

	svc, _ = NewService(&fakeClient{})
	if _, err := svc.Quote(context.Background(), nil); !errors.Is(err, ErrNoProbabilities) {
		t.Fatalf("expected ErrNoProbabilities, got %v", err)
	}

	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil client")
	}
}
