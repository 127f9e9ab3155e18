package pricing

import "testing"

func TestPriceFor(t *testing.T) {
	tests := []struct {
		p    float64
		want int
	}{
		{0, 250},
		{0.1, 250},
		{0.2499999, 250},
		{0.25, 500},
		{0.49, 500},
		{0.5, 750},
		{0.7499, 750},
		{0.75, 1000},
		{1, 1000},
		{-0.5, 250},
	}
	for _, tt := range tests {
		if got := PriceFor(tt.p); got != tt.want {
			t.Errorf("PriceFor(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestPricesAligned(t *testing.T) {
	probabilities := []float64{0.8, 0.1, 0.5, 0.3}
	prices := Prices(probabilities)
	if len(prices) != len(probabilities) {
		t.Fatalf("expected %d prices, got %d", len(probabilities), len(prices))
	}
	want := []int{1000, 250, 750, 500}
	for i := range want {
		if prices[i] != want[i] {
			t.Fatalf("price %d: expected %d, got %d", i, want[i], prices[i])
		}
	}
}
