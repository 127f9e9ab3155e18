package pricing

// Tier is a price bracket; it applies to probabilities >= Floor up to the
// next tier's Floor.
type Tier struct {
	Floor float64
	Price int
}

// Tiers is ordered by ascending Floor.
var Tiers = []Tier{
	{Floor: 0, Price: 250},
	{Floor: 0.25, Price: 500},
	{Floor: 0.5, Price: 750},
	{Floor: 0.75, Price: 1000},
}

// PriceFor maps a probability to its tier price. Boundary values belong to the
// higher tier; anything below the first floor gets the lowest price.
func PriceFor(p float64) int {
	for i := len(Tiers) - 1; i > 0; i-- {
		if p >= Tiers[i].Floor {
			return Tiers[i].Price
		}
	}
	return Tiers[0].Price
}

func Prices(probabilities []float64) []int {
	prices := make([]int, len(probabilities))
	for i, p := range probabilities {
		prices[i] = PriceFor(p)
	}
	return prices
}
