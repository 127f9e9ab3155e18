package pricing

import (
	"context"
	"errors"
)

type Quote struct {
	Probabilities []float64 `json:"probabilities"`
	Prices        []int     `json:"prices"`
}

type Service struct {
	client ProbabilityClient
}

func NewService(client ProbabilityClient) (*Service, error) {
	if client == nil {
		return nil, errors.New("probability client is required")
	}
	return &Service{client: client}, nil
}

// Quote scores payload through the inference service and prices every
// probability. Prices[i] is derived from Probabilities[i].
func (s *Service) Quote(ctx context.Context, payload []byte) (*Quote, error) {
	probabilities, err := s.client.PredictProba(ctx, payload)
	if err != nil {
		return nil, err
	}
	if len(probabilities) == 0 {
		return nil, ErrNoProbabilities
	}
	return &Quote{
		Probabilities: probabilities,
		Prices:        Prices(probabilities),
	}, nil
}
