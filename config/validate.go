package config

import (
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap/zapcore"
)

// maxInformative mirrors the dataset generator's limit on informative features.
const maxInformative = 16

// Validate checks the fields each service depends on.
func (c *Config) Validate() error {
	var errs []error

	if err := validatePort("predict.port", c.Predict.Port); err != nil {
		errs = append(errs, err)
	}
	if err := validatePort("pricing.port", c.Pricing.Port); err != nil {
		errs = append(errs, err)
	}

	m := c.Predict.Model
	switch m.Type {
	case "random_forest", "decision_tree":
	default:
		errs = append(errs, fmt.Errorf("predict.model.type: unsupported %q", m.Type))
	}
	if m.Samples < 0 || m.Features < 0 || m.Informative < 0 || m.Trees < 0 || m.MaxDepth < 0 {
		errs = append(errs, errors.New("predict.model: sizes must not be negative"))
	}
	if m.Informative > m.Features {
		errs = append(errs, errors.New("predict.model.informative must not exceed features"))
	}
	if m.Classes < 2 {
		errs = append(errs, errors.New("predict.model.classes must be at least 2"))
	}
	if m.Informative > 0 && m.Informative <= maxInformative && m.Classes*m.ClustersPerClass > 1<<m.Informative {
		errs = append(errs, fmt.Errorf("predict.model: classes*clusters_per_class must not exceed 2^informative (%d)", 1<<m.Informative))
	}
	if m.Informative > maxInformative {
		errs = append(errs, fmt.Errorf("predict.model.informative must not exceed %d", maxInformative))
	}
	if m.FlipY != nil && (*m.FlipY < 0 || *m.FlipY > 1) {
		errs = append(errs, errors.New("predict.model.flip_y must be in [0, 1]"))
	}

	u, err := url.Parse(c.Pricing.PredictURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("pricing.predict_url: invalid URL %q", c.Pricing.PredictURL))
	}
	if c.Pricing.Timeout < 0 {
		errs = append(errs, errors.New("pricing.timeout must not be negative"))
	}

	if c.HTTP.MaxBodyBytes < 0 {
		errs = append(errs, errors.New("http.max_body_bytes must not be negative"))
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

func validatePort(field string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s: must be in 1-65535, got %d", field, port)
	}
	return nil
}
