package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultPredictHost      = "0.0.0.0"
	DefaultPredictPort      = 5000
	DefaultPricingHost      = "0.0.0.0"
	DefaultPricingPort      = 5001
	DefaultPredictURL       = "http://predict_service:5000/predict_proba"
	DefaultUpstreamTimeout  = 10 * time.Second
	DefaultModelType        = "random_forest"
	DefaultSamples          = 1000
	DefaultFeatures         = 2
	DefaultInformative      = 2
	DefaultClasses          = 2
	DefaultClustersPerClass = 2
	DefaultFlipY            = 0.01
	DefaultTrees            = 100
	DefaultReadTimeout      = 30 * time.Second
	DefaultWriteTimeout     = 30 * time.Second
	DefaultIdleTimeout      = 120 * time.Second
	DefaultMaxBodyBytes     = 10 << 20
	DefaultLogLevel         = "info"
	DefaultLogMaxSizeMB     = 100
	DefaultLogMaxBackups    = 3
	DefaultLogMaxAgeDays    = 28
)

func (c *Config) applyDefaults() {
	// Predict defaults
	if c.Predict.Host == "" {
		c.Predict.Host = DefaultPredictHost
	}
	if c.Predict.Port == 0 {
		c.Predict.Port = DefaultPredictPort
	}
	applyModelDefaults(&c.Predict.Model)

	// Pricing defaults
	if c.Pricing.Host == "" {
		c.Pricing.Host = DefaultPricingHost
	}
	if c.Pricing.Port == 0 {
		c.Pricing.Port = DefaultPricingPort
	}
	if c.Pricing.PredictURL == "" {
		c.Pricing.PredictURL = DefaultPredictURL
	}
	if c.Pricing.Timeout == 0 {
		c.Pricing.Timeout = DefaultUpstreamTimeout
	}

	// HTTP defaults
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = DefaultReadTimeout
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = DefaultWriteTimeout
	}
	if c.HTTP.IdleTimeout == 0 {
		c.HTTP.IdleTimeout = DefaultIdleTimeout
	}
	if c.HTTP.MaxBodyBytes == 0 {
		c.HTTP.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if len(c.HTTP.AllowedOrigins) == 0 {
		c.HTTP.AllowedOrigins = []string{"*"}
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = DefaultLogMaxBackups
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = DefaultLogMaxAgeDays
	}
}

func applyModelDefaults(m *ModelConfig) {
	if m.Type == "" {
		m.Type = DefaultModelType
	}
	if m.Samples == 0 {
		m.Samples = DefaultSamples
	}
	if m.Features == 0 {
		m.Features = DefaultFeatures
	}
	if m.Informative == 0 {
		m.Informative = min(DefaultInformative, m.Features)
	}
	if m.Classes == 0 {
		m.Classes = DefaultClasses
	}
	if m.ClustersPerClass == 0 {
		m.ClustersPerClass = DefaultClustersPerClass
	}
	// flip_y: 0 disables label noise, so only an absent key takes the default.
	if m.FlipY == nil {
		flipY := DefaultFlipY
		m.FlipY = &flipY
	}
	if m.Trees == 0 {
		m.Trees = DefaultTrees
	}
}
