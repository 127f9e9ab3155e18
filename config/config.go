// Package config loads the YAML configuration shared by both services.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Predict PredictConfig `yaml:"predict"`
	Pricing PricingConfig `yaml:"pricing"`
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
}

type PredictConfig struct {
	Host  string      `yaml:"host"`
	Port  int         `yaml:"port"`
	Model ModelConfig `yaml:"model"`
}

type ModelConfig struct {
	Type             string   `yaml:"type"`
	Samples          int      `yaml:"samples"`
	Features         int      `yaml:"features"`
	Informative      int      `yaml:"informative"`
	Classes          int      `yaml:"classes"`
	ClustersPerClass int      `yaml:"clusters_per_class"`
	FlipY            *float64 `yaml:"flip_y"`
	Trees            int      `yaml:"trees"`
	MaxDepth         int      `yaml:"max_depth"`
	Seed             int64    `yaml:"seed"`
}

type PricingConfig struct {
	Host       string        `yaml:"host"`
	Port       int           `yaml:"port"`
	PredictURL string        `yaml:"predict_url"`
	Timeout    time.Duration `yaml:"timeout"`
}

type HTTPConfig struct {
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path and fills unset fields with defaults. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
