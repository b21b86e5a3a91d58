// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

// Package config loads layered configuration: built-in defaults, an
// optional YAML file, then environment variables with the CHANAKYA_
// prefix. Precedence is ENV > file > defaults. The loaded struct is
// validated before use.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/punieth/sos-pm-chanakya/internal/model"
)

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CHANAKYA_CONFIG"

// DefaultConfigPaths are searched in order when no explicit path is set.
var DefaultConfigPaths = []string{
	"chanakya.yaml",
	"config/chanakya.yaml",
	"/etc/chanakya/config.yaml",
}

// Config is the full configuration surface.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Store     StoreConfig     `koanf:"store"`
	Novelty   NoveltyConfig   `koanf:"novelty"`
	Impact    ImpactConfig    `koanf:"impact"`
	Rerank    RerankConfig    `koanf:"rerank"`
	Calibrate CalibrateConfig `koanf:"calibrate"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
	RateLimit       int           `koanf:"rate_limit" validate:"min=1"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	MaxBatchSize    int           `koanf:"max_batch_size" validate:"min=1"`
}

// LogConfig mirrors the logging package configuration minus the writer.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// StoreConfig controls the embedded key-value store.
type StoreConfig struct {
	// Path of the badger directory; empty runs in-memory.
	Path string `koanf:"path"`
	// Breaker thresholds for the store circuit breaker.
	BreakerFailures uint32        `koanf:"breaker_failures" validate:"min=1"`
	BreakerInterval time.Duration `koanf:"breaker_interval" validate:"min=1s"`
}

// NoveltyConfig controls the entity co-occurrence graph.
type NoveltyConfig struct {
	Window time.Duration `koanf:"window" validate:"min=1h"`
	TTL    time.Duration `koanf:"ttl" validate:"min=1h,gtefield=Window"`
}

// ImpactConfig controls the component calculations.
type ImpactConfig struct {
	HalfLife      time.Duration `koanf:"half_life" validate:"min=1h"`
	Lookback      time.Duration `koanf:"lookback" validate:"min=1h"`
	DomainCap     int           `koanf:"domain_cap" validate:"min=1"`
	RecentWindow  time.Duration `koanf:"recent_window" validate:"min=1h"`
	CompareWindow time.Duration `koanf:"compare_window" validate:"min=1h,gtefield=RecentWindow"`
}

// RerankConfig controls selection.
type RerankConfig struct {
	Lambda        float64            `koanf:"lambda" validate:"min=0,max=1"`
	ImpactFloor   float64            `koanf:"impact_floor" validate:"min=0,max=1"`
	ShortlistSize int                `koanf:"shortlist_size" validate:"min=1"`
	TopicWeights  map[string]float64 `koanf:"topic_weights"`
	Languages     []string           `koanf:"languages"`
}

// CalibrateConfig bounds the calibration loop.
type CalibrateConfig struct {
	SampleCap    int     `koanf:"sample_cap" validate:"min=1"`
	MinSample    int     `koanf:"min_sample" validate:"min=1,ltefield=SampleCap"`
	Alpha        float64 `koanf:"alpha" validate:"gt=0,max=1"`
	MaxDelta     float64 `koanf:"max_delta" validate:"gt=0,max=0.5"`
	MinWeight    float64 `koanf:"min_weight" validate:"gt=0,max=0.5"`
	HistoryLimit int     `koanf:"history_limit" validate:"min=1"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8085,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       60,
			CORSOrigins:     []string{"*"},
			MaxBatchSize:    500,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Store: StoreConfig{
			Path:            "data/chanakya",
			BreakerFailures: 5,
			BreakerInterval: 30 * time.Second,
		},
		Novelty: NoveltyConfig{
			Window: 30 * 24 * time.Hour,
			TTL:    90 * 24 * time.Hour,
		},
		Impact: ImpactConfig{
			HalfLife:      48 * time.Hour,
			Lookback:      72 * time.Hour,
			DomainCap:     10,
			RecentWindow:  12 * time.Hour,
			CompareWindow: 48 * time.Hour,
		},
		Rerank: RerankConfig{
			Lambda:        0.7,
			ImpactFloor:   0.55,
			ShortlistSize: 8,
			TopicWeights: map[string]float64{
				string(model.TopicRegulation): 0.35,
				string(model.TopicProduct):    0.30,
				string(model.TopicAI):         0.20,
				string(model.TopicOther):      0.15,
			},
			Languages: []string{"en"},
		},
		Calibrate: CalibrateConfig{
			SampleCap:    20,
			MinSample:    5,
			Alpha:        0.1,
			MaxDelta:     0.03,
			MinWeight:    0.02,
			HistoryLimit: 50,
		},
	}
}

var validate = validator.New()

// Validate checks the configuration surface against the struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	sum := 0.0
	for _, w := range c.Rerank.TopicWeights {
		if w < 0 {
			return fmt.Errorf("invalid configuration: negative topic weight")
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("invalid configuration: topic weights sum to zero")
	}
	return nil
}

// TopicWeights converts the string-keyed map into the typed form used by
// the reranker, dropping unknown buckets.
func (c *Config) TopicWeights() map[model.Topic]float64 {
	out := make(map[model.Topic]float64, len(c.Rerank.TopicWeights))
	for _, topic := range model.Topics {
		if w, ok := c.Rerank.TopicWeights[string(topic)]; ok {
			out[topic] = w
		}
	}
	return out
}
