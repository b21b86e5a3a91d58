// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package store

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/punieth/sos-pm-chanakya/internal/logging"
	"github.com/punieth/sos-pm-chanakya/internal/metrics"
)

// BreakerConfig configures the circuit breaker around a KV.
type BreakerConfig struct {
	Name             string
	FailureThreshold uint32        // consecutive failures before opening
	Timeout          time.Duration // open-state duration before half-open
}

// DefaultBreakerConfig returns conservative defaults: trip after 5
// consecutive failures, retry after 30 seconds.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{Name: name, FailureThreshold: 5, Timeout: 30 * time.Second}
}

// BreakerKV wraps a KV with a circuit breaker so a dead store degrades to
// fast failures instead of stalling every item in a batch. ErrNotFound is
// not counted as a failure; it is a successful lookup of an absent key.
type BreakerKV struct {
	inner KV
	cb    *gobreaker.CircuitBreaker[[]byte]
}

// NewBreakerKV wraps inner with a circuit breaker.
func NewBreakerKV(inner KV, cfg BreakerConfig) *BreakerKV {
	settings := gobreaker.Settings{
		Name:    cfg.Name,
		Timeout: cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			open := 0.0
			if to == gobreaker.StateOpen {
				open = 1.0
			}
			metrics.BreakerState.Set(open)
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("store breaker state change")
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	}
	return &BreakerKV{inner: inner, cb: gobreaker.NewCircuitBreaker[[]byte](settings)}
}

// Get proxies to the inner store through the breaker.
func (b *BreakerKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := b.cb.Execute(func() ([]byte, error) {
		return b.inner.Get(ctx, key)
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		metrics.RecordStoreError("get")
	}
	return value, err
}

// Set proxies to the inner store through the breaker.
func (b *BreakerKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.inner.Set(ctx, key, value, ttl)
	})
	if err != nil {
		metrics.RecordStoreError("set")
	}
	return err
}

// Close closes the inner store.
func (b *BreakerKV) Close() error { return b.inner.Close() }

// State returns the current breaker state for monitoring.
func (b *BreakerKV) State() string { return b.cb.State().String() }

var _ KV = (*BreakerKV)(nil)
