// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punieth/sos-pm-chanakya/internal/metrics"
	"github.com/punieth/sos-pm-chanakya/internal/model"
)

func TestMemoryKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	_, err := kv.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "k", []byte("v"), 0))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryKVTTLExpiry(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	kv.SetClock(func() time.Time { return now })

	require.NoError(t, kv.Set(ctx, "k", []byte("v"), time.Hour))

	_, err := kv.Get(ctx, "k")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryKV()
	inner.FailGets = errors.New("disk gone")

	kv := NewBreakerKV(inner, BreakerConfig{Name: "test", FailureThreshold: 3, Timeout: time.Minute})

	for i := 0; i < 3; i++ {
		_, err := kv.Get(ctx, "k")
		require.Error(t, err)
	}
	assert.Equal(t, "open", kv.State())

	// Once open, calls fail fast without touching the store.
	inner.FailGets = nil
	_, err := kv.Get(ctx, "k")
	assert.Error(t, err)
}

func TestBreakerIgnoresNotFound(t *testing.T) {
	ctx := context.Background()
	kv := NewBreakerKV(NewMemoryKV(), BreakerConfig{Name: "test", FailureThreshold: 2, Timeout: time.Minute})

	for i := 0; i < 10; i++ {
		_, err := kv.Get(ctx, "absent")
		require.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, "closed", kv.State())
}

func TestWeightStoreDefaultsWhenEmpty(t *testing.T) {
	ctx := context.Background()
	ws := NewWeightStore(NewMemoryKV())

	rec, err := ws.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Version)
	assert.InDelta(t, 1.0, sum(rec.Weights), 1e-9)
}

func TestWeightStoreSaveBumpsVersion(t *testing.T) {
	ctx := context.Background()
	ws := NewWeightStore(NewMemoryKV())

	rec, err := ws.Load(ctx)
	require.NoError(t, err)

	rec.Weights[model.ComponentRecency] = 0.5
	require.NoError(t, ws.Save(ctx, rec))
	require.NoError(t, ws.Save(ctx, rec))

	loaded, err := ws.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Version)
	assert.InDelta(t, 1.0, sum(loaded.Weights), 1e-9)
}

func sum(w model.Weights) float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

func TestBreakerRecordsStoreErrorMetrics(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryKV()
	inner.FailGets = errors.New("disk gone")
	inner.FailSets = errors.New("disk gone")

	kv := NewBreakerKV(inner, BreakerConfig{Name: "metrics-test", FailureThreshold: 100, Timeout: time.Minute})

	getsBefore := testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("get"))
	setsBefore := testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("set"))

	_, err := kv.Get(ctx, "k")
	require.Error(t, err)
	require.Error(t, kv.Set(ctx, "k", []byte("v"), 0))

	assert.Equal(t, getsBefore+1, testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("get")))
	assert.Equal(t, setsBefore+1, testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("set")))

	// Successful lookups of absent keys are not store errors.
	inner.FailGets = nil
	_, err = kv.Get(ctx, "absent")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, getsBefore+1, testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("get")))
}

func TestBreakerStateGaugeTracksOpen(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryKV()
	inner.FailGets = errors.New("disk gone")

	kv := NewBreakerKV(inner, BreakerConfig{Name: "gauge-test", FailureThreshold: 2, Timeout: 50 * time.Millisecond})

	for i := 0; i < 2; i++ {
		_, err := kv.Get(ctx, "k")
		require.Error(t, err)
	}
	require.Equal(t, "open", kv.State())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.BreakerState))

	inner.FailGets = nil
	time.Sleep(60 * time.Millisecond)

	// Half-open probe succeeds and closes the breaker again.
	_, err := kv.Get(ctx, "absent")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.BreakerState))
}
