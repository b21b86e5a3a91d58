// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

// Package metrics exposes Prometheus instrumentation for the ranking
// pipeline: per-stage durations and item counts, store operation errors,
// calibration outcomes, and HTTP request metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage label values used across the pipeline metrics.
const (
	StageNovelty   = "novelty"
	StageClassify  = "classify"
	StageCluster   = "cluster"
	StageImpact    = "impact"
	StageDedup     = "dedup"
	StageRerank    = "rerank"
	StageCalibrate = "calibrate"
)

var (
	// Pipeline metrics
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chanakya_stage_duration_seconds",
			Help:    "Duration of each pipeline stage in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	StageItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chanakya_stage_items_total",
			Help: "Items entering and leaving each pipeline stage",
		},
		[]string{"stage", "direction"}, // direction: "in", "out"
	)

	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chanakya_runs_total",
			Help: "Total pipeline runs by outcome",
		},
		[]string{"outcome"}, // "ok", "degraded"
	)

	ShortlistSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chanakya_shortlist_size",
			Help: "Size of the most recent shortlist",
		},
	)

	// Store metrics
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chanakya_store_errors_total",
			Help: "Key-value store operation errors",
		},
		[]string{"operation"}, // "get", "set"
	)

	BreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chanakya_store_breaker_open",
			Help: "1 when the store circuit breaker is open",
		},
	)

	// Calibration metrics
	CalibrationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chanakya_calibration_runs_total",
			Help: "Calibration cycles by outcome",
		},
		[]string{"outcome"}, // "applied", "skipped", "failed"
	)

	WeightVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chanakya_weight_version",
			Help: "Version of the active impact-weight record",
		},
	)

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chanakya_http_requests_total",
			Help: "HTTP requests by method, route, and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chanakya_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordStage observes one stage execution with its item flow.
func RecordStage(stage string, in, out int, duration time.Duration) {
	StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	StageItems.WithLabelValues(stage, "in").Add(float64(in))
	StageItems.WithLabelValues(stage, "out").Add(float64(out))
}

// RecordRun records a completed pipeline run.
func RecordRun(degraded bool, shortlist int) {
	outcome := "ok"
	if degraded {
		outcome = "degraded"
	}
	RunsTotal.WithLabelValues(outcome).Inc()
	ShortlistSize.Set(float64(shortlist))
}

// RecordStoreError counts one failed store operation.
func RecordStoreError(operation string) {
	StoreErrors.WithLabelValues(operation).Inc()
}

// RecordCalibration records a calibration outcome and the resulting
// weight version.
func RecordCalibration(outcome string, version int) {
	CalibrationRuns.WithLabelValues(outcome).Inc()
	if version > 0 {
		WeightVersion.Set(float64(version))
	}
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
