// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package calibrate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/punieth/sos-pm-chanakya/internal/logging"
	"github.com/punieth/sos-pm-chanakya/internal/model"
	"github.com/punieth/sos-pm-chanakya/internal/store"
)

// Config bounds the calibration step.
type Config struct {
	// SampleCap limits each side of the stratified sample.
	SampleCap int `koanf:"sample_cap"`
	// MinSample is the per-side minimum below which the run is skipped.
	MinSample int `koanf:"min_sample"`
	// Alpha is the EMA step size applied to the blended error.
	Alpha float64 `koanf:"alpha"`
	// MaxDelta bounds any single per-component adjustment.
	MaxDelta float64 `koanf:"max_delta"`
	// MinWeight floors every weight before renormalization.
	MinWeight float64 `koanf:"min_weight"`
	// HistoryLimit bounds the persisted history list.
	HistoryLimit int `koanf:"history_limit"`
}

// DefaultConfig returns the production calibration bounds.
func DefaultConfig() Config {
	return Config{
		SampleCap:    20,
		MinSample:    5,
		Alpha:        0.1,
		MaxDelta:     0.03,
		MinWeight:    0.02,
		HistoryLimit: 50,
	}
}

// Gap blend: shortlisted items say more about what the weights should
// reward than rejected ones do.
const (
	positiveGapWeight = 0.7
	negativeGapWeight = 0.3
)

// Calibrator adjusts the persisted weight record after a run.
type Calibrator struct {
	cfg     Config
	weights *store.WeightStore
	now     func() time.Time
	newID   func() string
}

// New returns a calibrator writing through ws.
func New(cfg Config, ws *store.WeightStore) *Calibrator {
	def := DefaultConfig()
	if cfg.SampleCap <= 0 {
		cfg.SampleCap = def.SampleCap
	}
	if cfg.MinSample <= 0 {
		cfg.MinSample = def.MinSample
	}
	if cfg.Alpha <= 0 {
		cfg.Alpha = def.Alpha
	}
	if cfg.MaxDelta <= 0 {
		cfg.MaxDelta = def.MaxDelta
	}
	if cfg.MinWeight <= 0 {
		cfg.MinWeight = def.MinWeight
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = def.HistoryLimit
	}
	return &Calibrator{
		cfg:     cfg,
		weights: ws,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
}

// SetClock overrides the clock for tests.
func (c *Calibrator) SetClock(now func() time.Time) { c.now = now }

// Run samples both pools, computes bounded per-component deltas, and
// persists the updated record. Short samples persist a skipped entry with
// zero deltas and unchanged weights.
func (c *Calibrator) Run(ctx context.Context, shortlisted, rejected []model.ScoredItem) (*model.WeightRecord, error) {
	rec, err := c.weights.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("calibrate: %w", err)
	}

	pos := stratifiedSample(shortlisted, c.cfg.SampleCap)
	neg := stratifiedSample(rejected, c.cfg.SampleCap)

	entry := model.CalibrationHistoryEntry{
		BatchID:   c.newID(),
		Timestamp: c.now().UTC(),
		Deltas:    make(map[string]float64, len(model.ComponentNames)),
	}

	if len(pos) < c.cfg.MinSample || len(neg) < c.cfg.MinSample {
		for _, name := range model.ComponentNames {
			entry.Deltas[name] = 0
		}
		entry.Weights = rec.Weights
		entry.Rationale = fmt.Sprintf("skipped: sample too small (pos=%d neg=%d min=%d)",
			len(pos), len(neg), c.cfg.MinSample)
		rec.AppendHistory(entry, c.cfg.HistoryLimit)
		if err := c.weights.Save(ctx, rec); err != nil {
			return nil, fmt.Errorf("calibrate: %w", err)
		}
		logging.Debug().Int("pos", len(pos)).Int("neg", len(neg)).Msg("calibration skipped")
		return rec, nil
	}

	next := make(model.Weights, len(model.ComponentNames))
	for _, name := range model.ComponentNames {
		errSignal := positiveGapWeight*gap(name, pos) + negativeGapWeight*gap(name, neg)
		delta := clampDelta(errSignal*c.cfg.Alpha, c.cfg.MaxDelta)
		entry.Deltas[name] = delta

		w := rec.Weights[name] + delta
		if w < c.cfg.MinWeight {
			w = c.cfg.MinWeight
		}
		next[name] = w
	}

	rec.Weights = next.Normalize()
	entry.Weights = rec.Weights
	entry.Rationale = fmt.Sprintf("applied: pos=%d neg=%d alpha=%.2f", len(pos), len(neg), c.cfg.Alpha)
	rec.AppendHistory(entry, c.cfg.HistoryLimit)

	if err := c.weights.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("calibrate: %w", err)
	}
	logging.Info().Int("pos", len(pos)).Int("neg", len(neg)).Int("version", rec.Version).
		Msg("calibration applied")
	return rec, nil
}

// stratifiedSample takes up to cap items, round-robin across archetype
// buckets in taxonomy order so no class dominates the sample. Within a
// bucket, input order wins.
func stratifiedSample(items []model.ScoredItem, limit int) []model.ScoredItem {
	if len(items) <= limit {
		return items
	}
	buckets := make(map[model.Archetype][]model.ScoredItem)
	for _, it := range items {
		buckets[it.Archetype] = append(buckets[it.Archetype], it)
	}

	out := make([]model.ScoredItem, 0, limit)
	for round := 0; len(out) < limit; round++ {
		advanced := false
		for _, a := range model.Archetypes {
			if round < len(buckets[a]) {
				advanced = true
				out = append(out, buckets[a][round])
				if len(out) == limit {
					return out
				}
			}
		}
		if !advanced {
			break
		}
	}
	return out
}

func clampDelta(d, bound float64) float64 {
	if d > bound {
		return bound
	}
	if d < -bound {
		return -bound
	}
	return d
}
