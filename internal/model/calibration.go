// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package model

import "time"

// CalibrationHistoryEntry records one calibration cycle. Entries are
// appended, never mutated; the history list is bounded and the oldest
// entries roll off.
type CalibrationHistoryEntry struct {
	BatchID   string             `json:"batch_id"`
	Timestamp time.Time          `json:"timestamp"`
	Deltas    map[string]float64 `json:"deltas"` // per-component, bounded per cycle
	Weights   Weights            `json:"weights"`
	Rationale string             `json:"rationale"`
}

// WeightRecord is the versioned weight-configuration document persisted in
// the weight store. Concurrent readers may observe a stale version; the
// calibration loop assumes a single writer and a later write overwrites an
// earlier one.
type WeightRecord struct {
	Version   int                       `json:"version"`
	UpdatedAt time.Time                 `json:"updated_at"`
	Weights   Weights                   `json:"weights"`
	History   []CalibrationHistoryEntry `json:"history,omitempty"`
}

// AppendHistory appends an entry and trims the list to at most limit
// entries, dropping the oldest first.
func (r *WeightRecord) AppendHistory(e CalibrationHistoryEntry, limit int) {
	r.History = append(r.History, e)
	if limit > 0 && len(r.History) > limit {
		r.History = r.History[len(r.History)-limit:]
	}
}
