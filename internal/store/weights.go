// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/punieth/sos-pm-chanakya/internal/model"
)

// weightsKey is the single key holding the versioned weight record.
const weightsKey = "weights:current"

// WeightStore persists the versioned impact-weight configuration. It
// assumes a single writer: concurrent calibration runs are not
// synchronized and a later write overwrites an earlier one.
type WeightStore struct {
	kv KV
}

// NewWeightStore creates a weight store over kv.
func NewWeightStore(kv KV) *WeightStore {
	return &WeightStore{kv: kv}
}

// Load returns the current weight record. When no record exists yet it
// returns a fresh version-0 record with default weights, not an error.
func (s *WeightStore) Load(ctx context.Context) (*model.WeightRecord, error) {
	raw, err := s.kv.Get(ctx, weightsKey)
	if errors.Is(err, ErrNotFound) {
		return &model.WeightRecord{
			Version: 0,
			Weights: model.DefaultWeights(),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load weights: %w", err)
	}

	var rec model.WeightRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode weights: %w", err)
	}
	rec.Weights = rec.Weights.Normalize()
	return &rec, nil
}

// Save bumps the version, stamps the record, and writes it back. Weight
// records never expire.
func (s *WeightStore) Save(ctx context.Context, rec *model.WeightRecord) error {
	rec.Version++
	rec.UpdatedAt = time.Now().UTC()
	rec.Weights = rec.Weights.Normalize()

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}
	if err := s.kv.Set(ctx, weightsKey, raw, 0); err != nil {
		return fmt.Errorf("save weights: %w", err)
	}
	return nil
}
