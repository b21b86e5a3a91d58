// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package impact

import (
	"time"

	"github.com/punieth/sos-pm-chanakya/internal/model"
)

// Config holds the time windows and caps of the component calculations.
type Config struct {
	// HalfLife of the recency decay.
	HalfLife time.Duration `koanf:"half_life"`
	// Lookback bounds the surface-reach domain count.
	Lookback time.Duration `koanf:"lookback"`
	// DomainCap normalizes the surface-reach count.
	DomainCap int `koanf:"domain_cap"`
	// RecentWindow and CompareWindow bound the momentum velocity.
	RecentWindow  time.Duration `koanf:"recent_window"`
	CompareWindow time.Duration `koanf:"compare_window"`
}

// DefaultConfig returns the production windows.
func DefaultConfig() Config {
	return Config{
		HalfLife:      48 * time.Hour,
		Lookback:      72 * time.Hour,
		DomainCap:     10,
		RecentWindow:  12 * time.Hour,
		CompareWindow: 48 * time.Hour,
	}
}

// Scorer computes composite impact scores for classified, clustered items.
type Scorer struct {
	cfg Config
	now func() time.Time
}

// NewScorer returns a scorer over the given windows. Zero durations fall
// back to the defaults.
func NewScorer(cfg Config) *Scorer {
	def := DefaultConfig()
	if cfg.HalfLife <= 0 {
		cfg.HalfLife = def.HalfLife
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = def.Lookback
	}
	if cfg.DomainCap <= 0 {
		cfg.DomainCap = def.DomainCap
	}
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = def.RecentWindow
	}
	if cfg.CompareWindow <= 0 {
		cfg.CompareWindow = def.CompareWindow
	}
	return &Scorer{cfg: cfg, now: time.Now}
}

// SetClock overrides the scorer's clock for tests.
func (s *Scorer) SetClock(now func() time.Time) { s.now = now }

// Score computes components and the weighted composite for a single item.
// clusters maps cluster id to context; novelty maps item id to the
// novelty-graph flag. Both tolerate missing entries.
func (s *Scorer) Score(item model.ClassifiedItem, clusters map[string]*model.ClusterContext, novelty map[string]bool, weights model.Weights) model.ScoredItem {
	now := s.now()
	var cluster *model.ClusterContext
	if item.ClusterID != "" {
		cluster = clusters[item.ClusterID]
	}
	novel := novelty[item.ID()]
	age := item.AgeAt(now)

	comp := model.ImpactComponents{
		Recency:      recency(age, s.cfg.HalfLife),
		SurfaceReach: surfaceReach(item, cluster, now, s.cfg.Lookback, s.cfg.DomainCap),
		Authority:    authority(item, cluster),
		CommerceTie:  commerceTie(item),
		RegionTie:    regionTie(item),
		Momentum:     momentum(cluster, now, s.cfg.RecentWindow, s.cfg.CompareWindow),
	}
	if novel {
		comp.GraphNovelty = 1
	}

	norm := weights.Normalize()
	scored := model.ScoredItem{
		ClassifiedItem: item,
		Impact:         norm.Score(comp),
		Components:     comp,
		Weights:        norm,
		Evidence: model.ScoreEvidence{
			AgeHours:        ageHours(age),
			SourceScore:     SourceScore(item.Domain),
			RegulatorDomain: IsRegulatorDomain(item.Domain),
			GeoDomain:       IsGeoDomain(item.Domain),
			Novel:           novel,
		},
	}
	if cluster != nil {
		scored.Cluster = clusterSignal(item, cluster, comp.Momentum)
	}
	return scored
}

// ScoreAll scores every item against the shared cluster and novelty maps,
// preserving input order.
func (s *Scorer) ScoreAll(items []model.ClassifiedItem, clusters []*model.ClusterContext, novelty map[string]bool, weights model.Weights) []model.ScoredItem {
	byID := make(map[string]*model.ClusterContext, len(clusters))
	for _, c := range clusters {
		byID[c.ID] = c
	}
	out := make([]model.ScoredItem, 0, len(items))
	for _, item := range items {
		out = append(out, s.Score(item, byID, novelty, weights))
	}
	return out
}

func clusterSignal(item model.ClassifiedItem, cluster *model.ClusterContext, velocity float64) model.ClusterSignal {
	trusted := 0
	for d := range cluster.DomainCounts {
		if IsTrustedDomain(d) {
			trusted++
		}
	}
	return model.ClusterSignal{
		TrustedDomains: trusted,
		TotalDomains:   len(cluster.DomainCounts),
		Velocity:       velocity,
	}
}

func ageHours(age time.Duration) float64 {
	if age < 0 {
		return -1
	}
	return age.Hours()
}
