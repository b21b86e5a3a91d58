// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package impact

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punieth/sos-pm-chanakya/internal/model"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testScorer() *Scorer {
	s := NewScorer(DefaultConfig())
	s.SetClock(func() time.Time { return testNow })
	return s
}

func testItem(title, domain string, age time.Duration) model.ClassifiedItem {
	return model.ClassifiedItem{
		NormalizedItem: model.NormalizedItem{
			Title:        title,
			URL:          "https://" + domain + "/a",
			CanonicalURL: "https://" + domain + "/a",
			Domain:       domain,
			Provider:     "rss",
			PublishedAt:  testNow.Add(-age),
		},
		Archetype: model.ArchetypeTrend,
	}
}

func TestRegulatorDomainScoresHighWithoutKeywords(t *testing.T) {
	s := testScorer()
	item := testItem("Circular issued on digital lending framework", "rbi.org.in", 2*time.Hour)

	scored := s.Score(item, nil, nil, model.DefaultWeights())

	assert.GreaterOrEqual(t, scored.Components.RegionTie, 0.6,
		"regulator domain alone must clear the region threshold")
	assert.GreaterOrEqual(t, scored.Components.Authority, 0.45,
		"regulator domain alone must clear the authority threshold")
	assert.True(t, scored.Evidence.RegulatorDomain)
	assert.True(t, scored.Evidence.GeoDomain)
}

func TestRecencyDecay(t *testing.T) {
	s := testScorer()

	fresh := s.Score(testItem("Quarterly outlook remains steady", "reuters.com", 0), nil, nil, model.DefaultWeights())
	aged := s.Score(testItem("Quarterly outlook remains steady", "reuters.com", 48*time.Hour), nil, nil, model.DefaultWeights())

	assert.InDelta(t, 1.0, fresh.Components.Recency, 0.01)
	assert.InDelta(t, math.Exp(-1), aged.Components.Recency, 0.01)
	assert.Greater(t, fresh.Components.Recency, aged.Components.Recency)
}

func TestRecencyUnparseableTimestamp(t *testing.T) {
	s := testScorer()
	item := testItem("Quarterly outlook remains steady", "reuters.com", time.Hour)
	item.PublishedAt = time.Time{}

	scored := s.Score(item, nil, nil, model.DefaultWeights())

	assert.Zero(t, scored.Components.Recency)
	assert.Equal(t, -1.0, scored.Evidence.AgeHours)
}

func TestSurfaceReachCountsTrustedDomainsInLookback(t *testing.T) {
	s := testScorer()
	cluster := &model.ClusterContext{ID: "cluster-0001"}
	members := []struct {
		domain string
		age    time.Duration
	}{
		{"livemint.com", 10 * time.Hour},
		{"rbi.org.in", 5 * time.Hour},
		{"reuters.com", 20 * time.Hour},
		{"randomblog.example", 2 * time.Hour}, // untrusted
		{"bloomberg.com", 100 * time.Hour},    // outside lookback
	}
	for i, m := range members {
		it := testItem(fmt.Sprintf("story copy %d", i), m.domain, m.age)
		it.ClusterID = cluster.ID
		cluster.Merge(it, model.ArchetypeEvidence{Archetype: it.Archetype})
	}

	item := cluster.Members[0]
	scored := s.Score(item, map[string]*model.ClusterContext{cluster.ID: cluster}, nil, model.DefaultWeights())

	assert.InDelta(t, 0.3, scored.Components.SurfaceReach, 1e-9)
	assert.Equal(t, 4, scored.Cluster.TrustedDomains)
	assert.Equal(t, 5, scored.Cluster.TotalDomains)
}

func TestCommerceTie(t *testing.T) {
	s := testScorer()

	commerce := testItem("Festive season sale posts record volumes", "livemint.com", time.Hour)
	commerce.Archetype = model.ArchetypeCommerce
	assert.Equal(t, 1.0, s.Score(commerce, nil, nil, model.DefaultWeights()).Components.CommerceTie)

	partial := testItem("UPI payment checkout flows face new scrutiny", "livemint.com", time.Hour)
	got := s.Score(partial, nil, nil, model.DefaultWeights()).Components.CommerceTie
	assert.Greater(t, got, 0.5)
	assert.Less(t, got, 1.0)

	neutral := testItem("Quarterly outlook remains steady", "reuters.com", time.Hour)
	assert.Zero(t, s.Score(neutral, nil, nil, model.DefaultWeights()).Components.CommerceTie)
}

func TestMomentum(t *testing.T) {
	s := testScorer()

	hot := &model.ClusterContext{ID: "cluster-0001"}
	for i, age := range []time.Duration{time.Hour, 2 * time.Hour, 3 * time.Hour} {
		hot.Merge(testItem(fmt.Sprintf("hot %d", i), "reuters.com", age), model.ArchetypeEvidence{})
	}
	cold := &model.ClusterContext{ID: "cluster-0002"}
	for i, age := range []time.Duration{40 * time.Hour, 44 * time.Hour} {
		cold.Merge(testItem(fmt.Sprintf("cold %d", i), "reuters.com", age), model.ArchetypeEvidence{})
	}
	clusters := map[string]*model.ClusterContext{hot.ID: hot, cold.ID: cold}

	hotItem := hot.Members[0]
	hotItem.ClusterID = hot.ID
	coldItem := cold.Members[0]
	coldItem.ClusterID = cold.ID

	assert.Equal(t, 1.0, s.Score(hotItem, clusters, nil, model.DefaultWeights()).Components.Momentum)
	assert.Equal(t, momentumFloor, s.Score(coldItem, clusters, nil, model.DefaultWeights()).Components.Momentum)
}

func TestGraphNoveltyFlag(t *testing.T) {
	s := testScorer()
	item := testItem("Quarterly outlook remains steady", "reuters.com", time.Hour)

	novel := s.Score(item, nil, map[string]bool{item.ID(): true}, model.DefaultWeights())
	stale := s.Score(item, nil, map[string]bool{item.ID(): false}, model.DefaultWeights())

	assert.Equal(t, 1.0, novel.Components.GraphNovelty)
	assert.Zero(t, stale.Components.GraphNovelty)
	assert.Greater(t, novel.Impact, stale.Impact)
}

func TestCompositeStaysInRange(t *testing.T) {
	s := testScorer()
	items := []model.ClassifiedItem{
		testItem("Circular issued on digital lending framework", "rbi.org.in", time.Hour),
		testItem("Quarterly outlook remains steady", "unknown-source.example", 200*time.Hour),
	}

	for _, it := range items {
		scored := s.Score(it, nil, nil, model.DefaultWeights())
		require.GreaterOrEqual(t, scored.Impact, 0.0)
		require.LessOrEqual(t, scored.Impact, 1.0)
	}
}

func TestIsotonicMonotone(t *testing.T) {
	prev := -1.0
	for raw := 0.0; raw <= 1.0; raw += 0.01 {
		got := isotonic(raw)
		require.GreaterOrEqual(t, got, prev, "calibration must be monotone at %.2f", raw)
		prev = got
	}
	assert.Equal(t, 0.0, isotonic(-0.5))
	assert.Equal(t, 0.97, isotonic(1.5))
}

func TestScoreAllPreservesOrder(t *testing.T) {
	s := testScorer()
	items := []model.ClassifiedItem{
		testItem("first story about markets", "reuters.com", time.Hour),
		testItem("second story about policy", "livemint.com", 2*time.Hour),
	}

	scored := s.ScoreAll(items, nil, nil, model.DefaultWeights())

	require.Len(t, scored, 2)
	assert.Equal(t, items[0].ID(), scored[0].ID())
	assert.Equal(t, items[1].ID(), scored[1].ID())
}
