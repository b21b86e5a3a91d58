// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package calibrate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punieth/sos-pm-chanakya/internal/model"
	"github.com/punieth/sos-pm-chanakya/internal/store"
)

func testCalibrator(t *testing.T) (*Calibrator, *store.WeightStore) {
	t.Helper()
	kv := store.NewMemoryKV()
	t.Cleanup(func() { _ = kv.Close() })
	ws := store.NewWeightStore(kv)
	c := New(DefaultConfig(), ws)
	c.SetClock(func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) })
	return c, ws
}

func sampleItem(i int, archetype model.Archetype, novel bool) model.ScoredItem {
	it := model.ScoredItem{
		ClassifiedItem: model.ClassifiedItem{
			NormalizedItem: model.NormalizedItem{
				Title:        fmt.Sprintf("story %d", i),
				CanonicalURL: fmt.Sprintf("https://news.example/%d", i),
				Domain:       "news.example",
				Provider:     "rss",
			},
			Archetype: archetype,
		},
		Weights: model.DefaultWeights().Normalize(),
	}
	it.Evidence.AgeHours = 6
	it.Evidence.Novel = novel
	if novel {
		it.Components.GraphNovelty = 0.0 // underpredicts its target
	}
	it.Impact = 0.6
	return it
}

func pool(n int, archetype model.Archetype, novel bool) []model.ScoredItem {
	out := make([]model.ScoredItem, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, sampleItem(i, archetype, novel))
	}
	return out
}

func TestRunAppliesBoundedDeltas(t *testing.T) {
	c, ws := testCalibrator(t)
	cfg := DefaultConfig()

	rec, err := c.Run(context.Background(), pool(8, model.ArchetypeLaunch, true), pool(8, model.ArchetypeTrend, false))
	require.NoError(t, err)

	require.Len(t, rec.History, 1)
	entry := rec.History[0]
	assert.Contains(t, entry.Rationale, "applied")
	for name, d := range entry.Deltas {
		assert.LessOrEqual(t, d, cfg.MaxDelta, "delta for %s above bound", name)
		assert.GreaterOrEqual(t, d, -cfg.MaxDelta, "delta for %s below bound", name)
	}

	sum := 0.0
	for _, name := range model.ComponentNames {
		sum += rec.Weights[name]
	}
	assert.InDelta(t, 1.0, sum, 1e-9, "persisted weights must renormalize to 1")

	loaded, err := ws.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Version)
}

func TestRunRaisesUnderpredictingComponent(t *testing.T) {
	c, _ := testCalibrator(t)

	// positives are all novel but scored 0 on graphNovelty, so the
	// positive gap is +1 and the weight must move up
	rec, err := c.Run(context.Background(), pool(8, model.ArchetypeLaunch, true), pool(8, model.ArchetypeTrend, false))
	require.NoError(t, err)

	entry := rec.History[0]
	assert.Greater(t, entry.Deltas[model.ComponentGraphNovelty], 0.0)
	assert.Greater(t, rec.Weights[model.ComponentGraphNovelty], 0.0)
}

func TestRunSkipsShortSample(t *testing.T) {
	c, ws := testCalibrator(t)
	before := model.DefaultWeights().Normalize()

	rec, err := c.Run(context.Background(), pool(3, model.ArchetypeLaunch, true), pool(8, model.ArchetypeTrend, false))
	require.NoError(t, err)

	require.Len(t, rec.History, 1)
	entry := rec.History[0]
	assert.Contains(t, entry.Rationale, "skipped")
	for name, d := range entry.Deltas {
		assert.Zero(t, d, "skipped run must not adjust %s", name)
	}
	for _, name := range model.ComponentNames {
		assert.InDelta(t, before[name], rec.Weights[name], 1e-9)
	}

	loaded, err := ws.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.History, 1, "skipped entry must still be persisted")
}

func TestRunFloorsWeights(t *testing.T) {
	c, ws := testCalibrator(t)
	cfg := DefaultConfig()

	// drive many cycles downward on a component whose targets are always 0
	// while its predictions are high
	neg := pool(8, model.ArchetypeTrend, false)
	pos := pool(8, model.ArchetypeLaunch, false)
	for i := range pos {
		pos[i].Components.CommerceTie = 1 // overpredicts, target 0 for LAUNCH
	}

	for i := 0; i < 30; i++ {
		_, err := c.Run(context.Background(), pos, neg)
		require.NoError(t, err)
	}

	rec, err := ws.Load(context.Background())
	require.NoError(t, err)
	assert.Greater(t, rec.Weights[model.ComponentCommerceTie], 0.0,
		"min-weight floor must keep the component alive")
	assert.Less(t, rec.Weights[model.ComponentCommerceTie], cfg.MinWeight*2,
		"persistently wrong component should sit near the floor")
}

func TestHistoryBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistoryLimit = 5
	kv := store.NewMemoryKV()
	t.Cleanup(func() { _ = kv.Close() })
	ws := store.NewWeightStore(kv)
	c := New(cfg, ws)

	for i := 0; i < 12; i++ {
		_, err := c.Run(context.Background(), pool(8, model.ArchetypeLaunch, true), pool(8, model.ArchetypeTrend, false))
		require.NoError(t, err)
	}

	rec, err := ws.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, rec.History, 5)
}

func TestStratifiedSampleBalancesArchetypes(t *testing.T) {
	items := append(pool(30, model.ArchetypeLaunch, false), pool(4, model.ArchetypeRegulation, false)...)

	sampled := stratifiedSample(items, 10)

	require.Len(t, sampled, 10)
	counts := make(map[model.Archetype]int)
	for _, it := range sampled {
		counts[it.Archetype]++
	}
	assert.Equal(t, 4, counts[model.ArchetypeRegulation],
		"minority class must be fully represented")
	assert.Equal(t, 6, counts[model.ArchetypeLaunch])
}

func TestTargetLabels(t *testing.T) {
	it := sampleItem(0, model.ArchetypeCommerce, true)
	it.Evidence.RegulatorDomain = true
	it.Cluster.TrustedDomains = 3
	it.Cluster.Velocity = 0.8
	it.Evidence.SourceScore = 0.9

	for _, name := range model.ComponentNames {
		assert.Equal(t, 1.0, targetLabel(name, it), "component %s", name)
	}

	stale := sampleItem(1, model.ArchetypeTrend, false)
	stale.Evidence.AgeHours = 90
	stale.Evidence.SourceScore = 0.3
	for _, name := range model.ComponentNames {
		assert.Zero(t, targetLabel(name, stale), "component %s", name)
	}
}
