// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package rerank

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punieth/sos-pm-chanakya/internal/model"
)

func scoredItem(title string, impact float64) model.ScoredItem {
	it := model.ScoredItem{
		ClassifiedItem: model.ClassifiedItem{
			NormalizedItem: model.NormalizedItem{
				Title:        title,
				URL:          "https://news.example/" + slug(title),
				CanonicalURL: "https://news.example/" + slug(title),
				Domain:       "news.example",
				Provider:     "rss",
			},
			Archetype: model.ArchetypeTrend,
		},
		Impact:  impact,
		Weights: model.DefaultWeights().Normalize(),
	}
	it.Components.Recency = 0.5
	return it
}

func slug(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

func TestHeadsCollapseToHighestImpact(t *testing.T) {
	a := scoredItem("central bank tightens lending norms", 0.7)
	a.ClusterID = "cluster-0001"
	b := scoredItem("lending norms tightened by central bank", 0.9)
	b.ClusterID = "cluster-0001"
	b.URL = "https://other.example/lending"
	c := scoredItem("startup ships new wallet app", 0.6)

	heads := Heads([]model.ScoredItem{a, b, c})

	require.Len(t, heads, 2)
	assert.Equal(t, b.ID(), heads[0].ID(), "cluster head must be the max-impact member")
	assert.Equal(t, []string{a.URL}, heads[0].DuplicateURLs)
	assert.Empty(t, heads[1].DuplicateURLs)
}

func TestHeadsBoostReachPerDuplicate(t *testing.T) {
	a := scoredItem("payments platform adds settlement feature", 0.8)
	a.ClusterID = "cluster-0001"
	a.Components.SurfaceReach = 0.3
	b := scoredItem("settlement feature lands on payments platform", 0.5)
	b.ClusterID = "cluster-0001"
	b.URL = "https://copy.example/settlement"

	heads := Heads([]model.ScoredItem{a, b})

	require.Len(t, heads, 1)
	assert.InDelta(t, 0.32, heads[0].Components.SurfaceReach, 1e-9)
}

func TestSelectFirstPickIsMaxImpact(t *testing.T) {
	r := New(DefaultConfig())
	heads := []Head{
		{ScoredItem: scoredItem("RBI issues circular on digital lending", 0.72)},
		{ScoredItem: scoredItem("fintech launches new savings app", 0.95)},
		{ScoredItem: scoredItem("AI chatbot rollout for support teams", 0.60)},
	}

	got := r.Select(heads)

	require.NotEmpty(t, got)
	assert.Equal(t, heads[1].ID(), got[0].ID(),
		"first pick must be the global max-impact admissible head")
}

func TestSelectAppliesImpactFloor(t *testing.T) {
	r := New(DefaultConfig())
	heads := []Head{
		{ScoredItem: scoredItem("minor vendor update note", 0.40)},
		{ScoredItem: scoredItem("RBI issues circular on digital lending", 0.70)},
	}

	got := r.Select(heads)

	require.Len(t, got, 1)
	assert.Equal(t, heads[1].ID(), got[0].ID())
}

func TestSelectDropsNoiseAndForeignLanguage(t *testing.T) {
	r := New(DefaultConfig())

	noise := scoredItem("Sensex today: stocks to watch this morning", 0.9)
	foreign := scoredItem("regulator approves new framework", 0.9)
	foreign.Language = "hi"
	unknown := scoredItem("platform unveils merchant checkout flow", 0.8)
	unknown.Language = ""
	english := scoredItem("RBI issues circular on digital lending", 0.8)
	english.Language = "en-IN"

	got := r.Select([]Head{
		{ScoredItem: noise},
		{ScoredItem: foreign},
		{ScoredItem: unknown},
		{ScoredItem: english},
	})

	require.Len(t, got, 2)
	ids := []string{got[0].ID(), got[1].ID()}
	assert.Contains(t, ids, unknown.ID())
	assert.Contains(t, ids, english.ID())
}

func TestSelectNoStarvation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShortlistSize = 8
	r := New(cfg)

	heads := make([]Head, 0, 12)
	for i := 0; i < 12; i++ {
		h := scoredItem(fmt.Sprintf("distinct story number %d about markets", i), 0.6+float64(i)*0.02)
		heads = append(heads, Head{ScoredItem: h})
	}

	got := r.Select(heads)

	assert.Len(t, got, 8, "shortlist must fill to min(size, admissible)")
}

func TestQuotasLargestRemainder(t *testing.T) {
	weights := map[model.Topic]float64{
		model.TopicRegulation: 0.35,
		model.TopicProduct:    0.30,
		model.TopicAI:         0.20,
		model.TopicOther:      0.15,
	}

	q := quotas(weights, 8)

	sum := 0
	for _, n := range q {
		sum += n
	}
	assert.Equal(t, 8, sum, "quota slots must sum to the shortlist size")
	for topic, w := range weights {
		if w > 0 {
			assert.GreaterOrEqual(t, q[topic], 1, "topic %s must keep a slot", topic)
		}
	}
}

func TestQuotasFloorForTinyWeights(t *testing.T) {
	weights := map[model.Topic]float64{
		model.TopicRegulation: 0.90,
		model.TopicAI:         0.05,
	}

	q := quotas(weights, 4)

	assert.GreaterOrEqual(t, q[model.TopicAI], 1)
	assert.Equal(t, 4, q[model.TopicRegulation]+q[model.TopicAI])
	assert.Zero(t, q[model.TopicProduct])
}

func TestDominantTopic(t *testing.T) {
	reg := model.ClassifiedItem{
		NormalizedItem: model.NormalizedItem{Title: "RBI circular mandates audit of lending compliance"},
		Archetype:      model.ArchetypeRegulation,
	}
	prod := model.ClassifiedItem{
		NormalizedItem: model.NormalizedItem{Title: "startup launches flagship app with new feature rollout"},
		Archetype:      model.ArchetypeLaunch,
	}
	plain := model.ClassifiedItem{
		NormalizedItem: model.NormalizedItem{Title: "quarterly results broadly steady"},
		Archetype:      model.ArchetypeTrend,
	}

	assert.Equal(t, model.TopicRegulation, DominantTopic(TopicScores(reg)))
	assert.Equal(t, model.TopicProduct, DominantTopic(TopicScores(prod)))
	assert.Equal(t, model.TopicOther, DominantTopic(TopicScores(plain)))
}

func TestUrgencyTiers(t *testing.T) {
	breaking := scoredItem("RBI caps UPI fees effective immediately", 0.85)
	breaking.Components.Recency = 0.9
	notable := scoredItem("platform expands merchant tools", 0.7)
	digest := scoredItem("weekly roundup of product notes", 0.58)

	assert.Equal(t, model.UrgencyBreaking, urgency(breaking))
	assert.Equal(t, model.UrgencyNotable, urgency(notable))
	assert.Equal(t, model.UrgencyDigest, urgency(digest))
}

func TestSignalTerms(t *testing.T) {
	terms := signalTerms("RBI caps UPI interchange fees")
	assert.LessOrEqual(t, len(terms), 2)
	assert.NotEmpty(t, terms)
}
