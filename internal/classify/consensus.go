// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package classify

import (
	"github.com/punieth/sos-pm-chanakya/internal/logging"
	"github.com/punieth/sos-pm-chanakya/internal/model"
)

const (
	// consensusMargin is the minimum amount by which the peers' average
	// hybrid score must exceed the item's own hybrid before an override.
	consensusMargin = 0.05

	// highConfidenceCeiling protects confident classifications: at or
	// above it, consensus never overrides.
	highConfidenceCeiling = 0.85
)

// Refine applies cluster-consensus voting to every clustered item and
// returns the (possibly overridden) items in input order.
//
// An override requires all of: the winning peer archetype differs from the
// item's own, a strict majority of peers supports it, the supporters'
// average hybrid exceeds the item's own hybrid by consensusMargin, and the
// item's own confidence is below highConfidenceCeiling.
func Refine(items []model.ClassifiedItem, clusters []*model.ClusterContext) []model.ClassifiedItem {
	byCluster := make(map[string]*model.ClusterContext, len(clusters))
	for _, cl := range clusters {
		byCluster[cl.ID] = cl
	}

	out := make([]model.ClassifiedItem, len(items))
	for i, item := range items {
		out[i] = refineOne(item, byCluster[item.ClusterID])
	}
	return out
}

func refineOne(item model.ClassifiedItem, cluster *model.ClusterContext) model.ClassifiedItem {
	if cluster == nil || item.Confidence >= highConfidenceCeiling {
		return item
	}

	id := item.ID()
	peers := 0
	votes := make(map[model.Archetype]int)
	sums := make(map[model.Archetype]float64)
	for memberID, ev := range cluster.Evidence {
		if memberID == id {
			continue
		}
		peers++
		votes[ev.Archetype]++
		sums[ev.Archetype] += ev.Hybrid
	}
	if peers == 0 {
		return item
	}

	winner, count := topVote(votes)
	if winner == item.Archetype || count*2 <= peers {
		return item
	}

	peerAvg := sums[winner] / float64(count)
	own := ownHybrid(item)
	if peerAvg < own+consensusMargin {
		return item
	}

	logging.Debug().
		Str("item", id).
		Str("from", string(item.Archetype)).
		Str("to", string(winner)).
		Float64("peer_avg", peerAvg).
		Msg("consensus override")

	item.Archetype = winner
	item.Signals.ClusterVoting = peerAvg
	if peerAvg > item.Confidence {
		item.Confidence = model.Clamp01(peerAvg)
	}
	return item
}

func ownHybrid(item model.ClassifiedItem) float64 {
	return lexiconWeight*item.Signals.Lexicon + embeddingWeight*item.Signals.Embedding
}

// topVote returns the archetype with the most votes; ties break in
// taxonomy order so the result is deterministic.
func topVote(votes map[model.Archetype]int) (model.Archetype, int) {
	best := model.ArchetypeTrend
	bestCount := -1
	for _, a := range model.Archetypes {
		if votes[a] > bestCount {
			best = a
			bestCount = votes[a]
		}
	}
	return best, bestCount
}
