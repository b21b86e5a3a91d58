// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package rerank

import (
	"sort"

	"github.com/punieth/sos-pm-chanakya/internal/cluster"
	"github.com/punieth/sos-pm-chanakya/internal/model"
	"github.com/punieth/sos-pm-chanakya/internal/text"
)

const (
	// reach boost per corroborating cluster member absorbed into a head.
	duplicateReachBoost = 0.02

	maxSignalTerms = 2
)

// Urgency thresholds over the composite score and recency component.
const (
	breakingImpact  = 0.80
	breakingRecency = 0.70
	notableImpact   = 0.65
)

// Config controls selection.
type Config struct {
	// Lambda balances relevance against diversity in the MMR ordering.
	Lambda float64 `koanf:"lambda"`
	// ImpactFloor excludes low-value heads outright.
	ImpactFloor float64 `koanf:"impact_floor"`
	// ShortlistSize is the target output length.
	ShortlistSize int `koanf:"shortlist_size"`
	// TopicWeights are the configured quota fractions per bucket.
	TopicWeights map[model.Topic]float64 `koanf:"topic_weights"`
	// Languages is the allow-list for the language filter; items with an
	// empty language always pass.
	Languages []string `koanf:"languages"`
}

// DefaultConfig returns the production selection parameters.
func DefaultConfig() Config {
	return Config{
		Lambda:        0.7,
		ImpactFloor:   0.55,
		ShortlistSize: 8,
		TopicWeights: map[model.Topic]float64{
			model.TopicRegulation: 0.35,
			model.TopicProduct:    0.30,
			model.TopicAI:         0.20,
			model.TopicOther:      0.15,
		},
		Languages: []string{"en"},
	}
}

// Head is a cluster representative: the highest-impact member plus the
// URLs of the members it absorbed.
type Head struct {
	model.ScoredItem
	DuplicateURLs []string
}

// Reranker applies head collapse, MMR ordering, and topic quotas.
type Reranker struct {
	cfg   Config
	noise *text.Matcher
}

// New returns a reranker. Out-of-range lambda clamps to [0,1]; a
// non-positive shortlist size falls back to the default.
func New(cfg Config) *Reranker {
	def := DefaultConfig()
	if cfg.Lambda < 0 {
		cfg.Lambda = 0
	}
	if cfg.Lambda > 1 {
		cfg.Lambda = 1
	}
	if cfg.ImpactFloor <= 0 {
		cfg.ImpactFloor = def.ImpactFloor
	}
	if cfg.ShortlistSize <= 0 {
		cfg.ShortlistSize = def.ShortlistSize
	}
	if len(cfg.TopicWeights) == 0 {
		cfg.TopicWeights = def.TopicWeights
	}
	if cfg.Languages == nil {
		cfg.Languages = def.Languages
	}
	return &Reranker{cfg: cfg, noise: newNoiseMatcher()}
}

// Heads collapses each story cluster to its single highest-impact member.
// Remaining members become the head's duplicate URLs, and the head's reach
// component absorbs a small boost per absorbed member before the composite
// is recomputed. Unclustered items pass through as their own heads.
// Input order decides both tie-breaks and output order.
func Heads(items []model.ScoredItem) []Head {
	bestByCluster := make(map[string]int)
	order := make([]int, 0, len(items))

	for i, it := range items {
		if it.ClusterID == "" {
			order = append(order, i)
			continue
		}
		best, seen := bestByCluster[it.ClusterID]
		if !seen {
			bestByCluster[it.ClusterID] = i
			order = append(order, i)
			continue
		}
		if it.Impact > items[best].Impact {
			bestByCluster[it.ClusterID] = i
		}
	}

	heads := make([]Head, 0, len(order))
	for _, firstSeen := range order {
		it := items[firstSeen]
		if it.ClusterID == "" {
			heads = append(heads, Head{ScoredItem: it})
			continue
		}
		head := items[bestByCluster[it.ClusterID]]
		var dups []string
		for _, m := range items {
			if m.ClusterID == it.ClusterID && m.ID() != head.ID() {
				dups = append(dups, m.URL)
			}
		}
		if n := len(dups); n > 0 {
			head.Components.SurfaceReach = model.Clamp01(
				head.Components.SurfaceReach + duplicateReachBoost*float64(n))
			head.Impact = head.Weights.Score(head.Components)
		}
		heads = append(heads, Head{ScoredItem: head, DuplicateURLs: dups})
	}
	return heads
}

// Select produces the final shortlist from cluster heads.
func (r *Reranker) Select(heads []Head) []model.ShortlistedCandidate {
	admissible := make([]Head, 0, len(heads))
	for _, h := range heads {
		if r.admissible(h.ScoredItem) {
			admissible = append(admissible, h)
		}
	}
	if len(admissible) == 0 {
		return nil
	}

	ordered := r.mmr(admissible)

	size := r.cfg.ShortlistSize
	if size > len(ordered) {
		size = len(ordered)
	}
	q := quotas(r.cfg.TopicWeights, size)

	type bucketed struct {
		head   Head
		topic  model.Topic
		scores map[model.Topic]float64
	}
	all := make([]bucketed, len(ordered))
	for i, h := range ordered {
		scores := TopicScores(h.ClassifiedItem)
		all[i] = bucketed{head: h, topic: DominantTopic(scores), scores: scores}
	}

	picked := make([]bucketed, 0, size)
	taken := make(map[int]bool, size)
	for i, b := range all {
		if len(picked) == size {
			break
		}
		if q[b.topic] <= 0 {
			continue
		}
		q[b.topic]--
		taken[i] = true
		picked = append(picked, b)
	}

	// backfill from leftovers in score order until the shortlist is full
	if len(picked) < size {
		rest := make([]int, 0, len(all))
		for i := range all {
			if !taken[i] {
				rest = append(rest, i)
			}
		}
		sort.SliceStable(rest, func(a, b int) bool {
			return all[rest[a]].head.Impact > all[rest[b]].head.Impact
		})
		for _, i := range rest {
			if len(picked) == size {
				break
			}
			picked = append(picked, all[i])
		}
	}

	out := make([]model.ShortlistedCandidate, 0, len(picked))
	for _, b := range picked {
		out = append(out, model.ShortlistedCandidate{
			ScoredItem:    b.head.ScoredItem,
			Topic:         b.topic,
			TopicScores:   b.scores,
			Urgency:       urgency(b.head.ScoredItem),
			SignalTerms:   signalTerms(b.head.Title),
			DuplicateURLs: b.head.DuplicateURLs,
		})
	}
	return out
}

// mmr orders heads greedily: at each step pick the unselected head
// maximizing lambda*impact - (1-lambda)*maxSimilarityToSelected. The first
// pick is always the highest-impact head since nothing is selected yet.
func (r *Reranker) mmr(heads []Head) []Head {
	n := len(heads)
	profiles := make([]cluster.Profile, n)
	for i, h := range heads {
		profiles[i] = cluster.BuildProfile(h.NormalizedItem)
	}

	selected := make([]Head, 0, n)
	selectedIdx := make([]int, 0, n)
	used := make([]bool, n)

	for len(selected) < n {
		bestIdx := -1
		bestScore := 0.0
		for i := range heads {
			if used[i] {
				continue
			}
			maxSim := 0.0
			for _, j := range selectedIdx {
				if sim := cluster.Similarity(profiles[i], profiles[j]); sim > maxSim {
					maxSim = sim
				}
			}
			score := r.cfg.Lambda*heads[i].Impact - (1-r.cfg.Lambda)*maxSim
			if bestIdx < 0 || score > bestScore {
				bestIdx, bestScore = i, score
			}
		}
		used[bestIdx] = true
		selectedIdx = append(selectedIdx, bestIdx)
		selected = append(selected, heads[bestIdx])
	}
	return selected
}

func urgency(item model.ScoredItem) model.Urgency {
	switch {
	case item.Impact >= breakingImpact && item.Components.Recency >= breakingRecency:
		return model.UrgencyBreaking
	case item.Impact >= notableImpact:
		return model.UrgencyNotable
	default:
		return model.UrgencyDigest
	}
}

// signalTerms extracts up to two headline keywords for the narrative
// collaborator.
func signalTerms(title string) []string {
	v := text.TermFrequency(text.Tokenize(title))
	return text.TopTerms(v, maxSignalTerms)
}
