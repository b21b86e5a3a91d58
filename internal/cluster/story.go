// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package cluster

import (
	"fmt"

	"github.com/punieth/sos-pm-chanakya/internal/model"
	"github.com/punieth/sos-pm-chanakya/internal/text"
)

const (
	// joinThreshold is the combined similarity an item must exceed to
	// join an existing cluster.
	joinThreshold = 0.68

	// titleWeight and contentWeight combine title-token Jaccard with
	// content-vector cosine.
	titleWeight   = 0.6
	contentWeight = 0.4
)

// Profile is the similarity fingerprint used for story clustering and
// later reused by the diversity reranker.
type Profile struct {
	TitleTokens  map[string]struct{}
	Vector       text.TermVector
	CanonicalURL string
}

// BuildProfile computes an item's similarity profile.
func BuildProfile(item model.NormalizedItem) Profile {
	return Profile{
		TitleTokens:  text.TokenSet(item.Title),
		Vector:       text.TermFrequency(text.Tokenize(item.Title + " " + item.Description)),
		CanonicalURL: item.CanonicalURL,
	}
}

// Similarity is the combined story similarity of two profiles.
func Similarity(a, b Profile) float64 {
	return titleWeight*text.Jaccard(a.TitleTokens, b.TitleTokens) +
		contentWeight*text.Cosine(a.Vector, b.Vector)
}

type storyCluster struct {
	ctx    *model.ClusterContext
	anchor Profile // profile of the first member
}

// Assign groups items into story clusters, in input order. Items that are
// effectively empty (no URL and no title) are excluded from clustering and
// returned with an empty cluster id.
//
// The returned items carry their cluster ids; evidence supplies each
// item's own classification evidence for the cluster's consensus map.
func Assign(items []model.ClassifiedItem, evidence map[string]model.ArchetypeEvidence) ([]model.ClassifiedItem, []*model.ClusterContext) {
	var clusters []*storyCluster
	out := make([]model.ClassifiedItem, len(items))

	for i, item := range items {
		out[i] = item
		if item.CanonicalURL == "" && item.Title == "" {
			continue
		}

		profile := BuildProfile(item.NormalizedItem)
		target := match(clusters, profile)
		if target == nil {
			target = &storyCluster{
				ctx:    &model.ClusterContext{ID: fmt.Sprintf("cluster-%04d", len(clusters)+1)},
				anchor: profile,
			}
			clusters = append(clusters, target)
		}

		out[i].ClusterID = target.ctx.ID
		target.ctx.Merge(out[i], evidence[item.ID()])
	}

	ctxs := make([]*model.ClusterContext, len(clusters))
	for i, c := range clusters {
		ctxs[i] = c.ctx
	}
	return out, ctxs
}

// match returns the best-scoring existing cluster above the threshold.
// Identical canonical URLs always collapse regardless of wording.
func match(clusters []*storyCluster, p Profile) *storyCluster {
	var best *storyCluster
	bestScore := 0.0
	for _, c := range clusters {
		if p.CanonicalURL != "" && c.anchor.CanonicalURL == p.CanonicalURL {
			return c
		}
		score := Similarity(c.anchor, p)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore > joinThreshold {
		return best
	}
	return nil
}
