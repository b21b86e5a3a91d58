// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package impact

import (
	"math"
	"time"

	"github.com/punieth/sos-pm-chanakya/internal/model"
	"github.com/punieth/sos-pm-chanakya/internal/text"
)

const (
	// authority blend over source score, trusted-domain density in the
	// cluster, and classification confidence.
	authoritySourceWeight     = 0.5
	authorityDensityWeight    = 0.3
	authorityConfidenceWeight = 0.2

	// commerce-tie for non-COMMERCE archetypes saturates at four term hits.
	commerceHitWeight = 0.25

	// momentum never reports exactly zero for a live cluster; a floor keeps
	// calibration from zeroing the weight on a quiet day.
	momentumFloor = 0.05
)

var commerceStems = stemSet(commerceTerms)
var regionKeywordStems = stemSet(regionKeywords)

func stemSet(words map[string]bool) map[string]bool {
	out := make(map[string]bool, len(words))
	for w := range words {
		out[text.Stem(w)] = true
	}
	return out
}

// recency decays exponentially with item age. Unparseable publish times
// (negative age) score zero rather than inheriting a fabricated freshness.
func recency(age time.Duration, halfLife time.Duration) float64 {
	if age < 0 {
		return 0
	}
	hl := halfLife.Hours()
	if hl <= 0 {
		return 0
	}
	return model.Clamp01(math.Exp(-age.Hours() / hl))
}

// surfaceReach counts the distinct trusted domains that covered the
// cluster inside the lookback window, normalized by domainCap. Items
// without a cluster fall back to their own domain.
func surfaceReach(item model.ClassifiedItem, cluster *model.ClusterContext, now time.Time, lookback time.Duration, domainCap int) float64 {
	if domainCap <= 0 {
		return 0
	}
	cutoff := now.Add(-lookback)
	seen := make(map[string]bool)
	if cluster != nil {
		for _, m := range cluster.Members {
			if m.PublishedAt.IsZero() || m.PublishedAt.Before(cutoff) {
				continue
			}
			d := normalizeDomain(m.Domain)
			if d == "" || !IsTrustedDomain(d) {
				continue
			}
			seen[d] = true
		}
	} else if d := normalizeDomain(item.Domain); d != "" && IsTrustedDomain(d) {
		if !item.PublishedAt.IsZero() && !item.PublishedAt.Before(cutoff) {
			seen[d] = true
		}
	}
	return model.Clamp01(float64(len(seen)) / float64(domainCap))
}

// authority blends the static source score with how much of the cluster's
// coverage came from trusted domains and the classifier's confidence.
func authority(item model.ClassifiedItem, cluster *model.ClusterContext) float64 {
	density := 0.0
	if cluster != nil && len(cluster.DomainCounts) > 0 {
		trusted := 0
		for d := range cluster.DomainCounts {
			if IsTrustedDomain(d) {
				trusted++
			}
		}
		density = float64(trusted) / float64(len(cluster.DomainCounts))
	}
	s := SourceScore(item.Domain)
	return model.Clamp01(authoritySourceWeight*s +
		authorityDensityWeight*density +
		authorityConfidenceWeight*item.Confidence)
}

// commerceTie is saturated for COMMERCE-classified items; everything else
// earns partial credit per commerce vocabulary hit in title or description.
func commerceTie(item model.ClassifiedItem) float64 {
	if item.Archetype == model.ArchetypeCommerce {
		return 1
	}
	hits := 0
	for _, tok := range text.Tokenize(item.Title + " " + item.Description) {
		if commerceStems[tok] {
			hits++
		}
	}
	return model.Clamp01(float64(hits) * commerceHitWeight)
}

// momentum is the share of cluster members published in the recent window
// relative to everything inside the comparison window, floored so live
// clusters never score exactly zero.
func momentum(cluster *model.ClusterContext, now time.Time, recentWindow, compareWindow time.Duration) float64 {
	if cluster == nil || cluster.Size() == 0 {
		return momentumFloor
	}
	recentCutoff := now.Add(-recentWindow)
	compareCutoff := now.Add(-compareWindow)
	recent, total := 0, 0
	for _, m := range cluster.Members {
		if m.PublishedAt.IsZero() || m.PublishedAt.Before(compareCutoff) {
			continue
		}
		total++
		if !m.PublishedAt.Before(recentCutoff) {
			recent++
		}
	}
	if total == 0 {
		return momentumFloor
	}
	v := float64(recent) / float64(total)
	if v < momentumFloor {
		return momentumFloor
	}
	return model.Clamp01(v)
}
