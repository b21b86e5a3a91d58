// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package calibrate

import "github.com/punieth/sos-pm-chanakya/internal/model"

// Heuristic target thresholds. Each component gets a cheap binary label
// derived from score evidence, never from the component's own value.
const (
	targetFreshHours     = 24.0
	targetReachDomains   = 2
	targetAuthorityScore = 0.5
	targetVelocity       = 0.5
)

// targetLabel computes the binary target for one component on one item.
func targetLabel(component string, item model.ScoredItem) float64 {
	switch component {
	case model.ComponentRecency:
		if item.Evidence.AgeHours >= 0 && item.Evidence.AgeHours <= targetFreshHours {
			return 1
		}
	case model.ComponentSurfaceReach:
		if item.Cluster.TrustedDomains >= targetReachDomains {
			return 1
		}
	case model.ComponentGraphNovelty:
		if item.Evidence.Novel {
			return 1
		}
	case model.ComponentAuthority:
		if item.Evidence.SourceScore >= targetAuthorityScore {
			return 1
		}
	case model.ComponentCommerceTie:
		if item.Archetype == model.ArchetypeCommerce {
			return 1
		}
	case model.ComponentRegionTie:
		if item.Evidence.RegulatorDomain || item.Evidence.GeoDomain {
			return 1
		}
	case model.ComponentMomentum:
		if item.Cluster.Velocity >= targetVelocity {
			return 1
		}
	}
	return 0
}

// gap returns mean(target) - mean(predicted) for one component over a
// sample. A positive gap means the component underpredicts.
func gap(component string, sample []model.ScoredItem) float64 {
	if len(sample) == 0 {
		return 0
	}
	var target, predicted float64
	for _, it := range sample {
		target += targetLabel(component, it)
		predicted += it.Components.AsMap()[component]
	}
	n := float64(len(sample))
	return target/n - predicted/n
}
