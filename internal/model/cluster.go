// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package model

import "time"

// ArchetypeEvidence is one peer's classification evidence inside a cluster,
// used by consensus voting.
type ArchetypeEvidence struct {
	Archetype Archetype `json:"archetype"`
	Hybrid    float64   `json:"hybrid"` // hybrid lexicon+embedding score
}

// ClusterContext groups near-identical stories corroborated across sources.
// A cluster is created when an item fails to match any existing cluster and
// is mutated only by merging in new members; clusters never outlive a run.
type ClusterContext struct {
	ID           string                       `json:"id"`
	Members      []ClassifiedItem             `json:"members"`
	WindowStart  time.Time                    `json:"window_start"`
	WindowEnd    time.Time                    `json:"window_end"`
	DomainCounts map[string]int               `json:"domain_counts"`
	Evidence     map[string]ArchetypeEvidence `json:"evidence"` // item id -> evidence
}

// Merge adds an item to the cluster, widening the time window and updating
// per-domain counts and the evidence map.
func (c *ClusterContext) Merge(item ClassifiedItem, ev ArchetypeEvidence) {
	c.Members = append(c.Members, item)
	if c.DomainCounts == nil {
		c.DomainCounts = make(map[string]int)
	}
	if item.Domain != "" {
		c.DomainCounts[item.Domain]++
	}
	if c.Evidence == nil {
		c.Evidence = make(map[string]ArchetypeEvidence)
	}
	c.Evidence[item.ID()] = ev

	ts := item.PublishedAt
	if ts.IsZero() {
		return
	}
	if c.WindowStart.IsZero() || ts.Before(c.WindowStart) {
		c.WindowStart = ts
	}
	if c.WindowEnd.IsZero() || ts.After(c.WindowEnd) {
		c.WindowEnd = ts
	}
}

// Size returns the member count.
func (c *ClusterContext) Size() int { return len(c.Members) }
