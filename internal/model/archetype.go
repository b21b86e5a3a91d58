// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package model

// Archetype is one of a fixed, closed set of business-event categories.
// Low-confidence classifications fall into ArchetypeTrend; there is no
// open-ended "unclassified" bucket.
type Archetype string

const (
	// ArchetypeLaunch covers product/service/feature launches and rollouts.
	ArchetypeLaunch Archetype = "LAUNCH"
	// ArchetypePartnership covers partnerships, alliances, and integrations.
	ArchetypePartnership Archetype = "PARTNERSHIP"
	// ArchetypeRegulation covers pricing, policy, and regulatory actions.
	ArchetypeRegulation Archetype = "REGULATION"
	// ArchetypeCommerce covers payments and commerce events.
	ArchetypeCommerce Archetype = "COMMERCE"
	// ArchetypeFunding covers funding rounds, acquisitions, and investments.
	ArchetypeFunding Archetype = "FUNDING"
	// ArchetypeTrend is the residual bucket for low-confidence items.
	ArchetypeTrend Archetype = "TREND"
)

// Archetypes lists every member of the closed taxonomy, ArchetypeTrend last.
var Archetypes = []Archetype{
	ArchetypeLaunch,
	ArchetypePartnership,
	ArchetypeRegulation,
	ArchetypeCommerce,
	ArchetypeFunding,
	ArchetypeTrend,
}

// Valid reports whether a is a member of the closed taxonomy.
func (a Archetype) Valid() bool {
	switch a {
	case ArchetypeLaunch, ArchetypePartnership, ArchetypeRegulation,
		ArchetypeCommerce, ArchetypeFunding, ArchetypeTrend:
		return true
	default:
		return false
	}
}

// Topic is the dominant coverage bucket used by the diversity selector's
// per-topic quotas. It is coarser than Archetype.
type Topic string

const (
	TopicRegulation Topic = "regulation"
	TopicProduct    Topic = "product"
	TopicAI         Topic = "ai"
	TopicOther      Topic = "other"
)

// Topics lists every quota bucket in a stable order.
var Topics = []Topic{TopicRegulation, TopicProduct, TopicAI, TopicOther}
