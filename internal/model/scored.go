// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package model

// ClusterSignal summarizes cluster-level corroboration attached to a scored
// item: how many distinct trusted domains covered the story and how fast the
// cluster grew.
type ClusterSignal struct {
	TrustedDomains int     `json:"trusted_domains"`
	TotalDomains   int     `json:"total_domains"`
	Velocity       float64 `json:"velocity"` // share of members in the recent window
}

// ScoredItem is a ClassifiedItem with its composite impact score, the
// components behind it, and the weight map used to combine them.
type ScoredItem struct {
	ClassifiedItem

	Impact     float64          `json:"impact"` // [0,1]
	Components ImpactComponents `json:"components"`
	Weights    Weights          `json:"weights"`
	Cluster    ClusterSignal    `json:"cluster,omitempty"`

	// Evidence carries the raw facts behind component values so the
	// calibration loop can derive target labels without recomputing them.
	Evidence ScoreEvidence `json:"evidence,omitempty"`
}

// ScoreEvidence records the raw inputs that produced the components.
type ScoreEvidence struct {
	AgeHours        float64 `json:"age_hours"`        // negative when unparseable
	SourceScore     float64 `json:"source_score"`     // static trusted-source score
	RegulatorDomain bool    `json:"regulator_domain"` // matched the regulator table
	GeoDomain       bool    `json:"geo_domain"`       // matched the publisher-geo allow-list
	Novel           bool    `json:"novel"`            // novelty-graph flag
}

// Urgency tags a candidate for downstream narrative composition.
type Urgency string

const (
	UrgencyBreaking Urgency = "breaking"
	UrgencyNotable  Urgency = "notable"
	UrgencyDigest   Urgency = "digest"
)

// ShortlistedCandidate is the engine's sole output record: a scored item
// plus the derived fields the narrative and publishing collaborators need.
type ShortlistedCandidate struct {
	ScoredItem

	Topic         Topic             `json:"topic"`
	TopicScores   map[Topic]float64 `json:"topic_scores"`
	Urgency       Urgency           `json:"urgency"`
	SignalTerms   []string          `json:"signal_terms,omitempty"`   // 0-2 keywords
	DuplicateURLs []string          `json:"duplicate_urls,omitempty"` // suppressed cluster members
}
