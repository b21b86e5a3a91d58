// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package model

import "time"

// NodeType distinguishes the two entity kinds tracked by the novelty graph.
type NodeType string

const (
	NodeOrg     NodeType = "ORG"
	NodeProduct NodeType = "PRODUCT"
)

// Node is a persisted entity-graph vertex. Records carry a fixed TTL in the
// key-value store; expiry is the store's garbage collection, not ours.
type Node struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Type     NodeType  `json:"type"`
	Degree   int       `json:"degree"`
	LastSeen time.Time `json:"last_seen"`
}

// Edge is a persisted co-occurrence between two entities under one verb
// bucket. Source and Target are stored in lexical order so the pair is
// unordered.
type Edge struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Target     string    `json:"target"`
	VerbBucket string    `json:"verb_bucket"`
	Count      int       `json:"count"`
	LastSeen   time.Time `json:"last_seen"`
}
