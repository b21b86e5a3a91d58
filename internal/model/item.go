// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// NormalizedItem is a news-like item as delivered by the ingestion
// collaborator. It is immutable once created; identity is a deterministic
// hash of canonical URL, provider, and publish timestamp.
type NormalizedItem struct {
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	URL          string    `json:"url"`
	CanonicalURL string    `json:"canonical_url"`
	Source       string    `json:"source"`             // human-readable source name
	Domain       string    `json:"domain"`             // registrable domain of the URL
	PublishedAt  time.Time `json:"published_at"`       // zero when unparseable upstream
	Provider     string    `json:"provider"`           // source-provider tag (rss, api, ...)
	Language     string    `json:"language,omitempty"` // BCP-47-ish, empty when unknown
	Entities     []string  `json:"entities,omitempty"` // extracted ORG/PRODUCT names
	Verbs        []string  `json:"verbs,omitempty"`    // extracted action verbs
}

// ID returns the deterministic identity hash of the item.
func (n NormalizedItem) ID() string {
	h := sha256.New()
	h.Write([]byte(n.CanonicalURL))
	h.Write([]byte{0})
	h.Write([]byte(n.Provider))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(n.PublishedAt.Unix(), 10)))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// AgeAt returns the item age relative to now. Items with a zero publish
// time report a negative age, which callers treat as unparseable.
func (n NormalizedItem) AgeAt(now time.Time) time.Duration {
	if n.PublishedAt.IsZero() {
		return -1
	}
	return now.Sub(n.PublishedAt)
}

// ClassificationSignals records the per-channel evidence behind an
// archetype decision.
type ClassificationSignals struct {
	Lexicon       float64 `json:"lexicon"`
	Embedding     float64 `json:"embedding"`
	ClusterVoting float64 `json:"cluster_voting"`
}

// ClassifiedItem is a NormalizedItem with an archetype decision attached.
type ClassifiedItem struct {
	NormalizedItem

	Archetype  Archetype             `json:"archetype"`
	Confidence float64               `json:"confidence"` // [0,1]
	Signals    ClassificationSignals `json:"signals"`
	ClusterID  string                `json:"cluster_id,omitempty"` // assigned by clustering
}
