// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

// Package novelty maintains an incrementally-updated co-occurrence graph of
// named entities and decides, per item, whether it represents a novel
// entity-pair/action combination.
//
// The graph lives in a TTL-capable key-value store. Reads and writes are
// per-key upserts with no cross-key transaction; under concurrent runs
// last-write-wins on an edge is an accepted race. Novelty is a best-effort
// heuristic, not an exact count.
package novelty
