// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

// Package classify maps free text to exactly one business-event archetype
// from the closed taxonomy.
//
// Per archetype it combines a lexicon score (weighted keyword and phrase
// hits, phrases matched with an Aho-Corasick automaton) with an embedding
// score (cosine between a hashed bag-of-tokens vector and a precomputed
// prototype). The hybrid ranking can later be refined by cluster-level
// consensus voting, but a high-confidence classification is never
// overridden.
package classify
