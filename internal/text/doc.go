// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

// Package text provides the deterministic text-analysis primitives the
// pipeline is built on: tokenization with stop-word filtering and light
// stemming, n-gram shingles, acronym detection, term-frequency and TF-IDF
// vectors, cosine and Jaccard similarity, a 64-bit SimHash fingerprint, a
// hashed bag-of-tokens embedding, and a multi-pattern Aho-Corasick matcher.
//
// Everything here is pure computation. The hashed embedding is a stable
// substitute for semantic embeddings: the same text always produces the same
// vector, on every platform.
package text
