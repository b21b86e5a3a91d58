// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

// Package rerank turns scored items into the final shortlist.
//
// The pipeline inside Select is fixed: collapse each story cluster to its
// highest-impact head, drop heads below the impact floor, drop non-target
// languages and noise-denylist matches, order the survivors with greedy
// Maximal Marginal Relevance, then admit them bucket-by-bucket under
// largest-remainder topic quotas with score-ordered backfill.
//
// MMR reference: Carbonell & Goldstein, "The Use of MMR, Diversity-Based
// Reranking for Reordering Documents and Producing Summaries", SIGIR 1998.
package rerank
