// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

// Package cluster groups near-duplicate stories and suppresses
// near-duplicate topics.
//
// Story clustering is greedy and order-dependent: the first item seen
// defines the cluster anchor, and each later item joins the best-matching
// cluster above a fixed threshold or starts its own. The input ordering is
// part of the observable contract; identical sequences always produce
// identical assignments. Do not replace this with an order-independent
// algorithm without renaming the contract.
//
// Topic dedup is a separate, cross-cluster pass using a deliberately
// layered OR of SimHash, shared-top-token, Jaccard, and cosine thresholds.
// The literal thresholds trade precision for recall against paraphrased
// headlines; changing them changes behavior materially.
package cluster
