// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

// Package model defines the data types shared across the ranking pipeline:
// normalized feed items, classified and scored items, story clusters,
// impact components and weights, shortlist candidates, calibration history,
// and the persisted entity-graph records.
//
// Types in this package are plain values. Items are immutable once created;
// clusters are mutated only by merging new members during a single run and
// are rebuilt from scratch on the next run.
package model
