// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

// Package impact computes the seven-component composite relevance score.
//
// Each component is computed independently and deterministically from the
// item, its cluster context, and the novelty flag; no component reads
// another component's value. The final score is the dot product of the
// clamped components with the normalized weight map, itself clamped to
// [0,1].
//
// The region-tie component is a small logistic model over domain, entity,
// and keyword features whose raw probability passes through a monotone
// piecewise-linear isotonic calibration table.
package impact
