// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

// Package calibrate nudges the impact weights after each run.
//
// The loop compares predicted component values against cheap heuristic
// target labels on a stratified sample of shortlisted (positive) and
// rejected (negative) items, turns the per-component gaps into a bounded
// EMA step, and persists the renormalized weights with a bounded history.
// Runs with too small a sample on either side record an explicit skipped
// entry instead of adjusting anything.
package calibrate
