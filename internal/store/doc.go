// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

// Package store provides the two persistence boundaries the engine depends
// on: a TTL-capable key-value store (BadgerDB in production, an in-memory
// implementation for tests) and the versioned weight-configuration store
// layered on top of it.
//
// Every read and write is independently best-effort. There are no
// cross-key transactions and no ordering guarantees across keys; under
// concurrent runs last-write-wins on a given key is accepted behavior. The
// circuit-breaker wrapper treats the store as fallible, retryable I/O at
// the boundary so the pure pipeline never retries internally.
package store
