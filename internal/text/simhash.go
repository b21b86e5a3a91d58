// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package text

import (
	"hash/fnv"
	"math/bits"
)

// SimHash computes a 64-bit locality-sensitive fingerprint of a weighted
// term vector. Similar vectors produce fingerprints with a small Hamming
// distance.
//
// Each term is hashed once with FNV-1a; its weight is added to or
// subtracted from a per-bit accumulator depending on the hash bit, and the
// final fingerprint takes the sign of each accumulator.
func SimHash(v TermVector) uint64 {
	if len(v) == 0 {
		return 0
	}
	var acc [64]float64
	for term, weight := range v {
		h := fnv64(term)
		for bit := 0; bit < 64; bit++ {
			if h&(1<<uint(bit)) != 0 {
				acc[bit] += weight
			} else {
				acc[bit] -= weight
			}
		}
	}
	var fingerprint uint64
	for bit := 0; bit < 64; bit++ {
		if acc[bit] > 0 {
			fingerprint |= 1 << uint(bit)
		}
	}
	return fingerprint
}

// Hamming returns the Hamming distance between two fingerprints.
func Hamming(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

func fnv64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
