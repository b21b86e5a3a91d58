// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package text

import "math"

// EmbedDim is the fixed dimensionality of hashed bag-of-tokens embeddings.
const EmbedDim = 256

// Embed maps tokens to a dense, L2-normalized vector of EmbedDim
// dimensions via a stable hash mod EmbedDim. It is a deterministic
// substitute for semantic embeddings: no model, no network, identical
// output everywhere.
func Embed(tokens []string) []float64 {
	v := make([]float64, EmbedDim)
	for _, tok := range tokens {
		v[fnv64(tok)%EmbedDim]++
	}
	return l2normalize(v)
}

// CosineDense computes cosine similarity between two dense vectors of the
// same length. Pre-normalized vectors reduce this to a dot product, but the
// full form keeps the function safe for arbitrary inputs.
func CosineDense(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	dot, na, nb := 0.0, 0.0, 0.0
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func l2normalize(v []float64) []float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	n := math.Sqrt(sum)
	for i := range v {
		v[i] /= n
	}
	return v
}
