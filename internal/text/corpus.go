// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package text

import "math"

// TFIDF reweights raw term-frequency documents by inverse document
// frequency across the corpus.
//
// Terms whose document frequency exceeds noiseDF (a fraction of the corpus,
// e.g. 0.6) are treated as corpus-wide noise and dropped, unless exempt
// returns true for them (acronyms and purely numeric tokens survive).
func TFIDF(docs []TermVector, noiseDF float64, exempt func(term string) bool) []TermVector {
	n := len(docs)
	if n == 0 {
		return nil
	}

	df := make(map[string]int)
	for _, doc := range docs {
		for term := range doc {
			df[term]++
		}
	}

	out := make([]TermVector, n)
	for i, doc := range docs {
		w := make(TermVector, len(doc))
		for term, tf := range doc {
			frac := float64(df[term]) / float64(n)
			if noiseDF > 0 && frac > noiseDF && (exempt == nil || !exempt(term)) {
				continue
			}
			// Smoothed IDF keeps singleton-corpus weights finite and positive.
			idf := math.Log(1 + float64(n)/float64(df[term]))
			w[term] = tf * idf
		}
		out[i] = w
	}
	return out
}
