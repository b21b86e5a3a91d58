// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package cluster

import (
	"strings"

	"github.com/punieth/sos-pm-chanakya/internal/model"
	"github.com/punieth/sos-pm-chanakya/internal/text"
)

// Topic-dedup thresholds. The layered OR design intentionally trades
// precision for recall against paraphrased headlines; the literal values
// are the contract, not a tuning suggestion.
const (
	hammingTight     = 12
	hammingLoose     = 16
	sharedTopStrong  = 3
	sharedTopWeak    = 2
	jaccardHigh      = 0.62
	jaccardMid       = 0.45
	jaccardLow       = 0.32
	cosineHigh       = 0.9
	cosineMid        = 0.75
	cosineLow        = 0.58
	noiseDF          = 0.6 // terms above this doc-frequency fraction are corpus noise
	topTokenCount    = 6   // tokens compared by the shared-top-token tests
	jaccardTokenPool = 10  // tokens forming the Jaccard set
	shingleWeight    = 2.0
	acronymWeight    = 1.5
)

// TopicDoc is one item's dedup fingerprint.
type TopicDoc struct {
	Vector    text.TermVector
	TopTokens []string
	TokenSet  map[string]struct{}
	SimHash   uint64
}

// BuildTopicDocs fingerprints a candidate pool. Fingerprints are corpus
// relative: TF-IDF weighting and noise suppression depend on the whole
// pool, so docs from different pools must not be compared.
func BuildTopicDocs(items []model.ScoredItem) []TopicDoc {
	n := len(items)
	raw := make([]text.TermVector, n)
	acronyms := make(map[string]struct{})

	for i, item := range items {
		full := item.Title + " " + item.Description
		tokens := text.Tokenize(full)

		v := text.TermFrequency(tokens)
		for _, sh := range text.Shingles(tokens, 2) {
			v[sh] += shingleWeight
		}
		for _, sh := range text.Shingles(tokens, 3) {
			v[sh] += shingleWeight
		}
		for _, ac := range text.Acronyms(full) {
			v[ac] += acronymWeight
			acronyms[ac] = struct{}{}
		}
		raw[i] = v
	}

	weighted := text.TFIDF(raw, noiseDF, func(term string) bool {
		if _, ok := acronyms[term]; ok {
			return true
		}
		return text.IsNumeric(term)
	})

	docs := make([]TopicDoc, n)
	for i, v := range weighted {
		// Shingles feed the cosine and SimHash signals but are excluded
		// from the top-token sets: shared-token tests compare words, and
		// a doc's own rare shingles would otherwise crowd them out.
		unigrams := make(text.TermVector, len(v))
		for term, w := range v {
			if !strings.Contains(term, " ") {
				unigrams[term] = w
			}
		}
		docs[i] = TopicDoc{
			Vector:    v,
			TopTokens: text.TopTerms(unigrams, topTokenCount),
			TokenSet:  text.ToSet(text.TopTerms(unigrams, jaccardTokenPool)),
			SimHash:   text.SimHash(v),
		}
	}
	return docs
}

// SameTopic reports whether two fingerprints describe the same topic. The
// test is symmetric in its arguments.
func SameTopic(a, b TopicDoc) bool {
	// Fully-suppressed fingerprints carry no evidence either way; never
	// judge them duplicates on their zero-valued hashes.
	if len(a.Vector) == 0 || len(b.Vector) == 0 {
		return false
	}
	hamming := text.Hamming(a.SimHash, b.SimHash)
	shared := text.SharedCount(a.TopTokens, b.TopTokens)
	jaccard := text.Jaccard(a.TokenSet, b.TokenSet)
	cosine := text.Cosine(a.Vector, b.Vector)

	switch {
	case hamming <= hammingTight:
		return true
	case shared >= sharedTopStrong:
		return true
	case jaccard >= jaccardHigh || cosine >= cosineHigh:
		return true
	case shared >= sharedTopWeak && (cosine >= cosineLow || jaccard >= jaccardLow || hamming <= hammingLoose):
		return true
	case jaccard >= jaccardMid && cosine >= cosineMid:
		return true
	}
	return false
}

// Dedup suppresses topic duplicates in encounter order: the first item of
// a topic survives and every later duplicate is attributed to it. Returns
// the surviving indices and a map from surviving index to the indices it
// absorbed.
func Dedup(docs []TopicDoc) (keep []int, absorbed map[int][]int) {
	absorbed = make(map[int][]int)
	for i := range docs {
		dup := -1
		for _, k := range keep {
			if SameTopic(docs[k], docs[i]) {
				dup = k
				break
			}
		}
		if dup >= 0 {
			absorbed[dup] = append(absorbed[dup], i)
			continue
		}
		keep = append(keep, i)
	}
	return keep, absorbed
}
