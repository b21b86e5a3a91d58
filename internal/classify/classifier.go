// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package classify

import (
	"sort"
	"strings"

	"github.com/punieth/sos-pm-chanakya/internal/model"
	"github.com/punieth/sos-pm-chanakya/internal/text"
)

const (
	// lexiconWeight and embeddingWeight combine the two channels into the
	// hybrid score.
	lexiconWeight   = 0.6
	embeddingWeight = 0.4

	// trendFloor is the hybrid score below which an item falls into the
	// residual TREND bucket.
	trendFloor = 0.25

	// phraseHitWeight outranks singleTokenWeight: a matched phrase is far
	// stronger evidence than an isolated token.
	phraseHitWeight   = 2.0
	singleTokenWeight = 1.0

	// lexiconSaturation is the weighted hit count at which the lexicon
	// score reaches 1.
	lexiconSaturation = 4.0
)

// Classifier assigns archetypes. Build it once; it is read-only afterwards
// and safe for concurrent use.
type Classifier struct {
	phrases    *text.Matcher                           // phrase -> archetype
	tokens     map[model.Archetype]map[string]struct{} // stemmed verb+noun lexicon
	prototypes map[model.Archetype][]float64           // hashed bag-of-tokens prototypes
}

// New builds the classifier from the taxonomy tables.
func New() *Classifier {
	c := &Classifier{
		phrases:    text.NewMatcher(),
		tokens:     make(map[model.Archetype]map[string]struct{}),
		prototypes: make(map[model.Archetype][]float64),
	}
	for _, a := range model.Archetypes {
		lex := taxonomy[a]

		set := make(map[string]struct{})
		for _, w := range append(append([]string{}, lex.Verbs...), lex.Nouns...) {
			set[text.Stem(strings.ToLower(w))] = struct{}{}
		}
		c.tokens[a] = set

		for _, p := range lex.Phrases {
			c.phrases.Add(p, string(a), phraseHitWeight)
		}

		// Prototype over every seed token, phrases included.
		var seed []string
		seed = append(seed, lex.Verbs...)
		seed = append(seed, lex.Nouns...)
		for _, p := range lex.Phrases {
			seed = append(seed, text.Tokenize(p)...)
		}
		stemmed := make([]string, 0, len(seed))
		for _, s := range seed {
			stemmed = append(stemmed, text.Stem(strings.ToLower(s)))
		}
		c.prototypes[a] = text.Embed(stemmed)
	}
	c.phrases.Build()
	return c
}

// Scores holds the per-archetype hybrid breakdown for one item.
type Scores struct {
	Lexicon   map[model.Archetype]float64
	Embedding map[model.Archetype]float64
	Hybrid    map[model.Archetype]float64
}

// Classify assigns exactly one archetype with a confidence in [0,1].
func (c *Classifier) Classify(item model.NormalizedItem) model.ClassifiedItem {
	classified, _ := c.ClassifyWithScores(item)
	return classified
}

// ClassifyWithScores additionally returns the full per-archetype breakdown
// used by cluster consensus.
func (c *Classifier) ClassifyWithScores(item model.NormalizedItem) (model.ClassifiedItem, Scores) {
	raw := item.Title + " " + item.Description
	tokens := text.Tokenize(raw)
	for _, v := range item.Verbs {
		tokens = append(tokens, text.Stem(strings.ToLower(v)))
	}
	embedding := text.Embed(tokens)

	scores := Scores{
		Lexicon:   make(map[model.Archetype]float64, len(model.Archetypes)),
		Embedding: make(map[model.Archetype]float64, len(model.Archetypes)),
		Hybrid:    make(map[model.Archetype]float64, len(model.Archetypes)),
	}

	phraseHits := make(map[model.Archetype]float64)
	for _, m := range c.phrases.Find(raw) {
		phraseHits[model.Archetype(m.Label)] += m.Weight
	}

	for _, a := range model.Archetypes {
		hits := phraseHits[a]
		for _, tok := range tokens {
			if _, ok := c.tokens[a][tok]; ok {
				hits += singleTokenWeight
			}
		}
		lex := hits / lexiconSaturation
		if lex > 1 {
			lex = 1
		}
		emb := model.Clamp01(text.CosineDense(embedding, c.prototypes[a]))

		scores.Lexicon[a] = lex
		scores.Embedding[a] = emb
		scores.Hybrid[a] = lexiconWeight*lex + embeddingWeight*emb
	}

	ranked := rankedArchetypes(scores.Hybrid)
	best := ranked[0]
	bestScore := scores.Hybrid[best]
	margin := bestScore
	if len(ranked) > 1 {
		margin = bestScore - scores.Hybrid[ranked[1]]
	}

	archetype := best
	if bestScore < trendFloor {
		archetype = model.ArchetypeTrend
	}

	// Signals describe the assigned archetype, not the beaten runner-up.
	return model.ClassifiedItem{
		NormalizedItem: item,
		Archetype:      archetype,
		Confidence:     model.Clamp01(0.7*bestScore + 0.3*margin),
		Signals: model.ClassificationSignals{
			Lexicon:   scores.Lexicon[archetype],
			Embedding: scores.Embedding[archetype],
		},
	}, scores
}

// rankedArchetypes orders archetypes by hybrid score, ties broken in
// taxonomy order for determinism.
func rankedArchetypes(hybrid map[model.Archetype]float64) []model.Archetype {
	ranked := append([]model.Archetype(nil), model.Archetypes...)
	order := make(map[model.Archetype]int, len(model.Archetypes))
	for i, a := range model.Archetypes {
		order[a] = i
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if hybrid[ranked[i]] != hybrid[ranked[j]] {
			return hybrid[ranked[i]] > hybrid[ranked[j]]
		}
		return order[ranked[i]] < order[ranked[j]]
	})
	return ranked
}
