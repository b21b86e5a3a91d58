// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package rerank

import (
	"github.com/punieth/sos-pm-chanakya/internal/model"
	"github.com/punieth/sos-pm-chanakya/internal/text"
)

// Per-topic vocabulary, stemmed at init so hits line up with tokenizer
// output. Each scorer is independent; an item can score in several buckets
// and the dominant one wins.
var topicVocab = map[model.Topic][]string{
	model.TopicRegulation: {
		"rbi", "sebi", "trai", "meity", "regulator", "regulation",
		"regulatory", "compliance", "circular", "guideline", "mandate",
		"policy", "license", "penalty", "cap", "ban", "audit", "kyc",
	},
	model.TopicProduct: {
		"launch", "launches", "unveil", "release", "rollout", "feature",
		"app", "platform", "version", "beta", "update", "integration",
		"redesign", "flagship",
	},
	model.TopicAI: {
		"ai", "llm", "genai", "chatbot", "copilot", "model", "inference",
		"agent", "automation", "ml", "gpt",
	},
}

// archetype lift nudges the bucket the archetype most often lands in.
var topicArchetypeLift = map[model.Archetype]map[model.Topic]float64{
	model.ArchetypeRegulation:  {model.TopicRegulation: 0.4},
	model.ArchetypeLaunch:      {model.TopicProduct: 0.3},
	model.ArchetypePartnership: {model.TopicProduct: 0.15},
	model.ArchetypeCommerce:    {model.TopicRegulation: 0.1, model.TopicProduct: 0.1},
}

const (
	topicHitShare = 0.34
	// otherBaseline keeps the residual bucket from ever scoring zero, so
	// items with no vocabulary hits still land somewhere.
	otherBaseline = 0.20
)

var topicStems = func() map[model.Topic]map[string]bool {
	out := make(map[model.Topic]map[string]bool, len(topicVocab))
	for topic, words := range topicVocab {
		set := make(map[string]bool, len(words))
		for _, w := range words {
			set[text.Stem(w)] = true
		}
		out[topic] = set
	}
	return out
}()

// TopicScores runs every bucket scorer over the item.
func TopicScores(item model.ClassifiedItem) map[model.Topic]float64 {
	tokens := text.Tokenize(item.Title + " " + item.Description)
	scores := make(map[model.Topic]float64, len(model.Topics))
	for _, topic := range model.Topics {
		if topic == model.TopicOther {
			scores[topic] = otherBaseline
			continue
		}
		hits := 0
		for _, tok := range tokens {
			if topicStems[topic][tok] {
				hits++
			}
		}
		s := model.Clamp01(float64(hits) * topicHitShare)
		if lift, ok := topicArchetypeLift[item.Archetype][topic]; ok {
			s = model.Clamp01(s + lift)
		}
		scores[topic] = s
	}
	return scores
}

// DominantTopic picks the highest-scoring bucket, breaking ties in the
// canonical topic order so the result is deterministic.
func DominantTopic(scores map[model.Topic]float64) model.Topic {
	best := model.TopicOther
	bestScore := -1.0
	for _, topic := range model.Topics {
		if s := scores[topic]; s > bestScore {
			best, bestScore = topic, s
		}
	}
	return best
}
