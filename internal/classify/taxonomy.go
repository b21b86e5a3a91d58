// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package classify

import "github.com/punieth/sos-pm-chanakya/internal/model"

// Lexicon is the keyword table for one archetype. Tables live here as a
// single tunable block rather than as literals scattered through logic.
type Lexicon struct {
	Verbs   []string
	Nouns   []string
	Phrases []string
}

// taxonomy is the complete archetype keyword table. Verb and noun hits
// count single-token weight; phrase hits are weighted higher.
var taxonomy = map[model.Archetype]Lexicon{
	model.ArchetypeLaunch: {
		Verbs:   []string{"launch", "unveil", "introduce", "release", "debut", "rollout"},
		Nouns:   []string{"launch", "rollout", "product", "feature", "version", "app", "platform", "service", "beta"},
		Phrases: []string{"goes live", "now available", "rolls out", "general availability", "launches in"},
	},
	model.ArchetypePartnership: {
		Verbs:   []string{"partner", "collaborate", "team", "integrate", "join"},
		Nouns:   []string{"partnership", "alliance", "collaboration", "integration", "mou"},
		Phrases: []string{"teams up", "joins hands", "signs mou", "ties up", "partners with"},
	},
	model.ArchetypeRegulation: {
		Verbs:   []string{"regulate", "ban", "fine", "mandate", "approve", "tighten", "cap", "restrict"},
		Nouns:   []string{"regulator", "policy", "pricing", "compliance", "rule", "guideline", "license", "penalty", "tariff", "directive"},
		Phrases: []string{"price hike", "price cut", "new rules", "regulatory approval", "policy change", "draft norms"},
	},
	model.ArchetypeCommerce: {
		Verbs:   []string{"pay", "charge", "transact", "settle", "checkout"},
		Nouns:   []string{"payment", "payments", "upi", "wallet", "checkout", "merchant", "transaction", "commerce", "gateway", "settlement", "refund"},
		Phrases: []string{"payment gateway", "digital payments", "online shopping", "upi transactions"},
	},
	model.ArchetypeFunding: {
		Verbs:   []string{"raise", "acquire", "invest", "merge", "buy"},
		Nouns:   []string{"funding", "round", "acquisition", "investment", "investor", "valuation", "ipo", "stake"},
		Phrases: []string{"series a", "series b", "raises funding", "acquires stake", "seed round"},
	},
	model.ArchetypeTrend: {
		Verbs:   []string{"grow", "surge", "decline", "report"},
		Nouns:   []string{"trend", "growth", "market", "adoption", "survey", "study", "forecast"},
		Phrases: []string{"on the rise", "year over year"},
	},
}

// Taxonomy returns the lexicon for an archetype.
func Taxonomy(a model.Archetype) Lexicon { return taxonomy[a] }
