// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package novelty

import (
	"strings"
	"unicode"

	"github.com/punieth/sos-pm-chanakya/internal/model"
	"github.com/punieth/sos-pm-chanakya/internal/text"
)

// maxVerbs bounds the verb bag considered per item.
const maxVerbs = 5

// maxEntities bounds the entities considered per item; pair count grows
// quadratically, so the cap keeps store traffic predictable.
const maxEntities = 6

// VerbBucketOther is the residual action bucket.
const VerbBucketOther = "other"

// verbBuckets maps stemmed action verbs to a coarse bucket. The buckets,
// not the raw verbs, key graph edges, so "launches" and "unveiled" land on
// the same edge.
var verbBuckets = map[string]string{
	"launch": "launch", "unveil": "launch", "introduc": "launch",
	"releas": "launch", "roll": "launch", "debut": "launch",

	"partner": "partner", "team": "partner", "collaborat": "partner",
	"tie": "partner", "join": "partner", "integrat": "partner",

	"regulat": "regulate", "ban": "regulate", "fine": "regulate",
	"cap": "regulate", "mandat": "regulate", "restrict": "regulate",
	"approv": "regulate", "tighten": "regulate",

	"pay": "pay", "charg": "pay", "price": "pay", "settle": "pay",
	"transact": "pay",

	"acquir": "fund", "invest": "fund", "raise": "fund", "fund": "fund",
	"buy": "fund", "merge": "fund",
}

// buckets returns up to maxVerbs distinct verb buckets for an item, falling
// back to the residual bucket when no verb maps anywhere.
func buckets(item model.NormalizedItem) []string {
	verbs := item.Verbs
	if len(verbs) == 0 {
		verbs = text.Tokenize(item.Title)
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, maxVerbs)
	for _, v := range verbs {
		b := bucketFor(v)
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
		if len(out) == maxVerbs {
			break
		}
	}
	if len(out) == 0 {
		out = append(out, VerbBucketOther)
	}
	return out
}

func bucketFor(verb string) string {
	stem := text.Stem(strings.ToLower(verb))
	if b, ok := verbBuckets[stem]; ok {
		return b
	}
	// Stems in the table are aggressive (introduc, collaborat); fall back
	// to a prefix scan for tokens our light stemmer leaves longer.
	for pre, b := range verbBuckets {
		if strings.HasPrefix(stem, pre) {
			return b
		}
	}
	return ""
}

// entities returns up to maxEntities normalized entity ids, with the node
// type split off the optional "product:" prefix ingestion may supply.
func entities(item model.NormalizedItem) []entityRef {
	names := item.Entities
	if len(names) == 0 {
		names = guessEntities(item.Title)
	}

	seen := make(map[string]struct{})
	out := make([]entityRef, 0, maxEntities)
	for _, name := range names {
		ref := parseEntity(name)
		if ref.id == "" {
			continue
		}
		if _, ok := seen[ref.id]; ok {
			continue
		}
		seen[ref.id] = struct{}{}
		out = append(out, ref)
		if len(out) == maxEntities {
			break
		}
	}
	return out
}

type entityRef struct {
	id    string
	label string
	typ   model.NodeType
}

func parseEntity(name string) entityRef {
	typ := model.NodeOrg
	if rest, ok := strings.CutPrefix(name, "product:"); ok {
		typ = model.NodeProduct
		name = rest
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return entityRef{}
	}
	id := strings.ToLower(name)
	id = strings.Join(strings.Fields(id), "-")
	return entityRef{id: id, label: name, typ: typ}
}

// guessEntities extracts capitalized word runs from a title as entity
// candidates. Crude, but only used when ingestion supplied no entities.
func guessEntities(title string) []string {
	words := strings.Fields(title)
	var out []string
	var run []string
	flush := func() {
		if len(run) > 0 {
			out = append(out, strings.Join(run, " "))
			run = nil
		}
	}
	for _, w := range words {
		trimmed := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if trimmed == "" {
			flush()
			continue
		}
		first := []rune(trimmed)[0]
		if unicode.IsUpper(first) && len(trimmed) >= 2 {
			run = append(run, trimmed)
		} else {
			flush()
		}
	}
	flush()
	return out
}
