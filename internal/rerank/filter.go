// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package rerank

import (
	"strings"

	"github.com/punieth/sos-pm-chanakya/internal/model"
	"github.com/punieth/sos-pm-chanakya/internal/text"
)

// noisePhrases is the denylist of market-ticker boilerplate and
// pure-entertainment headline patterns.
var noisePhrases = []string{
	"sensex today",
	"nifty today",
	"share price target",
	"stocks to watch",
	"stock market live",
	"trading ideas",
	"gold rate",
	"silver rate",
	"horoscope",
	"box office",
	"bollywood",
	"ipl match",
}

func newNoiseMatcher() *text.Matcher {
	m := text.NewMatcher()
	for _, p := range noisePhrases {
		m.Add(p, "noise", 1)
	}
	m.Build()
	return m
}

// admissible reports whether the head survives the impact floor, language
// filter, and noise denylist. An empty language passes; upstream often
// cannot detect it and dropping those would starve the shortlist.
func (r *Reranker) admissible(item model.ScoredItem) bool {
	if item.Impact < r.cfg.ImpactFloor {
		return false
	}
	if !r.languageOK(item.Language) {
		return false
	}
	return !r.noise.Contains(item.Title + " " + item.Description)
}

func (r *Reranker) languageOK(lang string) bool {
	if lang == "" || len(r.cfg.Languages) == 0 {
		return true
	}
	base := strings.ToLower(lang)
	if i := strings.IndexByte(base, '-'); i > 0 {
		base = base[:i]
	}
	for _, allowed := range r.cfg.Languages {
		if base == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
