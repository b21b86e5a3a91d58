// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package text

import (
	"regexp"
	"strings"
	"unicode"
)

// stopwords are filtered out of every token stream. The list is short on
// purpose: over-aggressive filtering hurts the dedup shingles more than the
// occasional stray function word hurts scoring.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"he": {}, "her": {}, "his": {}, "in": {}, "into": {}, "is": {}, "it": {},
	"its": {}, "of": {}, "on": {}, "or": {}, "our": {}, "over": {},
	"said": {}, "says": {}, "she": {}, "that": {}, "the": {}, "their": {},
	"they": {}, "this": {}, "to": {}, "was": {}, "were": {}, "will": {},
	"with": {}, "after": {}, "amid": {}, "more": {}, "new": {}, "not": {},
}

// acronymRe matches 2-6 letter all-caps runs (RBI, UPI, GDPR, SEBI).
var acronymRe = regexp.MustCompile(`\b[A-Z]{2,6}\b`)

// Tokenize lowercases, splits on non-alphanumeric runs, drops stop words
// and single-character tokens, and applies light suffix stemming. Purely
// numeric tokens are kept; they are often version numbers or amounts that
// matter for dedup.
func Tokenize(s string) []string {
	fields := splitAlnum(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ToLower(f)
		if len(f) < 2 {
			continue
		}
		if _, ok := stopwords[f]; ok {
			continue
		}
		out = append(out, Stem(f))
	}
	return out
}

// TokenSet returns the distinct tokens of s.
func TokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(s) {
		set[tok] = struct{}{}
	}
	return set
}

func splitAlnum(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// Stem applies a light, deterministic suffix stripper. It is deliberately
// not a full Porter stemmer: collapsing plurals and -ing/-ed variants is
// enough to make paraphrased headlines collide, and the cheap rules never
// mangle short tokens.
func Stem(tok string) string {
	if len(tok) <= 4 || isNumeric(tok) {
		return tok
	}
	switch {
	case strings.HasSuffix(tok, "ing") && len(tok) > 6:
		return tok[:len(tok)-3]
	case strings.HasSuffix(tok, "ies"):
		return tok[:len(tok)-3] + "y"
	case strings.HasSuffix(tok, "ches"), strings.HasSuffix(tok, "shes"),
		strings.HasSuffix(tok, "xes"), strings.HasSuffix(tok, "zes"):
		return tok[:len(tok)-2]
	case strings.HasSuffix(tok, "ed") && len(tok) > 5:
		return tok[:len(tok)-2]
	case strings.HasSuffix(tok, "s") && !strings.HasSuffix(tok, "ss") &&
		!strings.HasSuffix(tok, "us") && !strings.HasSuffix(tok, "is"):
		return tok[:len(tok)-1]
	}
	return tok
}

func isNumeric(tok string) bool {
	for _, r := range tok {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return len(tok) > 0
}

// IsNumeric reports whether tok consists only of digits.
func IsNumeric(tok string) bool { return isNumeric(tok) }

// Shingles returns the n-gram shingles of tokens joined by a single space.
// Returns nil when fewer than n tokens are available.
func Shingles(tokens []string, n int) []string {
	if n <= 1 || len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}

// Acronyms extracts distinct 2-6 letter all-caps runs from the raw
// (pre-lowercasing) text, returned lowercased for vector keys.
func Acronyms(raw string) []string {
	matches := acronymRe.FindAllString(raw, -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		low := strings.ToLower(m)
		if _, ok := seen[low]; ok {
			continue
		}
		seen[low] = struct{}{}
		out = append(out, low)
	}
	return out
}
