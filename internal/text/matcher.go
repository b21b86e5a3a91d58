// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package text

import "strings"

// Matcher is an Aho-Corasick automaton for multi-phrase matching. It finds
// every occurrence of every registered phrase in a text in a single pass,
// which keeps lexicon classification and denylist filtering O(n) in the
// text length rather than O(n x patterns).
//
// Matching is case-insensitive. The automaton is built once at startup and
// is read-only afterwards, so no locking is needed.
type Matcher struct {
	root     *matchNode
	patterns []phrase
	built    bool
}

type phrase struct {
	text   string
	label  string
	weight float64
}

// PhraseMatch is one occurrence of a registered phrase.
type PhraseMatch struct {
	Phrase   string  // the matched phrase, lowercased
	Label    string  // label supplied at registration (archetype, category)
	Weight   float64 // weight supplied at registration
	Position int     // byte offset of the match start
}

type matchNode struct {
	children map[rune]*matchNode
	failure  *matchNode
	output   []int // indices of phrases ending here
}

// NewMatcher creates an empty automaton.
func NewMatcher() *Matcher {
	return &Matcher{root: newMatchNode()}
}

func newMatchNode() *matchNode {
	return &matchNode{children: make(map[rune]*matchNode)}
}

// Add registers a phrase with a label and weight. Must be called before
// Build; empty phrases are ignored.
func (m *Matcher) Add(text, label string, weight float64) {
	if text == "" {
		return
	}
	m.patterns = append(m.patterns, phrase{text: strings.ToLower(text), label: label, weight: weight})
	m.built = false
}

// Build constructs the trie and failure links. Idempotent.
func (m *Matcher) Build() {
	if m.built {
		return
	}
	m.root = newMatchNode()
	for i, p := range m.patterns {
		node := m.root
		for _, ch := range p.text {
			next := node.children[ch]
			if next == nil {
				next = newMatchNode()
				node.children[ch] = next
			}
			node = next
		}
		node.output = append(node.output, i)
	}

	// Failure links by BFS; each node's failure points at its longest
	// proper suffix present in the trie.
	queue := make([]*matchNode, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for ch, child := range cur.children {
			queue = append(queue, child)
			fail := cur.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = m.root
			} else {
				child.failure = fail.children[ch]
				child.output = append(child.output, child.failure.output...)
			}
		}
	}
	m.built = true
}

// Find returns every phrase occurrence in s.
func (m *Matcher) Find(s string) []PhraseMatch {
	if !m.built {
		m.Build()
	}
	low := strings.ToLower(s)
	var matches []PhraseMatch
	node := m.root
	for pos, ch := range low {
		for node != m.root && node.children[ch] == nil {
			node = node.failure
		}
		if next := node.children[ch]; next != nil {
			node = next
		}
		for _, idx := range node.output {
			p := m.patterns[idx]
			matches = append(matches, PhraseMatch{
				Phrase:   p.text,
				Label:    p.label,
				Weight:   p.weight,
				Position: pos - len(p.text) + 1,
			})
		}
	}
	return matches
}

// Contains reports whether any registered phrase occurs in s.
func (m *Matcher) Contains(s string) bool {
	if !m.built {
		m.Build()
	}
	low := strings.ToLower(s)
	node := m.root
	for _, ch := range low {
		for node != m.root && node.children[ch] == nil {
			node = node.failure
		}
		if next := node.children[ch]; next != nil {
			node = next
		}
		if len(node.output) > 0 {
			return true
		}
	}
	return false
}
