// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package novelty

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/punieth/sos-pm-chanakya/internal/logging"
	"github.com/punieth/sos-pm-chanakya/internal/model"
	"github.com/punieth/sos-pm-chanakya/internal/store"
)

// Config holds the graph's knobs.
type Config struct {
	// Window is the trailing period inside which a previously seen
	// pair/action combination is not novel.
	Window time.Duration

	// TTL is the store expiry attached to every node and edge record.
	TTL time.Duration
}

// DefaultConfig returns the documented defaults: a 30-day novelty window
// and 90-day record expiry.
func DefaultConfig() Config {
	return Config{Window: 30 * 24 * time.Hour, TTL: 90 * 24 * time.Hour}
}

// Graph assesses item novelty against the persisted co-occurrence graph.
type Graph struct {
	kv  store.KV
	cfg Config
	now func() time.Time
}

// New creates a Graph over kv.
func New(kv store.KV, cfg Config) *Graph {
	if cfg.Window <= 0 {
		cfg.Window = DefaultConfig().Window
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	return &Graph{kv: kv, cfg: cfg, now: time.Now}
}

// SetClock replaces the time source, for tests.
func (g *Graph) SetClock(now func() time.Time) { g.now = now }

// Assess judges every item in the batch and updates the graph as a side
// effect. The returned map is keyed by item id; items whose entities yield
// no pair are not novel.
//
// Each edge read/write is independently best-effort: a failed lookup is
// treated as "not found" but never claims novelty, and a failed write is
// logged and dropped.
func (g *Graph) Assess(ctx context.Context, items []model.NormalizedItem) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[item.ID()] = g.assessOne(ctx, item)
	}
	return out
}

func (g *Graph) assessOne(ctx context.Context, item model.NormalizedItem) bool {
	ents := entities(item)
	if len(ents) < 2 {
		return false
	}
	verbs := buckets(item)
	now := g.now()

	novel := false
	for i := 0; i < len(ents); i++ {
		for j := i + 1; j < len(ents); j++ {
			for _, vb := range verbs {
				fresh, ok := g.touchEdge(ctx, ents[i], ents[j], vb, now)
				if ok && fresh {
					novel = true
				}
			}
		}
	}

	// Degree bookkeeping: each node co-occurred with the others once.
	for _, e := range ents {
		g.touchNode(ctx, e, len(ents)-1, now)
	}
	return novel
}

// touchEdge reads, judges, and upserts one edge. The second return is
// false when the store failed and the pair should not influence novelty.
func (g *Graph) touchEdge(ctx context.Context, a, b entityRef, verb string, now time.Time) (fresh, ok bool) {
	if b.id < a.id {
		a, b = b, a
	}
	key := edgeKey(a.id, b.id, verb)

	edge := model.Edge{
		ID:         key,
		Source:     a.id,
		Target:     b.id,
		VerbBucket: verb,
	}

	raw, err := g.kv.Get(ctx, key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		fresh = true
	case err != nil:
		logging.Debug().Err(err).Str("edge", key).Msg("novelty lookup degraded")
		return false, false
	default:
		if decodeErr := json.Unmarshal(raw, &edge); decodeErr != nil {
			logging.Debug().Err(decodeErr).Str("edge", key).Msg("corrupt edge record replaced")
			fresh = true
		} else {
			fresh = now.Sub(edge.LastSeen) > g.cfg.Window
		}
	}

	edge.Count++
	edge.LastSeen = now

	if data, err := json.Marshal(edge); err == nil {
		if err := g.kv.Set(ctx, key, data, g.cfg.TTL); err != nil {
			logging.Debug().Err(err).Str("edge", key).Msg("novelty write dropped")
		}
	}
	return fresh, true
}

func (g *Graph) touchNode(ctx context.Context, e entityRef, degreeDelta int, now time.Time) {
	key := nodeKey(e.id)
	node := model.Node{ID: e.id, Label: e.label, Type: e.typ}

	raw, err := g.kv.Get(ctx, key)
	if err == nil {
		if decodeErr := json.Unmarshal(raw, &node); decodeErr != nil {
			node = model.Node{ID: e.id, Label: e.label, Type: e.typ}
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		logging.Debug().Err(err).Str("node", key).Msg("node lookup degraded")
		return
	}

	node.Degree += degreeDelta
	node.LastSeen = now

	if data, err := json.Marshal(node); err == nil {
		if err := g.kv.Set(ctx, key, data, g.cfg.TTL); err != nil {
			logging.Debug().Err(err).Str("node", key).Msg("node write dropped")
		}
	}
}

func edgeKey(a, b, verb string) string {
	return fmt.Sprintf("edge:%s|%s|%s", a, b, verb)
}

func nodeKey(id string) string {
	return "node:" + id
}
