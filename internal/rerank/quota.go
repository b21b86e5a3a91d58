// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package rerank

import (
	"sort"

	"github.com/punieth/sos-pm-chanakya/internal/model"
)

// quotas distributes size slots across topics by the largest-remainder
// method. Every topic with nonzero weight gets at least one slot; slots
// taken by the floor come out of the largest-remainder allocation, biggest
// buckets first.
func quotas(weights map[model.Topic]float64, size int) map[model.Topic]int {
	out := make(map[model.Topic]int, len(model.Topics))
	if size <= 0 {
		return out
	}

	total := 0.0
	for _, topic := range model.Topics {
		w := weights[topic]
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		out[model.TopicOther] = size
		return out
	}

	type share struct {
		topic     model.Topic
		base      int
		remainder float64
	}
	shares := make([]share, 0, len(model.Topics))
	assigned := 0
	for _, topic := range model.Topics {
		w := weights[topic]
		if w <= 0 {
			continue
		}
		exact := w / total * float64(size)
		base := int(exact)
		shares = append(shares, share{topic: topic, base: base, remainder: exact - float64(base)})
		assigned += base
	}

	// hand out leftover slots to the largest remainders; ties resolve in
	// canonical topic order because the sort is stable
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].remainder > shares[j].remainder
	})
	for i := 0; assigned < size && i < len(shares); i++ {
		shares[i].base++
		assigned++
	}

	for _, s := range shares {
		out[s.topic] = s.base
	}

	// floor: every configured topic keeps at least one slot, funded by the
	// largest allocations
	for _, topic := range model.Topics {
		if weights[topic] > 0 && out[topic] == 0 {
			donor := biggestBucket(out, topic)
			if donor == "" || out[donor] <= 1 {
				continue
			}
			out[donor]--
			out[topic] = 1
		}
	}
	return out
}

func biggestBucket(q map[model.Topic]int, skip model.Topic) model.Topic {
	var best model.Topic
	bestN := 0
	for _, topic := range model.Topics {
		if topic == skip {
			continue
		}
		if q[topic] > bestN {
			best, bestN = topic, q[topic]
		}
	}
	return best
}
