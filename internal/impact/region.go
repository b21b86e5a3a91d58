// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package impact

import (
	"math"
	"strings"

	"github.com/punieth/sos-pm-chanakya/internal/model"
	"github.com/punieth/sos-pm-chanakya/internal/text"
)

// Logistic feature weights for the region-tie model. A regulator-domain
// match alone must clear the calibrated 0.6 threshold, so its weight
// dominates the rest.
const (
	regionBias            = -2.2
	regionRegulatorWeight = 3.2
	regionGeoWeight       = 1.4
	regionArchetypeWeight = 0.8
	regionEntityWeight    = 0.9
	regionKeywordWeight   = 1.1

	// keyword prior saturates at three distinct keyword hits.
	regionKeywordHitShare = 0.34
)

// isotonicTable is the monotone calibration applied to the raw logistic
// probability. Breakpoints were fit offline against editor judgments;
// between breakpoints the mapping is linear.
var isotonicTable = []struct{ raw, calibrated float64 }{
	{0.0, 0.00},
	{0.2, 0.08},
	{0.4, 0.30},
	{0.6, 0.55},
	{0.8, 0.80},
	{1.0, 0.97},
}

// regionFeatures are the raw inputs of the region-tie model, kept separate
// so tests and evidence records can inspect them.
type regionFeatures struct {
	Regulator     bool
	Geo           bool
	ArchetypeLift float64
	EntityOverlap float64
	KeywordPrior  float64
}

func extractRegionFeatures(item model.ClassifiedItem) regionFeatures {
	f := regionFeatures{
		Regulator: IsRegulatorDomain(item.Domain),
		Geo:       IsGeoDomain(item.Domain),
	}
	switch item.Archetype {
	case model.ArchetypeRegulation:
		f.ArchetypeLift = 1.0
	case model.ArchetypeCommerce:
		f.ArchetypeLift = 0.6
	}
	if len(item.Entities) > 0 {
		matched := 0
		for _, e := range item.Entities {
			id := strings.ToLower(strings.TrimSpace(e))
			for _, p := range regionEntityPrefixes {
				if strings.HasPrefix(id, p) {
					matched++
					break
				}
			}
		}
		f.EntityOverlap = float64(matched) / float64(len(item.Entities))
	}
	hits := make(map[string]bool)
	for _, tok := range text.Tokenize(item.Title + " " + item.Description) {
		if regionKeywordStems[tok] {
			hits[tok] = true
		}
	}
	f.KeywordPrior = model.Clamp01(float64(len(hits)) * regionKeywordHitShare)
	return f
}

func (f regionFeatures) logit() float64 {
	z := regionBias
	if f.Regulator {
		z += regionRegulatorWeight
	}
	if f.Geo {
		z += regionGeoWeight
	}
	z += regionArchetypeWeight * f.ArchetypeLift
	z += regionEntityWeight * f.EntityOverlap
	z += regionKeywordWeight * f.KeywordPrior
	return z
}

// regionTie runs the logistic model and calibrates its probability.
func regionTie(item model.ClassifiedItem) float64 {
	f := extractRegionFeatures(item)
	raw := sigmoid(f.logit())
	return isotonic(raw)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// isotonic interpolates linearly inside the calibration table. Inputs
// outside [0,1] clamp to the table's endpoints.
func isotonic(raw float64) float64 {
	if raw <= isotonicTable[0].raw {
		return isotonicTable[0].calibrated
	}
	last := isotonicTable[len(isotonicTable)-1]
	if raw >= last.raw {
		return last.calibrated
	}
	for i := 1; i < len(isotonicTable); i++ {
		hi := isotonicTable[i]
		if raw > hi.raw {
			continue
		}
		lo := isotonicTable[i-1]
		span := hi.raw - lo.raw
		frac := (raw - lo.raw) / span
		return lo.calibrated + frac*(hi.calibrated-lo.calibrated)
	}
	return last.calibrated
}
