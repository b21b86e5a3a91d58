// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package model

import "math"

// Component names used as keys in weight maps and calibration deltas.
const (
	ComponentRecency      = "recency"
	ComponentSurfaceReach = "surfaceReach"
	ComponentGraphNovelty = "graphNovelty"
	ComponentAuthority    = "authority"
	ComponentCommerceTie  = "commerceTie"
	ComponentRegionTie    = "regionTie"
	ComponentMomentum     = "momentum"
)

// ComponentNames lists the seven impact components in canonical order.
var ComponentNames = []string{
	ComponentRecency,
	ComponentSurfaceReach,
	ComponentGraphNovelty,
	ComponentAuthority,
	ComponentCommerceTie,
	ComponentRegionTie,
	ComponentMomentum,
}

// ImpactComponents holds the seven independent relevance signals, each in
// [0,1]. No component depends on another component's value.
type ImpactComponents struct {
	Recency      float64 `json:"recency"`
	SurfaceReach float64 `json:"surface_reach"`
	GraphNovelty float64 `json:"graph_novelty"`
	Authority    float64 `json:"authority"`
	CommerceTie  float64 `json:"commerce_tie"`
	RegionTie    float64 `json:"region_tie"`
	Momentum     float64 `json:"momentum"`
}

// Clamp forces every component into [0,1] and zeroes non-finite values.
func (c ImpactComponents) Clamp() ImpactComponents {
	c.Recency = Clamp01(c.Recency)
	c.SurfaceReach = Clamp01(c.SurfaceReach)
	c.GraphNovelty = Clamp01(c.GraphNovelty)
	c.Authority = Clamp01(c.Authority)
	c.CommerceTie = Clamp01(c.CommerceTie)
	c.RegionTie = Clamp01(c.RegionTie)
	c.Momentum = Clamp01(c.Momentum)
	return c
}

// AsMap returns the components keyed by canonical component name.
func (c ImpactComponents) AsMap() map[string]float64 {
	return map[string]float64{
		ComponentRecency:      c.Recency,
		ComponentSurfaceReach: c.SurfaceReach,
		ComponentGraphNovelty: c.GraphNovelty,
		ComponentAuthority:    c.Authority,
		ComponentCommerceTie:  c.CommerceTie,
		ComponentRegionTie:    c.RegionTie,
		ComponentMomentum:     c.Momentum,
	}
}

// Weights maps component names to their share of the composite score.
type Weights map[string]float64

// DefaultWeights returns the starting weight map used before any
// calibration has run.
func DefaultWeights() Weights {
	return Weights{
		ComponentRecency:      0.20,
		ComponentSurfaceReach: 0.15,
		ComponentGraphNovelty: 0.15,
		ComponentAuthority:    0.20,
		ComponentCommerceTie:  0.10,
		ComponentRegionTie:    0.12,
		ComponentMomentum:     0.08,
	}
}

// Normalize returns a copy covering every canonical component, with negative
// or non-finite entries treated as 0 and the map rescaled to sum exactly 1.
// An all-zero map falls back to uniform weights.
func (w Weights) Normalize() Weights {
	out := make(Weights, len(ComponentNames))
	sum := 0.0
	for _, name := range ComponentNames {
		v := w[name]
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		out[name] = v
		sum += v
	}
	if sum <= 0 {
		uniform := 1.0 / float64(len(ComponentNames))
		for _, name := range ComponentNames {
			out[name] = uniform
		}
		return out
	}
	for name := range out {
		out[name] /= sum
	}
	return out
}

// Score computes the dot product of the (normalized) weights with the
// clamped components. The result is itself within [0,1].
func (w Weights) Score(c ImpactComponents) float64 {
	norm := w.Normalize()
	cc := c.Clamp()
	m := cc.AsMap()
	total := 0.0
	for name, weight := range norm {
		total += weight * m[name]
	}
	return Clamp01(total)
}

// Clamp01 clamps v into [0,1], mapping non-finite values to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
