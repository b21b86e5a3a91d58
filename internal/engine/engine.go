// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

// Package engine orchestrates the ranking pipeline: novelty assessment,
// classification, story clustering, consensus refinement, impact scoring,
// head collapse, topic dedup, selection, and the calibration write-back.
//
// Degradation policy: a failed weight load falls back to defaults, a
// failed calibration write is reported as a run-level warning; the
// shortlist is always returned.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/punieth/sos-pm-chanakya/internal/calibrate"
	"github.com/punieth/sos-pm-chanakya/internal/classify"
	"github.com/punieth/sos-pm-chanakya/internal/cluster"
	"github.com/punieth/sos-pm-chanakya/internal/impact"
	"github.com/punieth/sos-pm-chanakya/internal/logging"
	"github.com/punieth/sos-pm-chanakya/internal/metrics"
	"github.com/punieth/sos-pm-chanakya/internal/model"
	"github.com/punieth/sos-pm-chanakya/internal/novelty"
	"github.com/punieth/sos-pm-chanakya/internal/rerank"
	"github.com/punieth/sos-pm-chanakya/internal/store"
)

// Engine wires the pipeline stages together.
type Engine struct {
	graph      *novelty.Graph
	classifier *classify.Classifier
	scorer     *impact.Scorer
	reranker   *rerank.Reranker
	calibrator *calibrate.Calibrator
	weights    *store.WeightStore
}

// New assembles an engine from its stages.
func New(graph *novelty.Graph, classifier *classify.Classifier, scorer *impact.Scorer,
	reranker *rerank.Reranker, calibrator *calibrate.Calibrator, weights *store.WeightStore) *Engine {
	return &Engine{
		graph:      graph,
		classifier: classifier,
		scorer:     scorer,
		reranker:   reranker,
		calibrator: calibrator,
		weights:    weights,
	}
}

// Result is the outcome of one pipeline run.
type Result struct {
	Shortlist     []model.ShortlistedCandidate `json:"shortlist"`
	Warnings      []string                     `json:"warnings,omitempty"`
	WeightVersion int                          `json:"weight_version"`
}

// Rank runs the full pipeline over one batch. Input order is part of the
// contract: clustering anchors and dedup survivors follow first-seen-wins.
func (e *Engine) Rank(ctx context.Context, items []model.NormalizedItem) (*Result, error) {
	res := &Result{}

	flags := e.stage1Novelty(ctx, items)
	classified, evidence := e.stage2Classify(items)
	classified, clusters := e.stage3Cluster(classified, evidence)

	rec, err := e.weights.Load(ctx)
	if err != nil {
		rec = &model.WeightRecord{Weights: model.DefaultWeights()}
		res.Warnings = append(res.Warnings, fmt.Sprintf("weight load failed, using defaults: %v", err))
		logging.Warn().Err(err).Msg("weight load failed, using defaults")
	}
	res.WeightVersion = rec.Version

	scored := e.stage4Score(classified, clusters, flags, rec.Weights)
	e.stage5Select(scored, res)

	e.stage6Calibrate(ctx, scored, res)

	metrics.RecordRun(len(res.Warnings) > 0, len(res.Shortlist))
	logging.Info().
		Int("items", len(items)).
		Int("clusters", len(clusters)).
		Int("shortlist", len(res.Shortlist)).
		Int("warnings", len(res.Warnings)).
		Msg("run complete")
	return res, nil
}

func (e *Engine) stage1Novelty(ctx context.Context, items []model.NormalizedItem) map[string]bool {
	start := time.Now()
	flags := e.graph.Assess(ctx, items)
	metrics.RecordStage(metrics.StageNovelty, len(items), len(flags), time.Since(start))
	return flags
}

func (e *Engine) stage2Classify(items []model.NormalizedItem) ([]model.ClassifiedItem, map[string]model.ArchetypeEvidence) {
	start := time.Now()
	classified := make([]model.ClassifiedItem, 0, len(items))
	evidence := make(map[string]model.ArchetypeEvidence, len(items))
	for _, item := range items {
		ci, scores := e.classifier.ClassifyWithScores(item)
		classified = append(classified, ci)
		evidence[ci.ID()] = model.ArchetypeEvidence{
			Archetype: ci.Archetype,
			Hybrid:    scores.Hybrid[ci.Archetype],
		}
	}
	metrics.RecordStage(metrics.StageClassify, len(items), len(classified), time.Since(start))
	return classified, evidence
}

func (e *Engine) stage3Cluster(classified []model.ClassifiedItem, evidence map[string]model.ArchetypeEvidence) ([]model.ClassifiedItem, []*model.ClusterContext) {
	start := time.Now()
	clustered, clusters := cluster.Assign(classified, evidence)
	refined := classify.Refine(clustered, clusters)
	metrics.RecordStage(metrics.StageCluster, len(classified), len(clusters), time.Since(start))
	return refined, clusters
}

func (e *Engine) stage4Score(classified []model.ClassifiedItem, clusters []*model.ClusterContext, flags map[string]bool, weights model.Weights) []model.ScoredItem {
	start := time.Now()
	scored := e.scorer.ScoreAll(classified, clusters, flags, weights)
	metrics.RecordStage(metrics.StageImpact, len(classified), len(scored), time.Since(start))
	return scored
}

// stage5Select collapses clusters to heads, suppresses cross-cluster
// near-duplicates, and fills res.Shortlist.
func (e *Engine) stage5Select(scored []model.ScoredItem, res *Result) {
	start := time.Now()
	heads := rerank.Heads(scored)
	heads = dedupHeads(heads)
	metrics.RecordStage(metrics.StageDedup, len(scored), len(heads), time.Since(start))

	start = time.Now()
	res.Shortlist = e.reranker.Select(heads)
	metrics.RecordStage(metrics.StageRerank, len(heads), len(res.Shortlist), time.Since(start))
}

// dedupHeads suppresses heads that read as the same topic as an earlier
// head. The suppressed head's URL joins the survivor's duplicate list.
func dedupHeads(heads []rerank.Head) []rerank.Head {
	if len(heads) < 2 {
		return heads
	}
	docs := make([]model.ScoredItem, len(heads))
	for i, h := range heads {
		docs[i] = h.ScoredItem
	}
	keep, absorbed := cluster.Dedup(cluster.BuildTopicDocs(docs))

	out := make([]rerank.Head, 0, len(keep))
	for _, i := range keep {
		h := heads[i]
		for _, dup := range absorbed[i] {
			h.DuplicateURLs = append(h.DuplicateURLs, heads[dup].URL)
			h.DuplicateURLs = append(h.DuplicateURLs, heads[dup].DuplicateURLs...)
		}
		out = append(out, h)
	}
	return out
}

func (e *Engine) stage6Calibrate(ctx context.Context, scored []model.ScoredItem, res *Result) {
	start := time.Now()
	shortlisted := make(map[string]bool, len(res.Shortlist))
	pos := make([]model.ScoredItem, 0, len(res.Shortlist))
	for _, c := range res.Shortlist {
		shortlisted[c.ID()] = true
		pos = append(pos, c.ScoredItem)
	}
	neg := make([]model.ScoredItem, 0, len(scored))
	for _, s := range scored {
		if !shortlisted[s.ID()] {
			neg = append(neg, s)
		}
	}

	rec, err := e.calibrator.Run(ctx, pos, neg)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("calibration failed: %v", err))
		metrics.RecordCalibration("failed", 0)
		logging.Warn().Err(err).Msg("calibration write failed")
	} else {
		res.WeightVersion = rec.Version
		outcome := "applied"
		if len(rec.History) > 0 && strings.HasPrefix(rec.History[len(rec.History)-1].Rationale, "skipped") {
			outcome = "skipped"
		}
		metrics.RecordCalibration(outcome, rec.Version)
	}
	metrics.RecordStage(metrics.StageCalibrate, len(pos)+len(neg), 0, time.Since(start))
}
