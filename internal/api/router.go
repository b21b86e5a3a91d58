// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

// Package api is the thin HTTP surface over the engine: a single ranking
// endpoint plus health and metrics. It carries no algorithmic logic.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/punieth/sos-pm-chanakya/internal/config"
	"github.com/punieth/sos-pm-chanakya/internal/engine"
	"github.com/punieth/sos-pm-chanakya/internal/logging"
	"github.com/punieth/sos-pm-chanakya/internal/metrics"
	"github.com/punieth/sos-pm-chanakya/internal/model"
)

// Server serves the ranking API.
type Server struct {
	engine *engine.Engine
	cfg    config.ServerConfig
}

// NewServer creates the HTTP surface over eng.
func NewServer(eng *engine.Engine, cfg config.ServerConfig) *Server {
	return &Server{engine: eng, cfg: cfg}
}

// Router builds the chi router with the standard middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(httprate.LimitByIP(s.cfg.RateLimit, time.Minute))
	r.Use(requestMetrics)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/v1/rank", s.handleRank)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// rankRequest is the POST /v1/rank body.
type rankRequest struct {
	Items []model.NormalizedItem `json:"items"`
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "empty batch")
		return
	}
	if len(req.Items) > s.cfg.MaxBatchSize {
		writeError(w, http.StatusRequestEntityTooLarge, "batch exceeds limit")
		return
	}

	res, err := s.engine.Rank(r.Context(), req.Items)
	if err != nil {
		logging.Error().Err(err).Msg("rank request failed")
		writeError(w, http.StatusInternalServerError, "ranking failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("response encode failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestMetrics records per-request counters and latency with the route
// pattern, not the raw path, as the label.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(ww.Status()), time.Since(start))
	})
}
