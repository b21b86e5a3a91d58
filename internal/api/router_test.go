// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punieth/sos-pm-chanakya/internal/calibrate"
	"github.com/punieth/sos-pm-chanakya/internal/classify"
	"github.com/punieth/sos-pm-chanakya/internal/config"
	"github.com/punieth/sos-pm-chanakya/internal/engine"
	"github.com/punieth/sos-pm-chanakya/internal/impact"
	"github.com/punieth/sos-pm-chanakya/internal/model"
	"github.com/punieth/sos-pm-chanakya/internal/novelty"
	"github.com/punieth/sos-pm-chanakya/internal/rerank"
	"github.com/punieth/sos-pm-chanakya/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	kv := store.NewMemoryKV()
	t.Cleanup(func() { _ = kv.Close() })
	ws := store.NewWeightStore(kv)

	eng := engine.New(
		novelty.New(kv, novelty.DefaultConfig()),
		classify.New(),
		impact.NewScorer(impact.DefaultConfig()),
		rerank.New(rerank.DefaultConfig()),
		calibrate.New(calibrate.DefaultConfig(), ws),
		ws,
	)
	return NewServer(eng, config.Default().Server)
}

func TestHealthz(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRankEndpoint(t *testing.T) {
	srv := testServer(t)

	body, err := json.Marshal(map[string]any{
		"items": []model.NormalizedItem{{
			Title:        "RBI caps UPI interchange fees",
			URL:          "https://rbi.org.in/c/1",
			CanonicalURL: "https://rbi.org.in/c/1",
			Domain:       "rbi.org.in",
			Provider:     "rss",
			PublishedAt:  time.Now().Add(-time.Hour),
		}},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/rank", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res engine.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Shortlist)
}

func TestRankRejectsBadInput(t *testing.T) {
	srv := testServer(t)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", "{", http.StatusBadRequest},
		{"empty batch", `{"items":[]}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/rank", bytes.NewBufferString(tc.body))
			srv.Router().ServeHTTP(rec, req)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestRankRejectsOversizedBatch(t *testing.T) {
	srv := testServer(t)

	items := make([]model.NormalizedItem, config.Default().Server.MaxBatchSize+1)
	for i := range items {
		items[i] = model.NormalizedItem{Title: "x", URL: "https://a.example", CanonicalURL: "https://a.example"}
	}
	body, err := json.Marshal(map[string]any{"items": items})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/rank", bytes.NewReader(body)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
