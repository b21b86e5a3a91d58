// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

// Command server runs the ranking engine behind an HTTP API under a
// suture supervision tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/punieth/sos-pm-chanakya/internal/api"
	"github.com/punieth/sos-pm-chanakya/internal/calibrate"
	"github.com/punieth/sos-pm-chanakya/internal/classify"
	"github.com/punieth/sos-pm-chanakya/internal/config"
	"github.com/punieth/sos-pm-chanakya/internal/engine"
	"github.com/punieth/sos-pm-chanakya/internal/impact"
	"github.com/punieth/sos-pm-chanakya/internal/logging"
	"github.com/punieth/sos-pm-chanakya/internal/novelty"
	"github.com/punieth/sos-pm-chanakya/internal/rerank"
	"github.com/punieth/sos-pm-chanakya/internal/store"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Caller: cfg.Log.Caller,
	}); err != nil {
		return err
	}

	kv, err := store.OpenBadger(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = kv.Close() }()

	breakered := store.NewBreakerKV(kv, store.BreakerConfig{
		Name:             "store",
		FailureThreshold: cfg.Store.BreakerFailures,
		Timeout:          cfg.Store.BreakerInterval,
	})

	graph := novelty.New(breakered, novelty.Config{
		Window: cfg.Novelty.Window,
		TTL:    cfg.Novelty.TTL,
	})
	weights := store.NewWeightStore(breakered)

	eng := engine.New(
		graph,
		classify.New(),
		impact.NewScorer(impact.Config{
			HalfLife:      cfg.Impact.HalfLife,
			Lookback:      cfg.Impact.Lookback,
			DomainCap:     cfg.Impact.DomainCap,
			RecentWindow:  cfg.Impact.RecentWindow,
			CompareWindow: cfg.Impact.CompareWindow,
		}),
		rerank.New(rerank.Config{
			Lambda:        cfg.Rerank.Lambda,
			ImpactFloor:   cfg.Rerank.ImpactFloor,
			ShortlistSize: cfg.Rerank.ShortlistSize,
			TopicWeights:  cfg.TopicWeights(),
			Languages:     cfg.Rerank.Languages,
		}),
		calibrate.New(calibrate.Config{
			SampleCap:    cfg.Calibrate.SampleCap,
			MinSample:    cfg.Calibrate.MinSample,
			Alpha:        cfg.Calibrate.Alpha,
			MaxDelta:     cfg.Calibrate.MaxDelta,
			MinWeight:    cfg.Calibrate.MinWeight,
			HistoryLimit: cfg.Calibrate.HistoryLimit,
		}, weights),
		weights,
	)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      api.NewServer(eng, cfg.Server).Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	hook := (&sutureslog.Handler{Logger: logging.NewSlogLogger()}).MustHook()
	root := suture.New("chanakya", suture.Spec{
		EventHook:        hook,
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		Timeout:          cfg.Server.ShutdownTimeout,
	})
	root.Add(&httpService{srv: srv, shutdownTimeout: cfg.Server.ShutdownTimeout})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", srv.Addr).Str("store", cfg.Store.Path).Msg("starting")
	err = root.Serve(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// httpService adapts http.Server to suture.Service.
type httpService struct {
	srv             *http.Server
	shutdownTimeout time.Duration
}

func (s *httpService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return suture.ErrDoNotRestart
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			logging.Warn().Err(err).Msg("shutdown incomplete")
		}
		return ctx.Err()
	}
}
