// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSlogBridgeSharesOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: "debug", Output: &buf}); err != nil {
		t.Fatal(err)
	}

	logger := NewSlogLogger().With("service", "engine")
	logger.Info("supervisor event", "restarts", int64(2), "backoff", 15*time.Second)
	logger.Warn("service failed")
	logger.Debug("verbose detail")

	out := buf.String()
	for _, want := range []string{
		`"service":"engine"`,
		`"restarts":2`,
		"supervisor event",
		"service failed",
		"verbose detail",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestSlogBridgeRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: "warn", Output: &buf}); err != nil {
		t.Fatal(err)
	}

	logger := NewSlogLogger()
	logger.Info("suppressed")
	logger.Error("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("below-threshold slog event emitted: %s", out)
	}
	if !strings.Contains(out, "emitted") {
		t.Errorf("error slog event missing: %s", out)
	}
}
