// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateIDs(t *testing.T) {
	if a, b := GenerateRequestID(), GenerateRequestID(); len(a) != 36 || a == b {
		t.Errorf("request ids %q, %q", a, b)
	}
	if a, b := GenerateCorrelationID(), GenerateCorrelationID(); len(a) != 8 || a == b {
		t.Errorf("correlation ids %q, %q", a, b)
	}
}

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" || CorrelationIDFromContext(ctx) != "" {
		t.Fatal("empty context should carry no ids")
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithNewCorrelationID(ctx)

	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q", got)
	}
	if got := CorrelationIDFromContext(ctx); len(got) != 8 {
		t.Errorf("CorrelationIDFromContext() = %q", got)
	}
}

func TestCtx(t *testing.T) {
	t.Run("context logger with ids", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
		ctx = ContextWithRequestID(ctx, "req-42")
		ctx = ContextWithNewCorrelationID(ctx)

		Ctx(ctx).Info().Msg("handled")

		out := buf.String()
		if !strings.Contains(out, `"request_id":"req-42"`) || !strings.Contains(out, `"correlation_id":"`) {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("falls back to global logger", func(t *testing.T) {
		buf := capture(t, Config{})

		Ctx(context.Background()).Info().Msg("global")

		out := buf.String()
		if !strings.Contains(out, `"message":"global"`) || strings.Contains(out, "request_id") {
			t.Errorf("output = %q", out)
		}
	})
}
