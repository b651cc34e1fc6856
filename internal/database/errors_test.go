// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package database

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type mockCloser struct {
	closed bool
	err    error
}

func (m *mockCloser) Close() error {
	m.closed = true
	return m.err
}

func TestCloseWithLog(t *testing.T) {
	t.Run("nil closer", func(t *testing.T) {
		var buf bytes.Buffer
		closeWithLog(nil, zerolog.New(&buf), "test")
		if buf.Len() > 0 {
			t.Errorf("unexpected log output: %s", buf.String())
		}
	})

	t.Run("successful close is silent", func(t *testing.T) {
		var buf bytes.Buffer
		closer := &mockCloser{}
		closeWithLog(closer, zerolog.New(&buf), "rows")
		if !closer.closed {
			t.Error("closer not closed")
		}
		if buf.Len() > 0 {
			t.Errorf("unexpected log output: %s", buf.String())
		}
	})

	t.Run("close error is logged", func(t *testing.T) {
		var buf bytes.Buffer
		closer := &mockCloser{err: errors.New("connection reset")}
		closeWithLog(closer, zerolog.New(&buf), "prepared statement")

		out := buf.String()
		for _, want := range []string{"failed to close resource", "prepared statement", "connection reset"} {
			if !strings.Contains(out, want) {
				t.Errorf("log %q missing %q", out, want)
			}
		}
	})
}

func TestCloseQuietly(t *testing.T) {
	closeQuietly(nil)

	closer := &mockCloser{err: errors.New("close failed")}
	closeQuietly(closer)
	if !closer.closed {
		t.Error("closer not closed")
	}
}
