// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("new should successfully create a logger", func(t *testing.T) {
		l := New(slog.LevelInfo)
		if l == nil {
			t.Fatal("expected logger to be non-nil")
		}
		if l.Enabled(t.Context(), slog.LevelDebug) {
			t.Error("expected debug level to be disabled")
		}
		if !l.Enabled(t.Context(), slog.LevelInfo) {
			t.Error("expected info level to be enabled")
		}
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("only messages at or above the level are written", func(t *testing.T) {
		messages := []struct {
			level slog.Level
			msg   string
		}{
			{slog.LevelDebug, "fetching observation"},
			{slog.LevelInfo, "location selected"},
			{slog.LevelWarn, "slow refresh"},
			{slog.LevelError, "refresh failed"},
		}
		for _, tc := range messages {
			t.Run(tc.level.String(), func(t *testing.T) {
				buf := bytes.NewBuffer(nil)
				l := NewLogger(tc.level, buf)
				for _, m := range messages {
					l.Log(t.Context(), m.level, m.msg)
				}
				for _, m := range messages {
					logged := strings.Contains(buf.String(), m.msg)
					if m.level >= tc.level && !logged {
						t.Errorf("expected %q to be logged at level %s", m.msg, tc.level)
					}
					if m.level < tc.level && logged {
						t.Errorf("did not expect %q to be logged at level %s", m.msg, tc.level)
					}
				}
			})
		}
	})
}

func TestErr(t *testing.T) {
	t.Run("error attributes should be logged", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		l := NewLogger(slog.LevelDebug, buf)
		want := "status 401 from cwa"
		l.Error("refresh failed", Err(errors.New(want)))

		if !strings.Contains(buf.String(), `error="`+want+`"`) {
			t.Errorf("expected error message to contain %q, got: %q", want, buf.String())
		}
	})
}
