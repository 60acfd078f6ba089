// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx sets up the [log/slog] default logger for the editor,
// with the verbosity chosen by the user and colored levels on terminals.
package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity level that the user has selected.
// Messages at or above this level are shown. The default is
// [slog.LevelInfo], or Debug / Warn with the debug / release build tags.
var UserLevel = defaultUserLevel

// LevelFromFlags returns the level for the given user flag options,
// evaluated in order:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: the build default level)
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return defaultUserLevel
	}
}

// levelColors are the terminal colors for each level.
var levelColors = map[slog.Level]string{
	slog.LevelDebug: "#888888",
	slog.LevelInfo:  "#3b82f6",
	slog.LevelWarn:  "#eab308",
	slog.LevelError: "#ef4444",
}

// NewHandler returns a text handler writing to w at the given level.
// Levels are colored when w is a terminal that supports it. Times are
// omitted.
func NewHandler(w io.Writer, level slog.Leveler) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				lv, ok := a.Value.Any().(slog.Level)
				if !ok {
					return a
				}
				c, ok := levelColors[lv]
				if !ok || out.Profile == termenv.Ascii {
					return a
				}
				return slog.String(a.Key, out.String(lv.String()).Foreground(out.Color(c)).Bold().String())
			}
			return a
		},
	})
}

// SetDefaultLogger sets the default slog logger to one writing to
// stderr at [UserLevel].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, UserLevel)))
}
