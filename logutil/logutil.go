// logutil.go - slog-Hilfsfunktionen
//
// Dieses Modul enthaelt:
// - NewLogger: Text-Logger mit kurzem Source-Pfad und TRACE-Level
// - Trace/TraceContext: Logging unterhalb von Debug
package logutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"
)

const LevelTrace slog.Level = -8

func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				switch attr.Value.Any().(slog.Level) {
				case LevelTrace:
					attr.Value = slog.StringValue("TRACE")
				}
			case slog.SourceKey:
				source := attr.Value.Any().(*slog.Source)
				source.File = filepath.Base(source.File)
			}
			return attr
		},
	}))
}

func Trace(msg string, args ...any) {
	TraceContext(context.TODO(), msg, args...)
}

func TraceContext(ctx context.Context, msg string, args ...any) {
	if logger := slog.Default(); logger.Enabled(ctx, LevelTrace) {
		var pcs [1]uintptr
		// skip runtime.Callers, TraceContext and its wrapper
		runtime.Callers(3, pcs[:])
		r := slog.NewRecord(time.Now(), LevelTrace, msg, pcs[0])
		r.Add(args...)
		logger.Handler().Handle(ctx, r) //nolint:errcheck
	}
}
