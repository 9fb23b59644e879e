// Package driverlog builds the base logger shared by cmd/bsoncli and
// internal/idgen. Logfmt when attached to a terminal, JSON otherwise,
// the way kolide-launcher picks its CLI logger format.
package driverlog

import (
	"io"
	"os"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/mattn/go-isatty"
)

// New builds a base logger writing to w, with timestamp and caller
// fields attached the way kolide-launcher's cmd/launcher wires its
// loggers (log.With(..., "ts", log.DefaultTimestampUTC, "caller",
// log.DefaultCaller)).
func New(w io.Writer) log.Logger {
	var base log.Logger
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		base = log.NewLogfmtLogger(log.NewSyncWriter(w))
	} else {
		base = log.NewJSONLogger(log.NewSyncWriter(w))
	}
	return log.With(base, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

// NewCLILogger builds the default logger for cmd/bsoncli, filtered to
// level.AllowInfo() unless debug is requested.
func NewCLILogger(debug bool) log.Logger {
	logger := New(os.Stderr)
	if debug {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}
