// Package logging builds the zerolog logger used for diagnostics.
//
// Command results go to stdout; everything the logger writes goes to
// stderr so that output can be piped safely, e.g. `decode img.png -`.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New returns a console logger writing to w. Verbose enables debug
// messages; otherwise only warnings and errors are shown.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}

	return zerolog.New(console).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewJSON returns a structured JSON logger writing to w, used when the
// command output itself is machine-readable.
func NewJSON(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// isTerminal reports whether w is a terminal, so colours are only emitted
// where they render.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
