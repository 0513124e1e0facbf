// Package zklog wraps zerolog with the handful of conventions every
// library package in this module shares: one base logger, one
// "component" sub-logger per package, console-pretty output in a
// terminal and JSON otherwise — matching the teacher's per-file helper
// convention (cmd/jesuit/verify.go's printHeader/printSection/...) but
// for structured logs instead of colored CLI text.
package zklog

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Logger is a thin alias so callers don't need to import zerolog
// directly just to hold a reference.
type Logger = zerolog.Logger

var (
	baseOnce sync.Once
	base     zerolog.Logger
)

// SetOutput overrides the destination writer for the base logger; tests
// use this to capture output. Must be called before the first Component
// call to take effect.
func SetOutput(w io.Writer) {
	baseOnce.Do(func() {})
	base = zerolog.New(w).With().Timestamp().Logger()
}

func initBase() {
	baseOnce.Do(func() {
		var w io.Writer = os.Stderr
		if isatty.IsTerminal(os.Stderr.Fd()) {
			w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		}
		base = zerolog.New(w).With().Timestamp().Logger()
	})
}

// Component returns the shared base logger tagged with a "component"
// field, e.g. zklog.Component("engine").
func Component(name string) Logger {
	initBase()
	return base.With().Str("component", name).Logger()
}

// SetLevel adjusts the global zerolog level (e.g. from --verbose in the
// CLI root command).
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}
