// Package logger wraps zerolog.Logger for update-volume.
//
// Output goes to the supplied writer: a human-readable console format when
// the writer is a terminal, one JSON object per line otherwise (for example
// when run from a systemd unit or a udev hook).
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Logger embeds zerolog.Logger so the full zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// New builds a Logger writing to w at the given level name
// ("debug", "info", "warn", "error", ...).
func New(level string, w io.Writer) (*Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.TimeOnly}
	}

	l := zerolog.New(w).Level(lvl).With().
		Str("app", "update-volume").
		Timestamp().
		Logger()

	return &Logger{l}, nil
}

// Nop returns a Logger that discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}
