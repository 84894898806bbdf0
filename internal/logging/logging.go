package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger tagged with the component name, writing JSON to
// stdout or, when pretty is set, a human readable console format.
func New(component, level string, pretty bool) zerolog.Logger {
	return NewWithWriter(os.Stdout, component, level, pretty)
}

func NewWithWriter(w io.Writer, component, level string, pretty bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

func parseLevel(lvl string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
