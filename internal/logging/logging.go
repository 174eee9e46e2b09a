// Package logging builds the zerolog loggers used across the swimmer tools.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a level name to a zerolog level. Unknown names fall back to info.
//
// Parameters:
//   - level: one of trace, debug, info, warn, error (case-insensitive)
//
// Returns:
//   - zerolog.Level: the matching level
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New creates a console logger writing to out. When file is non-nil every entry is also
// written to it without colors.
//
// Parameters:
//   - level: the minimum level name, see ParseLevel
//   - out: the console destination, typically os.Stderr
//   - file: an optional second destination, may be nil
//
// Returns:
//   - zerolog.Logger: the configured logger
func New(level string, out io.Writer, file io.Writer) zerolog.Logger {
	var w io.Writer = zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	if file != nil {
		w = zerolog.MultiLevelWriter(w, zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}
