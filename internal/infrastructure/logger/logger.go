package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// New builds the process logger. JSON output is the default; console
// format is for local development.
func New(cfg Config) zerolog.Logger {
	var out io.Writer = os.Stdout
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Caller().
		Str("service", "betwallet").
		Logger()
}

func parseLevel(level string) zerolog.Level {
	if lvl, err := zerolog.ParseLevel(level); err == nil && lvl != zerolog.NoLevel {
		return lvl
	}
	return zerolog.InfoLevel
}
