package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"funnel-billing/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger from the log config.
// Unknown levels fall back to info.
func Init(cfg config.Log) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	log.Logger = New(os.Stdout, cfg.Format)
}

// New builds a logger writing to w in the given format ("json" or "console").
func New(w io.Writer, format string) zerolog.Logger {
	if strings.EqualFold(format, "console") || strings.EqualFold(format, "text") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Str("service", "funnel-billing").Logger()
}
