package lib

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the service logger: human-readable console output in
// development, JSON elsewhere.
func NewLogger(cfg *Config) zerolog.Logger {
	if cfg.IsDevelopment() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	}
	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Logger()
}
