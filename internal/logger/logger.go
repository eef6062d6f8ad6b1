package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New creates a logger based on the VASFOOD_ENV environment variable
func New() zerolog.Logger {
	env := os.Getenv("VASFOOD_ENV")

	if env == "development" || env == "dev" || env == "" {
		return NewDevelopment()
	}
	return NewProduction()
}

// NewDevelopment creates a development logger with human-readable console output
func NewDevelopment() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// NewProduction creates a production logger with JSON output and UNIX timestamps
func NewProduction() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Nop returns a disabled logger for tests and optional call sites
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
