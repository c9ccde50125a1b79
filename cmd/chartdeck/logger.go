package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// newLogger creates the process logger. Pretty console output is for humans
// in dev mode; the default is structured JSON on stderr.
func newLogger(verbose, quiet, pretty bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.ErrorLevel
	case verbose:
		level = zerolog.DebugLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stderr
	if pretty {
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}
