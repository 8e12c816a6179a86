package main

import (
	"os"

	"github.com/rs/zerolog"
)

// logger is the process-wide logger. Workers and the UI loop share it.
var logger zerolog.Logger

func initLogging(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func init() {
	// Tests and early startup log at the default level until main
	// reconfigures from flags.
	initLogging(false)
}
