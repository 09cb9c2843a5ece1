/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupLogging installs the global logger. --verbose always enables debug
// output, whatever --log-level says.
func setupLogging(cfg *Config) error {
	level, err := zerolog.ParseLevel(cfg.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.logLevel, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if cfg.verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = logDate

	var w io.Writer = os.Stderr
	if !cfg.logJSON {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: logDate}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()

	return nil
}
