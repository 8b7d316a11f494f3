// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the zerolog logger used across ragchat.
//
// The TUI owns the terminal, so interactive commands log to a file. The stub
// server and verbose one-shot commands log to stderr through a console writer.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options selects where and how much to log.
type Options struct {
	// Level is a zerolog level name. Empty means info.
	Level string
	// File receives JSON log lines when set.
	File string
	// Console writes human-readable lines to Stderr instead of a file.
	Console bool
	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

// Init installs the global logger and returns a closer for the log file.
func Init(opts Options) (io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, errors.Wrapf(err, "parse log level %q", opts.Level)
		}
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	if opts.Console || opts.File == "" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, errors.Wrap(err, "open log file")
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// Discard silences the global logger. Used by tests and --quiet.
func Discard() {
	log.Logger = zerolog.Nop()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
