// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Thermoquad/pusstat/pkg/config"
)

// setupLogging configures the global zerolog logger. Diagnostics go to w so
// they never mix with packet output on stdout.
func setupLogging(w io.Writer, lc config.LoggingConfig) error {
	level, err := zerolog.ParseLevel(strings.ToLower(lc.Level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}
	zerolog.SetGlobalLevel(level)

	out := w
	if strings.EqualFold(lc.Format, "console") {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(w),
		}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return nil
}
