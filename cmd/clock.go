// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Thermoquad/pusstat/pkg/timecode"
)

var (
	clockInterval time.Duration
	clockRelease  string
)

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Show a live CDS short clock",
	Long: `Show the current time as a CDS short timestamp, refreshed continuously.

With --release the clock counts down to a release time, e.g. the time a
scheduled command built with "encode --release" will be executed.

Press 'm' to record the current timestamp bytes in the event log.`,
	Args: cobra.NoArgs,
	RunE: runClock,
}

func init() {
	rootCmd.AddCommand(clockCmd)
	clockCmd.Flags().DurationVar(&clockInterval, "interval", 100*time.Millisecond, "Refresh interval")
	clockCmd.Flags().StringVar(&clockRelease, "release", "", "RFC 3339 release time to count down to")
}

func runClock(cmd *cobra.Command, args []string) error {
	if clockInterval <= 0 {
		return fmt.Errorf("--interval must be positive")
	}

	var release *timecode.CdsShort
	if clockRelease != "" {
		t, err := time.Parse(time.RFC3339Nano, clockRelease)
		if err != nil {
			return fmt.Errorf("--release: %w", err)
		}
		stamp, err := timecode.CdsShortFromTime(t)
		if err != nil {
			return err
		}
		release = &stamp
	}

	p := tea.NewProgram(initialClockModel(clockInterval, release, time.Now))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
