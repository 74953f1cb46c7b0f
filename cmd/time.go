// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/pusstat/pkg/timecode"
)

var (
	timeDays   uint16
	timeMs     uint32
	timeAt     string
	timeDecode string
	timeFormat string
)

var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Encode or decode CCSDS CDS short timestamps",
	Long: `Print a CDS short timestamp (8 bytes: p-field, 16-bit day, reserved
byte, 32-bit millisecond of day) in wire form and as UNIX and calendar time.

The reserved byte is written as zero and ignored when decoding.

The timestamp is taken from, in order of precedence:
  --decode HEX      an encoded timestamp
  --days/--ms       days since 1958-01-01 and millisecond of day
  --at TIME         an RFC 3339 time
  (none)            the current system time`,
	Args: cobra.NoArgs,
	RunE: runTime,
}

func init() {
	rootCmd.AddCommand(timeCmd)
	timeCmd.Flags().Uint16Var(&timeDays, "days", 0, "Days since 1958-01-01")
	timeCmd.Flags().Uint32Var(&timeMs, "ms", 0, "Millisecond of day")
	timeCmd.Flags().StringVar(&timeAt, "at", "", "RFC 3339 time to encode")
	timeCmd.Flags().StringVar(&timeDecode, "decode", "", "Encoded timestamp as hex")
	timeCmd.Flags().StringVarP(&timeFormat, "format", "f", "text", "Output format (text, yaml)")
}

func runTime(cmd *cobra.Command, args []string) error {
	stamp, err := resolveTimestamp(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch timeFormat {
	case "yaml":
		return writeYAML(out, newTimeView(stamp))
	case "text":
		_, err := fmt.Fprint(out, formatTimestamp(stamp))
		return err
	default:
		return fmt.Errorf("unknown format %q (must be text or yaml)", timeFormat)
	}
}

// resolveTimestamp picks the timestamp source from the flags
func resolveTimestamp(cmd *cobra.Command) (timecode.CdsShort, error) {
	flags := cmd.Flags()
	switch {
	case timeDecode != "":
		data, err := parseHex(timeDecode)
		if err != nil {
			return timecode.CdsShort{}, fmt.Errorf("--decode: %w", err)
		}
		return timecode.DecodeCdsShort(data)

	case flags.Changed("days") || flags.Changed("ms"):
		return timecode.NewCdsShort(timeDays, timeMs)

	case timeAt != "":
		t, err := time.Parse(time.RFC3339Nano, timeAt)
		if err != nil {
			return timecode.CdsShort{}, fmt.Errorf("--at: %w", err)
		}
		return timecode.CdsShortFromTime(t)

	default:
		return timecode.CdsShortFromNow()
	}
}

// formatTimestamp formats a timestamp for text output
func formatTimestamp(t timecode.CdsShort) string {
	raw := t.AppendBytes(nil)
	hexBytes := make([]string, len(raw))
	for i, b := range raw {
		hexBytes[i] = fmt.Sprintf("%02X", b)
	}

	var s strings.Builder
	s.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Bytes:    "), valueStyle.Render(strings.Join(hexBytes, " "))))
	s.WriteString(fmt.Sprintf("%s %d (%s)\n", labelStyle.Render("Days:     "), t.CCSDSDays(), t.TimeCode()))
	s.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render("Ms of day:"), t.MsOfDay()))
	s.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render("Unix:     "), t.UnixSeconds()))
	s.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("UTC:      "), valueStyle.Render(t.String())))
	return s.String()
}
