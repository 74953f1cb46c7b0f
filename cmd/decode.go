// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Thermoquad/pusstat/pkg/tc"
)

var (
	decodeFormat    string
	decodeStream    bool
	decodeShowStats bool
	decodeOnlyErrs  bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [hex...]",
	Short: "Decode and validate PUS-C telecommands",
	Long: `Decode PUS-C telecommands given as hex strings and check them for errors.

Packets are taken from the arguments, or from stdin one per line when no
arguments are given. Blank lines and lines starting with # are skipped.

Each packet is checksum-verified and then validated for anomalies:
  - Packet type or secondary header flag not set for a telecommand
  - PUS version other than PUS-C
  - Idle APID, segmented sequence flags, service 0, no acknowledgements
  - Length field not matching the packet contents

Time-based schedule insert requests (11,4) are unpacked and their release
time and inner command are shown.

With --stream each input holds back-to-back packets delimited by their
length fields.

The command fails if any packet did not decode.`,
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeFormat, "format", "f", "text", "Output format (text, yaml)")
	decodeCmd.Flags().BoolVar(&decodeStream, "stream", false, "Each input holds several concatenated packets")
	decodeCmd.Flags().BoolVar(&decodeShowStats, "stats", false, "Print statistics after decoding")
	decodeCmd.Flags().BoolVar(&decodeOnlyErrs, "errors-only", false, "Only print packets that failed to decode or have anomalies")
}

func runDecode(cmd *cobra.Command, args []string) error {
	if decodeFormat != "text" && decodeFormat != "yaml" {
		return fmt.Errorf("unknown format %q (must be text or yaml)", decodeFormat)
	}

	inputs := args
	if len(inputs) == 0 {
		lines, err := readHexLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
		inputs = lines
	}

	out := cmd.OutOrStdout()
	stats := tc.NewStatistics()
	for i, input := range inputs {
		data, err := parseHex(input)
		if err != nil {
			stats.Update(nil, err, nil)
			log.Error().Int("input", i+1).Err(err).Msg("skipping input")
			continue
		}
		if err := decodeInput(out, stats, i+1, data); err != nil {
			return err
		}
	}

	if decodeShowStats {
		fmt.Fprintln(cmd.ErrOrStderr())
		fmt.Fprint(cmd.ErrOrStderr(), stats.String())
	}
	if failed := stats.FailedPackets(); failed > 0 {
		return fmt.Errorf("%d of %d packets failed to decode", failed, stats.TotalPackets)
	}
	return nil
}

// decodeInput decodes one input, which holds a single packet or, in stream
// mode, several. Only output errors are returned; decode failures are
// counted in stats.
func decodeInput(out io.Writer, stats *tc.Statistics, input int, data []byte) error {
	offset := 0
	for {
		p, size, decodeErr := tc.FromBytes(data[offset:])
		var validationErrors []tc.ValidationError
		if decodeErr == nil {
			validationErrors = tc.ValidatePacket(p)
		}
		stats.Update(p, decodeErr, validationErrors)

		logger := log.With().Int("input", input).Int("offset", offset).Logger()
		if decodeErr != nil {
			logger.Warn().Err(decodeErr).Msg("decode failed")
			return printDecodeError(out, input, offset, decodeErr)
		}
		for _, v := range validationErrors {
			logger.Warn().Str("anomaly", v.Type.String()).Msg(v.Message)
		}
		if !decodeOnlyErrs || len(validationErrors) > 0 {
			if err := printPacket(out, input, offset, p, validationErrors); err != nil {
				return err
			}
		}

		offset += size
		if !decodeStream || offset >= len(data) {
			break
		}
	}
	if offset < len(data) {
		log.Debug().Int("input", input).Int("trailing", len(data)-offset).Msg("ignoring bytes after packet")
	}
	return nil
}

// readHexLines reads one hex packet per line, skipping blanks and comments
func readHexLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*tc.MaxPacketLen+1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return lines, nil
}

// printDecodeError prints a decode error in highlighted format
func printDecodeError(w io.Writer, input, offset int, decodeErr error) error {
	if decodeFormat == "yaml" {
		return writeYAML(w, map[string]interface{}{
			"input":  input,
			"offset": offset,
			"error":  decodeErr.Error(),
		})
	}
	_, err := fmt.Fprintf(w, "[%d@%d] %s %v\n  >>> DECODE FAILED <<<\n\n",
		input, offset, errorStyle.Render("DECODE ERROR:"), decodeErr)
	return err
}

// printPacket prints a decoded packet and its anomalies
func printPacket(w io.Writer, input, offset int, p *tc.PusTc, validationErrors []tc.ValidationError) error {
	if decodeFormat == "yaml" {
		return writeYAML(w, newPacketView(p))
	}

	var s strings.Builder
	tag := fmt.Sprintf("[%d@%d]", input, offset)
	if len(validationErrors) > 0 {
		s.WriteString(fmt.Sprintf("%s %s\n", tag, warningStyle.Render("ANOMALOUS PACKET")))
	} else {
		s.WriteString(fmt.Sprintf("%s %s\n", tag, valueStyle.Render("OK")))
	}
	s.WriteString(tc.FormatPacket(p))

	for i, v := range validationErrors {
		s.WriteString(fmt.Sprintf("  Issue %d: %s\n", i+1, warningStyle.Render(v.Message)))
	}

	if release, inner, err := tc.ParseScheduledCommand(p); err == nil {
		s.WriteString(fmt.Sprintf("  %s %s (CDS days=%d ms=%d)\n",
			labelStyle.Render("Release:"), valueStyle.Render(release.String()), release.CCSDSDays(), release.MsOfDay()))
		for _, line := range strings.Split(strings.TrimSuffix(tc.FormatPacket(inner), "\n"), "\n") {
			s.WriteString("    " + line + "\n")
		}
	}
	s.WriteString("\n")

	_, err := io.WriteString(w, s.String())
	return err
}
