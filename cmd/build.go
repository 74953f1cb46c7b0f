// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var buildFormat string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a PUS-C telecommand interactively",
	Long: `Build a telecommand in a terminal form with a live preview.

Pick the service from the list, fill in subservice, APID, sequence count and
application data, then select "Print packet". The packet is printed in the
same formats as encode. Source ID and acknowledgement flags come from the
configuration.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "hex", "Output format (hex, cbor, yaml)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	base := encodeOptions{
		apid:       uint16(cfg.Packet.APID),
		service:    17,
		subservice: 1,
		ack:        uint8(cfg.Packet.Ack),
		sourceID:   uint16(cfg.Packet.SourceID),
	}

	p := tea.NewProgram(initialBuildModel(base), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	// Key handling returns a pointer to the model
	var m *buildModel
	switch v := final.(type) {
	case buildModel:
		m = &v
	case *buildModel:
		m = v
	}
	if m == nil || !m.done || m.packet == nil {
		return nil
	}
	return writeEncoded(cmd, m.packet, buildFormat)
}
