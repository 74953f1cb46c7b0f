// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Thermoquad/pusstat/pkg/config"
)

var (
	// Global flags
	configFile string
	logLevel   string
	logFormat  string
	colorMode  string

	// cfg is loaded before any subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pusstat",
	Short: "PUS-C Telecommand Toolkit",
	Long: `Pusstat - A CLI tool for building, decoding and inspecting ECSS PUS-C
telecommand packets and CCSDS CDS short timestamps.

Packets are exchanged as hex strings: encode prints them, decode reads them
from arguments or from stdin, one packet per line.

Configuration is read from pusstat.yaml in the current directory or the user
config directory, or from the file given with --config. Every key can be
overridden with a PUSSTAT_ environment variable, e.g. PUSSTAT_PACKET_APID.`,
	Version:           "0.3.0",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: ./pusstat.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Colored output (auto, always, never)")
}

// loadConfig binds the global flags to their config keys, loads the
// configuration and sets up logging and output styles
func loadConfig(cmd *cobra.Command, args []string) error {
	flags := cmd.Root().PersistentFlags()
	bindings := map[string]string{
		"logging.level":  "log-level",
		"logging.format": "log-format",
		"output.color":   "color",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", flag, err)
		}
	}

	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}
	cfg = loaded

	if err := setupLogging(cmd.ErrOrStderr(), cfg.Logging); err != nil {
		return err
	}
	setupStyles(cmd.OutOrStdout(), cfg.Output.Color)
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
