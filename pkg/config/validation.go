// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Thermoquad/pusstat/pkg/ccsds"
)

// validate validates the configuration
func validate(cfg *Config) error {
	// Validate packet defaults
	if cfg.Packet.APID < 0 || cfg.Packet.APID > ccsds.MaxAPID {
		return fmt.Errorf("packet.apid must be between 0 and 0x%X", ccsds.MaxAPID)
	}
	if cfg.Packet.SourceID < 0 || cfg.Packet.SourceID > 0xFFFF {
		return fmt.Errorf("packet.source_id must be between 0 and 0xFFFF")
	}
	if cfg.Packet.Ack < 0 || cfg.Packet.Ack > 0xF {
		return fmt.Errorf("packet.ack must be between 0 and 0xF")
	}

	// Validate logging config
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level)); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", cfg.Logging.Format)
	}

	// Validate output config
	switch strings.ToLower(cfg.Output.Color) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always, or never, got %q", cfg.Output.Color)
	}

	return nil
}
