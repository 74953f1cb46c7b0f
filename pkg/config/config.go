// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the pusstat configuration
type Config struct {
	Packet  PacketConfig  `mapstructure:"packet"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// PacketConfig holds defaults for telecommands built by the CLI
type PacketConfig struct {
	APID     int `mapstructure:"apid"`      // 11-bit application process ID
	SourceID int `mapstructure:"source_id"` // 16-bit source ID
	Ack      int `mapstructure:"ack"`       // Acknowledgement flags, 0x0-0xF
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// OutputConfig holds terminal output configuration
type OutputConfig struct {
	Color string `mapstructure:"color"` // auto, always, never
}

// Load loads configuration from file and environment variables.
// Values already bound to viper (for example command line flags) take
// precedence over both.
func Load(configFile string) (*Config, error) {
	// Set defaults
	setDefaults()

	// Set config file
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("pusstat")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(home + "/pusstat")
		}
	}

	// Environment variables: PUSSTAT_PACKET_APID, PUSSTAT_LOGGING_LEVEL, ...
	viper.SetEnvPrefix("PUSSTAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found is OK, use defaults
		} else if configFile == "" && os.IsNotExist(err) {
			// Search path entry vanished, also OK
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal to struct
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Packet defaults
	viper.SetDefault("packet.apid", 0x02)
	viper.SetDefault("packet.source_id", 0)
	viper.SetDefault("packet.ack", 0xF)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")

	// Output defaults
	viper.SetDefault("output.color", "auto")
}
