// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// Pusstat - PUS-C Telecommand Toolkit
//
// A CLI tool for building, decoding and inspecting ECSS PUS-C telecommand
// packets and CCSDS CDS short timestamps.

package main

import (
	"os"

	"github.com/Thermoquad/pusstat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
