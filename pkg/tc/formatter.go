// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tc

import (
	"fmt"
	"strings"

	"github.com/Thermoquad/pusstat/pkg/ecss"
)

// FormatPacket formats a packet into a human-readable string
func FormatPacket(p *PusTc) string {
	result := fmt.Sprintf("%s (%d/%d) apid=0x%03X seq=%d len=%d\n",
		ecss.ServiceName(p.Service()), p.Service(), p.Subservice(), p.APID(), p.SeqCount(), p.LenPacked())
	result += fmt.Sprintf("  Version: %s, Ack: %s, Source ID: %d\n",
		p.PusVersion(), FormatAckFlags(p.AckFlags()), p.SourceID())

	if crc, ok := p.CRC16(); ok {
		result += fmt.Sprintf("  CRC: 0x%04X\n", crc)
	}

	if p.AppData() == nil {
		result += "  (no application data)\n"
	} else {
		result += FormatHexDump("  App data: ", p.AppData())
	}

	return result
}

// FormatAckFlags returns the set acknowledgement flags, e.g. "ACC|STA|PRO|COM"
func FormatAckFlags(ack uint8) string {
	if ack&0b1111 == 0 {
		return "NONE"
	}
	names := []string{}
	if ack&AckAcceptance != 0 {
		names = append(names, "ACC")
	}
	if ack&AckStart != 0 {
		names = append(names, "STA")
	}
	if ack&AckProgress != 0 {
		names = append(names, "PRO")
	}
	if ack&AckCompletion != 0 {
		names = append(names, "COM")
	}
	return strings.Join(names, "|")
}

// FormatHexDump formats data as hex, 16 bytes per line, after the given prefix
func FormatHexDump(prefix string, data []byte) string {
	indent := strings.Repeat(" ", len(prefix))
	result := prefix
	for i, b := range data {
		if i > 0 && i%16 == 0 {
			result += "\n" + indent
		}
		result += fmt.Sprintf("%02X ", b)
	}
	return result + "\n"
}
