// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Thermoquad/pusstat/pkg/ecss"
	"github.com/Thermoquad/pusstat/pkg/tc"
	"github.com/Thermoquad/pusstat/pkg/timecode"
)

// packetView is the YAML form of a telecommand
type packetView struct {
	APID       string         `yaml:"apid"`
	SeqFlags   string         `yaml:"seq_flags"`
	SeqCount   uint16         `yaml:"seq_count"`
	Length     int            `yaml:"length"`
	Version    string         `yaml:"version"`
	Ack        string         `yaml:"ack"`
	Service    uint8          `yaml:"service"`
	Subservice uint8          `yaml:"subservice"`
	Name       string         `yaml:"name"`
	SourceID   uint16         `yaml:"source_id"`
	AppData    string         `yaml:"app_data,omitempty"`
	CRC        string         `yaml:"crc,omitempty"`
	Raw        string         `yaml:"raw,omitempty"`
	Anomalies  []string       `yaml:"anomalies,omitempty"`
	Scheduled  *scheduledView `yaml:"scheduled,omitempty"`
}

// scheduledView is the YAML form of a time-based schedule insert request
type scheduledView struct {
	Release timeView   `yaml:"release"`
	Command packetView `yaml:"command"`
}

// timeView is the YAML form of a CDS short timestamp
type timeView struct {
	Bytes       string `yaml:"bytes"`
	CCSDSDays   uint16 `yaml:"ccsds_days"`
	MsOfDay     uint32 `yaml:"ms_of_day"`
	UnixSeconds int64  `yaml:"unix_seconds"`
	DateTime    string `yaml:"date_time"`
}

func newPacketView(p *tc.PusTc) packetView {
	v := packetView{
		APID:       fmt.Sprintf("0x%03X", p.APID()),
		SeqFlags:   p.SeqFlags().String(),
		SeqCount:   p.SeqCount(),
		Length:     p.LenPacked(),
		Version:    p.PusVersion().String(),
		Ack:        tc.FormatAckFlags(p.AckFlags()),
		Service:    p.Service(),
		Subservice: p.Subservice(),
		Name:       ecss.ServiceName(p.Service()),
		SourceID:   p.SourceID(),
		AppData:    hex.EncodeToString(p.AppData()),
		Raw:        hex.EncodeToString(p.RawBytes()),
	}
	if crc, ok := p.CRC16(); ok {
		v.CRC = fmt.Sprintf("0x%04X", crc)
	}
	for _, anomaly := range tc.ValidatePacket(p) {
		v.Anomalies = append(v.Anomalies, anomaly.Type.String())
	}
	if release, inner, err := tc.ParseScheduledCommand(p); err == nil {
		v.Scheduled = &scheduledView{
			Release: newTimeView(release),
			Command: newPacketView(inner),
		}
	}
	return v
}

func newTimeView(t timecode.CdsShort) timeView {
	return timeView{
		Bytes:       hex.EncodeToString(t.AppendBytes(nil)),
		CCSDSDays:   t.CCSDSDays(),
		MsOfDay:     t.MsOfDay(),
		UnixSeconds: t.UnixSeconds(),
		DateTime:    t.String(),
	}
}

// writeYAML writes v as a YAML document. Every document starts with a
// separator so consecutive calls form a valid multi-document stream.
func writeYAML(w io.Writer, v interface{}) error {
	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// parseHex decodes a hex string. Whitespace, colons and an optional 0x
// prefix are ignored, so "18 02 c0", "1802c0" and "0x1802c0" are equal.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ':':
			return -1
		}
		return r
	}, s)
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return data, nil
}
