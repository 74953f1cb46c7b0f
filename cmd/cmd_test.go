// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Thermoquad/pusstat/pkg/ecss"
	"github.com/Thermoquad/pusstat/pkg/tc"
	"github.com/Thermoquad/pusstat/pkg/timecode"
)

const pingHex = "1802c0340006" + "2f11010000" + "ee63"

func pingOptions() encodeOptions {
	return encodeOptions{apid: 0x02, seq: 0x34, service: 17, subservice: 1, ack: tc.AckAll}
}

// ============================================================
// Helper Tests
// ============================================================

func TestParseHex(t *testing.T) {
	tests := []struct {
		input   string
		want    []byte
		wantErr bool
	}{
		{"1802c0", []byte{0x18, 0x02, 0xC0}, false},
		{"18 02 C0", []byte{0x18, 0x02, 0xC0}, false},
		{"0x1802c0", []byte{0x18, 0x02, 0xC0}, false},
		{"18:02:c0", []byte{0x18, 0x02, 0xC0}, false},
		{"  ", []byte{}, false},
		{"18 0", nil, true},
		{"zz", nil, true},
	}
	for _, tt := range tests {
		got, err := parseHex(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !bytes.Equal(got, tt.want) {
			t.Errorf("parseHex(%q) = % X, want % X", tt.input, got, tt.want)
		}
	}
}

func TestReadHexLines(t *testing.T) {
	input := "# captured uplink\n\n" + pingHex + "\n  18 02  \n"
	lines, err := readHexLines(strings.NewReader(input))
	if err != nil {
		t.Fatalf("readHexLines: %v", err)
	}
	if len(lines) != 2 || lines[0] != pingHex || lines[1] != "18 02" {
		t.Errorf("lines = %q", lines)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 seconds"},
		{-time.Second, "0 seconds"},
		{time.Second, "1 second"},
		{90 * time.Second, "1 minute and 30 seconds"},
		{26*time.Hour + 2*time.Minute + 5*time.Second, "1 day, 2 hours, 2 minutes, and 5 seconds"},
		{2 * time.Hour, "2 hours"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// ============================================================
// Encode Tests
// ============================================================

func TestBuildTelecommand_Ping(t *testing.T) {
	p, err := buildTelecommand(pingOptions())
	if err != nil {
		t.Fatalf("buildTelecommand: %v", err)
	}
	raw, err := p.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if hex.EncodeToString(raw) != pingHex {
		t.Errorf("raw = %x, want %s", raw, pingHex)
	}
}

func TestBuildTelecommand_ManualCRC(t *testing.T) {
	opts := pingOptions()
	opts.manualCRC = true
	p, err := buildTelecommand(opts)
	if err != nil {
		t.Fatalf("buildTelecommand: %v", err)
	}
	if p.CalcCRCOnSerialization {
		t.Error("manual CRC mode should disable calculation on serialization")
	}
	if crc, ok := p.CRC16(); !ok || crc != 0xEE63 {
		t.Errorf("CRC16() = 0x%04X, %v", crc, ok)
	}
}

func TestBuildTelecommand_Release(t *testing.T) {
	opts := pingOptions()
	opts.sourceID = 9
	release := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	opts.release = &release

	p, err := buildTelecommand(opts)
	if err != nil {
		t.Fatalf("buildTelecommand: %v", err)
	}
	if p.Service() != ecss.ServiceTimeScheduling || p.SourceID() != 9 {
		t.Errorf("outer = %d/%d source %d", p.Service(), p.Subservice(), p.SourceID())
	}
	gotRelease, inner, err := tc.ParseScheduledCommand(p)
	if err != nil {
		t.Fatalf("ParseScheduledCommand: %v", err)
	}
	if !gotRelease.DateTime().Equal(release) {
		t.Errorf("release = %s, want %s", gotRelease, release)
	}
	if inner.Service() != 17 || inner.SourceID() != 9 {
		t.Errorf("inner = %d/%d source %d", inner.Service(), inner.Subservice(), inner.SourceID())
	}
}

func TestBuildTelecommand_Errors(t *testing.T) {
	opts := pingOptions()
	opts.ack = 0x10
	if _, err := buildTelecommand(opts); err == nil {
		t.Error("expected error for wide ack flags")
	}

	opts = pingOptions()
	opts.apid = 0x800
	if _, err := buildTelecommand(opts); err == nil {
		t.Error("expected error for out-of-range APID")
	}

	opts = pingOptions()
	before := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	opts.release = &before
	if _, err := buildTelecommand(opts); !errors.Is(err, timecode.ErrDaysOutOfRange) {
		t.Errorf("expected ErrDaysOutOfRange, got %v", err)
	}

	opts = pingOptions()
	opts.appData = make([]byte, tc.MaxAppDataLen+1)
	if _, err := buildTelecommand(opts); !errors.Is(err, tc.ErrAppDataTooLong) {
		t.Errorf("expected ErrAppDataTooLong, got %v", err)
	}

	// The inner command fits, the schedule request around it does not
	opts = pingOptions()
	opts.appData = make([]byte, tc.MaxAppDataLen)
	release := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	opts.release = &release
	if _, err := buildTelecommand(opts); !errors.Is(err, tc.ErrAppDataTooLong) {
		t.Errorf("release: expected ErrAppDataTooLong, got %v", err)
	}
}

func TestWriteEncoded_Formats(t *testing.T) {
	p, err := buildTelecommand(pingOptions())
	if err != nil {
		t.Fatalf("buildTelecommand: %v", err)
	}

	tests := []struct {
		format string
		want   []string
	}{
		{"hex", []string{pingHex}},
		{"cbor", []string{}},
		{"yaml", []string{"0x002", "service: 17", "name: TEST", "0xEE63", "raw: " + pingHex}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			c := &cobra.Command{}
			c.SetOut(&out)
			if err := writeEncoded(c, p, tt.format); err != nil {
				t.Fatalf("writeEncoded: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
			if tt.format == "cbor" {
				data, err := parseHex(out.String())
				if err != nil {
					t.Fatalf("parseHex: %v", err)
				}
				decoded, err := tc.DecodeCBOR(data)
				if err != nil {
					t.Fatalf("DecodeCBOR: %v", err)
				}
				if !p.Equal(decoded) {
					t.Error("CBOR output does not decode to the same packet")
				}
			}
		})
	}

	c := &cobra.Command{}
	c.SetOut(&bytes.Buffer{})
	if err := writeEncoded(c, p, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

// ============================================================
// Decode Tests
// ============================================================

func TestDecodeInput_Stream(t *testing.T) {
	decodeFormat = "text"
	decodeStream = true
	decodeOnlyErrs = false
	defer func() { decodeStream = false }()

	ping, _ := parseHex(pingHex)
	data := append(append([]byte(nil), ping...), ping...)

	var out bytes.Buffer
	stats := tc.NewStatistics()
	if err := decodeInput(&out, stats, 1, data); err != nil {
		t.Fatalf("decodeInput: %v", err)
	}
	if stats.TotalPackets != 2 || stats.ValidPackets != 2 {
		t.Errorf("total=%d valid=%d, want 2/2", stats.TotalPackets, stats.ValidPackets)
	}
	if !strings.Contains(out.String(), "[1@13]") {
		t.Errorf("second packet not reported at offset 13:\n%s", out.String())
	}
}

func TestDecodeInput_Errors(t *testing.T) {
	decodeFormat = "text"
	decodeStream = false
	decodeOnlyErrs = true
	defer func() { decodeOnlyErrs = false }()

	ping, _ := parseHex(pingHex)
	ping[12] ^= 0xFF

	var out bytes.Buffer
	stats := tc.NewStatistics()
	if err := decodeInput(&out, stats, 1, ping); err != nil {
		t.Fatalf("decodeInput: %v", err)
	}
	if stats.ChecksumErrors != 1 {
		t.Errorf("ChecksumErrors = %d, want 1", stats.ChecksumErrors)
	}
	if !strings.Contains(out.String(), "DECODE FAILED") {
		t.Errorf("output:\n%s", out.String())
	}

	// Valid packets are suppressed in errors-only mode
	out.Reset()
	valid, _ := parseHex(pingHex)
	if err := decodeInput(&out, stats, 2, valid); err != nil {
		t.Fatalf("decodeInput: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got:\n%s", out.String())
	}
}

func TestDecodeInput_ScheduledYAML(t *testing.T) {
	decodeFormat = "yaml"
	decodeStream = false
	decodeOnlyErrs = false
	defer func() { decodeFormat = "text" }()

	opts := pingOptions()
	release := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	opts.release = &release
	p, err := buildTelecommand(opts)
	if err != nil {
		t.Fatalf("buildTelecommand: %v", err)
	}
	raw, _ := p.Bytes()

	var out bytes.Buffer
	if err := decodeInput(&out, tc.NewStatistics(), 1, raw); err != nil {
		t.Fatalf("decodeInput: %v", err)
	}
	for _, want := range []string{"name: TIME_BASED_SCHEDULING", "scheduled:", "2024-05-01T12:00:00.000Z", "name: TEST"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

// ============================================================
// Command Tests
// ============================================================

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEncodeDecodeCommands(t *testing.T) {
	out, err := runRoot(t, "", "encode", "--apid", "0x02", "--seq", "0x34", "--ack", "0xF", "--format", "hex")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.TrimSpace(out) != pingHex {
		t.Errorf("encode output = %q, want %q", out, pingHex)
	}

	out, err = runRoot(t, pingHex+"\n", "decode", "--format", "yaml")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out, "seq_count: 52") {
		t.Errorf("decode output:\n%s", out)
	}

	if _, err := runRoot(t, "", "decode", "--format", "text", "1802"); err == nil {
		t.Error("decode of a truncated packet should fail")
	}
}

func TestTimeCommand(t *testing.T) {
	out, err := runRoot(t, "", "time", "--days", "0x1234", "--ms", "86399999", "--format", "yaml")
	if err != nil {
		t.Fatalf("time: %v", err)
	}
	if !strings.Contains(out, "4012340005265bff") {
		t.Errorf("time output:\n%s", out)
	}

	if _, err := runRoot(t, "", "time", "--days", "1", "--ms", "86400000"); !errors.Is(err, timecode.ErrMsOfDayOutOfRange) {
		t.Errorf("expected ErrMsOfDayOutOfRange, got %v", err)
	}
}

// ============================================================
// TUI Model Tests
// ============================================================

func TestClockModel_Release(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	release, err := timecode.CdsShortFromTime(now.Add(time.Second))
	if err != nil {
		t.Fatalf("CdsShortFromTime: %v", err)
	}
	m := initialClockModel(100*time.Millisecond, &release, func() time.Time { return now })
	if m.released {
		t.Fatal("released before the release time")
	}
	if !strings.Contains(m.View(), "1 second") {
		t.Errorf("countdown missing:\n%s", m.View())
	}

	now = now.Add(time.Second)
	updated, cmd := m.Update(tickMsg(now))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	m = updated.(clockModel)
	if !m.released || len(m.events) != 1 {
		t.Errorf("released=%v events=%d", m.released, len(m.events))
	}
}

func TestClockModel_Keys(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := initialClockModel(time.Second, nil, func() time.Time { return now })

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	m = updated.(clockModel)
	if len(m.events) != 1 || !strings.Contains(m.events[0].message, "40 5E 2A") {
		t.Errorf("mark event = %+v", m.events)
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !updated.(clockModel).quitting || cmd == nil {
		t.Error("q should quit")
	}
}

func TestBuildModel_Preview(t *testing.T) {
	base := pingOptions()
	m := initialBuildModel(base)
	if m.buildErr != nil {
		t.Fatalf("initial build error: %v", m.buildErr)
	}
	raw, err := m.packet.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if hex.EncodeToString(raw) != pingHex {
		t.Errorf("preview = %x, want %s", raw, pingHex)
	}

	m.inputs[inputData].SetValue("0102zz")
	m.rebuild()
	if m.buildErr == nil {
		t.Error("expected error for invalid app data")
	}

	m.inputs[inputData].SetValue("010203")
	m.inputs[inputAPID].SetValue("0x7ff")
	m.rebuild()
	if m.buildErr != nil {
		t.Fatalf("rebuild: %v", m.buildErr)
	}
	if m.packet.APID() != 0x7FF || !bytes.Equal(m.packet.AppData(), []byte{1, 2, 3}) {
		t.Errorf("packet apid=0x%X data=% X", m.packet.APID(), m.packet.AppData())
	}
}

func TestBuildModel_FocusCycle(t *testing.T) {
	m := initialBuildModel(pingOptions())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	bm := next.(*buildModel)
	if bm.focusedField != focusSubservice || !bm.inputs[inputSubservice].Focused() {
		t.Errorf("focus = %d", bm.focusedField)
	}
	prev, _ := bm.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if prev.(*buildModel).focusedField != focusServiceList {
		t.Errorf("focus = %d, want service list", prev.(*buildModel).focusedField)
	}
}
