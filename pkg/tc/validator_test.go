// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tc

import (
	"testing"

	"github.com/Thermoquad/pusstat/pkg/ccsds"
	"github.com/Thermoquad/pusstat/pkg/ecss"
)

func hasAnomaly(errs []ValidationError, a AnomalyType) bool {
	for _, e := range errs {
		if e.Type == a {
			return true
		}
	}
	return false
}

func TestValidatePacket_Valid(t *testing.T) {
	errors := ValidatePacket(basePingTcSimpleCtor(t))
	if len(errors) != 0 {
		t.Errorf("expected no validation errors, got %v", errors)
	}
	if errors == nil {
		t.Error("ValidatePacket returned nil slice")
	}
}

func TestValidatePacket_Anomalies(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *PusTc)
		anomaly AnomalyType
	}{
		{"telemetry type", func(p *PusTc) { p.spHeader.PacketType = ccsds.PacketTypeTm }, AnomalyNotTelecommand},
		{"no secondary header", func(p *PusTc) { p.spHeader.ClearSecHeaderFlag() }, AnomalyNoSecHeader},
		{"PUS-A version", func(p *PusTc) { p.secHeader.Version = ecss.PusA }, AnomalyUnsupportedVersion},
		{"idle APID", func(p *PusTc) { p.SetAPID(ccsds.IdleAPID) }, AnomalyIdleAPID},
		{"segmented", func(p *PusTc) { p.SetSeqFlags(ccsds.SeqFlagsFirst) }, AnomalySegmented},
		{"service zero", func(p *PusTc) { p.secHeader.Service = 0 }, AnomalyZeroService},
		{"no acks", func(p *PusTc) { p.SetAckField(0) }, AnomalyNoAckFlags},
		{"stale length", func(p *PusTc) { p.appData = []byte{1} }, AnomalyLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := basePingTcSimpleCtor(t)
			tt.mutate(p)
			errors := ValidatePacket(p)
			if len(errors) != 1 {
				t.Fatalf("expected 1 validation error, got %d: %v", len(errors), errors)
			}
			if errors[0].Type != tt.anomaly {
				t.Errorf("anomaly = %s, want %s", errors[0].Type, tt.anomaly)
			}
			if errors[0].Error() == "" {
				t.Error("empty validation message")
			}
		})
	}
}

func TestValidatePacket_LengthMismatchDetails(t *testing.T) {
	p := basePingTcWithAppData(t, []byte{1, 2, 3})
	p.appData = nil
	errors := ValidatePacket(p)
	if !hasAnomaly(errors, AnomalyLengthMismatch) {
		t.Fatalf("expected LENGTH_MISMATCH, got %v", errors)
	}
	details := errors[0].Details
	if details["declared"] != 16 || details["actual"] != 13 {
		t.Errorf("details = %v", details)
	}
}

func TestValidatePacket_DecodedForeignVersion(t *testing.T) {
	raw, _ := basePingTcSimpleCtor(t).Bytes()
	raw[6] = 0x0F
	crc := ecss.CalculateCRC(raw[:11])
	raw[11], raw[12] = byte(crc>>8), byte(crc)

	p, _, err := FromBytes(raw)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !hasAnomaly(ValidatePacket(p), AnomalyUnsupportedVersion) {
		t.Error("expected UNSUPPORTED_VERSION for ESA PUS packet")
	}
}

func TestAnomalyType_String(t *testing.T) {
	tests := []struct {
		a    AnomalyType
		want string
	}{
		{AnomalyNotTelecommand, "NOT_TELECOMMAND"},
		{AnomalyIdleAPID, "IDLE_APID"},
		{AnomalyLengthMismatch, "LENGTH_MISMATCH"},
		{AnomalyType(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("AnomalyType(%d).String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
