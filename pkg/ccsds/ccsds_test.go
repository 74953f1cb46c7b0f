// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ccsds

import (
	"bytes"
	"errors"
	"testing"
)

func TestTcUnseg_Bytes(t *testing.T) {
	sph, err := TcUnseg(0x02, 0x34, 6)
	if err != nil {
		t.Fatalf("TcUnseg: %v", err)
	}
	sph.SetSecHeaderFlag()

	got := sph.Bytes()
	expected := []byte{0x18, 0x02, 0xC0, 0x34, 0x00, 0x06}
	if !bytes.Equal(got[:], expected) {
		t.Errorf("Bytes() = % X, want % X", got, expected)
	}
}

func TestTmUnseg_NoSecHeader(t *testing.T) {
	sph, err := TmUnseg(0x7FF, 0, 0)
	if err != nil {
		t.Fatalf("TmUnseg: %v", err)
	}
	got := sph.Bytes()
	if got[0] != 0x07 || got[1] != 0xFF {
		t.Errorf("packet id = %02X%02X, want 07FF", got[0], got[1])
	}
}

func TestNewSpHeader_OutOfRange(t *testing.T) {
	if _, err := TcUnseg(MaxAPID+1, 0, 0); !errors.Is(err, ErrAPIDOutOfRange) {
		t.Errorf("expected ErrAPIDOutOfRange, got %v", err)
	}
	if _, err := TcUnseg(0, MaxSeqCount+1, 0); !errors.Is(err, ErrSeqCountOutOfRange) {
		t.Errorf("expected ErrSeqCountOutOfRange, got %v", err)
	}
}

func TestSetters_RejectOutOfRange(t *testing.T) {
	sph, _ := TcUnseg(1, 1, 0)
	if sph.SetAPID(0x800) {
		t.Error("SetAPID(0x800) should fail")
	}
	if sph.APID != 1 {
		t.Errorf("APID changed to %d", sph.APID)
	}
	if sph.SetSeqCount(0x4000) {
		t.Error("SetSeqCount(0x4000) should fail")
	}
	if !sph.SetAPID(0x7FF) || !sph.SetSeqCount(0x3FFF) {
		t.Error("max values should be accepted")
	}
}

func TestSetDataLen(t *testing.T) {
	sph, _ := TcUnseg(0x02, 0x34, 0)
	sph.SetDataLen(0x1234)
	if sph.DataLen != 0x1234 {
		t.Errorf("DataLen = 0x%X, want 0x1234", sph.DataLen)
	}
	if sph.TotalLen() != 0x1234+HeaderLen+1 {
		t.Errorf("TotalLen() = %d", sph.TotalLen())
	}
	got := sph.Bytes()
	if got[4] != 0x12 || got[5] != 0x34 {
		t.Errorf("length field = %02X%02X, want 1234", got[4], got[5])
	}
}

func TestSecHeaderFlag(t *testing.T) {
	sph, _ := TcUnseg(0x02, 0x34, 0)
	sph.SetSecHeaderFlag()
	if got := sph.Bytes(); got[0]&0x08 == 0 {
		t.Errorf("flag not encoded: first byte 0x%02X", got[0])
	}

	sph.ClearSecHeaderFlag()
	if sph.SecHeaderFlag {
		t.Error("SecHeaderFlag still set")
	}
	got := sph.Bytes()
	if got[0] != 0x10 {
		t.Errorf("first byte = 0x%02X, want 0x10", got[0])
	}
	decoded, err := FromBytes(got[:])
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if decoded.SecHeaderFlag {
		t.Error("decoded SecHeaderFlag set after clear")
	}
}

func TestFromBytes_RoundTrip(t *testing.T) {
	tests := []SpHeader{
		{PacketType: PacketTypeTc, SecHeaderFlag: true, APID: 0x02, SeqFlags: SeqFlagsUnsegmented, SeqCount: 0x34, DataLen: 6},
		{PacketType: PacketTypeTm, APID: 0x7FF, SeqFlags: SeqFlagsFirst, SeqCount: 0x3FFF, DataLen: 0xFFFF},
		{Version: 0b111, PacketType: PacketTypeTc, SeqFlags: SeqFlagsContinuation},
	}

	for _, sph := range tests {
		raw := sph.Bytes()
		decoded, err := FromBytes(raw[:])
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}
		if decoded != sph {
			t.Errorf("round trip mismatch: got %+v, want %+v", decoded, sph)
		}
	}
}

func TestFromBytes_TooShort(t *testing.T) {
	_, err := FromBytes([]byte{0x18, 0x02, 0xC0})
	var tooSmall *FromSliceTooSmallError
	if !errors.As(err, &tooSmall) {
		t.Fatalf("expected FromSliceTooSmallError, got %v", err)
	}
	if tooSmall.Expected != HeaderLen || tooSmall.Found != 3 {
		t.Errorf("got expected=%d found=%d", tooSmall.Expected, tooSmall.Found)
	}
}

func TestWriteToBytes_TooSmall(t *testing.T) {
	sph, _ := TcUnseg(1, 1, 0)
	err := sph.WriteToBytes(make([]byte, 5))
	var tooSmall *BufferTooSmallError
	if !errors.As(err, &tooSmall) {
		t.Fatalf("expected BufferTooSmallError, got %v", err)
	}
}

func TestAppendBytes_MatchesWrite(t *testing.T) {
	sph, _ := TcUnseg(0x123, 0x456, 0x789)
	prefix := []byte{0xAA}
	out := sph.AppendBytes(prefix)
	raw := sph.Bytes()
	if !bytes.Equal(out[1:], raw[:]) || out[0] != 0xAA {
		t.Errorf("AppendBytes = % X, want AA % X", out, raw)
	}
}

func TestTotalLen(t *testing.T) {
	sph, _ := TcUnseg(1, 1, 6)
	if sph.TotalLen() != 13 {
		t.Errorf("TotalLen() = %d, want 13", sph.TotalLen())
	}
}
