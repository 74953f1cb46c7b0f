// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ecss

import "encoding/binary"

var crcTable = func() [256]uint16 {
	var table [256]uint16
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}()

// Digest computes CRC-16/CCITT-FALSE incrementally over one or more spans.
// The zero value is not ready for use; call NewDigest.
type Digest struct {
	crc uint16
}

// NewDigest creates a digest seeded with the initial value 0xFFFF
func NewDigest() *Digest {
	return &Digest{crc: crcInitial}
}

// Write folds p into the running checksum. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	crc := d.crc
	for _, b := range p {
		crc = (crc << 8) ^ crcTable[byte(crc>>8)^b]
	}
	d.crc = crc
	return len(p), nil
}

// Sum16 returns the checksum of everything written so far
func (d *Digest) Sum16() uint16 {
	return d.crc
}

// Reset restores the initial value
func (d *Digest) Reset() {
	d.crc = crcInitial
}

// CalculateCRC computes the checksum over the given spans in order
func CalculateCRC(spans ...[]byte) uint16 {
	d := NewDigest()
	for _, span := range spans {
		d.Write(span)
	}
	return d.Sum16()
}

// CRCFromRaw reads the big-endian checksum trailer at the end of raw
func CRCFromRaw(raw []byte) (uint16, error) {
	if len(raw) < CRCLen {
		return 0, &TooShortError{Found: len(raw)}
	}
	return binary.BigEndian.Uint16(raw[len(raw)-CRCLen:]), nil
}

// VerifyCRC recomputes the checksum over raw without its trailer and compares
// it with the trailer. A mismatch yields a *ChecksumMismatchError.
func VerifyCRC(raw []byte) error {
	found, err := CRCFromRaw(raw)
	if err != nil {
		return err
	}
	expected := CalculateCRC(raw[:len(raw)-CRCLen])
	if expected != found {
		return &ChecksumMismatchError{Expected: expected, Found: found}
	}
	return nil
}
