// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tc

import (
	"encoding/binary"

	"github.com/Thermoquad/pusstat/pkg/ccsds"
	"github.com/Thermoquad/pusstat/pkg/ecss"
)

// crcProcedure picks the checksum to serialize: a fresh one over the written
// bytes in automatic mode, otherwise the cached one.
func (p *PusTc) crcProcedure(written []byte) (uint16, error) {
	if p.CalcCRCOnSerialization {
		return ecss.CalculateCRC(written), nil
	}
	if !p.crcSet {
		return 0, ecss.ErrCRCCalculationMissing
	}
	return p.crc16, nil
}

// WriteToBytes serializes the packet into buf and returns the number of
// bytes written. buf must hold at least LenPacked bytes.
func (p *PusTc) WriteToBytes(buf []byte) (int, error) {
	if err := checkPacketLen(len(p.appData)); err != nil {
		return 0, err
	}
	total := p.LenPacked()
	if len(buf) < total {
		return 0, &ccsds.BufferTooSmallError{Expected: total, Found: len(buf)}
	}
	if !p.CalcCRCOnSerialization && !p.crcSet {
		return 0, ecss.ErrCRCCalculationMissing
	}
	sec, err := p.secHeader.bytes()
	if err != nil {
		return 0, err
	}

	if err := p.spHeader.WriteToBytes(buf); err != nil {
		return 0, err
	}
	copy(buf[secondaryHeaderOffset:], sec[:])
	idx := appDataOffset
	if p.appData != nil {
		idx += copy(buf[idx:], p.appData)
	}

	crc, err := p.crcProcedure(buf[:idx])
	if err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint16(buf[idx:], crc)
	return idx + ecss.CRCLen, nil
}

// AppendTo appends the serialized packet to dst and returns the extended
// slice and the number of bytes appended. On error dst is returned unchanged.
func (p *PusTc) AppendTo(dst []byte) ([]byte, int, error) {
	if err := checkPacketLen(len(p.appData)); err != nil {
		return dst, 0, err
	}
	if !p.CalcCRCOnSerialization && !p.crcSet {
		return dst, 0, ecss.ErrCRCCalculationMissing
	}
	sec, err := p.secHeader.bytes()
	if err != nil {
		return dst, 0, err
	}

	start := len(dst)
	out := p.spHeader.AppendBytes(dst)
	out = append(out, sec[:]...)
	if p.appData != nil {
		out = append(out, p.appData...)
	}

	crc, err := p.crcProcedure(out[start:])
	if err != nil {
		return dst, 0, err
	}
	out = binary.BigEndian.AppendUint16(out, crc)
	return out, len(out) - start, nil
}

// Bytes returns the serialized packet in a new slice
func (p *PusTc) Bytes() ([]byte, error) {
	if err := checkPacketLen(len(p.appData)); err != nil {
		return nil, err
	}
	out, _, err := p.AppendTo(make([]byte, 0, p.LenPacked()))
	if err != nil {
		return nil, err
	}
	return out, nil
}
