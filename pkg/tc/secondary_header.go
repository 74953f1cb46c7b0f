// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tc

import (
	"encoding/binary"

	"github.com/Thermoquad/pusstat/pkg/ccsds"
	"github.com/Thermoquad/pusstat/pkg/ecss"
)

// SecondaryHeader is the PUS-C telecommand data field header
type SecondaryHeader struct {
	Service    uint8
	Subservice uint8
	SourceID   uint16
	Ack        uint8
	Version    ecss.PusVersion
}

// NewSecondaryHeader creates a PUS-C header. Only the low 4 bits of ack are kept.
func NewSecondaryHeader(service, subservice, ack uint8, sourceID uint16) SecondaryHeader {
	return SecondaryHeader{
		Service:    service,
		Subservice: subservice,
		SourceID:   sourceID,
		Ack:        ack & 0b1111,
		Version:    supportedPusVersion,
	}
}

// NewSimpleSecondaryHeader creates a PUS-C header requesting all acknowledgements
func NewSimpleSecondaryHeader(service, subservice uint8) SecondaryHeader {
	return NewSecondaryHeader(service, subservice, AckAll, 0)
}

// bytes renders the header. Only PUS-C headers can be serialized.
func (h SecondaryHeader) bytes() ([SecondaryHeaderLen]byte, error) {
	var out [SecondaryHeaderLen]byte
	if h.Version != supportedPusVersion {
		return out, ecss.UnsupportedVersionError(h.Version)
	}
	out[0] = uint8(h.Version)<<4 | h.Ack&0b1111
	out[1] = h.Service
	out[2] = h.Subservice
	binary.BigEndian.PutUint16(out[3:5], h.SourceID)
	return out, nil
}

// WriteToBytes writes the 5-byte header into dst
func (h SecondaryHeader) WriteToBytes(dst []byte) error {
	if len(dst) < SecondaryHeaderLen {
		return &ccsds.BufferTooSmallError{Expected: SecondaryHeaderLen, Found: len(dst)}
	}
	raw, err := h.bytes()
	if err != nil {
		return err
	}
	copy(dst, raw[:])
	return nil
}

// DecodeSecondaryHeader parses a header from the first 5 bytes of src.
// The version nibble is reported, not validated: unknown values decode
// as ecss.PusInvalid.
func DecodeSecondaryHeader(src []byte) (SecondaryHeader, error) {
	if len(src) < SecondaryHeaderLen {
		return SecondaryHeader{}, &ecss.TooShortError{Found: len(src)}
	}
	return SecondaryHeader{
		Version:    ecss.PusVersionFromNibble(src[0] >> 4),
		Ack:        src[0] & 0b1111,
		Service:    src[1],
		Subservice: src[2],
		SourceID:   binary.BigEndian.Uint16(src[3:5]),
	}, nil
}
