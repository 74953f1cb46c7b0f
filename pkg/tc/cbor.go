// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tc

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/Thermoquad/pusstat/pkg/ccsds"
	"github.com/Thermoquad/pusstat/pkg/ecss"
)

// cborPacket is the structured CBOR form of a telecommand. Raw bytes and the
// cached checksum are not part of it.
type cborPacket struct {
	APID                   uint16 `cbor:"0,keyasint"`
	SeqFlags               uint8  `cbor:"1,keyasint"`
	SeqCount               uint16 `cbor:"2,keyasint"`
	DataLen                uint16 `cbor:"3,keyasint"`
	Version                uint8  `cbor:"4,keyasint"`
	Ack                    uint8  `cbor:"5,keyasint"`
	Service                uint8  `cbor:"6,keyasint"`
	Subservice             uint8  `cbor:"7,keyasint"`
	SourceID               uint16 `cbor:"8,keyasint"`
	AppData                []byte `cbor:"9,keyasint,omitempty"`
	CalcCRCOnSerialization bool   `cbor:"10,keyasint"`
	SpVersion              uint8  `cbor:"11,keyasint,omitempty"`
}

// MarshalCBOR implements cbor.Marshaler
func (p *PusTc) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cborPacket{
		APID:                   p.spHeader.APID,
		SeqFlags:               uint8(p.spHeader.SeqFlags),
		SeqCount:               p.spHeader.SeqCount,
		DataLen:                p.spHeader.DataLen,
		Version:                uint8(p.secHeader.Version),
		Ack:                    p.secHeader.Ack,
		Service:                p.secHeader.Service,
		Subservice:             p.secHeader.Subservice,
		SourceID:               p.secHeader.SourceID,
		AppData:                p.appData,
		CalcCRCOnSerialization: p.CalcCRCOnSerialization,
		SpVersion:              p.spHeader.Version,
	})
}

// UnmarshalCBOR implements cbor.Unmarshaler. The packet owns its application
// data afterwards and has no cached checksum.
func (p *PusTc) UnmarshalCBOR(data []byte) error {
	var c cborPacket
	if err := cbor.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("failed to decode CBOR: %w", err)
	}
	if c.APID > ccsds.MaxAPID {
		return ccsds.ErrAPIDOutOfRange
	}
	if c.SeqCount > ccsds.MaxSeqCount {
		return ccsds.ErrSeqCountOutOfRange
	}
	if c.Ack > 0b1111 {
		return fmt.Errorf("ack flags out of range: 0x%X", c.Ack)
	}

	var appData []byte
	if len(c.AppData) > 0 {
		appData = c.AppData
	}

	*p = PusTc{
		spHeader: ccsds.SpHeader{
			Version:       c.SpVersion & 0b111,
			PacketType:    ccsds.PacketTypeTc,
			SecHeaderFlag: true,
			APID:          c.APID,
			SeqFlags:      ccsds.SequenceFlags(c.SeqFlags & 0b11),
			SeqCount:      c.SeqCount,
			DataLen:       c.DataLen,
		},
		secHeader: SecondaryHeader{
			Service:    c.Service,
			Subservice: c.Subservice,
			SourceID:   c.SourceID,
			Ack:        c.Ack,
			Version:    ecss.PusVersionFromNibble(c.Version),
		},
		appData:                appData,
		CalcCRCOnSerialization: c.CalcCRCOnSerialization,
	}
	return nil
}

// DecodeCBOR creates a telecommand from its CBOR form
func DecodeCBOR(data []byte) (*PusTc, error) {
	p := &PusTc{}
	if err := p.UnmarshalCBOR(data); err != nil {
		return nil, err
	}
	return p, nil
}
