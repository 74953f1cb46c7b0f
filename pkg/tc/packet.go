// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tc

import (
	"bytes"

	"github.com/Thermoquad/pusstat/pkg/ccsds"
	"github.com/Thermoquad/pusstat/pkg/ecss"
)

// PusTc is a PUS-C telecommand packet.
//
// The application data slice is borrowed, not copied: it must stay valid and
// unmodified for as long as the packet is used. Packets produced by FromBytes
// borrow from the decoded buffer in the same way.
type PusTc struct {
	spHeader  ccsds.SpHeader
	secHeader SecondaryHeader

	// CalcCRCOnSerialization controls whether WriteToBytes and AppendTo compute
	// the checksum. When false, CalcOwnCRC16 or UpdatePacketFields must be
	// called first so a cached value exists.
	CalcCRCOnSerialization bool

	rawData []byte
	appData []byte
	crc16   uint16
	crcSet  bool
}

// New creates a telecommand. The packet type and secondary header flag of sph
// are forced to telecommand values; the caller's header is updated too. When
// setCCSDSLen is true the data length field is set from the packet size.
func New(sph *ccsds.SpHeader, sec SecondaryHeader, appData []byte, setCCSDSLen bool) *PusTc {
	sph.SetPacketType(ccsds.PacketTypeTc)
	sph.SetSecHeaderFlag()
	p := &PusTc{
		spHeader:               *sph,
		secHeader:              sec,
		appData:                appData,
		CalcCRCOnSerialization: true,
	}
	if setCCSDSLen {
		p.UpdateCCSDSDataLen()
	}
	return p
}

// NewSimple creates a telecommand requesting all acknowledgements with source ID 0
func NewSimple(sph *ccsds.SpHeader, service, subservice uint8, appData []byte, setCCSDSLen bool) *PusTc {
	return New(sph, NewSecondaryHeader(service, subservice, AckAll, 0), appData, setCCSDSLen)
}

// SpHeader returns a copy of the primary header
func (p *PusTc) SpHeader() ccsds.SpHeader {
	return p.spHeader
}

// SecHeader returns a copy of the secondary header
func (p *PusTc) SecHeader() SecondaryHeader {
	return p.secHeader
}

// LenPacked returns the serialized size in bytes
func (p *PusTc) LenPacked() int {
	return MinLenWithoutAppData + len(p.appData)
}

// SetAckField sets the acknowledgement flags. Values above 0b1111 are rejected.
func (p *PusTc) SetAckField(ack uint8) bool {
	if ack > 0b1111 {
		return false
	}
	p.secHeader.Ack = ack
	return true
}

// SetSourceID sets the source ID
func (p *PusTc) SetSourceID(sourceID uint16) {
	p.secHeader.SourceID = sourceID
}

// SetAPID sets the APID, returning false if it does not fit in 11 bits
func (p *PusTc) SetAPID(apid uint16) bool {
	return p.spHeader.SetAPID(apid)
}

// SetSeqCount sets the sequence count, returning false if it does not fit in 14 bits
func (p *PusTc) SetSeqCount(count uint16) bool {
	return p.spHeader.SetSeqCount(count)
}

// SetSeqFlags sets the sequence flags
func (p *PusTc) SetSeqFlags(flags ccsds.SequenceFlags) {
	p.spHeader.SetSeqFlags(flags)
}

// UpdateCCSDSDataLen sets the primary header length field from the packet size.
// It must be called whenever the application data changes after construction
// unless New was called with setCCSDSLen. The field wraps for application data
// above MaxAppDataLen; the encoders reject such packets.
func (p *PusTc) UpdateCCSDSDataLen() {
	p.spHeader.SetDataLen(uint16(p.LenPacked() - ccsds.HeaderLen - 1))
}

// CalcOwnCRC16 computes and caches the checksum over the current fields. It
// fails only if the secondary header version cannot be serialized.
func (p *PusTc) CalcOwnCRC16() error {
	sec, err := p.secHeader.bytes()
	if err != nil {
		return err
	}
	sph := p.spHeader.Bytes()
	d := ecss.NewDigest()
	d.Write(sph[:])
	d.Write(sec[:])
	if p.appData != nil {
		d.Write(p.appData)
	}
	p.crc16 = d.Sum16()
	p.crcSet = true
	return nil
}

// UpdatePacketFields updates the length field and then the cached checksum
func (p *PusTc) UpdatePacketFields() error {
	p.UpdateCCSDSDataLen()
	return p.CalcOwnCRC16()
}

// RawBytes returns the exact bytes the packet was decoded from, or nil if it
// was built with New.
func (p *PusTc) RawBytes() []byte {
	return p.rawData
}

// AppData returns the application data, or nil if there is none
func (p *PusTc) AppData() []byte {
	return p.appData
}

// CRC16 returns the cached checksum and whether one has been computed
func (p *PusTc) CRC16() (uint16, bool) {
	return p.crc16, p.crcSet
}

// Equal reports whether both packets carry the same primary header, secondary
// header and application data. The cached checksum and raw bytes are ignored.
func (p *PusTc) Equal(other *PusTc) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.spHeader == other.spHeader &&
		p.secHeader == other.secHeader &&
		bytes.Equal(p.appData, other.appData)
}

// Primary header accessors

func (p *PusTc) PacketType() ccsds.PacketType { return p.spHeader.PacketType }
func (p *PusTc) SecHeaderFlag() bool { return p.spHeader.SecHeaderFlag }
func (p *PusTc) APID() uint16 { return p.spHeader.APID }
func (p *PusTc) SeqFlags() ccsds.SequenceFlags { return p.spHeader.SeqFlags }
func (p *PusTc) SeqCount() uint16 { return p.spHeader.SeqCount }
func (p *PusTc) DataLen() uint16 { return p.spHeader.DataLen }
func (p *PusTc) TotalLen() int { return p.spHeader.TotalLen() }

// Secondary header accessors

func (p *PusTc) PusVersion() ecss.PusVersion { return p.secHeader.Version }
func (p *PusTc) Service() uint8 { return p.secHeader.Service }
func (p *PusTc) Subservice() uint8 { return p.secHeader.Subservice }
func (p *PusTc) SourceID() uint16 { return p.secHeader.SourceID }
func (p *PusTc) AckFlags() uint8 { return p.secHeader.Ack }
