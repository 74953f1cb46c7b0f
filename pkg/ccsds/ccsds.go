// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package ccsds implements the CCSDS Space Packet primary header.
//
// The primary header is the fixed 6-byte block at the start of every space
// packet. It carries the packet identification (version, type, secondary
// header flag, APID), the sequence control word and the packet data length.
package ccsds

import "encoding/binary"

// Header sizes and field limits
const (
	HeaderLen   = 6
	MaxAPID     = 0x7FF
	MaxSeqCount = 0x3FFF

	// IdleAPID is reserved for idle packets
	IdleAPID = 0x7FF
)

// PacketType distinguishes telemetry from telecommand packets
type PacketType uint8

// Packet type values
const (
	PacketTypeTm PacketType = 0
	PacketTypeTc PacketType = 1
)

func (t PacketType) String() string {
	if t == PacketTypeTc {
		return "TC"
	}
	return "TM"
}

// SequenceFlags describes the segmentation state of a packet
type SequenceFlags uint8

// Sequence flag values
const (
	SeqFlagsContinuation SequenceFlags = 0b00
	SeqFlagsFirst        SequenceFlags = 0b01
	SeqFlagsLast         SequenceFlags = 0b10
	SeqFlagsUnsegmented  SequenceFlags = 0b11
)

func (f SequenceFlags) String() string {
	switch f {
	case SeqFlagsContinuation:
		return "CONTINUATION"
	case SeqFlagsFirst:
		return "FIRST"
	case SeqFlagsLast:
		return "LAST"
	case SeqFlagsUnsegmented:
		return "UNSEGMENTED"
	default:
		return "UNKNOWN"
	}
}

// SpHeader is the decoded form of a space packet primary header.
// DataLen holds the raw length field: total packet length minus HeaderLen minus one.
type SpHeader struct {
	Version       uint8
	PacketType    PacketType
	SecHeaderFlag bool
	APID          uint16
	SeqFlags      SequenceFlags
	SeqCount      uint16
	DataLen       uint16
}

// NewSpHeader creates an unsegmented primary header. It returns ErrAPIDOutOfRange
// or ErrSeqCountOutOfRange when a field does not fit its bit width.
func NewSpHeader(ptype PacketType, apid uint16, seqCount uint16, dataLen uint16) (SpHeader, error) {
	if apid > MaxAPID {
		return SpHeader{}, ErrAPIDOutOfRange
	}
	if seqCount > MaxSeqCount {
		return SpHeader{}, ErrSeqCountOutOfRange
	}
	return SpHeader{
		PacketType: ptype,
		APID:       apid,
		SeqFlags:   SeqFlagsUnsegmented,
		SeqCount:   seqCount,
		DataLen:    dataLen,
	}, nil
}

// TcUnseg creates an unsegmented telecommand primary header
func TcUnseg(apid uint16, seqCount uint16, dataLen uint16) (SpHeader, error) {
	return NewSpHeader(PacketTypeTc, apid, seqCount, dataLen)
}

// TmUnseg creates an unsegmented telemetry primary header
func TmUnseg(apid uint16, seqCount uint16, dataLen uint16) (SpHeader, error) {
	return NewSpHeader(PacketTypeTm, apid, seqCount, dataLen)
}

// SetPacketType sets the packet type bit
func (h *SpHeader) SetPacketType(t PacketType) {
	h.PacketType = t
}

// SetSecHeaderFlag marks the secondary header as present
func (h *SpHeader) SetSecHeaderFlag() {
	h.SecHeaderFlag = true
}

// ClearSecHeaderFlag marks the secondary header as absent
func (h *SpHeader) ClearSecHeaderFlag() {
	h.SecHeaderFlag = false
}

// SetAPID returns false and leaves the header unchanged if apid exceeds MaxAPID
func (h *SpHeader) SetAPID(apid uint16) bool {
	if apid > MaxAPID {
		return false
	}
	h.APID = apid
	return true
}

// SetSeqCount returns false and leaves the header unchanged if count exceeds MaxSeqCount
func (h *SpHeader) SetSeqCount(count uint16) bool {
	if count > MaxSeqCount {
		return false
	}
	h.SeqCount = count
	return true
}

// SetSeqFlags sets the sequence flags
func (h *SpHeader) SetSeqFlags(flags SequenceFlags) {
	h.SeqFlags = flags & 0b11
}

// SetDataLen sets the raw packet data length field
func (h *SpHeader) SetDataLen(dataLen uint16) {
	h.DataLen = dataLen
}

// TotalLen returns the full packet length declared by the length field
func (h SpHeader) TotalLen() int {
	return int(h.DataLen) + HeaderLen + 1
}

// PacketID returns the first 16-bit word of the header
func (h SpHeader) PacketID() uint16 {
	id := uint16(h.Version&0b111)<<13 | uint16(h.PacketType&0b1)<<12 | h.APID&MaxAPID
	if h.SecHeaderFlag {
		id |= 1 << 11
	}
	return id
}

// PacketSeqCtrl returns the second 16-bit word of the header
func (h SpHeader) PacketSeqCtrl() uint16 {
	return uint16(h.SeqFlags&0b11)<<14 | h.SeqCount&MaxSeqCount
}

// WriteToBytes writes the 6-byte big-endian header into dst
func (h SpHeader) WriteToBytes(dst []byte) error {
	if len(dst) < HeaderLen {
		return &BufferTooSmallError{Expected: HeaderLen, Found: len(dst)}
	}
	binary.BigEndian.PutUint16(dst[0:2], h.PacketID())
	binary.BigEndian.PutUint16(dst[2:4], h.PacketSeqCtrl())
	binary.BigEndian.PutUint16(dst[4:6], h.DataLen)
	return nil
}

// AppendBytes appends the 6-byte big-endian header to dst
func (h SpHeader) AppendBytes(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint16(dst, h.PacketID())
	dst = binary.BigEndian.AppendUint16(dst, h.PacketSeqCtrl())
	return binary.BigEndian.AppendUint16(dst, h.DataLen)
}

// Bytes returns the 6-byte big-endian header
func (h SpHeader) Bytes() [HeaderLen]byte {
	var out [HeaderLen]byte
	_ = h.WriteToBytes(out[:])
	return out
}

// FromBytes parses a primary header from the first HeaderLen bytes of src
func FromBytes(src []byte) (SpHeader, error) {
	if len(src) < HeaderLen {
		return SpHeader{}, &FromSliceTooSmallError{Expected: HeaderLen, Found: len(src)}
	}
	id := binary.BigEndian.Uint16(src[0:2])
	seq := binary.BigEndian.Uint16(src[2:4])
	return SpHeader{
		Version:       uint8(id >> 13),
		PacketType:    PacketType((id >> 12) & 0b1),
		SecHeaderFlag: id&(1<<11) != 0,
		APID:          id & MaxAPID,
		SeqFlags:      SequenceFlags(seq >> 14),
		SeqCount:      seq & MaxSeqCount,
		DataLen:       binary.BigEndian.Uint16(src[4:6]),
	}, nil
}
