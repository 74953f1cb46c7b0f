// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package tc implements ECSS PUS-C telecommand packets.
//
// A telecommand is a CCSDS space packet with the secondary header flag set,
// a 5-byte PUS-C data field header, optional application data and a
// CRC-16/CCITT-FALSE packet error control trailer:
//
//	+--------+---------+------------+-----------+----------+----------+---------+
//	| 6 byte | 1 byte  | 1 byte     | 1 byte    | 2 byte   | N byte   | 2 byte  |
//	| SP hdr | ver|ack | service    | subserv.  | sourceID | app data | CRC16   |
//	+--------+---------+------------+-----------+----------+----------+---------+
//
// All multi-byte fields are big-endian.
package tc

import (
	"github.com/Thermoquad/pusstat/pkg/ccsds"
	"github.com/Thermoquad/pusstat/pkg/ecss"
)

// Packet size constants
const (
	SecondaryHeaderLen    = 5
	MinLenWithoutAppData  = ccsds.HeaderLen + SecondaryHeaderLen + ecss.CRCLen
	MaxPacketLen          = 0xFFFF + ccsds.HeaderLen + 1
	MaxAppDataLen         = MaxPacketLen - MinLenWithoutAppData
	secondaryHeaderOffset = ccsds.HeaderLen
	appDataOffset         = ccsds.HeaderLen + SecondaryHeaderLen
	supportedPusVersion   = ecss.PusC
)

// Acknowledgement flags (bits 3-0 of the first secondary header byte)
const (
	AckAcceptance = 0b1000
	AckStart      = 0b0100
	AckProgress   = 0b0010
	AckCompletion = 0b0001
	AckAll        = AckAcceptance | AckStart | AckProgress | AckCompletion
)
