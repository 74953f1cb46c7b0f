// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package ecss holds definitions shared by ECSS PUS packets: the PUS version
// field, the CRC-16/CCITT-FALSE packet error control and the error kinds
// returned by the packet codecs.
package ecss

// CRCLen is the size of the packet error control trailer
const CRCLen = 2

// CRC-16/CCITT-FALSE configuration
const (
	crcPolynomial = 0x1021
	crcInitial    = 0xFFFF
)

// PusVersion is the 4-bit version field of a PUS secondary header
type PusVersion uint8

// PUS version values
const (
	EsaPus     PusVersion = 0
	PusA       PusVersion = 1
	PusC       PusVersion = 2
	PusInvalid PusVersion = 0xFF
)

// PusVersionFromNibble maps a raw version nibble to a known version.
// Unknown values map to PusInvalid.
func PusVersionFromNibble(v uint8) PusVersion {
	switch PusVersion(v & 0b1111) {
	case EsaPus:
		return EsaPus
	case PusA:
		return PusA
	case PusC:
		return PusC
	default:
		return PusInvalid
	}
}

func (v PusVersion) String() string {
	switch v {
	case EsaPus:
		return "ESA_PUS"
	case PusA:
		return "PUS_A"
	case PusC:
		return "PUS_C"
	default:
		return "INVALID"
	}
}
