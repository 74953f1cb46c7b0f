// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package timecode implements CCSDS time codes (CCSDS 301.0-B-4).
//
// Only the CDS short format is provided: a 1-byte p-field, a 16-bit day
// count since the CCSDS epoch (1958-01-01), one reserved byte and a 32-bit
// millisecond-of-day count.
package timecode

import (
	"errors"
	"math"
	"time"
)

// Time code constants
const (
	CdsShortLen     = 8
	DaysCCSDSToUnix = -4383
	SecondsPerDay   = 86400
	MsPerDay        = SecondsPerDay * 1000
	MaxMsOfDay      = MsPerDay - 1
)

// CcsdsTimeCode is the time code identification carried in bits 6-4 of the p-field
type CcsdsTimeCode uint8

// Time code identification values
const (
	TimeCodeNone           CcsdsTimeCode = 0
	TimeCodeCucCcsdsEpoch  CcsdsTimeCode = 0b001
	TimeCodeCucAgencyEpoch CcsdsTimeCode = 0b010
	TimeCodeCds            CcsdsTimeCode = 0b100
	TimeCodeCcs            CcsdsTimeCode = 0b101
)

func (c CcsdsTimeCode) String() string {
	switch c {
	case TimeCodeNone:
		return "NONE"
	case TimeCodeCucCcsdsEpoch:
		return "CUC_CCSDS_EPOCH"
	case TimeCodeCucAgencyEpoch:
		return "CUC_AGENCY_EPOCH"
	case TimeCodeCds:
		return "CDS"
	case TimeCodeCcs:
		return "CCS"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrMsOfDayOutOfRange = errors.New("timecode: millisecond of day out of range")
	ErrDaysOutOfRange    = errors.New("timecode: day count does not fit CDS short format")
	ErrUnexpectedPField  = errors.New("timecode: p-field is not a CDS short time code")
)

// UnixToCCSDSDays converts days since the UNIX epoch to days since the CCSDS epoch
func UnixToCCSDSDays(unixDays int64) int64 {
	return unixDays - DaysCCSDSToUnix
}

// CCSDSToUnixDays converts days since the CCSDS epoch to days since the UNIX epoch
func CCSDSToUnixDays(ccsdsDays int64) int64 {
	return ccsdsDays + DaysCCSDSToUnix
}

// SecondsSinceEpoch returns the current UNIX time in fractional seconds
func SecondsSinceEpoch() float64 {
	now := time.Now()
	return float64(now.Unix()) + float64(now.Nanosecond())/1e9
}

// MsOfDay returns the millisecond of the day for a UNIX time in fractional
// seconds. The result is truncated to whole milliseconds.
func MsOfDay(secondsSinceEpoch float64) uint32 {
	whole := math.Floor(secondsSinceEpoch)
	fractionMs := (secondsSinceEpoch - whole) * 1000
	secOfDay := math.Mod(whole, SecondsPerDay)
	if secOfDay < 0 {
		secOfDay += SecondsPerDay
	}
	ms := uint32(math.Floor(secOfDay*1000 + fractionMs))
	if ms > MaxMsOfDay {
		ms = MaxMsOfDay
	}
	return ms
}

// MsOfDayUsingSysclock returns the current millisecond of the day
func MsOfDayUsingSysclock() uint32 {
	return MsOfDay(SecondsSinceEpoch())
}
