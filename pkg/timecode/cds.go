// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package timecode

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/Thermoquad/pusstat/pkg/ccsds"
)

// cdsShortPField is the p-field of a CDS time code with a 16-bit day segment
// and no sub-millisecond segment.
const cdsShortPField = uint8(TimeCodeCds) << 4

// Field offsets in the encoded timestamp. The byte between the day and the
// millisecond segments is reserved: written as zero, ignored on decode.
const (
	cdsDaysOffset     = 1
	cdsReservedOffset = 3
	cdsMsOffset       = 4
)

// CdsShort is a CDS short timestamp. It is immutable: the UNIX seconds and
// calendar time are derived once at construction.
type CdsShort struct {
	pField      uint8
	ccsdsDays   uint16
	msOfDay     uint32
	unixSeconds int64
	dateTime    time.Time
}

// NewCdsShort creates a timestamp from a day count since 1958-01-01 and a
// millisecond of that day.
func NewCdsShort(ccsdsDays uint16, msOfDay uint32) (CdsShort, error) {
	if msOfDay > MaxMsOfDay {
		return CdsShort{}, fmt.Errorf("%w: %d", ErrMsOfDayOutOfRange, msOfDay)
	}
	unixDaysSeconds := CCSDSToUnixDays(int64(ccsdsDays)) * SecondsPerDay
	return newCdsShort(ccsdsDays, msOfDay, unixDaysSeconds), nil
}

// newCdsShort derives the cached fields. The day and millisecond parts are
// independent and always added, so pre-1970 days still move forward within
// the day.
func newCdsShort(ccsdsDays uint16, msOfDay uint32, unixDaysSeconds int64) CdsShort {
	unixSeconds := unixDaysSeconds + int64(msOfDay/1000)
	nsOfSecond := int64(msOfDay%1000) * int64(time.Millisecond)
	return CdsShort{
		pField:      cdsShortPField,
		ccsdsDays:   ccsdsDays,
		msOfDay:     msOfDay,
		unixSeconds: unixSeconds,
		dateTime:    time.Unix(unixSeconds, nsOfSecond).UTC(),
	}
}

// CdsShortFromTime creates a timestamp for t, truncated to the millisecond.
// Times before 1958-01-01 or after the 16-bit day range fail.
func CdsShortFromTime(t time.Time) (CdsShort, error) {
	epoch := t.Unix()
	secOfDay := epoch % SecondsPerDay
	if secOfDay < 0 {
		secOfDay += SecondsPerDay
	}
	unixDaysSeconds := epoch - secOfDay
	ccsdsDays := UnixToCCSDSDays(unixDaysSeconds / SecondsPerDay)
	if ccsdsDays < 0 || ccsdsDays > 0xFFFF {
		return CdsShort{}, fmt.Errorf("%w: %s", ErrDaysOutOfRange, t.UTC().Format(time.RFC3339))
	}
	msOfDay := uint32(secOfDay)*1000 + uint32(t.Nanosecond()/int(time.Millisecond))
	return newCdsShort(uint16(ccsdsDays), msOfDay, unixDaysSeconds), nil
}

// CdsShortFromNow creates a timestamp for the current system time
func CdsShortFromNow() (CdsShort, error) {
	return CdsShortFromTime(time.Now())
}

// DecodeCdsShort parses a timestamp from the first CdsShortLen bytes of src
func DecodeCdsShort(src []byte) (CdsShort, error) {
	if len(src) < CdsShortLen {
		return CdsShort{}, &ccsds.FromSliceTooSmallError{Expected: CdsShortLen, Found: len(src)}
	}
	if CcsdsTimeCode((src[0]>>4)&0b111) != TimeCodeCds {
		return CdsShort{}, fmt.Errorf("%w: 0x%02X", ErrUnexpectedPField, src[0])
	}
	days := binary.BigEndian.Uint16(src[cdsDaysOffset:cdsReservedOffset])
	ms := binary.BigEndian.Uint32(src[cdsMsOffset:CdsShortLen])
	return NewCdsShort(days, ms)
}

// Len returns the serialized length
func (c CdsShort) Len() int {
	return CdsShortLen
}

// WriteToBytes writes the encoded timestamp into the first CdsShortLen bytes of dst
func (c CdsShort) WriteToBytes(dst []byte) error {
	if len(dst) < CdsShortLen {
		return &ccsds.BufferTooSmallError{Expected: CdsShortLen, Found: len(dst)}
	}
	dst[0] = c.pField
	binary.BigEndian.PutUint16(dst[cdsDaysOffset:cdsReservedOffset], c.ccsdsDays)
	dst[cdsReservedOffset] = 0
	binary.BigEndian.PutUint32(dst[cdsMsOffset:CdsShortLen], c.msOfDay)
	return nil
}

// AppendBytes appends the encoded timestamp to dst
func (c CdsShort) AppendBytes(dst []byte) []byte {
	dst = append(dst, c.pField)
	dst = binary.BigEndian.AppendUint16(dst, c.ccsdsDays)
	dst = append(dst, 0)
	return binary.BigEndian.AppendUint32(dst, c.msOfDay)
}

// PField returns the p-field byte
func (c CdsShort) PField() uint8 {
	return c.pField
}

// TimeCode returns the time code identification
func (c CdsShort) TimeCode() CcsdsTimeCode {
	return TimeCodeCds
}

// CCSDSDays returns the day count since 1958-01-01
func (c CdsShort) CCSDSDays() uint16 {
	return c.ccsdsDays
}

// MsOfDay returns the millisecond of the day
func (c CdsShort) MsOfDay() uint32 {
	return c.msOfDay
}

// UnixSeconds returns whole seconds since 1970-01-01
func (c CdsShort) UnixSeconds() int64 {
	return c.unixSeconds
}

// DateTime returns the calendar time in UTC
func (c CdsShort) DateTime() time.Time {
	return c.dateTime
}

func (c CdsShort) String() string {
	return c.dateTime.Format("2006-01-02T15:04:05.000Z")
}
