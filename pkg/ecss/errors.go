// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ecss

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedVersion    = errors.New("ecss: pus version not supported")
	ErrCRCCalculationMissing = errors.New("ecss: crc16 not calculated and automatic calculation disabled")
)

// TooShortError is returned when raw input is shorter than the structure it
// claims to contain.
type TooShortError struct {
	Found int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("ecss: raw data too short: %d bytes", e.Found)
}

// ChecksumMismatchError is returned when the packet error control does not
// match the contents. Expected is the recomputed value, Found the trailer.
type ChecksumMismatchError struct {
	Expected uint16
	Found    uint16
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("ecss: crc mismatch: expected 0x%04X, got 0x%04X", e.Expected, e.Found)
}

// UnsupportedVersionError wraps a version that cannot be serialized
func UnsupportedVersionError(v PusVersion) error {
	return fmt.Errorf("%w: %s (0x%X)", ErrUnsupportedVersion, v, uint8(v))
}
