// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ccsds

import (
	"errors"
	"fmt"
)

var (
	ErrAPIDOutOfRange     = errors.New("ccsds: apid out of range")
	ErrSeqCountOutOfRange = errors.New("ccsds: sequence count out of range")
)

// BufferTooSmallError is returned when a destination slice cannot hold the
// serialized form.
type BufferTooSmallError struct {
	Expected int
	Found    int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("ccsds: destination buffer too small: need %d bytes, have %d", e.Expected, e.Found)
}

// FromSliceTooSmallError is returned when a source slice is shorter than the
// structure being read from it.
type FromSliceTooSmallError struct {
	Expected int
	Found    int
}

func (e *FromSliceTooSmallError) Error() string {
	return fmt.Sprintf("ccsds: source buffer too small: need %d bytes, have %d", e.Expected, e.Found)
}
