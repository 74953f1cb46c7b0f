// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tc

import (
	"errors"
	"fmt"
)

// ErrNotScheduledCommand is returned when parsing a packet that is not a
// time-based schedule insert request
var ErrNotScheduledCommand = errors.New("tc: not a time-based schedule insert request")

// ErrAppDataTooLong is returned when the application data does not fit the
// 16-bit length field of the primary header.
var ErrAppDataTooLong = errors.New("tc: application data too long")

// checkPacketLen fails when a packet of the given application data length
// cannot be represented on the wire
func checkPacketLen(appDataLen int) error {
	if appDataLen > MaxAppDataLen {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrAppDataTooLong, appDataLen, MaxAppDataLen)
	}
	return nil
}
