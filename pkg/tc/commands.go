// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tc

import (
	"fmt"

	"github.com/Thermoquad/pusstat/pkg/ccsds"
	"github.com/Thermoquad/pusstat/pkg/ecss"
	"github.com/Thermoquad/pusstat/pkg/timecode"
)

// Command builder functions create telecommands for common PUS requests.
// The data length field is always set.

// scheduledActivityCount is the number of activities in requests built here
const scheduledActivityCount = 1

// NewPing creates a TEST connection request (17,1).
// The receiver answers with a (17,2) report.
func NewPing(sph *ccsds.SpHeader) *PusTc {
	return NewSimple(sph, ecss.ServiceTest, ecss.SubserviceTestPing, nil, true)
}

// NewScheduledCommand creates a time-based schedule insert request (11,4)
// holding a single activity: inner, released at releaseTime.
//
// Application data layout: N (1 byte, always 1), CDS short release time
// (8 bytes), inner telecommand. Fails with ErrAppDataTooLong when the inner
// telecommand leaves no room for the schedule header.
func NewScheduledCommand(sph *ccsds.SpHeader, releaseTime timecode.CdsShort, inner *PusTc) (*PusTc, error) {
	if err := checkPacketLen(1 + timecode.CdsShortLen + inner.LenPacked()); err != nil {
		return nil, err
	}
	appData := make([]byte, 0, 1+timecode.CdsShortLen+inner.LenPacked())
	appData = append(appData, scheduledActivityCount)
	appData = releaseTime.AppendBytes(appData)
	appData, _, err := inner.AppendTo(appData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scheduled command: %w", err)
	}
	return NewSimple(sph, ecss.ServiceTimeScheduling, ecss.SubserviceSchedulingInsertActivity, appData, true), nil
}

// ParseScheduledCommand extracts the release time and inner telecommand from
// a request built by NewScheduledCommand. The inner packet borrows p's
// application data.
func ParseScheduledCommand(p *PusTc) (timecode.CdsShort, *PusTc, error) {
	if p.Service() != ecss.ServiceTimeScheduling || p.Subservice() != ecss.SubserviceSchedulingInsertActivity {
		return timecode.CdsShort{}, nil, ErrNotScheduledCommand
	}
	data := p.AppData()
	if len(data) < 1+timecode.CdsShortLen+MinLenWithoutAppData {
		return timecode.CdsShort{}, nil, &ecss.TooShortError{Found: len(data)}
	}
	if data[0] != scheduledActivityCount {
		return timecode.CdsShort{}, nil, fmt.Errorf("%w: %d activities", ErrNotScheduledCommand, data[0])
	}

	releaseTime, err := timecode.DecodeCdsShort(data[1:])
	if err != nil {
		return timecode.CdsShort{}, nil, err
	}
	inner, _, err := FromBytes(data[1+timecode.CdsShortLen:])
	if err != nil {
		return timecode.CdsShort{}, nil, err
	}
	return releaseTime, inner, nil
}
