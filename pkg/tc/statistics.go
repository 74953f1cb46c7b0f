// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tc

import (
	"errors"
	"fmt"
	"time"

	"github.com/Thermoquad/pusstat/pkg/ecss"
)

// Statistics tracks decode results over a batch of packets
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	TotalPackets    uint64
	ValidPackets    uint64
	ChecksumErrors  uint64
	TooShort        uint64
	DecodeErrors    uint64
	AnomalousPkts   uint64
	VersionErrors   uint64
	LengthMismatch  uint64
	TotalBytes      uint64
	ServiceCounters map[uint8]uint64
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:       now,
		LastUpdateTime:  now,
		ServiceCounters: make(map[uint8]uint64),
	}
}

// Update records one decode attempt. p may be nil when decodeErr is set.
func (s *Statistics) Update(p *PusTc, decodeErr error, validationErrors []ValidationError) {
	s.TotalPackets++
	s.LastUpdateTime = time.Now()

	if decodeErr != nil {
		var mismatch *ecss.ChecksumMismatchError
		var tooShort *ecss.TooShortError
		switch {
		case errors.As(decodeErr, &mismatch):
			s.ChecksumErrors++
		case errors.As(decodeErr, &tooShort):
			s.TooShort++
		default:
			s.DecodeErrors++
		}
		return
	}

	s.TotalBytes += uint64(p.LenPacked())
	s.ServiceCounters[p.Service()]++

	if len(validationErrors) == 0 {
		s.ValidPackets++
		return
	}

	s.AnomalousPkts++
	for _, err := range validationErrors {
		switch err.Type {
		case AnomalyUnsupportedVersion:
			s.VersionErrors++
		case AnomalyLengthMismatch:
			s.LengthMismatch++
		}
	}
}

// FailedPackets returns the number of packets that did not decode
func (s *Statistics) FailedPackets() uint64 {
	return s.ChecksumErrors + s.TooShort + s.DecodeErrors
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	var validPercent, failedPercent float64
	if s.TotalPackets > 0 {
		validPercent = float64(s.ValidPackets) * 100.0 / float64(s.TotalPackets)
		failedPercent = float64(s.FailedPackets()) * 100.0 / float64(s.TotalPackets)
	}

	result := "=== Statistics ===\n"
	result += fmt.Sprintf("Total Packets:   %8d\n", s.TotalPackets)
	result += fmt.Sprintf("Valid Packets:   %8d (%.1f%%)\n", s.ValidPackets, validPercent)

	if s.FailedPackets() > 0 {
		result += fmt.Sprintf("Failed Packets:  %8d (%.1f%%)\n", s.FailedPackets(), failedPercent)
		if s.ChecksumErrors > 0 {
			result += fmt.Sprintf("  CRC Errors:       %5d\n", s.ChecksumErrors)
		}
		if s.TooShort > 0 {
			result += fmt.Sprintf("  Too Short:        %5d\n", s.TooShort)
		}
		if s.DecodeErrors > 0 {
			result += fmt.Sprintf("  Other:            %5d\n", s.DecodeErrors)
		}
	}
	if s.AnomalousPkts > 0 {
		result += fmt.Sprintf("Anomalous Pkts:  %8d\n", s.AnomalousPkts)
		if s.VersionErrors > 0 {
			result += fmt.Sprintf("  Bad Version:      %5d\n", s.VersionErrors)
		}
		if s.LengthMismatch > 0 {
			result += fmt.Sprintf("  Length Mismatch:  %5d\n", s.LengthMismatch)
		}
	}
	result += fmt.Sprintf("Total Bytes:     %8d\n", s.TotalBytes)
	result += "==================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	*s = *NewStatistics()
}
