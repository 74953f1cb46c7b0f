// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tc

import (
	"fmt"

	"github.com/Thermoquad/pusstat/pkg/ccsds"
)

// AnomalyType represents different types of packet anomalies
type AnomalyType int

const (
	AnomalyNotTelecommand AnomalyType = iota
	AnomalyNoSecHeader
	AnomalyUnsupportedVersion
	AnomalyIdleAPID
	AnomalySegmented
	AnomalyZeroService
	AnomalyNoAckFlags
	AnomalyLengthMismatch
)

func (a AnomalyType) String() string {
	switch a {
	case AnomalyNotTelecommand:
		return "NOT_TELECOMMAND"
	case AnomalyNoSecHeader:
		return "NO_SECONDARY_HEADER"
	case AnomalyUnsupportedVersion:
		return "UNSUPPORTED_VERSION"
	case AnomalyIdleAPID:
		return "IDLE_APID"
	case AnomalySegmented:
		return "SEGMENTED"
	case AnomalyZeroService:
		return "ZERO_SERVICE"
	case AnomalyNoAckFlags:
		return "NO_ACK_FLAGS"
	case AnomalyLengthMismatch:
		return "LENGTH_MISMATCH"
	default:
		return "UNKNOWN"
	}
}

// ValidationError represents a packet that decoded correctly but carries
// suspicious field values
type ValidationError struct {
	Type    AnomalyType
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	return v.Message
}

// ValidatePacket checks a telecommand for anomalies.
// Returns a slice of validation errors (empty if packet is valid)
func ValidatePacket(p *PusTc) []ValidationError {
	errors := []ValidationError{}

	if p.PacketType() != ccsds.PacketTypeTc {
		errors = append(errors, ValidationError{
			Type:    AnomalyNotTelecommand,
			Message: "Packet type bit marks a telemetry packet",
			Details: map[string]interface{}{"packet_type": p.PacketType().String()},
		})
	}

	if !p.SecHeaderFlag() {
		errors = append(errors, ValidationError{
			Type:    AnomalyNoSecHeader,
			Message: "Secondary header flag not set",
		})
	}

	if p.PusVersion() != supportedPusVersion {
		errors = append(errors, ValidationError{
			Type:    AnomalyUnsupportedVersion,
			Message: fmt.Sprintf("PUS version %s is not supported", p.PusVersion()),
			Details: map[string]interface{}{"version": p.PusVersion().String()},
		})
	}

	if p.APID() == ccsds.IdleAPID {
		errors = append(errors, ValidationError{
			Type:    AnomalyIdleAPID,
			Message: fmt.Sprintf("APID 0x%03X is reserved for idle packets", p.APID()),
			Details: map[string]interface{}{"apid": p.APID()},
		})
	}

	if p.SeqFlags() != ccsds.SeqFlagsUnsegmented {
		errors = append(errors, ValidationError{
			Type:    AnomalySegmented,
			Message: fmt.Sprintf("Telecommand sequence flags are %s", p.SeqFlags()),
			Details: map[string]interface{}{"seq_flags": p.SeqFlags().String()},
		})
	}

	if p.Service() == 0 {
		errors = append(errors, ValidationError{
			Type:    AnomalyZeroService,
			Message: "Service type 0 is not defined",
		})
	}

	if p.AckFlags() == 0 {
		errors = append(errors, ValidationError{
			Type:    AnomalyNoAckFlags,
			Message: "No acknowledgements requested",
		})
	}

	if p.TotalLen() != p.LenPacked() {
		errors = append(errors, ValidationError{
			Type:    AnomalyLengthMismatch,
			Message: fmt.Sprintf("Length field declares %d bytes, packet has %d", p.TotalLen(), p.LenPacked()),
			Details: map[string]interface{}{"declared": p.TotalLen(), "actual": p.LenPacked()},
		})
	}

	return errors
}
