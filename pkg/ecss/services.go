// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ecss

// Standard PUS service types (ECSS-E-ST-70-41C)
const (
	ServiceRequestVerification = 1
	ServiceDeviceAccess        = 2
	ServiceHousekeeping        = 3
	ServiceParameterStatistics = 4
	ServiceEventReporting      = 5
	ServiceMemoryManagement    = 6
	ServiceFunctionManagement  = 8
	ServiceTimeManagement      = 9
	ServiceTimeScheduling      = 11
	ServiceOnboardMonitoring   = 12
	ServiceLargePacketTransfer = 13
	ServiceRealTimeForwarding  = 14
	ServiceOnboardStorage      = 15
	ServiceTest                = 17
	ServiceOnboardProcedures   = 18
	ServiceEventAction         = 19
	ServiceParameterManagement = 20
	ServiceRequestSequencing   = 21
	ServicePositionScheduling  = 22
	ServiceFileManagement      = 23
)

// Subservices used by the command builders
const (
	SubserviceTestPing                 = 1
	SubserviceSchedulingInsertActivity = 4
)

// ServiceName returns the human-readable name for a PUS service type
func ServiceName(service uint8) string {
	switch service {
	case ServiceRequestVerification:
		return "REQUEST_VERIFICATION"
	case ServiceDeviceAccess:
		return "DEVICE_ACCESS"
	case ServiceHousekeeping:
		return "HOUSEKEEPING"
	case ServiceParameterStatistics:
		return "PARAMETER_STATISTICS"
	case ServiceEventReporting:
		return "EVENT_REPORTING"
	case ServiceMemoryManagement:
		return "MEMORY_MANAGEMENT"
	case ServiceFunctionManagement:
		return "FUNCTION_MANAGEMENT"
	case ServiceTimeManagement:
		return "TIME_MANAGEMENT"
	case ServiceTimeScheduling:
		return "TIME_BASED_SCHEDULING"
	case ServiceOnboardMonitoring:
		return "ONBOARD_MONITORING"
	case ServiceLargePacketTransfer:
		return "LARGE_PACKET_TRANSFER"
	case ServiceRealTimeForwarding:
		return "REAL_TIME_FORWARDING"
	case ServiceOnboardStorage:
		return "ONBOARD_STORAGE"
	case ServiceTest:
		return "TEST"
	case ServiceOnboardProcedures:
		return "ONBOARD_PROCEDURES"
	case ServiceEventAction:
		return "EVENT_ACTION"
	case ServiceParameterManagement:
		return "PARAMETER_MANAGEMENT"
	case ServiceRequestSequencing:
		return "REQUEST_SEQUENCING"
	case ServicePositionScheduling:
		return "POSITION_BASED_SCHEDULING"
	case ServiceFileManagement:
		return "FILE_MANAGEMENT"
	default:
		return "UNKNOWN"
	}
}
