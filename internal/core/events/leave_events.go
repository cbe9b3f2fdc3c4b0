package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeLeaveApplied  = "leave.applied"
	EventTypeLeaveApproved = "leave.approved"
	EventTypeLeaveRejected = "leave.rejected"
)

type LeaveAppliedEvent struct {
	BaseEvent
	RequestID   string `json:"request_id"`
	EmployeeID  int64  `json:"employee_id"`
	LeaveType   string `json:"leave_type"`
	AppliedDays int    `json:"applied_days"`
}

func NewLeaveAppliedEvent(requestID string, employeeID int64, leaveType string, appliedDays int) *LeaveAppliedEvent {
	return &LeaveAppliedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveApplied,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id":   requestID,
				"employee_id":  employeeID,
				"leave_type":   leaveType,
				"applied_days": appliedDays,
			},
		},
		RequestID:   requestID,
		EmployeeID:  employeeID,
		LeaveType:   leaveType,
		AppliedDays: appliedDays,
	}
}

type LeaveStatusChangedEvent struct {
	BaseEvent
	RequestID       string `json:"request_id"`
	EmployeeID      int64  `json:"employee_id"`
	LeaveType       string `json:"leave_type"`
	AppliedDays     int    `json:"applied_days"`
	PreviousStatus  string `json:"previous_status"`
	NewStatus       string `json:"new_status"`
	CountersChanged bool   `json:"counters_changed"`
}

func NewLeaveStatusChangedEvent(eventType, requestID string, employeeID int64, leaveType string, appliedDays int, previousStatus, newStatus string, countersChanged bool) *LeaveStatusChangedEvent {
	return &LeaveStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id":       requestID,
				"employee_id":      employeeID,
				"leave_type":       leaveType,
				"applied_days":     appliedDays,
				"previous_status":  previousStatus,
				"new_status":       newStatus,
				"counters_changed": countersChanged,
			},
		},
		RequestID:       requestID,
		EmployeeID:      employeeID,
		LeaveType:       leaveType,
		AppliedDays:     appliedDays,
		PreviousStatus:  previousStatus,
		NewStatus:       newStatus,
		CountersChanged: countersChanged,
	}
}
