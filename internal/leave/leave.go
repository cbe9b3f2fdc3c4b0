package leave

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/workhub/leave-management/internal"
	leaveDatamodel "github.com/workhub/leave-management/internal/core/datamodel/leave"
)

type Type string

const (
	TypeSick   Type = "sick"
	TypeCasual Type = "casual"
)

// ParseType accepts both naming schemes that clients use: the short form
// ("sick", "casual") and the long form ("Sick Leave", "Casual Leave").
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sick", "sick leave":
		return TypeSick, nil
	case "casual", "casual leave":
		return TypeCasual, nil
	default:
		return "", internal.NewValidationError("Invalid leave type", internal.ErrCodeInvalidLeaveType)
	}
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseDecision validates a status-update value. Only approve and reject are
// decisions a manager can make; pending is the initial state and cannot be
// re-entered.
func ParseDecision(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved":
		return StatusApproved, nil
	case "rejected":
		return StatusRejected, nil
	default:
		return "", internal.NewValidationError(`Invalid status value. Must be "approved" or "rejected".`, internal.ErrCodeInvalidStatus)
	}
}

// Request is a single entry in the leave ledger. Everything except Status is
// immutable after creation; requests are never deleted.
type Request struct {
	ID          int64     `json:"id"`
	RequestID   string    `json:"request_id"`
	EmployeeID  int64     `json:"employee_id"`
	EmpName     string    `json:"emp_name,omitempty"`
	Type        Type      `json:"leave_type"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	AppliedDays int       `json:"applied_days"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewRequest builds a pending request with a fresh public identifier. The
// RequestID is the opaque key callers hold on to; the numeric ID is whatever
// the store assigns.
func NewRequest(employeeID int64, empName string, t Type, startDate, endDate time.Time, appliedDays int) *Request {
	return &Request{
		RequestID:   uuid.New().String(),
		EmployeeID:  employeeID,
		EmpName:     empName,
		Type:        t,
		StartDate:   startDate,
		EndDate:     endDate,
		AppliedDays: appliedDays,
		Status:      StatusPending,
	}
}

// InclusiveDays counts calendar days between the two dates, both ends
// included, so a single-day leave spans one day.
func InclusiveDays(start, end time.Time) int {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours()/24)) + 1
}

// Policy is the system-wide leave allotment. There is exactly one active
// policy, stored under a well-known key; leave operations never mutate it.
type Policy struct {
	ID          int64  `json:"id"`
	PolicyKey   string `json:"policy_key"`
	SickTotal   int    `json:"sick_total"`
	CasualTotal int    `json:"casual_total"`
}

func (p *Policy) Total(t Type) int {
	if t == TypeSick {
		return p.SickTotal
	}
	return p.CasualTotal
}

// CounterUpdate describes a compare-and-set on one employee leave counter:
// the write succeeds only if the counter still holds From.
type CounterUpdate struct {
	EmployeeID int64
	Type       Type
	From       int
	To         int
}

// Balance is the per-employee view of used and remaining days. Remaining is
// surfaced as computed and may go negative when the policy was lowered after
// days were taken.
type Balance struct {
	EmployeeID           int64 `json:"empId"`
	SickLeaveUsed        int   `json:"sickLeaveUsed"`
	SickLeaveRemaining   int   `json:"sickLeaveRemaining"`
	CasualLeaveUsed      int   `json:"casualLeaveUsed"`
	CasualLeaveRemaining int   `json:"casualLeaveRemaining"`
}

// ManagedBalance is one row of the manager balance report.
type ManagedBalance struct {
	EmployeeID              int64  `json:"id"`
	EmpName                 string `json:"empName"`
	TotalSickLeaveBalance   int    `json:"totalSickLeaveBalance"`
	SickLeaveTaken          int    `json:"sickLeaveTaken"`
	SickLeaveLeft           int    `json:"sickLeaveLeft"`
	TotalCasualLeaveBalance int    `json:"totalCasualLeaveBalance"`
	CasualLeaveTaken        int    `json:"casualLeaveTaken"`
	CasualLeaveLeft         int    `json:"casualLeaveLeft"`
}

func ToDataModel(r *Request) *leaveDatamodel.LeaveRequest {
	return &leaveDatamodel.LeaveRequest{
		ID:          r.ID,
		RequestID:   r.RequestID,
		EmployeeID:  r.EmployeeID,
		EmpName:     r.EmpName,
		LeaveType:   string(r.Type),
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		AppliedDays: r.AppliedDays,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func FromDataModel(m *leaveDatamodel.LeaveRequest) *Request {
	return &Request{
		ID:          m.ID,
		RequestID:   m.RequestID,
		EmployeeID:  m.EmployeeID,
		EmpName:     m.EmpName,
		Type:        Type(m.LeaveType),
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		AppliedDays: m.AppliedDays,
		Status:      Status(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func FromDataModelSlice(models []*leaveDatamodel.LeaveRequest) []*Request {
	result := make([]*Request, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}

func PolicyFromDataModel(m *leaveDatamodel.LeavePolicy) *Policy {
	return &Policy{
		ID:          m.ID,
		PolicyKey:   m.PolicyKey,
		SickTotal:   m.SickTotal,
		CasualTotal: m.CasualTotal,
	}
}
