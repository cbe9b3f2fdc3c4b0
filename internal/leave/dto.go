package leave

import (
	"strconv"
	"time"

	"github.com/workhub/leave-management/internal"
)

// dateLayout is the canonical wire format for leave dates; RFC3339 inputs
// are also accepted on the way in.
const dateLayout = "2006-01-02"

var dateLayouts = []string{dateLayout, time.RFC3339}

func parseDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, internal.NewValidationFieldError(field, field+" must be a valid ISO date", internal.ErrCodeInvalidDateRange)
}

// ApplyLeaveDTO is the balance-checked application schema: the caller names
// the employee by storage id and supplies the day count explicitly.
type ApplyLeaveDTO struct {
	EmployeeID  int64  `json:"empId"`
	LeaveType   string `json:"leaveType"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	AppliedDays int    `json:"appliedDays"`
}

func (d ApplyLeaveDTO) Validate() error {
	if d.EmployeeID <= 0 {
		return internal.NewValidationFieldError("empId", "Employee ID is required", internal.ErrCodeInvalidID)
	}
	if _, err := ParseType(d.LeaveType); err != nil {
		return err
	}
	start, err := parseDate("startDate", d.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("endDate", d.EndDate)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return internal.NewValidationFieldError("endDate", "End date must not be before start date", internal.ErrCodeInvalidDateRange)
	}
	if d.AppliedDays < 1 {
		return internal.NewValidationFieldError("appliedDays", "Applied days must be a positive integer", internal.ErrCodeValidationFailed)
	}
	return nil
}

// LegacyApplyLeaveDTO is the older application schema: string employee id,
// lowercase leave type, and the day count derived from the date span.
type LegacyApplyLeaveDTO struct {
	EmpID     string `json:"empid"`
	EmpName   string `json:"empname"`
	StartDate string `json:"startdate"`
	EndDate   string `json:"enddate"`
	LeaveType string `json:"leavetype"`
}

func (d LegacyApplyLeaveDTO) Validate() error {
	if d.EmpID == "" || d.EmpName == "" || d.StartDate == "" || d.EndDate == "" || d.LeaveType == "" {
		return internal.NewValidationError("Missing required fields", internal.ErrCodeValidationFailed)
	}
	if _, err := strconv.ParseInt(d.EmpID, 10, 64); err != nil {
		return internal.NewValidationFieldError("empid", "Employee ID must be numeric", internal.ErrCodeInvalidID)
	}
	if _, err := ParseType(d.LeaveType); err != nil {
		return err
	}
	if _, err := parseDate("startdate", d.StartDate); err != nil {
		return err
	}
	if _, err := parseDate("enddate", d.EndDate); err != nil {
		return err
	}
	return nil
}

// ToApplyLeaveDTO converts the legacy schema into the canonical one,
// deriving the applied day count as the inclusive span between the dates.
func (d LegacyApplyLeaveDTO) ToApplyLeaveDTO() (ApplyLeaveDTO, error) {
	if err := d.Validate(); err != nil {
		return ApplyLeaveDTO{}, err
	}
	empID, _ := strconv.ParseInt(d.EmpID, 10, 64)
	start, _ := parseDate("startdate", d.StartDate)
	end, _ := parseDate("enddate", d.EndDate)
	return ApplyLeaveDTO{
		EmployeeID:  empID,
		LeaveType:   d.LeaveType,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		AppliedDays: InclusiveDays(start, end),
	}, nil
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (d UpdateStatusDTO) Validate() error {
	_, err := ParseDecision(d.Status)
	return err
}
