package leave

import "time"

// DefaultPolicyKey identifies the single policy row every balance check
// reads.
const DefaultPolicyKey = "default"

type LeaveRequest struct {
	ID          int64     `gorm:"primaryKey"`
	RequestID   string    `gorm:"column:request_id;uniqueIndex;not null"`
	EmployeeID  int64     `gorm:"column:employee_id;not null"`
	EmpName     string    `gorm:"column:emp_name"`
	LeaveType   string    `gorm:"column:leave_type;not null"`
	StartDate   time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate     time.Time `gorm:"column:end_date;type:date;not null"`
	AppliedDays int       `gorm:"column:applied_days;not null"`
	Status      string    `gorm:"column:status;default:pending"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

type LeavePolicy struct {
	ID          int64     `gorm:"primaryKey"`
	PolicyKey   string    `gorm:"column:policy_key;uniqueIndex;not null"`
	SickTotal   int       `gorm:"column:sick_total;not null;default:0"`
	CasualTotal int       `gorm:"column:casual_total;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeavePolicy) TableName() string {
	return "leave_policies"
}
