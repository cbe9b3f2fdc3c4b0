package attendance

import "time"

type AttendanceRecord struct {
	ID             int64      `gorm:"primaryKey"`
	EmployeeID     int64      `gorm:"column:employee_id;not null;uniqueIndex:idx_employee_date"`
	Date           time.Time  `gorm:"column:date;type:date;not null;uniqueIndex:idx_employee_date"`
	ClockIn        time.Time  `gorm:"column:clock_in;not null"`
	ClockOut       *time.Time `gorm:"column:clock_out"`
	TotalWorkHours *float64   `gorm:"column:total_work_hours"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
