package employee

import "time"

type Employee struct {
	ID                    int64     `gorm:"primaryKey"`
	EmpName               string    `gorm:"column:emp_name;not null"`
	IsManager             bool      `gorm:"column:is_manager;default:false"`
	ManagerName           string    `gorm:"column:manager_name"`
	TotalSickLeaveTaken   int       `gorm:"column:total_sick_leave_taken;default:0"`
	TotalCasualLeaveTaken int       `gorm:"column:total_casual_leave_taken;default:0"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
