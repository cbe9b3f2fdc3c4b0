package login

import "time"

type Login struct {
	ID           int64     `gorm:"primaryKey"`
	EmployeeID   int64     `gorm:"column:employee_id;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	ActiveToken  *string   `gorm:"column:active_token"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Login) TableName() string {
	return "logins"
}
