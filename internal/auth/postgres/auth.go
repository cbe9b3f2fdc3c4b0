package postgres

import (
	"errors"

	"github.com/workhub/leave-management/internal"
	"github.com/workhub/leave-management/internal/auth"
	logindm "github.com/workhub/leave-management/internal/core/datamodel/login"
	"gorm.io/gorm"
)

// AuthRepository implements the auth.Repository interface using GORM.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.Repository {
	return &AuthRepository{db: db}
}

// GetByEmployeeID loads the login row joined with the employee record it
// references.
func (r *AuthRepository) GetByEmployeeID(employeeID int64) (*auth.Login, error) {
	var row struct {
		logindm.Login
		EmpName   string `gorm:"column:emp_name"`
		IsManager bool   `gorm:"column:is_manager"`
	}

	err := r.db.Table("logins").
		Select("logins.*, employees.emp_name, employees.is_manager").
		Joins("JOIN employees ON employees.id = logins.employee_id").
		Where("logins.employee_id = ?", employeeID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvalidCredentials
		}
		return nil, err
	}

	return &auth.Login{
		ID:           row.ID,
		EmployeeID:   row.EmployeeID,
		EmpName:      row.EmpName,
		IsManager:    row.IsManager,
		PasswordHash: row.PasswordHash,
		ActiveToken:  row.ActiveToken,
	}, nil
}

// ClaimActiveToken stores the token only when no session is active; the
// WHERE clause makes the claim atomic under concurrent logins.
func (r *AuthRepository) ClaimActiveToken(loginID int64, token string) (bool, error) {
	res := r.db.Model(&logindm.Login{}).
		Where("id = ? AND active_token IS NULL", loginID).
		Update("active_token", token)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AuthRepository) ClearActiveToken(loginID int64) error {
	return r.db.Model(&logindm.Login{}).
		Where("id = ?", loginID).
		Update("active_token", nil).Error
}

func (r *AuthRepository) ClearByToken(token string) error {
	return r.db.Model(&logindm.Login{}).
		Where("active_token = ?", token).
		Update("active_token", nil).Error
}
