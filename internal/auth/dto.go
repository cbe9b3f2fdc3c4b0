package auth

import "github.com/workhub/leave-management/internal"

type LoginDTO struct {
	EmployeeID int64  `json:"employee_id"`
	Password   string `json:"password"`
}

func (d *LoginDTO) Validate() error {
	if d.EmployeeID <= 0 {
		return internal.NewValidationFieldError("employee_id", "employee_id is required and must be a positive integer", internal.ErrCodeValidationFailed)
	}
	if d.Password == "" {
		return internal.NewValidationFieldError("password", "password is required", internal.ErrCodeValidationFailed)
	}
	if len(d.Password) < 6 {
		return internal.NewValidationFieldError("password", "password must be at least 6 characters long", internal.ErrCodeValidationFailed)
	}
	return nil
}

// EmployeePayload is the employee block embedded in the login response.
type EmployeePayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IsManager bool   `json:"isManager"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

type LoginUser struct {
	EmployeeID int64            `json:"employee_id"`
	Employee   *EmployeePayload `json:"employee"`
}
