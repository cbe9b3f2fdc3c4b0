package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingFields    ErrorCode = "MISSING_REQUIRED_FIELDS"
	ErrCodeInvalidLeaveType ErrorCode = "INVALID_LEAVE_TYPE"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidID        ErrorCode = "INVALID_ID"

	ErrCodeEmployeeNotFound     ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeLeaveNotFound        ErrorCode = "LEAVE_REQUEST_NOT_FOUND"
	ErrCodePolicyNotFound       ErrorCode = "LEAVE_POLICY_NOT_FOUND"
	ErrCodeAttendanceNotFound   ErrorCode = "ATTENDANCE_NOT_FOUND"
	ErrCodeInsufficientBalance  ErrorCode = "INSUFFICIENT_LEAVE_BALANCE"
	ErrCodeAlreadyClockedIn     ErrorCode = "ALREADY_CLOCKED_IN"
	ErrCodeClockOutBeforeIn     ErrorCode = "CLOCK_OUT_BEFORE_CLOCK_IN"
	ErrCodeConcurrentUpdate     ErrorCode = "CONCURRENT_UPDATE"
	ErrCodeSessionActive        ErrorCode = "SESSION_ALREADY_ACTIVE"
	ErrCodeInvalidCredentials   ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken         ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired         ErrorCode = "TOKEN_EXPIRED"
	ErrCodeTokenRevoked         ErrorCode = "TOKEN_REVOKED"
	ErrCodeNoActiveSession      ErrorCode = "NO_ACTIVE_SESSION"
	ErrCodeTokenMismatch        ErrorCode = "TOKEN_MISMATCH"
	ErrCodeNoAttendanceRecords  ErrorCode = "NO_ATTENDANCE_RECORDS"
	ErrCodeNoLeaveRecords       ErrorCode = "NO_LEAVE_RECORDS"
	ErrCodeNoPendingLeaves      ErrorCode = "NO_PENDING_LEAVES"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrEmployeeNotFound    = NewNotFoundError("Employee not found", ErrCodeEmployeeNotFound)
	ErrLeaveNotFound       = NewNotFoundError("Leave request not found", ErrCodeLeaveNotFound)
	ErrAttendanceNotFound  = NewNotFoundError("Attendance record not found", ErrCodeAttendanceNotFound)
	ErrInsufficientBalance = NewValidationError("Insufficient leave balance", ErrCodeInsufficientBalance)
	ErrAlreadyClockedIn    = NewConflictError("Employee is already clocked in for this date", ErrCodeAlreadyClockedIn)
	ErrClockOutBeforeIn    = NewValidationError("Clock-out time must be after the recorded clock-in time", ErrCodeClockOutBeforeIn)
	ErrConcurrentUpdate    = NewConflictError("Record was modified concurrently, please retry", ErrCodeConcurrentUpdate)

	// The policy record is configuration the operators own; its absence is a
	// server-side problem, not a client one.
	ErrPolicyNotFound = NewInternalError("Leave policy not found", nil)

	ErrInvalidCredentials = NewUnauthorizedError("Invalid credentials", ErrCodeInvalidCredentials)
	ErrSessionActive      = NewConflictError("Already logged in. Logout first.", ErrCodeSessionActive)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
	ErrTokenRevoked       = NewUnauthorizedError("Token blacklisted", ErrCodeTokenRevoked)
	ErrNoActiveSession    = NewUnauthorizedError("No active session", ErrCodeNoActiveSession)
	ErrTokenMismatch      = NewUnauthorizedError("Token mismatch", ErrCodeTokenMismatch)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
