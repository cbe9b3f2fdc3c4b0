package leave

import (
	"context"
	"log/slog"

	"github.com/workhub/leave-management/internal"
	"github.com/workhub/leave-management/internal/core/events"
	"github.com/workhub/leave-management/internal/employee"
)

// Repository is the persistence surface of the leave ledger. Mutations that
// pair a ledger write with a counter write are atomic: either both land or
// neither does, and a CounterUpdate whose From no longer matches fails the
// whole operation with ErrConcurrentUpdate.
type Repository interface {
	CreateRequest(req *Request, counter CounterUpdate) error
	GetByKey(key string) (*Request, error)
	UpdateStatus(id int64, status Status, counter *CounterUpdate) error
	ByEmployee(employeeID int64) ([]*Request, error)
	PendingByEmployees(employeeIDs []int64) ([]*Request, error)
	PendingAll() ([]*Request, error)
	GetPolicy() (*Policy, error)
}

// EmployeeDirectory is the slice of the employee domain the balance engine
// needs: counter reads and manager lookups.
type EmployeeDirectory interface {
	GetByID(id int64) (*employee.Employee, error)
	ByManagerName(name string) ([]*employee.Employee, error)
}

// Service is the balance engine: it owns every mutation of the per-employee
// leave counters and the request lifecycle.
type Service struct {
	repo      Repository
	employees EmployeeDirectory
	bus       *events.EventBus
	logger    *slog.Logger
}

func NewService(repo Repository, employees EmployeeDirectory, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		bus:       bus,
		logger:    logger,
	}
}

func takenFor(emp *employee.Employee, t Type) int {
	if t == TypeSick {
		return emp.TotalSickLeaveTaken
	}
	return emp.TotalCasualLeaveTaken
}

// Apply validates a leave application against the policy and the employee's
// cached counters, then records the pending request and bumps the counter in
// one atomic write. Equality with the policy total is allowed; only going
// over it is refused.
func (s *Service) Apply(dto ApplyLeaveDTO) (*Request, error) {
	leaveType, err := ParseType(dto.LeaveType)
	if err != nil {
		return nil, err
	}
	if dto.AppliedDays < 1 {
		return nil, internal.NewValidationFieldError("appliedDays", "Applied days must be a positive integer", internal.ErrCodeValidationFailed)
	}

	emp, err := s.employees.GetByID(dto.EmployeeID)
	if err != nil {
		s.logger.Warn("apply leave: employee lookup failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, internal.ErrEmployeeNotFound
	}

	policy, err := s.repo.GetPolicy()
	if err != nil {
		s.logger.Error("apply leave: policy lookup failed", "error", err)
		return nil, internal.ErrPolicyNotFound
	}

	currentTaken := takenFor(emp, leaveType)
	if currentTaken+dto.AppliedDays > policy.Total(leaveType) {
		s.logger.Info("apply leave: insufficient balance",
			"employee_id", emp.ID,
			"leave_type", leaveType,
			"taken", currentTaken,
			"applied", dto.AppliedDays,
			"allowed", policy.Total(leaveType))
		return nil, internal.ErrInsufficientBalance
	}

	startDate, err := parseDate("startDate", dto.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate("endDate", dto.EndDate)
	if err != nil {
		return nil, err
	}

	req := NewRequest(emp.ID, emp.EmpName, leaveType, startDate, endDate, dto.AppliedDays)
	counter := CounterUpdate{
		EmployeeID: emp.ID,
		Type:       leaveType,
		From:       currentTaken,
		To:         currentTaken + dto.AppliedDays,
	}

	if err := s.repo.CreateRequest(req, counter); err != nil {
		s.logger.Error("apply leave: persist failed", "error", err, "employee_id", emp.ID)
		return nil, err
	}

	s.logger.Info("leave applied",
		"request_id", req.RequestID,
		"employee_id", emp.ID,
		"leave_type", leaveType,
		"applied_days", dto.AppliedDays)

	if s.bus != nil {
		s.bus.Publish(context.Background(), events.NewLeaveAppliedEvent(req.RequestID, emp.ID, string(leaveType), dto.AppliedDays))
	}

	return req, nil
}

// UpdateStatus moves a request through the lifecycle. Counters change only
// on a transition into rejected from a non-rejected status: the employee's
// counter is given back the applied days, floored at zero. Rejecting an
// already-rejected request is a counter no-op, and so is every approval —
// including re-approving a previously rejected request, which therefore does
// not re-increment the counter.
func (s *Service) UpdateStatus(key string, statusValue string) (*Request, error) {
	newStatus, err := ParseDecision(statusValue)
	if err != nil {
		return nil, err
	}

	req, err := s.repo.GetByKey(key)
	if err != nil {
		s.logger.Warn("update status: request lookup failed", "error", err, "key", key)
		return nil, internal.ErrLeaveNotFound
	}

	emp, err := s.employees.GetByID(req.EmployeeID)
	if err != nil {
		s.logger.Warn("update status: employee lookup failed", "error", err, "employee_id", req.EmployeeID)
		return nil, internal.ErrEmployeeNotFound
	}

	var counter *CounterUpdate
	if req.Status != StatusRejected && newStatus == StatusRejected {
		currentTaken := takenFor(emp, req.Type)
		newTaken := currentTaken - req.AppliedDays
		if newTaken < 0 {
			newTaken = 0
		}
		counter = &CounterUpdate{
			EmployeeID: emp.ID,
			Type:       req.Type,
			From:       currentTaken,
			To:         newTaken,
		}
	}

	if err := s.repo.UpdateStatus(req.ID, newStatus, counter); err != nil {
		s.logger.Error("update status: persist failed", "error", err, "request_id", req.RequestID)
		return nil, err
	}

	previous := req.Status
	req.Status = newStatus

	s.logger.Info("leave status updated",
		"request_id", req.RequestID,
		"employee_id", emp.ID,
		"previous_status", previous,
		"new_status", newStatus,
		"counters_changed", counter != nil)

	if s.bus != nil {
		eventType := events.EventTypeLeaveApproved
		if newStatus == StatusRejected {
			eventType = events.EventTypeLeaveRejected
		}
		s.bus.Publish(context.Background(), events.NewLeaveStatusChangedEvent(
			eventType, req.RequestID, emp.ID, string(req.Type), req.AppliedDays,
			string(previous), string(newStatus), counter != nil))
	}

	return req, nil
}

// BalanceFor reports used and remaining days per type. Remaining is not
// clamped: lowering the policy below what an employee already took surfaces
// as a negative remainder.
func (s *Service) BalanceFor(employeeID int64) (*Balance, error) {
	emp, err := s.employees.GetByID(employeeID)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	policy, err := s.repo.GetPolicy()
	if err != nil {
		s.logger.Error("balance: policy lookup failed", "error", err)
		return nil, internal.ErrPolicyNotFound
	}

	return &Balance{
		EmployeeID:           emp.ID,
		SickLeaveUsed:        emp.TotalSickLeaveTaken,
		SickLeaveRemaining:   policy.SickTotal - emp.TotalSickLeaveTaken,
		CasualLeaveUsed:      emp.TotalCasualLeaveTaken,
		CasualLeaveRemaining: policy.CasualTotal - emp.TotalCasualLeaveTaken,
	}, nil
}

// ManagedBalances computes the same per-type balances for every employee
// reporting to the named manager. No managed employees is an empty report,
// not an error.
func (s *Service) ManagedBalances(managerName string) ([]ManagedBalance, error) {
	policy, err := s.repo.GetPolicy()
	if err != nil {
		s.logger.Error("managed balances: policy lookup failed", "error", err)
		return nil, internal.ErrPolicyNotFound
	}

	emps, err := s.employees.ByManagerName(managerName)
	if err != nil {
		return nil, err
	}

	report := make([]ManagedBalance, 0, len(emps))
	for _, emp := range emps {
		report = append(report, ManagedBalance{
			EmployeeID:              emp.ID,
			EmpName:                 emp.EmpName,
			TotalSickLeaveBalance:   policy.SickTotal,
			SickLeaveTaken:          emp.TotalSickLeaveTaken,
			SickLeaveLeft:           policy.SickTotal - emp.TotalSickLeaveTaken,
			TotalCasualLeaveBalance: policy.CasualTotal,
			CasualLeaveTaken:        emp.TotalCasualLeaveTaken,
			CasualLeaveLeft:         policy.CasualTotal - emp.TotalCasualLeaveTaken,
		})
	}
	return report, nil
}

// StatusByEmployee lists an employee's requests; an empty ledger for the
// employee is reported as not found.
func (s *Service) StatusByEmployee(employeeID int64) ([]*Request, error) {
	requests, err := s.repo.ByEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, internal.NewNotFoundError("No leave records found for this employee", internal.ErrCodeNoLeaveRecords)
	}
	return requests, nil
}

// PendingForManager lists pending requests of the manager's reports, or all
// pending requests when no manager is named.
func (s *Service) PendingForManager(managerName string) ([]*Request, error) {
	var requests []*Request
	var err error

	if managerName != "" {
		emps, lookupErr := s.employees.ByManagerName(managerName)
		if lookupErr != nil {
			return nil, lookupErr
		}
		ids := make([]int64, len(emps))
		for i, emp := range emps {
			ids[i] = emp.ID
		}
		requests, err = s.repo.PendingByEmployees(ids)
	} else {
		requests, err = s.repo.PendingAll()
	}
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, internal.NewNotFoundError("No pending leave records found", internal.ErrCodeNoPendingLeaves)
	}
	return requests, nil
}
