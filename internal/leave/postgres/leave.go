package postgres

import (
	"errors"
	"strconv"

	"github.com/workhub/leave-management/internal"
	employeedm "github.com/workhub/leave-management/internal/core/datamodel/employee"
	leavedm "github.com/workhub/leave-management/internal/core/datamodel/leave"
	"github.com/workhub/leave-management/internal/leave"
	"gorm.io/gorm"
)

// LeaveRepository implements the leave.Repository interface using GORM.
type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.Repository {
	return &LeaveRepository{db: db}
}

func counterColumn(t leave.Type) string {
	if t == leave.TypeSick {
		return "total_sick_leave_taken"
	}
	return "total_casual_leave_taken"
}

// applyCounter performs the conditional counter write inside tx. The WHERE
// clause re-checks the value the caller computed against; zero rows affected
// means another writer got there first.
func applyCounter(tx *gorm.DB, counter leave.CounterUpdate) error {
	column := counterColumn(counter.Type)
	res := tx.Model(&employeedm.Employee{}).
		Where("id = ? AND "+column+" = ?", counter.EmployeeID, counter.From).
		Update(column, counter.To)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrConcurrentUpdate
	}
	return nil
}

// CreateRequest inserts the request and bumps the employee counter in one
// transaction.
func (r *LeaveRepository) CreateRequest(req *leave.Request, counter leave.CounterUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		dm := leave.ToDataModel(req)
		if err := tx.Create(dm).Error; err != nil {
			return err
		}
		req.ID = dm.ID
		req.CreatedAt = dm.CreatedAt
		return applyCounter(tx, counter)
	})
}

// GetByKey resolves a request by its opaque request id, falling back to the
// numeric primary key for clients that still address records by row id.
func (r *LeaveRepository) GetByKey(key string) (*leave.Request, error) {
	var dm leavedm.LeaveRequest
	err := r.db.Where("request_id = ?", key).First(&dm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if id, parseErr := strconv.ParseInt(key, 10, 64); parseErr == nil {
			err = r.db.Where("id = ?", id).First(&dm).Error
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrLeaveNotFound
		}
		return nil, err
	}
	return leave.FromDataModel(&dm), nil
}

// UpdateStatus writes the new status and, when counter is non-nil, the
// matching counter adjustment atomically.
func (r *LeaveRepository) UpdateStatus(id int64, status leave.Status, counter *leave.CounterUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&leavedm.LeaveRequest{}).
			Where("id = ?", id).
			Update("status", string(status))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrLeaveNotFound
		}
		if counter != nil {
			return applyCounter(tx, *counter)
		}
		return nil
	})
}

func (r *LeaveRepository) ByEmployee(employeeID int64) ([]*leave.Request, error) {
	var dms []*leavedm.LeaveRequest
	err := r.db.Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return leave.FromDataModelSlice(dms), nil
}

func (r *LeaveRepository) PendingByEmployees(employeeIDs []int64) ([]*leave.Request, error) {
	if len(employeeIDs) == 0 {
		return []*leave.Request{}, nil
	}
	var dms []*leavedm.LeaveRequest
	err := r.db.Where("employee_id IN ? AND status = ?", employeeIDs, string(leave.StatusPending)).
		Order("created_at ASC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return leave.FromDataModelSlice(dms), nil
}

func (r *LeaveRepository) PendingAll() ([]*leave.Request, error) {
	var dms []*leavedm.LeaveRequest
	err := r.db.Where("status = ?", string(leave.StatusPending)).
		Order("created_at ASC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return leave.FromDataModelSlice(dms), nil
}

// GetPolicy loads the single policy row.
func (r *LeaveRepository) GetPolicy() (*leave.Policy, error) {
	var dm leavedm.LeavePolicy
	err := r.db.Where("policy_key = ?", leavedm.DefaultPolicyKey).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrPolicyNotFound
		}
		return nil, err
	}
	return leave.PolicyFromDataModel(&dm), nil
}
