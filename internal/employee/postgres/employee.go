package postgres

import (
	"errors"

	"github.com/workhub/leave-management/internal"
	employeedm "github.com/workhub/leave-management/internal/core/datamodel/employee"
	"github.com/workhub/leave-management/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var dm employeedm.Employee
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&dm), nil
}

func (r *EmployeeRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&employeedm.Employee{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EmployeeRepository) ByManagerName(name string) ([]*employee.Employee, error) {
	var dms []*employeedm.Employee
	err := r.db.Where("manager_name = ?", name).
		Order("emp_name ASC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return employee.FromDataModelSlice(dms), nil
}
