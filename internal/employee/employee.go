package employee

import (
	"time"

	employeeDatamodel "github.com/workhub/leave-management/internal/core/datamodel/employee"
)

// Employee is a directory record. The two leave counters are cached
// aggregates over the ledger, maintained exclusively by the leave service;
// nothing else writes them.
type Employee struct {
	ID                    int64     `json:"id"`
	EmpName               string    `json:"empName"`
	IsManager             bool      `json:"isManager"`
	ManagerName           string    `json:"managerName,omitempty"`
	TotalSickLeaveTaken   int       `json:"totalSickLeaveTaken"`
	TotalCasualLeaveTaken int       `json:"totalCasualLeaveTaken"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:                    e.ID,
		EmpName:               e.EmpName,
		IsManager:             e.IsManager,
		ManagerName:           e.ManagerName,
		TotalSickLeaveTaken:   e.TotalSickLeaveTaken,
		TotalCasualLeaveTaken: e.TotalCasualLeaveTaken,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func FromDataModel(m *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:                    m.ID,
		EmpName:               m.EmpName,
		IsManager:             m.IsManager,
		ManagerName:           m.ManagerName,
		TotalSickLeaveTaken:   m.TotalSickLeaveTaken,
		TotalCasualLeaveTaken: m.TotalCasualLeaveTaken,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func FromDataModelSlice(models []*employeeDatamodel.Employee) []*Employee {
	result := make([]*Employee, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
