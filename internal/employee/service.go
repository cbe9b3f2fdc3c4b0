package employee

import (
	"log/slog"
	"time"

	"github.com/workhub/leave-management/internal/attendance"
)

type Repository interface {
	GetByID(id int64) (*Employee, error)
	ByManagerName(name string) ([]*Employee, error)
	Exists(id int64) (bool, error)
}

// AttendanceAPI is the slice of the attendance service the employee views
// need.
type AttendanceAPI interface {
	HistoryByEmployee(employeeID int64) ([]*attendance.Record, error)
	SummaryForDate(employeeID int64, date time.Time) (*attendance.TodaySummary, error)
}

// EmployeeWithAttendance is the detail view: the directory record plus the
// full attendance history, newest first.
type EmployeeWithAttendance struct {
	*Employee
	Attendance []*attendance.Record `json:"attendance"`
}

// DashboardRow is one managed employee with their attendance for today.
type DashboardRow struct {
	*Employee
	TodayAttendance *attendance.TodaySummary `json:"today_attendance"`
}

type Service struct {
	repo       Repository
	attendance AttendanceAPI
	logger     *slog.Logger
}

func NewService(repo Repository, attendanceAPI AttendanceAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		attendance: attendanceAPI,
		logger:     logger,
	}
}

func (s *Service) GetByID(id int64) (*Employee, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ByManagerName(name string) ([]*Employee, error) {
	return s.repo.ByManagerName(name)
}

// GetWithAttendance returns the employee with their full attendance history.
func (s *Service) GetWithAttendance(id int64) (*EmployeeWithAttendance, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	history, err := s.attendance.HistoryByEmployee(id)
	if err != nil {
		s.logger.Error("employee detail: attendance history failed", "error", err, "employee_id", id)
		return nil, err
	}

	return &EmployeeWithAttendance{Employee: emp, Attendance: history}, nil
}

// ManagerDashboard lists the manager's reports with today's attendance. An
// unknown or reportless manager yields an empty list.
func (s *Service) ManagerDashboard(managerName string) ([]*DashboardRow, error) {
	emps, err := s.repo.ByManagerName(managerName)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	rows := make([]*DashboardRow, 0, len(emps))
	for _, emp := range emps {
		summary, err := s.attendance.SummaryForDate(emp.ID, today)
		if err != nil {
			s.logger.Error("dashboard: attendance summary failed", "error", err, "employee_id", emp.ID)
			return nil, err
		}
		rows = append(rows, &DashboardRow{Employee: emp, TodayAttendance: summary})
	}
	return rows, nil
}
