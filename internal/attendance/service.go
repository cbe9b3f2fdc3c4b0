package attendance

import (
	"log/slog"
	"time"

	"github.com/workhub/leave-management/internal"
)

// Repository persists attendance records. Create enforces the one record per
// employee-day rule and reports a violation as ErrAlreadyClockedIn.
type Repository interface {
	Create(rec *Record) error
	ByEmployeeAndDate(employeeID int64, date time.Time) (*Record, error)
	SetClockOut(id int64, clockOut time.Time, totalWorkHours float64) error
	LastN(employeeID int64, n int) ([]*Record, error)
	ByEmployee(employeeID int64) ([]*Record, error)
}

// EmployeeChecker is the only thing the attendance service needs to know
// about employees.
type EmployeeChecker interface {
	Exists(employeeID int64) (bool, error)
}

type Service struct {
	repo      Repository
	employees EmployeeChecker
	logger    *slog.Logger
}

func NewService(repo Repository, employees EmployeeChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		logger:    logger,
	}
}

// ClockIn opens the employee's day. A second clock-in for the same calendar
// day is refused.
func (s *Service) ClockIn(employeeID int64, dto ClockInDTO) (*Record, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	date, err := parseTimestamp("date", dto.Date)
	if err != nil {
		return nil, err
	}
	clockIn, err := parseTimestamp("clock_in", dto.ClockIn)
	if err != nil {
		return nil, err
	}

	exists, err := s.employees.Exists(employeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, internal.ErrEmployeeNotFound
	}

	rec := &Record{
		EmployeeID: employeeID,
		Date:       NormalizeDate(date),
		ClockIn:    clockIn,
	}
	if err := s.repo.Create(rec); err != nil {
		if err == internal.ErrAlreadyClockedIn {
			s.logger.Info("clock-in refused: already clocked in", "employee_id", employeeID, "date", rec.Date)
		} else {
			s.logger.Error("clock-in: persist failed", "error", err, "employee_id", employeeID)
		}
		return nil, err
	}

	s.logger.Info("clock-in recorded", "employee_id", employeeID, "date", rec.Date)
	return rec, nil
}

// ClockOut closes the day's record and computes total work hours. It can be
// repeated to correct the clock-out time; each call recomputes the hours.
func (s *Service) ClockOut(employeeID int64, dto ClockOutDTO) (*Record, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	date, err := parseTimestamp("date", dto.Date)
	if err != nil {
		return nil, err
	}
	clockOut, err := parseTimestamp("clock_out", dto.ClockOut)
	if err != nil {
		return nil, err
	}

	exists, err := s.employees.Exists(employeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, internal.ErrEmployeeNotFound
	}

	rec, err := s.repo.ByEmployeeAndDate(employeeID, NormalizeDate(date))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, internal.ErrAttendanceNotFound
	}

	hours := WorkHours(rec.ClockIn, clockOut)
	if hours <= 0 {
		return nil, internal.ErrClockOutBeforeIn
	}

	if err := s.repo.SetClockOut(rec.ID, clockOut, hours); err != nil {
		s.logger.Error("clock-out: persist failed", "error", err, "employee_id", employeeID)
		return nil, err
	}

	rec.ClockOut = &clockOut
	rec.TotalWorkHours = &hours

	s.logger.Info("clock-out recorded",
		"employee_id", employeeID,
		"date", rec.Date,
		"total_work_hours", hours)
	return rec, nil
}

// LastFour returns the employee's most recent records, newest first, capped
// at four. An empty history is reported as not found.
func (s *Service) LastFour(employeeID int64) ([]*Record, error) {
	records, err := s.repo.LastN(employeeID, 4)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, internal.NewNotFoundError("No recent attendance records found for this employee", internal.ErrCodeNoAttendanceRecords)
	}
	return records, nil
}

// HistoryByEmployee returns the full attendance history, newest first. An
// empty history is fine here; the caller embeds it in the employee view.
func (s *Service) HistoryByEmployee(employeeID int64) ([]*Record, error) {
	return s.repo.ByEmployee(employeeID)
}

// SummaryForDate builds the dashboard line for one employee-day, with "NA"
// placeholders where data is missing.
func (s *Service) SummaryForDate(employeeID int64, date time.Time) (*TodaySummary, error) {
	day := NormalizeDate(date)
	summary := &TodaySummary{
		Date:           day.Format("2006-01-02"),
		ClockIn:        "NA",
		ClockOut:       "NA",
		TotalWorkHours: "NA",
	}

	rec, err := s.repo.ByEmployeeAndDate(employeeID, day)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return summary, nil
	}

	summary.ClockIn = rec.ClockIn.Format(time.TimeOnly)
	if rec.ClockOut != nil {
		summary.ClockOut = rec.ClockOut.Format(time.TimeOnly)
	}
	if rec.TotalWorkHours != nil {
		summary.TotalWorkHours = *rec.TotalWorkHours
	}
	return summary, nil
}
