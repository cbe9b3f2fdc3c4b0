package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	attendanceDatamodel "github.com/workhub/leave-management/internal/core/datamodel/attendance"
)

// Record is one employee-day of attendance. ClockOut and TotalWorkHours stay
// nil until the day is closed out.
type Record struct {
	ID             int64      `json:"id"`
	EmployeeID     int64      `json:"employee_id"`
	Date           time.Time  `json:"date"`
	ClockIn        time.Time  `json:"clock_in"`
	ClockOut       *time.Time `json:"clock_out,omitempty"`
	TotalWorkHours *float64   `json:"total_work_hours,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// WorkHours is the elapsed time between clock-in and clock-out in hours,
// rounded to two decimal places. A clock-out at or before the clock-in
// yields zero.
func WorkHours(clockIn, clockOut time.Time) float64 {
	if !clockOut.After(clockIn) {
		return 0
	}
	seconds := decimal.NewFromFloat(clockOut.Sub(clockIn).Seconds())
	hours := seconds.Div(decimal.NewFromInt(3600)).Round(2)
	f, _ := hours.Float64()
	return f
}

// TodaySummary is the dashboard view of a single day; fields read "NA" when
// the employee has no record or has not clocked out yet.
type TodaySummary struct {
	Date           string `json:"date"`
	ClockIn        string `json:"clock_in"`
	ClockOut       string `json:"clock_out"`
	TotalWorkHours any    `json:"total_work_hours"`
}

// NormalizeDate truncates to UTC midnight so the per-day uniqueness check
// compares calendar days, not instants.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ToDataModel(r *Record) *attendanceDatamodel.AttendanceRecord {
	return &attendanceDatamodel.AttendanceRecord{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		Date:           r.Date,
		ClockIn:        r.ClockIn,
		ClockOut:       r.ClockOut,
		TotalWorkHours: r.TotalWorkHours,
		CreatedAt:      r.CreatedAt,
	}
}

func FromDataModel(m *attendanceDatamodel.AttendanceRecord) *Record {
	return &Record{
		ID:             m.ID,
		EmployeeID:     m.EmployeeID,
		Date:           m.Date,
		ClockIn:        m.ClockIn,
		ClockOut:       m.ClockOut,
		TotalWorkHours: m.TotalWorkHours,
		CreatedAt:      m.CreatedAt,
	}
}

func FromDataModelSlice(models []*attendanceDatamodel.AttendanceRecord) []*Record {
	records := make([]*Record, len(models))
	for i, m := range models {
		records[i] = FromDataModel(m)
	}
	return records
}
