package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/workhub/leave-management/internal"
	"github.com/workhub/leave-management/internal/attendance"
	attendancedm "github.com/workhub/leave-management/internal/core/datamodel/attendance"
	"gorm.io/gorm"
)

// AttendanceRepository implements the attendance.Repository interface using
// GORM.
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.Repository {
	return &AttendanceRepository{db: db}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// pgx and sqlite surface constraint errors with different types; match
	// on the message as the common denominator.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// Create inserts the record; the (employee_id, date) unique index is the
// backstop against racing clock-ins.
func (r *AttendanceRepository) Create(rec *attendance.Record) error {
	dm := attendance.ToDataModel(rec)
	if err := r.db.Create(dm).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.ErrAlreadyClockedIn
		}
		return err
	}
	rec.ID = dm.ID
	rec.CreatedAt = dm.CreatedAt
	return nil
}

// ByEmployeeAndDate returns nil without error when no record exists for the
// day.
func (r *AttendanceRepository) ByEmployeeAndDate(employeeID int64, date time.Time) (*attendance.Record, error) {
	var dm attendancedm.AttendanceRecord
	err := r.db.Where("employee_id = ? AND date = ?", employeeID, date).First(&dm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return attendance.FromDataModel(&dm), nil
}

func (r *AttendanceRepository) SetClockOut(id int64, clockOut time.Time, totalWorkHours float64) error {
	return r.db.Model(&attendancedm.AttendanceRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"clock_out":        clockOut,
			"total_work_hours": totalWorkHours,
		}).Error
}

func (r *AttendanceRepository) LastN(employeeID int64, n int) ([]*attendance.Record, error) {
	var dms []*attendancedm.AttendanceRecord
	err := r.db.Where("employee_id = ?", employeeID).
		Order("date DESC").
		Limit(n).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return attendance.FromDataModelSlice(dms), nil
}

func (r *AttendanceRepository) ByEmployee(employeeID int64) ([]*attendance.Record, error) {
	var dms []*attendancedm.AttendanceRecord
	err := r.db.Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return attendance.FromDataModelSlice(dms), nil
}
