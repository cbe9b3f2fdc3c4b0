package attendance_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/workhub/leave-management/internal"
	"github.com/workhub/leave-management/internal/attendance"
)

func TestAttendanceService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Service Suite")
}

type recordKey struct {
	employeeID int64
	date       time.Time
}

type mockAttendanceRepository struct {
	records map[recordKey]*attendance.Record
	nextID  int64
}

func newMockAttendanceRepository() *mockAttendanceRepository {
	return &mockAttendanceRepository{
		records: make(map[recordKey]*attendance.Record),
		nextID:  1,
	}
}

func (m *mockAttendanceRepository) Create(rec *attendance.Record) error {
	key := recordKey{rec.EmployeeID, rec.Date}
	if _, exists := m.records[key]; exists {
		return internal.ErrAlreadyClockedIn
	}
	rec.ID = m.nextID
	m.nextID++
	rec.CreatedAt = time.Now()
	m.records[key] = rec
	return nil
}

func (m *mockAttendanceRepository) ByEmployeeAndDate(employeeID int64, date time.Time) (*attendance.Record, error) {
	return m.records[recordKey{employeeID, date}], nil
}

func (m *mockAttendanceRepository) SetClockOut(id int64, clockOut time.Time, totalWorkHours float64) error {
	for _, rec := range m.records {
		if rec.ID == id {
			rec.ClockOut = &clockOut
			rec.TotalWorkHours = &totalWorkHours
			return nil
		}
	}
	return internal.ErrAttendanceNotFound
}

func (m *mockAttendanceRepository) LastN(employeeID int64, n int) ([]*attendance.Record, error) {
	var result []*attendance.Record
	for _, rec := range m.records {
		if rec.EmployeeID == employeeID {
			result = append(result, rec)
		}
	}
	if len(result) > n {
		result = result[:n]
	}
	return result, nil
}

func (m *mockAttendanceRepository) ByEmployee(employeeID int64) ([]*attendance.Record, error) {
	var result []*attendance.Record
	for _, rec := range m.records {
		if rec.EmployeeID == employeeID {
			result = append(result, rec)
		}
	}
	return result, nil
}

type mockEmployeeChecker struct {
	known map[int64]bool
}

func (m *mockEmployeeChecker) Exists(employeeID int64) (bool, error) {
	return m.known[employeeID], nil
}

var _ = Describe("AttendanceService", func() {
	var (
		service  *attendance.Service
		mockRepo *mockAttendanceRepository
		checker  *mockEmployeeChecker
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockAttendanceRepository()
		checker = &mockEmployeeChecker{known: map[int64]bool{1: true}}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = attendance.NewService(mockRepo, checker, logger)
	})

	Describe("ClockIn", func() {
		It("records the first clock-in of the day", func() {
			rec, err := service.ClockIn(1, attendance.ClockInDTO{
				Date:    "2026-03-02",
				ClockIn: "2026-03-02T09:00:00Z",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.ID).ToNot(BeZero())
			Expect(rec.Date).To(Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
		})

		It("refuses a second clock-in for the same date", func() {
			_, err := service.ClockIn(1, attendance.ClockInDTO{
				Date:    "2026-03-02",
				ClockIn: "2026-03-02T09:00:00Z",
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ClockIn(1, attendance.ClockInDTO{
				Date:    "2026-03-02",
				ClockIn: "2026-03-02T10:00:00Z",
			})

			Expect(err).To(Equal(internal.ErrAlreadyClockedIn))
		})

		It("allows clock-ins on different dates", func() {
			_, err := service.ClockIn(1, attendance.ClockInDTO{
				Date:    "2026-03-02",
				ClockIn: "2026-03-02T09:00:00Z",
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ClockIn(1, attendance.ClockInDTO{
				Date:    "2026-03-03",
				ClockIn: "2026-03-03T09:00:00Z",
			})

			Expect(err).ToNot(HaveOccurred())
		})

		It("returns not found for an unknown employee", func() {
			_, err := service.ClockIn(99, attendance.ClockInDTO{
				Date:    "2026-03-02",
				ClockIn: "2026-03-02T09:00:00Z",
			})

			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})

		It("rejects missing fields", func() {
			_, err := service.ClockIn(1, attendance.ClockInDTO{Date: "2026-03-02"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("ClockOut", func() {
		BeforeEach(func() {
			_, err := service.ClockIn(1, attendance.ClockInDTO{
				Date:    "2026-03-02",
				ClockIn: "2026-03-02T09:00:00Z",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("computes work hours rounded to two decimals", func() {
			rec, err := service.ClockOut(1, attendance.ClockOutDTO{
				Date:     "2026-03-02",
				ClockOut: "2026-03-02T17:20:00Z",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.ClockOut).ToNot(BeNil())
			Expect(rec.TotalWorkHours).ToNot(BeNil())
			Expect(*rec.TotalWorkHours).To(Equal(8.33))
		})

		It("can correct an earlier clock-out", func() {
			_, err := service.ClockOut(1, attendance.ClockOutDTO{
				Date:     "2026-03-02",
				ClockOut: "2026-03-02T17:00:00Z",
			})
			Expect(err).ToNot(HaveOccurred())

			rec, err := service.ClockOut(1, attendance.ClockOutDTO{
				Date:     "2026-03-02",
				ClockOut: "2026-03-02T18:00:00Z",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(*rec.TotalWorkHours).To(Equal(9.0))
		})

		It("rejects a clock-out at or before the clock-in", func() {
			_, err := service.ClockOut(1, attendance.ClockOutDTO{
				Date:     "2026-03-02",
				ClockOut: "2026-03-02T09:00:00Z",
			})

			Expect(err).To(Equal(internal.ErrClockOutBeforeIn))
		})

		It("returns not found when the day was never opened", func() {
			_, err := service.ClockOut(1, attendance.ClockOutDTO{
				Date:     "2026-03-03",
				ClockOut: "2026-03-03T17:00:00Z",
			})

			Expect(err).To(Equal(internal.ErrAttendanceNotFound))
		})
	})

	Describe("LastFour", func() {
		It("reports an empty history as not found", func() {
			_, err := service.LastFour(1)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})

		It("caps the result at four records", func() {
			for day := 2; day <= 7; day++ {
				date := time.Date(2026, 3, day, 9, 0, 0, 0, time.UTC)
				_, err := service.ClockIn(1, attendance.ClockInDTO{
					Date:    date.Format("2006-01-02"),
					ClockIn: date.Format(time.RFC3339),
				})
				Expect(err).ToNot(HaveOccurred())
			}

			records, err := service.LastFour(1)

			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(4))
		})
	})

	Describe("SummaryForDate", func() {
		It("fills NA placeholders when there is no record", func() {
			summary, err := service.SummaryForDate(1, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))

			Expect(err).ToNot(HaveOccurred())
			Expect(summary.Date).To(Equal("2026-03-02"))
			Expect(summary.ClockIn).To(Equal("NA"))
			Expect(summary.ClockOut).To(Equal("NA"))
			Expect(summary.TotalWorkHours).To(Equal("NA"))
		})

		It("keeps NA for the fields of an open day", func() {
			_, err := service.ClockIn(1, attendance.ClockInDTO{
				Date:    "2026-03-02",
				ClockIn: "2026-03-02T09:00:00Z",
			})
			Expect(err).ToNot(HaveOccurred())

			summary, err := service.SummaryForDate(1, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))

			Expect(err).ToNot(HaveOccurred())
			Expect(summary.ClockIn).To(Equal("09:00:00"))
			Expect(summary.ClockOut).To(Equal("NA"))
			Expect(summary.TotalWorkHours).To(Equal("NA"))
		})

		It("reports the closed day in full", func() {
			_, err := service.ClockIn(1, attendance.ClockInDTO{
				Date:    "2026-03-02",
				ClockIn: "2026-03-02T09:00:00Z",
			})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.ClockOut(1, attendance.ClockOutDTO{
				Date:     "2026-03-02",
				ClockOut: "2026-03-02T17:30:00Z",
			})
			Expect(err).ToNot(HaveOccurred())

			summary, err := service.SummaryForDate(1, time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC))

			Expect(err).ToNot(HaveOccurred())
			Expect(summary.ClockOut).To(Equal("17:30:00"))
			Expect(summary.TotalWorkHours).To(Equal(8.5))
		})
	})
})

var _ = Describe("WorkHours", func() {
	at := func(hour, min int) time.Time {
		return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
	}

	It("rounds to two decimal places", func() {
		Expect(attendance.WorkHours(at(9, 0), at(17, 20))).To(Equal(8.33))
	})

	It("returns zero when the clock-out does not follow the clock-in", func() {
		Expect(attendance.WorkHours(at(9, 0), at(9, 0))).To(BeZero())
		Expect(attendance.WorkHours(at(9, 0), at(8, 0))).To(BeZero())
	})
})
