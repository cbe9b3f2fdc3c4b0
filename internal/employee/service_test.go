package employee_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/workhub/leave-management/internal"
	"github.com/workhub/leave-management/internal/attendance"
	"github.com/workhub/leave-management/internal/employee"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Service Suite")
}

type mockEmployeeRepository struct {
	employees map[int64]*employee.Employee
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{employees: make(map[int64]*employee.Employee)}
}

func (m *mockEmployeeRepository) add(emp *employee.Employee) {
	m.employees[emp.ID] = emp
}

func (m *mockEmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *mockEmployeeRepository) ByManagerName(name string) ([]*employee.Employee, error) {
	result := make([]*employee.Employee, 0)
	for _, emp := range m.employees {
		if emp.ManagerName == name {
			result = append(result, emp)
		}
	}
	return result, nil
}

func (m *mockEmployeeRepository) Exists(id int64) (bool, error) {
	_, ok := m.employees[id]
	return ok, nil
}

type mockAttendanceAPI struct {
	history   map[int64][]*attendance.Record
	summaries map[int64]*attendance.TodaySummary
}

func newMockAttendanceAPI() *mockAttendanceAPI {
	return &mockAttendanceAPI{
		history:   make(map[int64][]*attendance.Record),
		summaries: make(map[int64]*attendance.TodaySummary),
	}
}

func (m *mockAttendanceAPI) HistoryByEmployee(employeeID int64) ([]*attendance.Record, error) {
	return m.history[employeeID], nil
}

func (m *mockAttendanceAPI) SummaryForDate(employeeID int64, date time.Time) (*attendance.TodaySummary, error) {
	if summary, ok := m.summaries[employeeID]; ok {
		return summary, nil
	}
	return &attendance.TodaySummary{
		Date:           date.Format("2006-01-02"),
		ClockIn:        "NA",
		ClockOut:       "NA",
		TotalWorkHours: "NA",
	}, nil
}

var _ = Describe("EmployeeService", func() {
	var (
		service        *employee.Service
		mockRepo       *mockEmployeeRepository
		mockAttendance *mockAttendanceAPI
	)

	BeforeEach(func() {
		mockRepo = newMockEmployeeRepository()
		mockRepo.add(&employee.Employee{ID: 1, EmpName: "Priya Sharma", IsManager: true})
		mockRepo.add(&employee.Employee{ID: 2, EmpName: "Arjun Mehta", ManagerName: "Priya Sharma"})
		mockRepo.add(&employee.Employee{ID: 3, EmpName: "Sana Kapoor", ManagerName: "Priya Sharma"})

		mockAttendance = newMockAttendanceAPI()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = employee.NewService(mockRepo, mockAttendance, logger)
	})

	Describe("GetWithAttendance", func() {
		It("attaches the attendance history to the record", func() {
			clockIn := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
			clockOut := time.Date(2026, 8, 28, 17, 30, 0, 0, time.UTC)
			mockAttendance.history[2] = []*attendance.Record{
				{ID: 1, EmployeeID: 2, Date: attendance.NormalizeDate(clockIn), ClockIn: clockIn, ClockOut: &clockOut},
			}

			result, err := service.GetWithAttendance(2)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.EmpName).To(Equal("Arjun Mehta"))
			Expect(result.Attendance).To(HaveLen(1))
			Expect(result.Attendance[0].EmployeeID).To(Equal(int64(2)))
			Expect(result.Attendance[0].ClockIn).To(Equal(clockIn))
			Expect(result.Attendance[0].ClockOut).To(HaveValue(Equal(clockOut)))
		})

		It("returns an empty history when the employee has never clocked in", func() {
			result, err := service.GetWithAttendance(3)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Attendance).To(BeEmpty())
		})

		It("rejects an unknown employee", func() {
			_, err := service.GetWithAttendance(99)

			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("ManagerDashboard", func() {
		It("lists the reports with today's attendance", func() {
			mockAttendance.summaries[2] = &attendance.TodaySummary{
				Date:           "2026-08-31",
				ClockIn:        "09:00:00",
				ClockOut:       "NA",
				TotalWorkHours: "NA",
			}

			rows, err := service.ManagerDashboard("Priya Sharma")

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(2))

			byID := make(map[int64]*employee.DashboardRow)
			for _, row := range rows {
				byID[row.ID] = row
			}
			Expect(byID[2].TodayAttendance.ClockIn).To(Equal("09:00:00"))
			Expect(byID[3].TodayAttendance.ClockIn).To(Equal("NA"))
		})

		It("returns an empty list for a manager with no reports", func() {
			rows, err := service.ManagerDashboard("Nobody")

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})
	})

	Describe("GetByID", func() {
		It("returns the directory record", func() {
			emp, err := service.GetByID(1)

			Expect(err).ToNot(HaveOccurred())
			Expect(emp.IsManager).To(BeTrue())
		})
	})
})
