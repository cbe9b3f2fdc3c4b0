package leave_test

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/workhub/leave-management/internal"
	"github.com/workhub/leave-management/internal/employee"
	"github.com/workhub/leave-management/internal/leave"
)

func TestLeaveService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Leave Service Suite")
}

type mockLeaveRepository struct {
	requests    map[int64]*leave.Request
	policy      *leave.Policy
	counters    map[int64]map[leave.Type]int
	nextID      int64
	createError error
	updateError error
	policyError error
}

func newMockLeaveRepository() *mockLeaveRepository {
	return &mockLeaveRepository{
		requests: make(map[int64]*leave.Request),
		counters: make(map[int64]map[leave.Type]int),
		policy:   &leave.Policy{SickTotal: 12, CasualTotal: 10},
		nextID:   1,
	}
}

func (m *mockLeaveRepository) counterFor(employeeID int64, t leave.Type) int {
	if byType, ok := m.counters[employeeID]; ok {
		return byType[t]
	}
	return 0
}

func (m *mockLeaveRepository) applyCounter(c leave.CounterUpdate) error {
	if m.counterFor(c.EmployeeID, c.Type) != c.From {
		return internal.ErrConcurrentUpdate
	}
	if m.counters[c.EmployeeID] == nil {
		m.counters[c.EmployeeID] = make(map[leave.Type]int)
	}
	m.counters[c.EmployeeID][c.Type] = c.To
	return nil
}

func (m *mockLeaveRepository) CreateRequest(req *leave.Request, counter leave.CounterUpdate) error {
	if m.createError != nil {
		return m.createError
	}
	if err := m.applyCounter(counter); err != nil {
		return err
	}
	req.ID = m.nextID
	m.nextID++
	req.CreatedAt = time.Now()
	m.requests[req.ID] = req
	return nil
}

func (m *mockLeaveRepository) GetByKey(key string) (*leave.Request, error) {
	for _, req := range m.requests {
		if req.RequestID == key || fmt.Sprintf("%d", req.ID) == key {
			return req, nil
		}
	}
	return nil, internal.ErrLeaveNotFound
}

func (m *mockLeaveRepository) UpdateStatus(id int64, status leave.Status, counter *leave.CounterUpdate) error {
	if m.updateError != nil {
		return m.updateError
	}
	req, ok := m.requests[id]
	if !ok {
		return internal.ErrLeaveNotFound
	}
	if counter != nil {
		if err := m.applyCounter(*counter); err != nil {
			return err
		}
	}
	req.Status = status
	return nil
}

func (m *mockLeaveRepository) ByEmployee(employeeID int64) ([]*leave.Request, error) {
	var result []*leave.Request
	for _, req := range m.requests {
		if req.EmployeeID == employeeID {
			result = append(result, req)
		}
	}
	return result, nil
}

func (m *mockLeaveRepository) PendingByEmployees(ids []int64) ([]*leave.Request, error) {
	var result []*leave.Request
	for _, req := range m.requests {
		if req.Status != leave.StatusPending {
			continue
		}
		for _, id := range ids {
			if req.EmployeeID == id {
				result = append(result, req)
				break
			}
		}
	}
	return result, nil
}

func (m *mockLeaveRepository) PendingAll() ([]*leave.Request, error) {
	var result []*leave.Request
	for _, req := range m.requests {
		if req.Status == leave.StatusPending {
			result = append(result, req)
		}
	}
	return result, nil
}

func (m *mockLeaveRepository) GetPolicy() (*leave.Policy, error) {
	if m.policyError != nil {
		return nil, m.policyError
	}
	return m.policy, nil
}

type mockEmployeeDirectory struct {
	repo      *mockLeaveRepository
	employees map[int64]*employee.Employee
}

func newMockEmployeeDirectory(repo *mockLeaveRepository) *mockEmployeeDirectory {
	return &mockEmployeeDirectory{
		repo:      repo,
		employees: make(map[int64]*employee.Employee),
	}
}

func (m *mockEmployeeDirectory) add(emp *employee.Employee) {
	m.employees[emp.ID] = emp
}

// GetByID reads counters back from the repository so the directory stays
// consistent with counter writes, the way a shared database would.
func (m *mockEmployeeDirectory) GetByID(id int64) (*employee.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return nil, internal.ErrEmployeeNotFound
	}
	copied := *emp
	copied.TotalSickLeaveTaken = m.repo.counterFor(id, leave.TypeSick)
	copied.TotalCasualLeaveTaken = m.repo.counterFor(id, leave.TypeCasual)
	return &copied, nil
}

func (m *mockEmployeeDirectory) ByManagerName(name string) ([]*employee.Employee, error) {
	var result []*employee.Employee
	for _, emp := range m.employees {
		if emp.ManagerName == name {
			withCounters, _ := m.GetByID(emp.ID)
			result = append(result, withCounters)
		}
	}
	return result, nil
}

var _ = Describe("LeaveService", func() {
	var (
		service   *leave.Service
		mockRepo  *mockLeaveRepository
		directory *mockEmployeeDirectory
		logger    *slog.Logger
	)

	applyDTO := func(employeeID int64, leaveType string, days int) leave.ApplyLeaveDTO {
		return leave.ApplyLeaveDTO{
			EmployeeID:  employeeID,
			LeaveType:   leaveType,
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-06",
			AppliedDays: days,
		}
	}

	BeforeEach(func() {
		mockRepo = newMockLeaveRepository()
		directory = newMockEmployeeDirectory(mockRepo)
		directory.add(&employee.Employee{ID: 1, EmpName: "Arjun Mehta", ManagerName: "Priya Sharma"})
		directory.add(&employee.Employee{ID: 2, EmpName: "Sana Kapoor", ManagerName: "Priya Sharma"})
		directory.add(&employee.Employee{ID: 3, EmpName: "Priya Sharma", IsManager: true})
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = leave.NewService(mockRepo, directory, nil, logger)
	})

	Describe("Apply", func() {
		Context("with available balance", func() {
			It("records a pending request and bumps the counter", func() {
				req, err := service.Apply(applyDTO(1, "sick", 5))

				Expect(err).ToNot(HaveOccurred())
				Expect(req.Status).To(Equal(leave.StatusPending))
				Expect(req.RequestID).ToNot(BeEmpty())
				Expect(mockRepo.counterFor(1, leave.TypeSick)).To(Equal(5))
			})

			It("accepts the long-form leave type names", func() {
				req, err := service.Apply(applyDTO(1, "Sick Leave", 3))

				Expect(err).ToNot(HaveOccurred())
				Expect(req.Type).To(Equal(leave.TypeSick))
			})

			It("allows taking the balance exactly to the policy total", func() {
				_, err := service.Apply(applyDTO(1, "casual", 10))

				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.counterFor(1, leave.TypeCasual)).To(Equal(10))
			})
		})

		Context("when the balance is insufficient", func() {
			It("refuses one day over the policy total", func() {
				_, err := service.Apply(applyDTO(1, "casual", 11))

				Expect(err).To(Equal(internal.ErrInsufficientBalance))
			})

			It("counts previously taken days against the total", func() {
				_, err := service.Apply(applyDTO(1, "sick", 8))
				Expect(err).ToNot(HaveOccurred())

				_, err = service.Apply(applyDTO(1, "sick", 5))
				Expect(err).To(Equal(internal.ErrInsufficientBalance))
			})

			It("tracks the two leave types independently", func() {
				_, err := service.Apply(applyDTO(1, "sick", 12))
				Expect(err).ToNot(HaveOccurred())

				_, err = service.Apply(applyDTO(1, "casual", 10))
				Expect(err).ToNot(HaveOccurred())
			})
		})

		Context("with bad input", func() {
			It("rejects an unknown leave type", func() {
				_, err := service.Apply(applyDTO(1, "unpaid", 2))

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidLeaveType))
			})

			It("rejects non-positive applied days", func() {
				_, err := service.Apply(applyDTO(1, "sick", 0))

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
			})

			It("returns not found for an unknown employee", func() {
				_, err := service.Apply(applyDTO(99, "sick", 2))

				Expect(err).To(Equal(internal.ErrEmployeeNotFound))
			})
		})

		Context("when the policy row is missing", func() {
			It("reports an internal error", func() {
				mockRepo.policyError = errors.New("no rows")

				_, err := service.Apply(applyDTO(1, "sick", 2))

				Expect(err).To(Equal(internal.ErrPolicyNotFound))
			})
		})

		Context("when counters change concurrently", func() {
			It("surfaces the conflict from the repository", func() {
				mockRepo.createError = internal.ErrConcurrentUpdate

				_, err := service.Apply(applyDTO(1, "sick", 2))

				Expect(err).To(Equal(internal.ErrConcurrentUpdate))
			})
		})
	})

	Describe("UpdateStatus", func() {
		var req *leave.Request

		BeforeEach(func() {
			var err error
			req, err = service.Apply(applyDTO(1, "sick", 5))
			Expect(err).ToNot(HaveOccurred())
		})

		Context("approving a pending request", func() {
			It("changes the status and leaves the counter alone", func() {
				updated, err := service.UpdateStatus(req.RequestID, "approved")

				Expect(err).ToNot(HaveOccurred())
				Expect(updated.Status).To(Equal(leave.StatusApproved))
				Expect(mockRepo.counterFor(1, leave.TypeSick)).To(Equal(5))
			})
		})

		Context("rejecting a request", func() {
			It("gives the days back to the counter", func() {
				_, err := service.UpdateStatus(req.RequestID, "rejected")

				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.counterFor(1, leave.TypeSick)).To(Equal(0))
			})

			It("floors the counter at zero", func() {
				mockRepo.counters[1][leave.TypeSick] = 2

				_, err := service.UpdateStatus(req.RequestID, "rejected")

				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.counterFor(1, leave.TypeSick)).To(Equal(0))
			})

			It("does not decrement twice for an already rejected request", func() {
				_, err := service.UpdateStatus(req.RequestID, "rejected")
				Expect(err).ToNot(HaveOccurred())

				_, err = service.Apply(applyDTO(1, "sick", 3))
				Expect(err).ToNot(HaveOccurred())

				_, err = service.UpdateStatus(req.RequestID, "rejected")
				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.counterFor(1, leave.TypeSick)).To(Equal(3))
			})
		})

		Context("re-approving after a rejection", func() {
			It("does not re-increment the counter", func() {
				_, err := service.UpdateStatus(req.RequestID, "rejected")
				Expect(err).ToNot(HaveOccurred())

				updated, err := service.UpdateStatus(req.RequestID, "approved")

				Expect(err).ToNot(HaveOccurred())
				Expect(updated.Status).To(Equal(leave.StatusApproved))
				Expect(mockRepo.counterFor(1, leave.TypeSick)).To(Equal(0))
			})
		})

		Context("addressing the request by numeric id", func() {
			It("resolves the same record", func() {
				updated, err := service.UpdateStatus(fmt.Sprintf("%d", req.ID), "approved")

				Expect(err).ToNot(HaveOccurred())
				Expect(updated.RequestID).To(Equal(req.RequestID))
			})
		})

		Context("with bad input", func() {
			It("rejects a status other than approved or rejected", func() {
				_, err := service.UpdateStatus(req.RequestID, "pending")

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))
			})

			It("returns not found for an unknown key", func() {
				_, err := service.UpdateStatus("no-such-key", "approved")

				Expect(err).To(Equal(internal.ErrLeaveNotFound))
			})
		})
	})

	Describe("BalanceFor", func() {
		It("reports used and remaining days per type", func() {
			_, err := service.Apply(applyDTO(1, "sick", 4))
			Expect(err).ToNot(HaveOccurred())

			balance, err := service.BalanceFor(1)

			Expect(err).ToNot(HaveOccurred())
			Expect(balance.SickLeaveUsed).To(Equal(4))
			Expect(balance.SickLeaveRemaining).To(Equal(8))
			Expect(balance.CasualLeaveUsed).To(Equal(0))
			Expect(balance.CasualLeaveRemaining).To(Equal(10))
		})

		It("returns not found for an unknown employee", func() {
			_, err := service.BalanceFor(99)

			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("ManagedBalances", func() {
		It("computes balances for every managed employee", func() {
			_, err := service.Apply(applyDTO(2, "casual", 3))
			Expect(err).ToNot(HaveOccurred())

			report, err := service.ManagedBalances("Priya Sharma")

			Expect(err).ToNot(HaveOccurred())
			Expect(report).To(HaveLen(2))
			for _, row := range report {
				if row.EmployeeID == 2 {
					Expect(row.CasualLeaveTaken).To(Equal(3))
					Expect(row.CasualLeaveLeft).To(Equal(7))
				}
			}
		})

		It("returns an empty report for a manager with no reports", func() {
			report, err := service.ManagedBalances("Nobody")

			Expect(err).ToNot(HaveOccurred())
			Expect(report).To(BeEmpty())
		})
	})

	Describe("StatusByEmployee", func() {
		It("lists the employee's requests", func() {
			_, err := service.Apply(applyDTO(1, "sick", 2))
			Expect(err).ToNot(HaveOccurred())

			requests, err := service.StatusByEmployee(1)

			Expect(err).ToNot(HaveOccurred())
			Expect(requests).To(HaveLen(1))
		})

		It("reports an empty ledger as not found", func() {
			_, err := service.StatusByEmployee(1)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})
	})

	Describe("PendingForManager", func() {
		BeforeEach(func() {
			_, err := service.Apply(applyDTO(1, "sick", 2))
			Expect(err).ToNot(HaveOccurred())
			_, err = service.Apply(applyDTO(2, "casual", 1))
			Expect(err).ToNot(HaveOccurred())
		})

		It("filters to the manager's reports", func() {
			requests, err := service.PendingForManager("Priya Sharma")

			Expect(err).ToNot(HaveOccurred())
			Expect(requests).To(HaveLen(2))
		})

		It("lists all pending requests when no manager is named", func() {
			requests, err := service.PendingForManager("")

			Expect(err).ToNot(HaveOccurred())
			Expect(requests).To(HaveLen(2))
		})

		It("excludes decided requests", func() {
			all, err := service.PendingForManager("")
			Expect(err).ToNot(HaveOccurred())
			_, err = service.UpdateStatus(all[0].RequestID, "approved")
			Expect(err).ToNot(HaveOccurred())

			requests, err := service.PendingForManager("Priya Sharma")

			Expect(err).ToNot(HaveOccurred())
			Expect(requests).To(HaveLen(1))
		})

		It("reports no pending records as not found", func() {
			requests, err := service.PendingForManager("Nobody")

			Expect(requests).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})
	})
})

var _ = Describe("InclusiveDays", func() {
	day := func(s string) time.Time {
		t, err := time.Parse("2006-01-02", s)
		Expect(err).ToNot(HaveOccurred())
		return t
	}

	It("counts both endpoints", func() {
		Expect(leave.InclusiveDays(day("2026-03-02"), day("2026-03-06"))).To(Equal(5))
	})

	It("counts a single day as one", func() {
		Expect(leave.InclusiveDays(day("2026-03-02"), day("2026-03-02"))).To(Equal(1))
	})

	It("is symmetric in its arguments", func() {
		Expect(leave.InclusiveDays(day("2026-03-06"), day("2026-03-02"))).To(Equal(5))
	})
})

var _ = Describe("ApplyLeaveDTO", func() {
	It("accepts a single-day leave, matching the older apply path", func() {
		dto := leave.ApplyLeaveDTO{
			EmployeeID:  1,
			LeaveType:   "casual",
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-02",
			AppliedDays: 1,
		}

		Expect(dto.Validate()).To(Succeed())
	})

	It("rejects an inverted date range", func() {
		dto := leave.ApplyLeaveDTO{
			EmployeeID:  1,
			LeaveType:   "casual",
			StartDate:   "2026-03-06",
			EndDate:     "2026-03-02",
			AppliedDays: 1,
		}

		err := dto.Validate()

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidDateRange))
	})
})

var _ = Describe("LegacyApplyLeaveDTO", func() {
	It("derives applied days from the date range", func() {
		legacy := leave.LegacyApplyLeaveDTO{
			EmpID:     "1",
			EmpName:   "Arjun Mehta",
			StartDate: "2026-03-02",
			EndDate:   "2026-03-04",
			LeaveType: "casual",
		}

		dto, err := legacy.ToApplyLeaveDTO()

		Expect(err).ToNot(HaveOccurred())
		Expect(dto.AppliedDays).To(Equal(3))
		Expect(dto.EmployeeID).To(Equal(int64(1)))
	})

	It("rejects missing fields", func() {
		legacy := leave.LegacyApplyLeaveDTO{EmpID: "1"}

		_, err := legacy.ToApplyLeaveDTO()

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(400))
	})
})
