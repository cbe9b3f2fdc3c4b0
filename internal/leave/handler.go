package leave

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/workhub/leave-management/internal/transport"
	"github.com/workhub/leave-management/pkg/logger"
)

type ServiceAPI interface {
	Apply(dto ApplyLeaveDTO) (*Request, error)
	UpdateStatus(key string, status string) (*Request, error)
	BalanceFor(employeeID int64) (*Balance, error)
	ManagedBalances(managerName string) ([]ManagedBalance, error)
	StatusByEmployee(employeeID int64) ([]*Request, error)
	PendingForManager(managerName string) ([]*Request, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) ApplyLeave(w http.ResponseWriter, r *http.Request) {
	var dto ApplyLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ApplyLeave: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.Logger.Warn("ApplyLeave: validation failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	req, err := h.Service.Apply(dto)
	if err != nil {
		h.Logger.Error("ApplyLeave: service error", "error", err, "employee_id", dto.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Leave applied successfully",
		"data":    req,
	})
}

func (h *Handler) UpdateLeaveStatus(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "leaveManagementId")

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateLeaveStatus: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.UpdateStatus(key, dto.Status)
	if err != nil {
		h.Logger.Error("UpdateLeaveStatus: service error", "error", err, "key", key)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Leave status updated",
		"data":    req,
	})
}

func (h *Handler) GetLeaveBalance(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "empId")
	employeeID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetLeaveBalance: invalid employee ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	balance, err := h.Service.BalanceFor(employeeID)
	if err != nil {
		h.Logger.Error("GetLeaveBalance: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, balance)
}

func (h *Handler) GetManagedLeaveBalances(w http.ResponseWriter, r *http.Request) {
	managerName := chi.URLParam(r, "managerName")

	report, err := h.Service.ManagedBalances(managerName)
	if err != nil {
		h.Logger.Error("GetManagedLeaveBalances: service error", "error", err, "manager", managerName)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}

// Legacy route family: the request and response schemas predate the
// leave-management API and are kept byte-compatible for existing clients.

func (h *Handler) ApplyLeaveLegacy(w http.ResponseWriter, r *http.Request) {
	var dto LegacyApplyLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ApplyLeaveLegacy: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	canonical, err := dto.ToApplyLeaveDTO()
	if err != nil {
		h.Logger.Warn("ApplyLeaveLegacy: validation failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	req, err := h.Service.Apply(canonical)
	if err != nil {
		h.Logger.Error("ApplyLeaveLegacy: service error", "error", err, "employee_id", canonical.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":  "Leave applied successfully",
		"leave_id": req.RequestID,
	})
}

func (h *Handler) GetLeaveStatus(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "empid")
	employeeID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetLeaveStatus: invalid employee ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	requests, err := h.Service.StatusByEmployee(employeeID)
	if err != nil {
		h.Logger.Error("GetLeaveStatus: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	summary := make([]map[string]any, len(requests))
	for i, req := range requests {
		summary[i] = map[string]any{
			"leave_id":  req.RequestID,
			"leavetype": req.Type,
			"startdate": req.StartDate.Format(dateLayout),
			"enddate":   req.EndDate.Format(dateLayout),
			"status":    req.Status,
		}
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{
		"employee_id":  employeeID,
		"leave_status": summary,
	})
}

func (h *Handler) GetManagerLeaveStatus(w http.ResponseWriter, r *http.Request) {
	managerName := chi.URLParam(r, "managerName")

	requests, err := h.Service.PendingForManager(managerName)
	if err != nil {
		h.Logger.Error("GetManagerLeaveStatus: service error", "error", err, "manager", managerName)
		h.HandleServiceError(w, err)
		return
	}

	viewedBy := managerName
	if viewedBy == "" {
		viewedBy = "Manager"
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{
		"viewed_by":     viewedBy,
		"leave_records": requests,
	})
}

func (h *Handler) UpdateLeaveStatusLegacy(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "leaveId")

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateLeaveStatusLegacy: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.UpdateStatus(key, dto.Status)
	if err != nil {
		h.Logger.Error("UpdateLeaveStatusLegacy: service error", "error", err, "key", key)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Leave status updated to %q", req.Status),
		"updated_leave": map[string]any{
			"leave_id":      req.RequestID,
			"employee_id":   req.EmployeeID,
			"employee_name": req.EmpName,
			"leave_type":    req.Type,
			"start_date":    req.StartDate.Format(dateLayout),
			"end_date":      req.EndDate.Format(dateLayout),
			"status":        req.Status,
		},
	})
}
