package employee

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/workhub/leave-management/internal/transport"
	"github.com/workhub/leave-management/pkg/logger"
)

type ServiceAPI interface {
	GetWithAttendance(id int64) (*EmployeeWithAttendance, error)
	ManagerDashboard(managerName string) ([]*DashboardRow, error)
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

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid Employee ID format")
		return
	}

	emp, err := h.Service.GetWithAttendance(id)
	if err != nil {
		h.Logger.Error("GetEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) ManagerDashboard(w http.ResponseWriter, r *http.Request) {
	managerName := chi.URLParam(r, "managerName")

	rows, err := h.Service.ManagerDashboard(managerName)
	if err != nil {
		h.Logger.Error("ManagerDashboard: service error", "error", err, "manager", managerName)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rows)
}
